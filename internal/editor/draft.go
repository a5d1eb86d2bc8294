// Package editor holds the admin panel's working copy of the content
// document. Edits apply to the draft immediately; nothing reaches the store
// until an explicit Save.
package editor

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alexdev/portfolio-api/internal/content"
)

var ErrNotFound = errors.New("editor: item not found")

type Service struct {
	store *content.Store

	mu     sync.Mutex
	draft  *content.SiteData
	lastID int64
}

func NewService(store *content.Store) *Service {
	return &Service{store: store}
}

// SkillPatch updates only the fields the admin touched.
type SkillPatch struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Level    *int    `json:"level"`
}

// ProjectPatch updates only the fields the admin touched. Technologies arrive
// as one comma-delimited string, the way the edit form sends them.
type ProjectPatch struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Technologies *string `json:"technologies"`
	ImageURL     *string `json:"imageUrl"`
	Category     *string `json:"category"`
	DemoLink     *string `json:"demoLink"`
	RepoLink     *string `json:"repoLink"`
	IsFeatured   *bool   `json:"isFeatured"`
}

// Draft returns the current working copy, loading it from the store on first
// use.
func (s *Service) Draft(ctx context.Context) content.SiteData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureDraft(ctx).Clone()
}

// Reload throws the working copy away and re-reads the stored document.
func (s *Service) Reload(ctx context.Context) content.SiteData {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = nil
	return s.ensureDraft(ctx).Clone()
}

func (s *Service) UpdateProfile(ctx context.Context, p content.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureDraft(ctx).Profile = p
	return nil
}

func (s *Service) UpdateSettings(ctx context.Context, set content.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureDraft(ctx).Settings = &set
}

func (s *Service) AddSkill(ctx context.Context) content.Skill {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.ensureDraft(ctx)
	skill := content.Skill{
		ID:       s.newItemID(),
		Name:     "New Skill",
		Category: "Tools",
		Level:    50,
	}
	d.Skills = append(d.Skills, skill)
	return skill
}

func (s *Service) UpdateSkill(ctx context.Context, id string, patch SkillPatch) (content.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.ensureDraft(ctx)
	for i, skill := range d.Skills {
		if skill.ID != id {
			continue
		}
		next := skill
		if patch.Name != nil {
			next.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Category != nil {
			next.Category = *patch.Category
		}
		if patch.Level != nil {
			next.Level = *patch.Level
		}
		if err := next.Validate(); err != nil {
			return content.Skill{}, err
		}
		d.Skills[i] = next
		return next, nil
	}
	return content.Skill{}, ErrNotFound
}

func (s *Service) DeleteSkill(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.ensureDraft(ctx)
	for i, skill := range d.Skills {
		if skill.ID == id {
			d.Skills = append(d.Skills[:i], d.Skills[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// AddProject prepends a placeholder project so the newest entry edits first.
func (s *Service) AddProject(ctx context.Context) content.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.ensureDraft(ctx)
	project := content.Project{
		ID:           s.newItemID(),
		Title:        "New Project",
		Description:  "Project description goes here...",
		Technologies: []string{},
		ImageURL:     "https://picsum.photos/600/400",
		Category:     "Web",
	}
	d.Projects = append([]content.Project{project}, d.Projects...)
	return project
}

func (s *Service) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (content.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.ensureDraft(ctx)
	for i, project := range d.Projects {
		if project.ID != id {
			continue
		}
		next := project
		if patch.Title != nil {
			next.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			next.Description = *patch.Description
		}
		if patch.Technologies != nil {
			next.Technologies = ParseTechnologies(*patch.Technologies)
		}
		if patch.ImageURL != nil {
			next.ImageURL = *patch.ImageURL
		}
		if patch.Category != nil {
			next.Category = *patch.Category
		}
		if patch.DemoLink != nil {
			next.DemoLink = *patch.DemoLink
		}
		if patch.RepoLink != nil {
			next.RepoLink = *patch.RepoLink
		}
		if patch.IsFeatured != nil {
			next.IsFeatured = *patch.IsFeatured
		}
		if err := next.Validate(); err != nil {
			return content.Project{}, err
		}
		d.Projects[i] = next
		return next, nil
	}
	return content.Project{}, ErrNotFound
}

func (s *Service) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.ensureDraft(ctx)
	for i, project := range d.Projects {
		if project.ID == id {
			d.Projects = append(d.Projects[:i], d.Projects[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Save pushes the full working copy through the store. The draft stays live,
// so saving twice writes the same document twice.
func (s *Service) Save(ctx context.Context) (content.SiteData, error) {
	s.mu.Lock()
	data := s.ensureDraft(ctx).Clone()
	s.mu.Unlock()

	if err := s.store.Save(ctx, data); err != nil {
		return content.SiteData{}, err
	}
	return data, nil
}

// ParseTechnologies splits the delimited form value into trimmed entries,
// dropping empties.
func ParseTechnologies(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// callers hold s.mu
func (s *Service) ensureDraft(ctx context.Context) *content.SiteData {
	if s.draft == nil {
		d := s.store.Load(ctx)
		s.draft = &d
	}
	return s.draft
}

// newItemID mints a millisecond-timestamp id, bumped on collision so two adds
// in the same millisecond stay distinct. Callers hold s.mu.
func (s *Service) newItemID() string {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}
