// Package content owns the site content document: the profile, skill list,
// project list and settings that the public site renders and the admin panel
// edits. The document is always loaded and saved as one unit.
package content

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var (
	SkillCategories   = []interface{}{"Frontend", "Backend", "Design", "Tools"}
	ProjectCategories = []interface{}{"Web", "Mobile", "Design", "Other"}
)

type Profile struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Tagline    string `json:"tagline"`
	About      string `json:"about"`
	Experience string `json:"experience,omitempty"`
	Learning   string `json:"learning,omitempty"`
	Email      string `json:"email"`
	GitHub     string `json:"github"`
	LinkedIn   string `json:"linkedin"`
	Twitter    string `json:"twitter,omitempty"`
	Location   string `json:"location"`
	HeroImage  string `json:"heroImage"`
}

func (p Profile) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Email, validation.Required, is.Email),
	)
}

type Skill struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Level    int    `json:"level"` // 0..100
}

func (s Skill) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ID, validation.Required),
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Category, validation.Required, validation.In(SkillCategories...)),
		validation.Field(&s.Level, validation.Min(0), validation.Max(100)),
	)
}

type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	ImageURL     string   `json:"imageUrl"`
	Category     string   `json:"category"`
	DemoLink     string   `json:"demoLink,omitempty"`
	RepoLink     string   `json:"repoLink,omitempty"`
	IsFeatured   bool     `json:"isFeatured,omitempty"`
}

func (p Project) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Category, validation.Required, validation.In(ProjectCategories...)),
	)
}

type Settings struct {
	SenderEmail      string `json:"senderEmail,omitempty"`
	EmailServiceName string `json:"emailServiceName,omitempty"`
}

// SiteData is the in-memory form of the content document.
type SiteData struct {
	Profile  Profile   `json:"profile"`
	Skills   []Skill   `json:"skills"`
	Projects []Project `json:"projects"`
	Settings *Settings `json:"settings,omitempty"`
}

func (d SiteData) Validate() error {
	if err := d.Profile.Validate(); err != nil {
		return err
	}
	for _, s := range d.Skills {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	for _, p := range d.Projects {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone deep-copies the document so a working copy never aliases the loaded
// one.
func (d SiteData) Clone() SiteData {
	out := d

	out.Skills = make([]Skill, len(d.Skills))
	copy(out.Skills, d.Skills)

	out.Projects = make([]Project, len(d.Projects))
	for i, p := range d.Projects {
		cp := p
		cp.Technologies = make([]string, len(p.Technologies))
		copy(cp.Technologies, p.Technologies)
		out.Projects[i] = cp
	}

	if d.Settings != nil {
		s := *d.Settings
		out.Settings = &s
	}
	return out
}

// FeaturedProjects drives the home-page highlight section.
func (d SiteData) FeaturedProjects() []Project {
	var out []Project
	for _, p := range d.Projects {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out
}
