package content

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	cache "github.com/patrickmn/go-cache"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/alexdev/portfolio-api/internal/models"
	"github.com/alexdev/portfolio-api/internal/notify"
)

const cacheKey = "site_content"

// Store is the sole mediator between in-memory content and the database row.
type Store struct {
	db     *gorm.DB
	broker notify.Broker
	cache  *cache.Cache
	cancel func()
}

func NewStore(db *gorm.DB, broker notify.Broker) *Store {
	s := &Store{
		db:     db,
		broker: broker,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
	}

	// Any content-changed event, including from another instance, drops the
	// cached copy so the next Load re-reads the row.
	events, cancel := broker.Subscribe()
	s.cancel = cancel
	go func() {
		for range events {
			s.cache.Delete(cacheKey)
		}
	}()

	return s
}

func (s *Store) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Load returns the content document. An empty store is seeded on first read;
// a failing store degrades to the seed so callers always get renderable data.
func (s *Store) Load(ctx context.Context) SiteData {
	if v, ok := s.cache.Get(cacheKey); ok {
		if data, ok := v.(SiteData); ok {
			return data.Clone()
		}
	}

	var row models.SiteContent
	err := s.db.WithContext(ctx).First(&row, "id = ?", models.SiteContentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seed := Seed()
		if werr := s.writeRow(ctx, seed); werr != nil {
			log.Printf("content: seeding empty store failed: %v", werr)
		}
		s.cache.Set(cacheKey, seed.Clone(), cache.DefaultExpiration)
		return seed
	}
	if err != nil {
		log.Printf("content: load failed, serving seed: %v", err)
		return Seed()
	}

	data, err := decodeRow(row)
	if err != nil {
		log.Printf("content: unreadable content row, serving seed: %v", err)
		return Seed()
	}

	s.cache.Set(cacheKey, data.Clone(), cache.DefaultExpiration)
	return data
}

// Save replaces the whole document and announces the change. Write errors
// surface to the caller; a failed publish only logs, the row is already
// committed.
func (s *Store) Save(ctx context.Context, data SiteData) error {
	if err := data.Validate(); err != nil {
		return err
	}

	if err := s.writeRow(ctx, data); err != nil {
		return err
	}
	s.cache.Delete(cacheKey)

	ev := notify.Event{Type: notify.EventContentChanged, At: time.Now()}
	if err := s.broker.Publish(ctx, ev); err != nil {
		log.Printf("content: change publish failed: %v", err)
	}
	return nil
}

func (s *Store) writeRow(ctx context.Context, data SiteData) error {
	row, err := encodeRow(data)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}

func encodeRow(data SiteData) (models.SiteContent, error) {
	profile, err := json.Marshal(data.Profile)
	if err != nil {
		return models.SiteContent{}, err
	}

	if data.Skills == nil {
		data.Skills = []Skill{}
	}
	skills, err := json.Marshal(data.Skills)
	if err != nil {
		return models.SiteContent{}, err
	}

	if data.Projects == nil {
		data.Projects = []Project{}
	}
	projects, err := json.Marshal(data.Projects)
	if err != nil {
		return models.SiteContent{}, err
	}

	row := models.SiteContent{
		ID:       models.SiteContentID,
		Profile:  datatypes.JSON(profile),
		Skills:   datatypes.JSON(skills),
		Projects: datatypes.JSON(projects),
	}

	if data.Settings != nil {
		settings, err := json.Marshal(data.Settings)
		if err != nil {
			return models.SiteContent{}, err
		}
		row.Settings = datatypes.JSON(settings)
	}
	return row, nil
}

func decodeRow(row models.SiteContent) (SiteData, error) {
	var data SiteData

	if err := json.Unmarshal(row.Profile, &data.Profile); err != nil {
		return SiteData{}, err
	}
	if err := json.Unmarshal(row.Skills, &data.Skills); err != nil {
		return SiteData{}, err
	}
	if err := json.Unmarshal(row.Projects, &data.Projects); err != nil {
		return SiteData{}, err
	}
	if len(row.Settings) > 0 {
		data.Settings = &Settings{}
		if err := json.Unmarshal(row.Settings, data.Settings); err != nil {
			return SiteData{}, err
		}
	}
	return data, nil
}
