package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enquiry is a visitor-submitted contact message. Rows are append-only apart
// from the replied flag.
type Enquiry struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name    string    `gorm:"not null" json:"name"`
	Email   string    `gorm:"not null;index" json:"email"`
	Message string    `gorm:"type:text;not null" json:"message"`
	Replied bool      `gorm:"default:false" json:"replied"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Enquiry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
