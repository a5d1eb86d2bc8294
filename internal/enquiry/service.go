// Package enquiry manages visitor contact messages: public submission, the
// admin inbox, and the reply workflow.
package enquiry

import (
	"context"
	"errors"
	"log"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alexdev/portfolio-api/internal/mailer"
	"github.com/alexdev/portfolio-api/internal/models"
)

var ErrNotFound = errors.New("enquiry: not found")

type Service struct {
	db     *gorm.DB
	mailer mailer.Mailer
}

func NewService(db *gorm.DB, m mailer.Mailer) *Service {
	return &Service{db: db, mailer: m}
}

type SubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (r SubmitRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Message, validation.Required),
	)
}

// Submit appends one enquiry. The creation timestamp is server-assigned;
// existing records are never touched.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (models.Enquiry, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Message = strings.TrimSpace(req.Message)

	if err := req.Validate(); err != nil {
		return models.Enquiry{}, err
	}

	e := models.Enquiry{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Replied: false,
	}
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return models.Enquiry{}, err
	}
	return e, nil
}

// List returns every enquiry, newest first. A failing store degrades to an
// empty inbox rather than an error.
func (s *Service) List(ctx context.Context) []models.Enquiry {
	out := []models.Enquiry{}
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		log.Printf("enquiry: list failed, serving empty inbox: %v", err)
		return []models.Enquiry{}
	}
	return out
}

// MarkReplied flips the replied flag on exactly one record.
func (s *Service) MarkReplied(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Model(&models.Enquiry{}).
		Where("id = ?", id).
		Update("replied", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Reply sends a reply through the mailer and marks the enquiry replied.
// Composing the reply is the authoritative way the flag gets set; a mailer
// failure leaves it untouched.
func (s *Service) Reply(ctx context.Context, id uuid.UUID, subject, body, sender, service string) (mailer.Result, error) {
	var e models.Enquiry
	err := s.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return mailer.Result{}, ErrNotFound
	}
	if err != nil {
		return mailer.Result{}, err
	}

	if subject == "" {
		subject = "Re: your enquiry"
	}
	if body == "" {
		body = "Hi " + e.Name + ",\n\nThanks for reaching out!\n"
	}

	res, err := s.mailer.SendReply(ctx, mailer.Request{
		To:      e.Email,
		Subject: subject,
		Body:    body,
		Sender:  sender,
		Service: service,
	})
	if err != nil {
		return mailer.Result{}, err
	}

	if err := s.MarkReplied(ctx, id); err != nil {
		return mailer.Result{}, err
	}
	return res, nil
}
