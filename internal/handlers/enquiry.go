package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/alexdev/portfolio-api/internal/content"
	"github.com/alexdev/portfolio-api/internal/enquiry"
)

type EnquiryHandler struct {
	Svc   *enquiry.Service
	Store *content.Store
}

func NewEnquiryHandler(svc *enquiry.Service, store *content.Store) *EnquiryHandler {
	return &EnquiryHandler{Svc: svc, Store: store}
}

// Submit takes a public contact-form submission. All three fields are
// required; nothing is written when validation fails.
func (h *EnquiryHandler) Submit(c *fiber.Ctx) error {
	var req enquiry.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	e, err := h.Svc.Submit(c.Context(), req)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Thanks for your message!",
		"data": fiber.Map{
			"id": e.ID,
		},
	})
}

func (h *EnquiryHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.Svc.List(c.Context()),
	})
}

// MarkReplied flags an enquiry handled out-of-band. The reply workflow below
// sets the same flag itself.
func (h *EnquiryHandler) MarkReplied(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c)
	}

	if err := h.Svc.MarkReplied(c.Context(), id); err != nil {
		return enquiryError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Enquiry marked replied",
	})
}

type replyReq struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (h *EnquiryHandler) Reply(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c)
	}

	var req replyReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	// settings only annotate the outgoing message, resolved per request so
	// an admin save takes effect immediately
	sender, service := "", ""
	if settings := h.Store.Load(c.Context()).Settings; settings != nil {
		sender = settings.SenderEmail
		service = settings.EmailServiceName
	}

	res, err := h.Svc.Reply(c.Context(), id, req.Subject, req.Body, sender, service)
	if err != nil {
		return enquiryError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Reply sent",
		"data":    res,
	})
}

func badID(c *fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Invalid enquiry id",
	})
}

func enquiryError(c *fiber.Ctx, err error) error {
	if errors.Is(err, enquiry.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Enquiry not found",
		})
	}
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Something went wrong",
	})
}
