package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alexdev/portfolio-api/internal/content"
)

type ContentHandler struct {
	Store *content.Store
}

func NewContentHandler(store *content.Store) *ContentHandler {
	return &ContentHandler{Store: store}
}

// Get serves the content document to the public site. Load never fails, so
// neither does this.
func (h *ContentHandler) Get(c *fiber.Ctx) error {
	data := h.Store.Load(c.Context())
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}
