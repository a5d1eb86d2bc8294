package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/alexdev/portfolio-api/internal/content"
	"github.com/alexdev/portfolio-api/internal/editor"
)

// EditorHandler exposes the admin working copy: edits land in the draft
// immediately, the store only changes on Save.
type EditorHandler struct {
	Svc *editor.Service
}

func NewEditorHandler(svc *editor.Service) *EditorHandler {
	return &EditorHandler{Svc: svc}
}

func (h *EditorHandler) Draft(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.Svc.Draft(c.Context()),
	})
}

// Reload discards unsaved edits and re-reads the stored document.
func (h *EditorHandler) Reload(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Draft reloaded",
		"data":    h.Svc.Reload(c.Context()),
	})
}

func (h *EditorHandler) UpdateProfile(c *fiber.Ctx) error {
	var p content.Profile
	if err := c.BodyParser(&p); err != nil {
		return badBody(c)
	}

	if err := h.Svc.UpdateProfile(c.Context(), p); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated",
		"data":    p,
	})
}

func (h *EditorHandler) UpdateSettings(c *fiber.Ctx) error {
	var s content.Settings
	if err := c.BodyParser(&s); err != nil {
		return badBody(c)
	}

	h.Svc.UpdateSettings(c.Context(), s)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Settings updated",
		"data":    s,
	})
}

func (h *EditorHandler) AddSkill(c *fiber.Ctx) error {
	skill := h.Svc.AddSkill(c.Context())
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    skill,
	})
}

func (h *EditorHandler) UpdateSkill(c *fiber.Ctx) error {
	var patch editor.SkillPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c)
	}

	skill, err := h.Svc.UpdateSkill(c.Context(), c.Params("id"), patch)
	if err != nil {
		return editorError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    skill,
	})
}

func (h *EditorHandler) DeleteSkill(c *fiber.Ctx) error {
	if err := h.Svc.DeleteSkill(c.Context(), c.Params("id")); err != nil {
		return editorError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Skill removed from draft",
	})
}

func (h *EditorHandler) AddProject(c *fiber.Ctx) error {
	project := h.Svc.AddProject(c.Context())
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    project,
	})
}

func (h *EditorHandler) UpdateProject(c *fiber.Ctx) error {
	var patch editor.ProjectPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c)
	}

	project, err := h.Svc.UpdateProject(c.Context(), c.Params("id"), patch)
	if err != nil {
		return editorError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    project,
	})
}

func (h *EditorHandler) DeleteProject(c *fiber.Ctx) error {
	if err := h.Svc.DeleteProject(c.Context(), c.Params("id")); err != nil {
		return editorError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Project removed from draft",
	})
}

// Save commits the whole draft. A failed save leaves the draft untouched so
// the admin can retry.
func (h *EditorHandler) Save(c *fiber.Ctx) error {
	data, err := h.Svc.Save(c.Context())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to save content",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Content saved",
		"data":    data,
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Invalid body",
	})
}

func editorError(c *fiber.Ctx, err error) error {
	if errors.Is(err, editor.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Item not found",
		})
	}
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}
