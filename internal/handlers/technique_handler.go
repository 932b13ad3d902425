package handlers

import (
	"bjjtracker/internal/middleware"
	"bjjtracker/internal/services"

	"github.com/gofiber/fiber/v2"
)

type TechniqueHandler struct {
	service *services.TechniqueService
}

func NewTechniqueHandler(service *services.TechniqueService) *TechniqueHandler {
	return &TechniqueHandler{service: service}
}

func (h *TechniqueHandler) RegisterRoutes(router fiber.Router) {
	techniqueRoutes := router.Group("/techniques")
	techniqueRoutes.Get("/", h.HandleGetTechniques)
	techniqueRoutes.Get("/:id", h.HandleGetTechniqueByID)
	techniqueRoutes.Post("/", h.HandleCreateTechnique)
	techniqueRoutes.Put("/:id", h.HandleUpdateTechnique)
	techniqueRoutes.Delete("/:id", h.HandleDeleteTechnique)
}

// HandleGetTechniques supports ?category= and ?search= filters.
func (h *TechniqueHandler) HandleGetTechniques(c *fiber.Ctx) error {
	techniques, err := h.service.ListTechniques(c.UserContext(), middleware.UserID(c), services.TechniqueFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return err
	}
	return c.JSON(techniques)
}

func (h *TechniqueHandler) HandleGetTechniqueByID(c *fiber.Ctx) error {
	technique, err := h.service.GetTechnique(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(technique)
}

func (h *TechniqueHandler) HandleCreateTechnique(c *fiber.Ctx) error {
	var req services.TechniqueInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	technique, err := h.service.CreateTechnique(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(technique)
}

func (h *TechniqueHandler) HandleUpdateTechnique(c *fiber.Ctx) error {
	var req services.TechniqueInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	technique, err := h.service.UpdateTechnique(c.UserContext(), middleware.UserID(c), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(technique)
}

func (h *TechniqueHandler) HandleDeleteTechnique(c *fiber.Ctx) error {
	if err := h.service.DeleteTechnique(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Technique removed"})
}
