package handlers

import (
	"bjjtracker/internal/middleware"
	"bjjtracker/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CompetitionHandler struct {
	service *services.CompetitionService
}

func NewCompetitionHandler(service *services.CompetitionService) *CompetitionHandler {
	return &CompetitionHandler{service: service}
}

func (h *CompetitionHandler) RegisterRoutes(router fiber.Router) {
	competitionRoutes := router.Group("/competitions")
	competitionRoutes.Get("/", h.HandleGetCompetitions)
	competitionRoutes.Get("/:id", h.HandleGetCompetitionByID)
	competitionRoutes.Post("/", h.HandleCreateCompetition)
	competitionRoutes.Put("/:id", h.HandleUpdateCompetition)
	competitionRoutes.Delete("/:id", h.HandleDeleteCompetition)
}

// HandleGetCompetitions supports ?type=past|upcoming.
func (h *CompetitionHandler) HandleGetCompetitions(c *fiber.Ctx) error {
	competitions, err := h.service.ListCompetitions(c.UserContext(), middleware.UserID(c), c.Query("type"))
	if err != nil {
		return err
	}
	return c.JSON(competitions)
}

func (h *CompetitionHandler) HandleGetCompetitionByID(c *fiber.Ctx) error {
	competition, err := h.service.GetCompetition(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(competition)
}

func (h *CompetitionHandler) HandleCreateCompetition(c *fiber.Ctx) error {
	var req services.CompetitionInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	competition, err := h.service.CreateCompetition(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(competition)
}

func (h *CompetitionHandler) HandleUpdateCompetition(c *fiber.Ctx) error {
	var req services.CompetitionInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	competition, err := h.service.UpdateCompetition(c.UserContext(), middleware.UserID(c), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(competition)
}

func (h *CompetitionHandler) HandleDeleteCompetition(c *fiber.Ctx) error {
	if err := h.service.DeleteCompetition(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Competition removed"})
}
