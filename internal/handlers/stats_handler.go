package handlers

import (
	"strconv"

	"bjjtracker/internal/apperr"
	"bjjtracker/internal/middleware"
	"bjjtracker/internal/services"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler serves the dashboard views.
type StatsHandler struct {
	service *services.StatsService
}

func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) RegisterRoutes(router fiber.Router) {
	statsRoutes := router.Group("/stats")
	statsRoutes.Get("/overview", h.HandleOverview)
	statsRoutes.Get("/training-frequency", h.HandleTrainingFrequency)
	statsRoutes.Get("/techniques-mastery", h.HandleTechniquesMastery)
	statsRoutes.Get("/competition-performance", h.HandleCompetitionPerformance)
	statsRoutes.Get("/technique-categories", h.HandleTechniqueCategories)
	statsRoutes.Get("/belt-progression", h.HandleBeltProgression)
}

func (h *StatsHandler) HandleOverview(c *fiber.Ctx) error {
	overview, err := h.service.Overview(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(overview)
}

// HandleTrainingFrequency reads the window from ?period=<days>.
func (h *StatsHandler) HandleTrainingFrequency(c *fiber.Ctx) error {
	period := services.DefaultFrequencyPeriod
	if raw := c.Query("period"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return apperr.Validation("period must be a positive number of days", map[string]string{
				"period": "Field 'period' must be an integer",
			})
		}
		period = n
	}

	series, err := h.service.TrainingFrequency(c.UserContext(), middleware.UserID(c), period)
	if err != nil {
		return err
	}
	return c.JSON(series)
}

func (h *StatsHandler) HandleTechniquesMastery(c *fiber.Ctx) error {
	series, err := h.service.MasteryDistribution(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(series)
}

func (h *StatsHandler) HandleCompetitionPerformance(c *fiber.Ctx) error {
	series, err := h.service.CompetitionPerformance(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(series)
}

func (h *StatsHandler) HandleTechniqueCategories(c *fiber.Ctx) error {
	series, err := h.service.TechniqueCategories(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(series)
}

func (h *StatsHandler) HandleBeltProgression(c *fiber.Ctx) error {
	progression, err := h.service.BeltProgression(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(progression)
}
