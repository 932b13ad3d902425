package handlers

import (
	"bjjtracker/internal/middleware"
	"bjjtracker/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TrainingHandler handles HTTP requests for training sessions.
type TrainingHandler struct {
	service *services.TrainingService
}

// NewTrainingHandler creates a new TrainingHandler.
func NewTrainingHandler(service *services.TrainingService) *TrainingHandler {
	return &TrainingHandler{service: service}
}

// RegisterRoutes registers the training routes. /stats is registered before
// /:id so it is not read as an id.
func (h *TrainingHandler) RegisterRoutes(router fiber.Router) {
	trainingRoutes := router.Group("/trainings")
	trainingRoutes.Get("/", h.HandleGetTrainings)
	trainingRoutes.Get("/stats", h.HandleGetTrainingStats)
	trainingRoutes.Get("/:id", h.HandleGetTrainingByID)
	trainingRoutes.Post("/", h.HandleCreateTraining)
	trainingRoutes.Put("/:id", h.HandleUpdateTraining)
	trainingRoutes.Delete("/:id", h.HandleDeleteTraining)
}

func (h *TrainingHandler) HandleGetTrainings(c *fiber.Ctx) error {
	trainings, err := h.service.ListTrainings(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(trainings)
}

func (h *TrainingHandler) HandleGetTrainingStats(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

func (h *TrainingHandler) HandleGetTrainingByID(c *fiber.Ctx) error {
	training, err := h.service.GetTraining(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(training)
}

func (h *TrainingHandler) HandleCreateTraining(c *fiber.Ctx) error {
	var req services.TrainingInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	training, err := h.service.CreateTraining(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(training)
}

func (h *TrainingHandler) HandleUpdateTraining(c *fiber.Ctx) error {
	var req services.TrainingInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	training, err := h.service.UpdateTraining(c.UserContext(), middleware.UserID(c), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(training)
}

func (h *TrainingHandler) HandleDeleteTraining(c *fiber.Ctx) error {
	if err := h.service.DeleteTraining(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Training removed"})
}
