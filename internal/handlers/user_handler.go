package handlers

import (
	"bjjtracker/internal/middleware"
	"bjjtracker/internal/models"
	"bjjtracker/internal/services"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/profile", h.HandleGetProfile)
	userRoutes.Put("/profile", h.HandleUpdateProfile)
}

// ProfileResponse is the account view returned by the profile routes.
type ProfileResponse struct {
	ID      string         `json:"id"`
	Email   string         `json:"email"`
	Profile models.Profile `json:"profile"`
}

// UpdateProfileRequest wraps the editable profile fields.
type UpdateProfileRequest struct {
	Profile services.ProfileInput `json:"profile"`
}

func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.service.GetProfile(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(ProfileResponse{ID: user.ID, Email: user.Email, Profile: user.Profile})
}

func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateProfile(c.UserContext(), middleware.UserID(c), req.Profile)
	if err != nil {
		return err
	}
	return c.JSON(ProfileResponse{ID: user.ID, Email: user.Email, Profile: user.Profile})
}
