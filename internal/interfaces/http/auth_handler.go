package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pizza-service/internal/application/auth"
	"github.com/jhoicas/pizza-service/internal/application/dto"
	"github.com/jhoicas/pizza-service/internal/domain"
	"github.com/jhoicas/pizza-service/internal/metrics"
)

// AuthHandler registration, login, logout and profile updates.
type AuthHandler struct {
	uc      *auth.UseCase
	metrics *metrics.Registry
}

// NewAuthHandler builds the handler.
func NewAuthHandler(uc *auth.UseCase, registry *metrics.Registry) *AuthHandler {
	return &AuthHandler{uc: uc, metrics: registry}
}

// Register godoc
// @Summary Register a new diner
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/auth [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_BODY",
			Message: "name, email, and password are required",
		})
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_BODY",
			Message: "name, email, and password are required",
		})
	}

	out, err := h.uc.Register(c.Context(), in)
	h.metrics.AuthAttempt(err == nil)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "EMAIL_TAKEN",
				Message: "email already registered",
			})
		}
		return internalError(c, err)
	}
	h.metrics.UserLoggedIn()
	return c.JSON(out)
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth [put]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_BODY",
			Message: "email and password are required",
		})
	}

	out, err := h.uc.Login(c.Context(), in)
	h.metrics.AuthAttempt(err == nil)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return unauthorized(c)
		}
		return internalError(c, err)
	}
	h.metrics.UserLoggedIn()
	return c.JSON(out)
}

// Logout godoc
// @Summary Revoke the presented token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth [delete]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.Context(), BearerToken(c)); err != nil {
		return internalError(c, err)
	}
	h.metrics.UserLoggedOut()
	return c.JSON(dto.MessageResponse{Message: "logout successful"})
}

// Update godoc
// @Summary Update a user's name, email or password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User id"
// @Param request body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/auth/{userId} [put]
func (h *AuthHandler) Update(c *fiber.Ctx) error {
	targetID, err := c.ParamsInt("userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_PARAM",
			Message: "invalid user id",
		})
	}
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_BODY",
			Message: "invalid request body",
		})
	}

	out, err := h.uc.UpdateUser(c.Context(), CurrentUser(c), int64(targetID), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "unauthorized",
			})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code:    "NOT_FOUND",
				Message: "unknown user",
			})
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "EMAIL_TAKEN",
				Message: "email already registered",
			})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: err.Error(),
	})
}
