package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pizza-service/internal/application/dto"
	"github.com/jhoicas/pizza-service/internal/application/usecase"
	"github.com/jhoicas/pizza-service/internal/domain"
)

// FranchiseHandler franchise and store endpoints.
type FranchiseHandler struct {
	uc *usecase.FranchiseUseCase
}

// NewFranchiseHandler builds the handler.
func NewFranchiseHandler(uc *usecase.FranchiseUseCase) *FranchiseHandler {
	return &FranchiseHandler{uc: uc}
}

// List godoc
// @Summary List all franchises with their stores and admins
// @Tags franchise
// @Produce json
// @Success 200 {array} dto.FranchiseResponse
// @Router /api/franchise [get]
func (h *FranchiseHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(list)
}

// ListForUser godoc
// @Summary List the franchises a user administers
// @Tags franchise
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User id"
// @Success 200 {array} dto.FranchiseResponse
// @Router /api/franchise/{userId} [get]
func (h *FranchiseHandler) ListForUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_PARAM",
			Message: "invalid user id",
		})
	}
	list, err := h.uc.ListForUser(c.Context(), int64(userID))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary Create a franchise (Admin only)
// @Tags franchise
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFranchiseRequest true "Franchise data"
// @Success 200 {object} dto.FranchiseResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/franchise [post]
func (h *FranchiseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFranchiseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_BODY",
			Message: "invalid request body",
		})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "INVALID_BODY",
				Message: "franchise name is required",
			})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code:    "NOT_FOUND",
				Message: err.Error(),
			})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary Delete a franchise and its stores (Admin only)
// @Tags franchise
// @Produce json
// @Security BearerAuth
// @Param franchiseId path int true "Franchise id"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/franchise/{franchiseId} [delete]
func (h *FranchiseHandler) Delete(c *fiber.Ctx) error {
	franchiseID, err := c.ParamsInt("franchiseId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_PARAM",
			Message: "invalid franchise id",
		})
	}
	if err := h.uc.Delete(c.Context(), int64(franchiseID)); err != nil {
		return internalError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "franchise deleted"})
}

// CreateStore godoc
// @Summary Add a store to a franchise
// @Tags franchise
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param franchiseId path int true "Franchise id"
// @Param request body dto.CreateStoreRequest true "Store data"
// @Success 200 {object} dto.StoreResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/franchise/{franchiseId}/store [post]
func (h *FranchiseHandler) CreateStore(c *fiber.Ctx) error {
	franchiseID, err := c.ParamsInt("franchiseId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_PARAM",
			Message: "invalid franchise id",
		})
	}
	var in dto.CreateStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_BODY",
			Message: "invalid request body",
		})
	}
	out, err := h.uc.CreateStore(c.Context(), CurrentUser(c), int64(franchiseID), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "unable to create a store",
			})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code:    "NOT_FOUND",
				Message: "unknown franchise",
			})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// DeleteStore godoc
// @Summary Delete a store
// @Tags franchise
// @Produce json
// @Security BearerAuth
// @Param franchiseId path int true "Franchise id"
// @Param storeId path int true "Store id"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/franchise/{franchiseId}/store/{storeId} [delete]
func (h *FranchiseHandler) DeleteStore(c *fiber.Ctx) error {
	franchiseID, err := c.ParamsInt("franchiseId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_PARAM",
			Message: "invalid franchise id",
		})
	}
	storeID, err := c.ParamsInt("storeId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_PARAM",
			Message: "invalid store id",
		})
	}
	err = h.uc.DeleteStore(c.Context(), CurrentUser(c), int64(franchiseID), int64(storeID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "unable to delete a store",
			})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code:    "NOT_FOUND",
				Message: "unknown franchise",
			})
		}
		return internalError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "store deleted"})
}
