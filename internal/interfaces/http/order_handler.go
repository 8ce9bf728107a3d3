package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizza-service/internal/application/dto"
	"github.com/jhoicas/pizza-service/internal/application/usecase"
	"github.com/jhoicas/pizza-service/internal/domain"
	"github.com/jhoicas/pizza-service/internal/metrics"
)

// OrderHandler menu and order endpoints.
type OrderHandler struct {
	uc      *usecase.OrderUseCase
	metrics *metrics.Registry
}

// NewOrderHandler builds the handler.
func NewOrderHandler(uc *usecase.OrderUseCase, registry *metrics.Registry) *OrderHandler {
	return &OrderHandler{uc: uc, metrics: registry}
}

// Menu godoc
// @Summary Get the pizza menu
// @Tags order
// @Produce json
// @Success 200 {array} dto.MenuItemResponse
// @Router /api/order/menu [get]
func (h *OrderHandler) Menu(c *fiber.Ctx) error {
	items, err := h.uc.Menu(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(items)
}

// AddMenuItem godoc
// @Summary Add or update a menu item (Admin only)
// @Tags order
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MenuItemRequest true "Menu item"
// @Success 200 {array} dto.MenuItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/order/menu [put]
func (h *OrderHandler) AddMenuItem(c *fiber.Ctx) error {
	var in dto.MenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_BODY",
			Message: "invalid request body",
		})
	}
	items, err := h.uc.AddMenuItem(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "INVALID_BODY",
				Message: "title and a non-negative price are required",
			})
		}
		return internalError(c, err)
	}
	return c.JSON(items)
}

// Create godoc
// @Summary Place an order for the authenticated diner
// @Tags order
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOrderRequest true "Order data"
// @Success 200 {object} dto.CreateOrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/order [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		h.metrics.FailCreation()
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_BODY",
			Message: "invalid request body",
		})
	}

	out, err := h.uc.Create(c.Context(), CurrentUser(c), in)
	if err != nil {
		h.metrics.FailCreation()
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "INVALID_BODY",
				Message: "order must include at least one item",
			})
		}
		return internalError(c, err)
	}

	h.metrics.SellPizzas(int64(len(out.Items)))
	h.metrics.AddRevenue(orderRevenue(out.Items))
	return c.JSON(dto.CreateOrderResponse{Order: *out})
}

// List godoc
// @Summary List the authenticated diner's orders, newest first
// @Tags order
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, 1-based"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ListOrdersResponse
// @Router /api/order [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_PARAM",
			Message: "invalid pagination parameters",
		})
	}
	out, err := h.uc.List(c.Context(), CurrentUser(c).ID, page)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary Download a PDF receipt for an order
// @Tags order
// @Produce application/pdf
// @Security BearerAuth
// @Param orderId path int true "Order id"
// @Success 200 {file} binary
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/order/{orderId}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("orderId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_PARAM",
			Message: "invalid order id",
		})
	}
	pdf, err := h.uc.Receipt(c.Context(), CurrentUser(c), int64(orderID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code:    "NOT_FOUND",
				Message: "unknown order",
			})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "unauthorized",
			})
		}
		return internalError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=order-%d.pdf", orderID))
	return c.Send(pdf)
}

func orderRevenue(items []dto.OrderItemResponse) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price)
	}
	return total
}
