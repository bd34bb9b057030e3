package handlers

import (
	"context"
	"errors"
	"net/http"

	request "cistilnica/internal/adapter/http/dto/request"
	response "cistilnica/internal/adapter/http/dto/response"
	"cistilnica/internal/domain/entities"
	"cistilnica/internal/usecase"
	"cistilnica/internal/usecase/interfaces"
	"cistilnica/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidOrderPayload = pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Invalid order payload", http.StatusBadRequest)

// OrderHandler handles the order workflow HTTP surface.
type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// Create handles POST /order.
func (h *OrderHandler) Create(c *gin.Context) {
	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order placed", "order": response.FromOrder(order)})
}

// ListActive handles GET /orders.
func (h *OrderHandler) ListActive(c *gin.Context) {
	h.respondWithList(c, h.usecase.ListActive)
}

// ListArchive handles GET /api/archive.
func (h *OrderHandler) ListArchive(c *gin.Context) {
	h.respondWithList(c, h.usecase.ListArchive)
}

// ListCompleted handles GET /api/completed.
func (h *OrderHandler) ListCompleted(c *gin.Context) {
	h.respondWithList(c, h.usecase.ListCompleted)
}

// ListDelivery handles GET /api/delivery.
func (h *OrderHandler) ListDelivery(c *gin.Context) {
	h.respondWithList(c, h.usecase.ListDelivery)
}

// GetByID handles GET /order/:id.
func (h *OrderHandler) GetByID(c *gin.Context) {
	order, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order))
}

// Update handles PUT /order/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	var payload request.UpdateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToUpdate())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order updated", "order": response.FromOrder(order)})
}

// UpdateStatus handles PATCH /order/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var payload request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("id"), entities.OrderStatus(payload.Status))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "order": response.FromOrder(order)})
}

// Delete handles DELETE /order/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	order, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if err := h.usecase.Delete(c.Request.Context(), id); err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted", "order": response.FromOrder(order)})
}

func (h *OrderHandler) respondWithList(c *gin.Context, list func(ctx context.Context) ([]entities.Order, error)) {
	orders, err := list(c.Request.Context())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrders(orders))
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID),
		errors.Is(err, usecase.ErrInvalidEmail),
		errors.Is(err, usecase.ErrInvalidPhone):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Invalid status value", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrDuplicateOrderNumber):
		return pkg.NewDomainErrorSimple("DUPLICATE_ORDER_NUMBER", "Order number collision, retry", http.StatusBadRequest)
	case errors.Is(err, interfaces.ErrVersionConflict):
		return pkg.NewDomainErrorSimple("ORDER_CONFLICT", "Order was modified concurrently, retry", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
