package handlers

import (
	"errors"
	"net/http"

	request "cistilnica/internal/adapter/http/dto/request"
	response "cistilnica/internal/adapter/http/dto/response"
	"cistilnica/internal/usecase"
	"cistilnica/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidDeliveryDayPayload = pkg.NewDomainErrorSimple("INVALID_DELIVERY_DAY_INPUT", "Invalid delivery day payload", http.StatusBadRequest)

// DeliveryDayHandler handles the per-date delivery summary surface.
type DeliveryDayHandler struct {
	usecase usecase.IDeliveryDayUseCase
}

func NewDeliveryDayHandler(uc usecase.IDeliveryDayUseCase) *DeliveryDayHandler {
	return &DeliveryDayHandler{usecase: uc}
}

// List handles GET /api/delivery-day.
func (h *DeliveryDayHandler) List(c *gin.Context) {
	days, err := h.usecase.List(c.Request.Context())
	if err != nil {
		appErr := mapDeliveryDayError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromDeliveryDays(days))
}

// GetByDate handles GET /api/delivery-day/:date.
func (h *DeliveryDayHandler) GetByDate(c *gin.Context) {
	day, err := h.usecase.GetByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		appErr := mapDeliveryDayError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromDeliveryDay(day))
}

// Save handles POST /api/delivery-day. The whole record for the date is
// replaced with the submitted values.
func (h *DeliveryDayHandler) Save(c *gin.Context) {
	var payload request.SaveDeliveryDayRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidDeliveryDayPayload.HTTPStatus, errInvalidDeliveryDayPayload.ToHTTPError())
		return
	}

	day, err := h.usecase.Save(c.Request.Context(), payload.ToInput())
	if err != nil {
		appErr := mapDeliveryDayError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Delivery day saved", "deliveryDay": response.FromDeliveryDay(day)})
}

func mapDeliveryDayError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidDeliveryDate):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrDeliveryDayNotFound):
		return pkg.NewDomainErrorSimple("DELIVERY_DAY_NOT_FOUND", "Delivery day not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
