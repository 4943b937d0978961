package order

import (
	"errors"
	"net/http"

	"github.com/fuazim/fitcamp/internal/api"
	"github.com/fuazim/fitcamp/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrMissingFields):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing required fields"})
	case errors.Is(err, ErrLookupFieldsRequired):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Booking code and phone number are required"})
	case errors.Is(err, ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid order status"})
	case errors.Is(err, ErrPlanNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Plan not found"})
	case errors.Is(err, ErrGymNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Gym not found"})
	case errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Order not found"})
	case errors.Is(err, ErrInvalidLookup):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid booking code or phone number"})
	case errors.Is(err, ErrBookingCodeConflict):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Booking code already taken, please retry"})
	default:
		logger.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}

// Create godoc
// @Summary      Create order
// @Description  Places a PENDING order for a plan. An ineligible promo code is ignored.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body order.CreateRequest true "Checkout"
// @Success      201 {object} map[string]order.Order
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/orders [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := api.ValidateStruct(req); len(errs) > 0 {
		api.RespondWithValidationErrors(c, errs)
		return
	}

	o, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": o})
}

// Get godoc
// @Summary      Get order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} map[string]order.Order
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	o, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": o})
}

// Lookup godoc
// @Summary      Look up order
// @Description  Booking code plus the phone number used at checkout.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body order.LookupRequest true "Booking code and phone"
// @Success      200 {object} map[string]order.Order
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/orders/lookup [post]
func (h *Handler) Lookup(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}

	o, err := h.service.Lookup(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to look up order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": o})
}

// QR godoc
// @Summary      Booking QR code
// @Tags         orders
// @Produce      png
// @Param        id path string true "Order ID"
// @Success      200 {file} binary
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/orders/{id}/qr [get]
func (h *Handler) QR(c *gin.Context) {
	png, err := h.service.QR(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to render QR code")
		return
	}

	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}

// List godoc
// @Summary      List orders
// @Tags         admin,orders
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "PENDING, PAID, CANCELLED or EXPIRED"
// @Success      200 {object} map[string][]order.Order
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /api/admin/orders [get]
func (h *Handler) List(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.fail(c, err, "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
