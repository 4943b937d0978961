package payment

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

// DecisionResponse is returned by approve and reject.
type DecisionResponse struct {
	Message string   `json:"message"`
	Payment *Payment `json:"payment"`
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrMissingFields):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing required fields"})
	case errors.Is(err, ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid payment status"})
	case errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Order not found"})
	case errors.Is(err, ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Payment not found"})
	case errors.Is(err, ErrAlreadyApproved):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Payment has already been approved"})
	case errors.Is(err, ErrDuplicatePayment):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Payment already submitted for this order"})
	case errors.Is(err, ErrNotWaitingProof):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Payment is not waiting for review"})
	case errors.Is(err, ErrOrderNotPending):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Order is not pending"})
	default:
		logger.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}

// Submit godoc
// @Summary      Submit payment proof
// @Description  Creates the payment for an order, or replaces the proof of an existing one and puts it back in review.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body payment.SubmitRequest true "Proof"
// @Success      200 {object} map[string]payment.Payment
// @Success      201 {object} map[string]payment.Payment
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /api/payments [post]
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := api.ValidateStruct(req); len(errs) > 0 {
		api.RespondWithValidationErrors(c, errs)
		return
	}

	p, created, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to submit payment")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"payment": p})
}

// List godoc
// @Summary      List payments
// @Tags         admin,payments
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "WAITING_PROOF, SUCCESS or FAILED"
// @Success      200 {object} map[string][]payment.Payment
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /api/admin/payments [get]
func (h *Handler) List(c *gin.Context) {
	payments, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.fail(c, err, "Failed to fetch payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// Approve godoc
// @Summary      Approve payment
// @Description  Marks the order paid and issues the membership ticket.
// @Tags         admin,payments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Payment ID"
// @Success      200 {object} payment.DecisionResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /api/admin/payments/{id}/approve [post]
func (h *Handler) Approve(c *gin.Context) {
	p, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to approve payment")
		return
	}

	c.JSON(http.StatusOK, DecisionResponse{Message: "Payment approved successfully", Payment: p})
}

// Reject godoc
// @Summary      Reject payment
// @Description  The order stays PENDING. The reason is emailed to the customer.
// @Tags         admin,payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Payment ID"
// @Param        request body payment.RejectRequest false "Reason"
// @Success      200 {object} payment.DecisionResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /api/admin/payments/{id}/reject [post]
func (h *Handler) Reject(c *gin.Context) {
	var req RejectRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
			return
		}
	}

	p, err := h.service.Reject(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		h.fail(c, err, "Failed to reject payment")
		return
	}

	c.JSON(http.StatusOK, DecisionResponse{Message: "Payment rejected", Payment: p})
}
