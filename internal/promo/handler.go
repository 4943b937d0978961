package promo

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
	case errors.Is(err, ErrPromoNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Promo code not found"})
	case errors.Is(err, ErrCodeRequired):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Promo code is required"})
	case errors.Is(err, ErrDuplicateCode):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Promo code already exists"})
	case errors.Is(err, ErrInvalidWindow):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Valid from must be before valid until"})
	default:
		logger.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}

// Validate godoc
// @Summary      Validate promo code
// @Description  Read-only preview. Usage is only consumed when an order is placed.
// @Tags         promo
// @Accept       json
// @Produce      json
// @Param        request body promo.ValidateRequest true "Code and optional subtotal"
// @Success      200 {object} promo.ValidateResponse
// @Failure      400 {object} promo.ValidateResponse
// @Failure      404 {object} promo.ValidateResponse
// @Router       /api/promo-codes/validate [post]
func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}

	p, res, err := h.service.Validate(c.Request.Context(), req.Code, req.SubtotalCents)
	if err != nil {
		h.fail(c, err, "Failed to validate promo code")
		return
	}

	if !res.Valid {
		status := http.StatusBadRequest
		if res.Reason == ReasonNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, ValidateResponse{Valid: false, Error: res.Reason.Message(p)})
		return
	}

	c.JSON(http.StatusOK, ValidateResponse{
		Valid: true,
		PromoCode: &Preview{
			ID:              p.ID,
			Code:            p.Code,
			Description:     p.Description,
			DiscountCents:   res.DiscountCents,
			DiscountPercent: p.DiscountPercent,
		},
	})
}

// List godoc
// @Summary      List promo codes
// @Tags         admin,promo
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string][]promo.PromoCode
// @Failure      401 {object} api.ErrorResponse
// @Router       /api/admin/promo-codes [get]
func (h *Handler) List(c *gin.Context) {
	promos, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch promo codes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"promoCodes": promos})
}

// Get godoc
// @Summary      Get promo code
// @Tags         admin,promo
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Promo code ID"
// @Success      200 {object} map[string]promo.PromoCode
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/promo-codes/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to fetch promo code")
		return
	}

	c.JSON(http.StatusOK, gin.H{"promoCode": p})
}

// Create godoc
// @Summary      Create promo code
// @Tags         admin,promo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body promo.PromoRequest true "Promo code"
// @Success      201 {object} map[string]promo.PromoCode
// @Failure      400 {object} api.ErrorResponse
// @Router       /api/admin/promo-codes [post]
func (h *Handler) Create(c *gin.Context) {
	var req PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to create promo code")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"promoCode": p})
}

// Update godoc
// @Summary      Update promo code
// @Description  Replaces every editable field.
// @Tags         admin,promo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Promo code ID"
// @Param        request body promo.PromoRequest true "Promo code"
// @Success      200 {object} map[string]promo.PromoCode
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/promo-codes/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err, "Failed to update promo code")
		return
	}

	c.JSON(http.StatusOK, gin.H{"promoCode": p})
}

// Delete godoc
// @Summary      Delete promo code
// @Tags         admin,promo
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Promo code ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/promo-codes/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "Failed to delete promo code")
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Promo code deleted successfully"})
}
