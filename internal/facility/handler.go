package facility

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
	case errors.Is(err, ErrFacilityNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Facility not found"})
	case errors.Is(err, ErrNameRequired):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Facility name is required"})
	default:
		logger.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}

// @Summary      List facilities
// @Tags         admin,facilities
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string][]facility.Facility
// @Failure      401 {object} api.ErrorResponse
// @Router       /api/admin/facilities [get]
func (h *Handler) List(c *gin.Context) {
	facilities, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch facilities")
		return
	}
	c.JSON(http.StatusOK, gin.H{"facilities": facilities})
}

// @Summary      Get facility
// @Tags         admin,facilities
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Facility ID"
// @Success      200 {object} map[string]facility.Facility
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/facilities/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	f, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to fetch facility")
		return
	}
	c.JSON(http.StatusOK, gin.H{"facility": f})
}

// @Summary      Create facility
// @Tags         admin,facilities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body facility.FacilityRequest true "Facility payload"
// @Success      201 {object} map[string]facility.Facility
// @Failure      400 {object} api.ErrorResponse
// @Router       /api/admin/facilities [post]
func (h *Handler) Create(c *gin.Context) {
	var req FacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}

	f, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to create facility")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"facility": f})
}

// @Summary      Update facility
// @Tags         admin,facilities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Facility ID"
// @Param        request body facility.FacilityRequest true "Facility payload"
// @Success      200 {object} map[string]facility.Facility
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/facilities/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req FacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}

	f, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err, "Failed to update facility")
		return
	}
	c.JSON(http.StatusOK, gin.H{"facility": f})
}

// @Summary      Delete facility
// @Tags         admin,facilities
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Facility ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/facilities/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "Failed to delete facility")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Facility deleted successfully"})
}
