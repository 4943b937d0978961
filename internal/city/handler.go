package city

import (
	"errors"
	"net/http"

	"github.com/fuazim/fitcamp/internal/api"
	"github.com/fuazim/fitcamp/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrCityNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "City not found"})
	case errors.Is(err, ErrNameRequired):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "City name is required"})
	case errors.Is(err, ErrThumbnailRequired):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "City thumbnail is required"})
	case errors.Is(err, ErrDuplicateCity):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "City slug already exists"})
	default:
		logger.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}

// ListPublic godoc
// @Summary      List cities
// @Description  Cities with a thumbnail and their gym count.
// @Tags         cities
// @Produce      json
// @Success      200 {object} map[string][]city.PublicCity
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/cities [get]
func (h *Handler) ListPublic(c *gin.Context) {
	cities, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch cities")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cities": lo.Map(cities, func(city City, _ int) PublicCity {
		return PublicCity{
			ID:           city.ID,
			Name:         city.Name,
			Slug:         city.Slug,
			ThumbnailURL: lo.FromPtr(city.ThumbnailURL),
			GymCount:     city.GymCount,
		}
	})})
}

// List godoc
// @Summary      List cities (admin)
// @Tags         admin,cities
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string][]city.City
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/admin/cities [get]
func (h *Handler) List(c *gin.Context) {
	cities, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch cities")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

// Get godoc
// @Summary      Get city
// @Tags         admin,cities
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "City ID"
// @Success      200 {object} map[string]city.City
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/cities/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	city, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to fetch city")
		return
	}

	c.JSON(http.StatusOK, gin.H{"city": city})
}

// Create godoc
// @Summary      Create city
// @Description  The slug is generated from the name.
// @Tags         admin,cities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body city.CityRequest true "City payload"
// @Success      201 {object} map[string]city.City
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/admin/cities [post]
func (h *Handler) Create(c *gin.Context) {
	var req CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}

	city, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to create city")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"city": city})
}

// Update godoc
// @Summary      Update city
// @Tags         admin,cities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "City ID"
// @Param        request body city.CityRequest true "City payload"
// @Success      200 {object} map[string]city.City
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/cities/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}

	city, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err, "Failed to update city")
		return
	}

	c.JSON(http.StatusOK, gin.H{"city": city})
}

// Delete godoc
// @Summary      Delete city
// @Description  Deleting a city also deletes its gyms.
// @Tags         admin,cities
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "City ID"
// @Success      200 {object} api.MessageResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/cities/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "Failed to delete city")
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "City deleted successfully"})
}
