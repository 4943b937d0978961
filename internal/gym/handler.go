package gym

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
	case errors.Is(err, ErrGymNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Gym not found"})
	case errors.Is(err, ErrCityNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "City not found"})
	case errors.Is(err, ErrNameRequired):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Gym name is required"})
	case errors.Is(err, ErrCityRequired):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "City is required"})
	case errors.Is(err, ErrDuplicateGym):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Gym slug already exists"})
	case errors.Is(err, ErrUnknownFacility):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Unknown facility"})
	default:
		logger.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}

func firstImage(g Gym) string {
	if len(g.Images) == 0 {
		return ""
	}
	return g.Images[0].URL
}

// ToCard builds the storefront card. Missing thumbnail and main image fall
// back to the first gallery image.
func ToCard(g Gym) Card {
	var hours *string
	if start, end := lo.FromPtr(g.OpeningStartTime), lo.FromPtr(g.OpeningEndTime); start != "" && end != "" {
		hours = lo.ToPtr(start + " - " + end)
	}

	return Card{
		ID:           g.ID,
		Slug:         g.Slug,
		Name:         g.Name,
		Location:     g.LocationText,
		Thumbnail:    lo.CoalesceOrEmpty(lo.FromPtr(g.ThumbnailURL), firstImage(g)),
		MainImage:    lo.CoalesceOrEmpty(lo.FromPtr(g.MainImageURL), firstImage(g)),
		Address:      g.Address,
		IsPopular:    g.IsPopular,
		City:         g.City,
		OpeningHours: hours,
	}
}

func ToDetail(g Gym) Detail {
	return Detail{
		Card:   ToCard(g),
		Images: lo.Map(g.Images, func(img Image, _ int) string { return img.URL }),
		Facilities: lo.Map(g.Facilities, func(f Facility, _ int) PublicFacility {
			return PublicFacility{ID: f.ID, Name: f.Name, Description: f.Description, IconURL: f.IconURL}
		}),
		Latitude:           g.Latitude,
		Longitude:          g.Longitude,
		ContactPersonName:  g.ContactPersonName,
		ContactPersonPhone: g.ContactPersonPhone,
	}
}

// Search godoc
// @Summary      Browse gyms
// @Description  Popular gyms first. Unknown city slugs yield an empty list.
// @Tags         gyms
// @Produce      json
// @Param        city query string false "City slug"
// @Param        q    query string false "Search on name, location and address"
// @Success      200 {object} map[string][]gym.Card
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/gyms [get]
func (h *Handler) Search(c *gin.Context) {
	gyms, err := h.service.Search(c.Request.Context(), Filter{
		CitySlug: c.Query("city"),
		Query:    c.Query("q"),
	})
	if err != nil {
		h.fail(c, err, "Failed to fetch gyms")
		return
	}

	c.JSON(http.StatusOK, gin.H{"gyms": lo.Map(gyms, func(g Gym, _ int) Card { return ToCard(g) })})
}

// GetBySlug godoc
// @Summary      Gym detail
// @Tags         gyms
// @Produce      json
// @Param        slug path string true "Gym slug"
// @Success      200 {object} map[string]gym.Detail
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/gyms/{slug} [get]
func (h *Handler) GetBySlug(c *gin.Context) {
	g, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err, "Failed to fetch gym")
		return
	}

	c.JSON(http.StatusOK, gin.H{"gym": ToDetail(*g)})
}

// List godoc
// @Summary      List gyms (admin)
// @Tags         admin,gyms
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string][]gym.Gym
// @Failure      401 {object} api.ErrorResponse
// @Router       /api/admin/gyms [get]
func (h *Handler) List(c *gin.Context) {
	gyms, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch gyms")
		return
	}
	c.JSON(http.StatusOK, gin.H{"gyms": gyms})
}

// Get godoc
// @Summary      Get gym (admin)
// @Tags         admin,gyms
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Gym ID"
// @Success      200 {object} map[string]gym.Gym
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/gyms/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	g, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to fetch gym")
		return
	}
	c.JSON(http.StatusOK, gin.H{"gym": g})
}

// Create godoc
// @Summary      Create gym
// @Description  The slug is generated from the name when omitted.
// @Tags         admin,gyms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body gym.GymRequest true "Gym payload"
// @Success      201 {object} map[string]gym.Gym
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/gyms [post]
func (h *Handler) Create(c *gin.Context) {
	var req GymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}

	g, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to create gym")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"gym": g})
}

// Update godoc
// @Summary      Update gym
// @Description  Facility links are replaced. Images are replaced when sent.
// @Tags         admin,gyms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Gym ID"
// @Param        request body gym.GymRequest true "Gym payload"
// @Success      200 {object} map[string]gym.Gym
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/gyms/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req GymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}

	g, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err, "Failed to update gym")
		return
	}
	c.JSON(http.StatusOK, gin.H{"gym": g})
}

// Delete godoc
// @Summary      Delete gym
// @Tags         admin,gyms
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Gym ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/gyms/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "Failed to delete gym")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Gym deleted successfully"})
}
