package testimonial

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

var validationMessages = map[error]string{
	ErrNameRequired: "Name is required",
	ErrRoleRequired: "Role is required",
	ErrTextRequired: "Testimonial text is required",
	ErrGymNotFound:  "Gym not found",
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	if errors.Is(err, ErrTestimonialNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Testimonial not found"})
		return
	}
	for target, msg := range validationMessages {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msg})
			return
		}
	}
	logger.Error(fallback, "error", err)
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
}

// ListForGym godoc
// @Summary      Gym testimonials
// @Description  Active testimonials for a gym; an unknown gym yields an empty list.
// @Tags         testimonials
// @Produce      json
// @Param        gymSlug path string true "Gym slug"
// @Success      200 {object} map[string][]testimonial.PublicTestimonial
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/testimonials/{gymSlug} [get]
func (h *Handler) ListForGym(c *gin.Context) {
	items, err := h.service.ListForGym(c.Request.Context(), c.Param("gymSlug"))
	if err != nil {
		h.fail(c, err, "Failed to fetch testimonials")
		return
	}

	c.JSON(http.StatusOK, gin.H{"testimonials": lo.Map(items, func(t Testimonial, _ int) PublicTestimonial {
		return PublicTestimonial{ID: t.ID, Name: t.Name, Role: t.Role, Text: t.Text, ImageURL: t.ImageURL}
	})})
}

// @Summary      List testimonials (admin)
// @Tags         admin,testimonials
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string][]testimonial.Testimonial
// @Failure      401 {object} api.ErrorResponse
// @Router       /api/admin/testimonials [get]
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch testimonials")
		return
	}
	c.JSON(http.StatusOK, gin.H{"testimonials": items})
}

// @Summary      Get testimonial
// @Tags         admin,testimonials
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Testimonial ID"
// @Success      200 {object} map[string]testimonial.Testimonial
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/testimonials/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	t, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to fetch testimonial")
		return
	}
	c.JSON(http.StatusOK, gin.H{"testimonial": t})
}

// @Summary      Create testimonial
// @Tags         admin,testimonials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body testimonial.TestimonialRequest true "Testimonial payload"
// @Success      201 {object} map[string]testimonial.Testimonial
// @Failure      400 {object} api.ErrorResponse
// @Router       /api/admin/testimonials [post]
func (h *Handler) Create(c *gin.Context) {
	var req TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}

	t, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to create testimonial")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"testimonial": t})
}

// @Summary      Update testimonial
// @Tags         admin,testimonials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Testimonial ID"
// @Param        request body testimonial.TestimonialRequest true "Testimonial payload"
// @Success      200 {object} map[string]testimonial.Testimonial
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/testimonials/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}

	t, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err, "Failed to update testimonial")
		return
	}
	c.JSON(http.StatusOK, gin.H{"testimonial": t})
}

// @Summary      Delete testimonial
// @Tags         admin,testimonials
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Testimonial ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/testimonials/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "Failed to delete testimonial")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Testimonial deleted successfully"})
}
