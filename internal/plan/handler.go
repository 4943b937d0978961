package plan

import (
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

// ToPublic converts stored cents into the display price as well.
func ToPublic(p Plan) PublicPlan {
	return PublicPlan{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        float64(p.PriceCents) / 100,
		PriceCents:   p.PriceCents,
		Currency:     p.Currency,
		PeriodMonths: p.PeriodMonths,
		ImageURL:     p.ImageURL,
		Features: lo.Map(p.Features, func(f Feature, _ int) PublicFeature {
			return PublicFeature{ID: f.ID, Text: f.Text}
		}),
	}
}

// List godoc
// @Summary      List plans
// @Description  Active membership plans ordered for display.
// @Tags         plans
// @Produce      json
// @Success      200 {object} map[string][]plan.PublicPlan
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/plans [get]
func (h *Handler) List(c *gin.Context) {
	plans, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		logger.Error("failed to list plans", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": lo.Map(plans, func(p Plan, _ int) PublicPlan { return ToPublic(p) })})
}
