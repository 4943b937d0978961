package dashboard

import (
	"net/http"

	"github.com/fuazim/fitcamp/internal/api"
	"github.com/fuazim/fitcamp/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Get godoc
// @Summary      Dashboard counters
// @Description  Orders by status, paid revenue, payments waiting for review and active tickets.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]dashboard.Stats
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/admin/dashboard [get]
func (h *Handler) Get(c *gin.Context) {
	stats, err := h.repo.Stats(c.Request.Context())
	if err != nil {
		logger.Error("Failed to load dashboard", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
