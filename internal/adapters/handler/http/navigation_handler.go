package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/services"
)

type NavigationHandler struct {
	svc *services.NavigationService
}

func NewNavigationHandler(svc *services.NavigationService) *NavigationHandler {
	return &NavigationHandler{svc: svc}
}

func (h *NavigationHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/notes/navigate", h.Navigate)
}

func (h *NavigationHandler) Navigate(c *gin.Context) {
	from := c.Query("path")
	if from == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	dir, err := services.ParseDirection(c.DefaultQuery("direction", "next"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	path, err := h.svc.Adjacent(c.Request.Context(), from, dir)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotDailyNote):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrNoAdjacentNote):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from": from,
		"path": path,
	})
}
