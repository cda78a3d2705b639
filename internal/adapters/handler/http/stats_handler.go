package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/services"
)

type StatsHandler struct {
	svc         *services.StatsService
	defaultSpan string
}

func NewStatsHandler(svc *services.StatsService, defaultSpan string) *StatsHandler {
	if defaultSpan == "" {
		defaultSpan = domain.DefaultTimeSpanKey
	}
	return &StatsHandler{svc: svc, defaultSpan: defaultSpan}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/timespans", h.TimeSpans)
	r.GET("/ledger", h.Ledger)
	r.GET("/stats", h.Stats)
}

func (h *StatsHandler) span(c *gin.Context) string {
	return c.DefaultQuery("span", h.defaultSpan)
}

func (h *StatsHandler) TimeSpans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"default":    h.defaultSpan,
		"time_spans": domain.TimeSpans(),
	})
}

func (h *StatsHandler) Ledger(c *gin.Context) {
	span := h.span(c)

	ledger, err := h.svc.Ledger(c.Request.Context(), span)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"time_span": span,
		"days":      ledger,
	})
}

func (h *StatsHandler) Stats(c *gin.Context) {
	dashboard, err := h.svc.Dashboard(c.Request.Context(), h.span(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func (h *StatsHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrUnknownTimeSpan) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build ledger"})
}
