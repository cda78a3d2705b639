package http

import (
	"errors"
	"net/http"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/services"
	"github.com/gin-gonic/gin"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type trackHabitRequest struct {
	PropertyName string   `json:"property_name" binding:"required"`
	DisplayName  string   `json:"display_name"`
	Widget       string   `json:"widget" binding:"required"`
	Target       *float64 `json:"target"`
	IsTotal      bool     `json:"is_total"`
	Ignored      bool     `json:"ignored"`
}

type updateHabitRequest struct {
	DisplayName string   `json:"display_name"`
	Widget      string   `json:"widget"`
	Target      *float64 `json:"target"`
	ClearTarget bool     `json:"clear_target"`
	IsTotal     *bool    `json:"is_total"`
	Ignored     *bool    `json:"ignored"`
}

type reorderRequest struct {
	Dragged string `json:"dragged" binding:"required"`
	Target  string `json:"target" binding:"required"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Track)
		habits.GET("", h.List)
		habits.PUT("/order", h.Reorder)
		habits.PUT("/:property", h.Update)
		habits.DELETE("/:property", h.Untrack)
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrHabitPropertyEmpty) ||
		errors.Is(err, domain.ErrHabitPropertyTooLong) ||
		errors.Is(err, domain.ErrHabitNameTooLong) ||
		errors.Is(err, domain.ErrInvalidWidget) ||
		errors.Is(err, domain.ErrInvalidTarget) ||
		errors.Is(err, domain.ErrInvalidCheckboxGoal)
}

func (h *HabitHandler) Track(c *gin.Context) {
	var req trackHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Track(c.Request.Context(), services.TrackHabitInput{
		PropertyName: req.PropertyName,
		DisplayName:  req.DisplayName,
		Widget:       req.Widget,
		Target:       req.Target,
		IsTotal:      req.IsTotal,
		Ignored:      req.Ignored,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHabitAlreadyTracked):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case isValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *HabitHandler) List(c *gin.Context) {
	var (
		list []*domain.HabitConfig
		err  error
	)
	if c.Query("active") == "true" {
		list, err = h.svc.ListActive(c.Request.Context())
	} else {
		list, err = h.svc.List(c.Request.Context())
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *HabitHandler) Update(c *gin.Context) {
	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Update(c.Request.Context(), services.UpdateHabitInput{
		PropertyName: c.Param("property"),
		DisplayName:  req.DisplayName,
		Widget:       req.Widget,
		Target:       req.Target,
		ClearTarget:  req.ClearTarget,
		IsTotal:      req.IsTotal,
		Ignored:      req.Ignored,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHabitNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		case isValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ordered, err := h.svc.Reorder(c.Request.Context(), req.Dragged, req.Target)
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ordered)
}

func (h *HabitHandler) Untrack(c *gin.Context) {
	err := h.svc.Untrack(c.Request.Context(), c.Param("property"))
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}
