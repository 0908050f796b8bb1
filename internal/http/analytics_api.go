package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/service"
)

// AnalyticsHandler wires the analytics event logger routes.
type AnalyticsHandler struct {
	analytics service.AnalyticsService
}

func NewAnalyticsHandler(analytics service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), requestIDMiddleware())

	router.GET("/views", h.listViews)
	router.POST("/views", h.createView)
	router.GET("/actions", h.listActions)
	router.POST("/actions", h.createAction)
	router.GET("/goals", h.listGoals)
	router.POST("/goals", h.createGoal)
	router.GET("/goals/:goalId/details", h.goalDetails)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

type viewRequest struct {
	Source    string         `json:"source" binding:"required"`
	URL       string         `json:"url" binding:"required,url"`
	Visitor   string         `json:"visitor" binding:"required"`
	CreatedAt time.Time      `json:"createdAt" binding:"required"`
	Meta      map[string]any `json:"meta" binding:"required"`
}

type actionRequest struct {
	Source    string         `json:"source" binding:"required"`
	URL       string         `json:"url" binding:"required,url"`
	Action    string         `json:"action" binding:"required"`
	Visitor   string         `json:"visitor" binding:"required"`
	CreatedAt time.Time      `json:"createdAt" binding:"required"`
	Meta      map[string]any `json:"meta" binding:"required"`
}

type goalRequest struct {
	Source  string         `json:"source" binding:"required"`
	URL     string         `json:"url" binding:"required"`
	Goal    string         `json:"goal" binding:"required"`
	Visitor string         `json:"visitor" binding:"required"`
	Meta    map[string]any `json:"meta"`
}

func (h *AnalyticsHandler) listViews(c *gin.Context) {
	views, err := h.analytics.ListViews(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list views", "details": err.Error()})
		return
	}
	if views == nil {
		views = []domain.View{}
	}
	c.JSON(http.StatusOK, views)
}

func (h *AnalyticsHandler) createView(c *gin.Context) {
	var req viewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.analytics.RecordView(c.Request.Context(), domain.View{
		Source:    req.Source,
		URL:       req.URL,
		Visitor:   req.Visitor,
		CreatedAt: req.CreatedAt,
		Meta:      req.Meta,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record view", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *AnalyticsHandler) listActions(c *gin.Context) {
	actions, err := h.analytics.ListActions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list actions", "details": err.Error()})
		return
	}
	if actions == nil {
		actions = []domain.Action{}
	}
	c.JSON(http.StatusOK, actions)
}

func (h *AnalyticsHandler) createAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action, err := h.analytics.RecordAction(c.Request.Context(), domain.Action{
		Source:    req.Source,
		URL:       req.URL,
		Action:    req.Action,
		Visitor:   req.Visitor,
		CreatedAt: req.CreatedAt,
		Meta:      req.Meta,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record action", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, action)
}

func (h *AnalyticsHandler) listGoals(c *gin.Context) {
	goals, err := h.analytics.ListGoals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list goals", "details": err.Error()})
		return
	}
	if goals == nil {
		goals = []domain.Goal{}
	}
	c.JSON(http.StatusOK, goals)
}

func (h *AnalyticsHandler) createGoal(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.analytics.RecordGoal(c.Request.Context(), domain.Goal{
		Source:  req.Source,
		URL:     req.URL,
		Goal:    req.Goal,
		Visitor: req.Visitor,
		Meta:    req.Meta,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record goal", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (h *AnalyticsHandler) goalDetails(c *gin.Context) {
	details, err := h.analytics.GoalDetails(c.Request.Context(), c.Param("goalId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidObjectID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch goal details", "details": err.Error()})
		}
		return
	}
	if details.Views == nil {
		details.Views = []domain.View{}
	}
	if details.Actions == nil {
		details.Actions = []domain.Action{}
	}
	c.JSON(http.StatusOK, details)
}
