package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/habit-tracker-api/internal/application"
	"github.com/oksasatya/habit-tracker-api/internal/domain/entity"
	"github.com/oksasatya/habit-tracker-api/internal/interface/middleware"
	"github.com/oksasatya/habit-tracker-api/pkg/response"
	"github.com/oksasatya/habit-tracker-api/pkg/validation"
)

type HabitHandler struct {
	Svc    *application.HabitService
	Logger *logrus.Logger
}

func NewHabitHandler(svc *application.HabitService, logger *logrus.Logger) *HabitHandler {
	return &HabitHandler{Svc: svc, Logger: logger}
}

type createHabitRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
}

func habitJSON(h *entity.Habit) gin.H {
	dates := h.CompletedDates
	if dates == nil {
		dates = []string{}
	}
	return gin.H{
		"id":              h.ID,
		"owner_id":        h.OwnerID,
		"name":            h.Name,
		"category":        h.Category,
		"completed_dates": dates,
		"created_at":      h.CreatedAt,
	}
}

// List returns the caller's habits with skip/limit paging.
func (h *HabitHandler) List(c *gin.Context) {
	skip, err := intQuery(c, "skip", 0)
	if err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "invalid query", map[string]string{"skip": "must be numeric"})
		return
	}
	limit, err := intQuery(c, "limit", application.DefaultLimit)
	if err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "invalid query", map[string]string{"limit": "must be numeric"})
		return
	}

	habits, err := h.Svc.List(c.Request.Context(), c.GetInt64(middleware.CtxUserIDKey), skip, limit)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("list habits failed")
		}
		response.Error(c, http.StatusInternalServerError, "could not list habits", nil)
		return
	}

	out := make([]gin.H, 0, len(habits))
	for _, hb := range habits {
		out = append(out, habitJSON(hb))
	}
	c.JSON(http.StatusOK, out)
}

// Create persists a new habit for the caller.
func (h *HabitHandler) Create(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}

	hb, err := h.Svc.Create(c.Request.Context(), c.GetInt64(middleware.CtxUserIDKey), req.Name, req.Category)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("create habit failed")
		}
		response.Error(c, http.StatusInternalServerError, "could not create habit", nil)
		return
	}
	c.JSON(http.StatusOK, habitJSON(hb))
}

// Toggle flips the given date in the habit's completed dates.
func (h *HabitHandler) Toggle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "invalid habit id", map[string]string{"id": "must be numeric"})
		return
	}
	date := c.Query("date")
	if date == "" {
		response.Error(c, http.StatusUnprocessableEntity, "invalid query", map[string]string{"date": "is required"})
		return
	}

	hb, err := h.Svc.ToggleDate(c.Request.Context(), id, c.GetInt64(middleware.CtxUserIDKey), date)
	if err != nil {
		if errors.Is(err, application.ErrHabitNotFound) {
			response.Error(c, http.StatusNotFound, "habit not found", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("habit_id", id).Error("toggle habit failed")
		}
		response.Error(c, http.StatusInternalServerError, "could not toggle habit", nil)
		return
	}
	c.JSON(http.StatusOK, habitJSON(hb))
}

// Delete removes the habit permanently.
func (h *HabitHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "invalid habit id", map[string]string{"id": "must be numeric"})
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), id, c.GetInt64(middleware.CtxUserIDKey)); err != nil {
		if errors.Is(err, application.ErrHabitNotFound) {
			response.Error(c, http.StatusNotFound, "habit not found", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("habit_id", id).Error("delete habit failed")
		}
		response.Error(c, http.StatusInternalServerError, "could not delete habit", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
