package health

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fitlink/internal/domain"
	"fitlink/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/health")
	{
		g.POST("/logs", h.AddLog)
		g.GET("/logs", h.ListLogs)
		g.DELETE("/logs/:id", h.DeleteLog)

		g.GET("/stats", h.Stats)
		g.GET("/summary", h.Summary)
		g.GET("/insights", h.Insights)

		g.POST("/goals", h.CreateGoal)
		g.GET("/goals", h.ListGoals)
		g.PATCH("/goals/:id", h.UpdateGoal)
		g.DELETE("/goals/:id", h.DeleteGoal)
		g.GET("/goals/:id/progress", h.GoalProgress)
	}
}

func (h *Handler) AddLog(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	var req AddLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	var loggedAt time.Time
	if req.LoggedAt != nil {
		loggedAt = *req.LoggedAt
	}

	l, err := h.service.AddLog(c.Request.Context(), userID, domain.MetricType(req.Metric), req.Value, req.Unit, loggedAt, req.Note)
	if err != nil {
		h.writeError(c, err, "CREATE_FAILED", "Failed to record entry")
		return
	}

	response.Success(c, http.StatusCreated, l)
}

func (h *Handler) ListLogs(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	metric := c.Query("metric")
	if metric == "" {
		limit := 50
		if s := c.Query("limit"); s != "" {
			if v, err := strconv.Atoi(s); err == nil && v > 0 {
				limit = v
			}
		}
		logs, err := h.service.RecentLogs(c.Request.Context(), userID, limit)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load entries")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"logs": logs})
		return
	}

	from, to, err := parseRange(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_RANGE", "Invalid from/to dates")
		return
	}

	logs, err := h.service.LogsInRange(c.Request.Context(), userID, domain.MetricType(metric), from, to)
	if err != nil {
		h.writeError(c, err, "FETCH_FAILED", "Failed to load entries")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"logs": logs})
}

func (h *Handler) DeleteLog(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid log ID")
		return
	}

	if err := h.service.DeleteLog(c.Request.Context(), id, userID); err != nil {
		h.writeError(c, err, "DELETE_FAILED", "Failed to delete entry")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) Stats(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	metric := domain.MetricType(c.Query("metric"))
	from, to, err := parseRange(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_RANGE", "Invalid from/to dates")
		return
	}

	summary, err := h.service.Stats(c.Request.Context(), userID, metric, from, to)
	if err != nil {
		h.writeError(c, err, "STATS_FAILED", "Failed to compute stats")
		return
	}
	response.Success(c, http.StatusOK, summary)
}

func (h *Handler) Summary(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	from, to, err := parseRange(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_RANGE", "Invalid from/to dates")
		return
	}

	summary, err := h.service.PeriodSummary(c.Request.Context(), userID, from, to)
	if err != nil {
		h.writeError(c, err, "SUMMARY_FAILED", "Failed to compute summary")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"period_start": from,
		"period_end":   to,
		"metrics":      summary,
	})
}

func (h *Handler) Insights(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	from, to, err := parseRange(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_RANGE", "Invalid from/to dates")
		return
	}

	summary, err := h.service.PeriodSummary(c.Request.Context(), userID, from, to)
	if err != nil {
		h.writeError(c, err, "INSIGHTS_FAILED", "Failed to compute insights")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"insights": Insights(summary)})
}

func (h *Handler) CreateGoal(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	g, err := h.service.CreateGoal(c.Request.Context(), userID, domain.MetricType(req.Metric), req.Target, req.Unit)
	if err != nil {
		h.writeError(c, err, "CREATE_FAILED", "Failed to create goal")
		return
	}
	response.Success(c, http.StatusCreated, g)
}

func (h *Handler) ListGoals(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	activeOnly := c.Query("active") == "true"
	goals, err := h.service.ListGoals(c.Request.Context(), userID, activeOnly)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load goals")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"goals": goals})
}

func (h *Handler) UpdateGoal(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid goal ID")
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	g, err := h.service.UpdateGoal(c.Request.Context(), userID, id, req.Target, req.Current, req.Active)
	if err != nil {
		h.writeError(c, err, "UPDATE_FAILED", "Failed to update goal")
		return
	}
	response.Success(c, http.StatusOK, g)
}

func (h *Handler) DeleteGoal(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid goal ID")
		return
	}

	if err := h.service.DeleteGoal(c.Request.Context(), userID, id); err != nil {
		h.writeError(c, err, "DELETE_FAILED", "Failed to delete goal")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) GoalProgress(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid goal ID")
		return
	}

	p, err := h.service.GoalProgress(c.Request.Context(), id, userID)
	if err != nil {
		h.writeError(c, err, "PROGRESS_FAILED", "Failed to compute progress")
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) writeError(c *gin.Context, err error, fallbackCode, fallbackMsg string) {
	switch {
	case errors.Is(err, ErrInvalidMetric):
		response.Error(c, http.StatusBadRequest, "INVALID_METRIC", "Unknown metric type")
	case errors.Is(err, ErrInvalidRange):
		response.Error(c, http.StatusBadRequest, "INVALID_RANGE", "End date precedes start date")
	case errors.Is(err, ErrInvalidValue):
		response.Error(c, http.StatusBadRequest, "INVALID_VALUE", "Metric value must be positive")
	case errors.Is(err, ErrInvalidTarget):
		response.Error(c, http.StatusBadRequest, "INVALID_TARGET", "Goal target must be positive")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Record not found")
	case errors.Is(err, ErrDataUnavailable):
		response.Error(c, http.StatusServiceUnavailable, "DATA_UNAVAILABLE", "Health data is temporarily unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, fallbackCode, fallbackMsg)
	}
}

// parseRange reads from/to as YYYY-MM-DD dates; the default window is the
// last seven days. "to" is inclusive through end of day.
func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -7)
	to := now

	if s := c.Query("from"); s != "" {
		day, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = day
	}
	if s := c.Query("to"); s != "" {
		day, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = day.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}
