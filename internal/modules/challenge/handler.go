package challenge

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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
	g := protected.Group("/challenges")
	{
		g.POST("", h.Create)
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.POST("/:id/join", h.Join)
		g.POST("/:id/leave", h.Leave)
		g.GET("/:id/progress", h.Progress)
		g.GET("/:id/leaderboard", h.Leaderboard)
	}
}

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	var req CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	v, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err, "CREATE_FAILED", "Failed to create challenge")
		return
	}

	response.Success(c, http.StatusCreated, v)
}

func (h *Handler) List(c *gin.Context) {
	if c.GetInt64("user_id") == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	var from, to time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_RANGE", "Expected YYYY-MM-DD")
			return
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_RANGE", "Expected YYYY-MM-DD")
			return
		}
		to = t
	}

	limit := 0
	if s := c.Query("limit"); s != "" {
		limit, _ = strconv.Atoi(s)
	}

	list, err := h.service.List(c.Request.Context(), from, to, limit)
	if err != nil {
		h.writeError(c, err, "LIST_FAILED", "Failed to list challenges")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"challenges": list})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.challengeID(c)
	if !ok {
		return
	}

	v, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "GET_FAILED", "Failed to load challenge")
		return
	}

	response.Success(c, http.StatusOK, v)
}

func (h *Handler) Join(c *gin.Context) {
	userID := c.GetInt64("user_id")
	id, ok := h.challengeID(c)
	if !ok {
		return
	}

	if err := h.service.Join(c.Request.Context(), id, userID); err != nil {
		h.writeError(c, err, "JOIN_FAILED", "Failed to join challenge")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "joined"})
}

func (h *Handler) Leave(c *gin.Context) {
	userID := c.GetInt64("user_id")
	id, ok := h.challengeID(c)
	if !ok {
		return
	}

	if err := h.service.Leave(c.Request.Context(), id, userID); err != nil {
		h.writeError(c, err, "LEAVE_FAILED", "Failed to leave challenge")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "left"})
}

func (h *Handler) Progress(c *gin.Context) {
	userID := c.GetInt64("user_id")
	id, ok := h.challengeID(c)
	if !ok {
		return
	}

	p, err := h.service.Progress(c.Request.Context(), id, userID)
	if err != nil {
		h.writeError(c, err, "PROGRESS_FAILED", "Failed to compute progress")
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Leaderboard(c *gin.Context) {
	id, ok := h.challengeID(c)
	if !ok {
		return
	}

	board, err := h.service.Leaderboard(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "LEADERBOARD_FAILED", "Failed to compute leaderboard")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"leaderboard": board})
}

func (h *Handler) challengeID(c *gin.Context) (int64, bool) {
	if c.GetInt64("user_id") == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return 0, false
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid challenge ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error, fallbackCode, fallbackMsg string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Challenge not found")
	case errors.Is(err, ErrAlreadyJoined):
		response.Error(c, http.StatusConflict, "ALREADY_JOINED", "Already joined this challenge")
	case errors.Is(err, ErrNotJoined):
		response.Error(c, http.StatusForbidden, "NOT_JOINED", "Join the challenge first")
	default:
		response.Error(c, http.StatusInternalServerError, fallbackCode, fallbackMsg)
	}
}
