package chat

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fitlink/internal/domain"
	"fitlink/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	service  *Service
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{
		service: service,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin is enforced by the CORS middleware in front.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/groups")
	{
		g.POST("", h.CreateGroup)
		g.GET("", h.MyGroups)
		g.GET("/:id", h.GetGroup)
		g.POST("/:id/join", h.JoinGroup)
		g.POST("/:id/invite", h.Invite)
		g.POST("/:id/leave", h.LeaveGroup)
		g.GET("/:id/messages", h.History)
		g.POST("/:id/messages", h.SendMessage)
	}
	protected.GET("/ws/groups/:id", h.Room)
}

func (h *Handler) CreateGroup(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	g, err := h.service.CreateGroup(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err, "CREATE_FAILED", "Failed to create group")
		return
	}

	response.Success(c, http.StatusCreated, g)
}

func (h *Handler) MyGroups(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	groups, err := h.service.MyGroups(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list groups")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"groups": groups})
}

func (h *Handler) GetGroup(c *gin.Context) {
	groupID, ok := h.groupID(c)
	if !ok {
		return
	}

	g, err := h.service.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		h.writeError(c, err, "GET_FAILED", "Failed to load group")
		return
	}

	response.Success(c, http.StatusOK, g)
}

func (h *Handler) JoinGroup(c *gin.Context) {
	userID := c.GetInt64("user_id")
	groupID, ok := h.groupID(c)
	if !ok {
		return
	}

	if err := h.service.JoinGroup(c.Request.Context(), groupID, userID); err != nil {
		h.writeError(c, err, "JOIN_FAILED", "Failed to join group")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "joined"})
}

func (h *Handler) Invite(c *gin.Context) {
	userID := c.GetInt64("user_id")
	groupID, ok := h.groupID(c)
	if !ok {
		return
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	if err := h.service.InviteToGroup(c.Request.Context(), groupID, userID, req.UserID); err != nil {
		h.writeError(c, err, "INVITE_FAILED", "Failed to invite user")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "invited"})
}

func (h *Handler) LeaveGroup(c *gin.Context) {
	userID := c.GetInt64("user_id")
	groupID, ok := h.groupID(c)
	if !ok {
		return
	}

	if err := h.service.LeaveGroup(c.Request.Context(), groupID, userID); err != nil {
		h.writeError(c, err, "LEAVE_FAILED", "Failed to leave group")
		return
	}

	h.hub.Leave(groupID, userID)
	response.Success(c, http.StatusOK, gin.H{"status": "left"})
}

func (h *Handler) History(c *gin.Context) {
	userID := c.GetInt64("user_id")
	groupID, ok := h.groupID(c)
	if !ok {
		return
	}

	before := time.Now()
	if s := c.Query("before"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_BEFORE", "Expected RFC3339 timestamp")
			return
		}
		before = t
	}

	limit := 0
	if s := c.Query("limit"); s != "" {
		limit, _ = strconv.Atoi(s)
	}

	messages, err := h.service.History(c.Request.Context(), groupID, userID, before, limit)
	if err != nil {
		h.writeError(c, err, "HISTORY_FAILED", "Failed to load messages")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"messages": messages})
}

func (h *Handler) SendMessage(c *gin.Context) {
	userID := c.GetInt64("user_id")
	groupID, ok := h.groupID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), groupID, userID, req.Body, domain.MessageType(req.Type))
	if err != nil {
		h.writeError(c, err, "SEND_FAILED", "Failed to send message")
		return
	}

	response.Success(c, http.StatusCreated, msg)
}

// Room upgrades to a websocket bound to one group chat room. Text frames
// received from the client are treated as message bodies and go through the
// same persistence path as the REST endpoint.
func (h *Handler) Room(c *gin.Context) {
	userID := c.GetInt64("user_id")
	groupID, ok := h.groupID(c)
	if !ok {
		return
	}

	member, err := h.service.groups.IsMember(c.Request.Context(), groupID, userID)
	if err != nil || !member {
		response.Error(c, http.StatusForbidden, "NOT_MEMBER", "Join the group first")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.Join(groupID, userID, conn)
	defer h.hub.Leave(groupID, userID)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if len(data) == 0 {
			continue
		}
		if _, err := h.service.SendMessage(c.Request.Context(), groupID, userID, string(data), domain.MessageTypeText); err != nil {
			break
		}
	}
}

func (h *Handler) groupID(c *gin.Context) (int64, bool) {
	if c.GetInt64("user_id") == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return 0, false
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid group ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error, fallbackCode, fallbackMsg string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Group not found")
	case errors.Is(err, ErrNotMember):
		response.Error(c, http.StatusForbidden, "NOT_MEMBER", "Not a member of this group")
	case errors.Is(err, ErrAlreadyMember):
		response.Error(c, http.StatusConflict, "ALREADY_MEMBER", "Already a member of this group")
	default:
		response.Error(c, http.StatusInternalServerError, fallbackCode, fallbackMsg)
	}
}
