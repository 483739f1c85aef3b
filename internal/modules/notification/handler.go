package notification

import (
	"net/http"

	"fitlink/internal/notify"
	"fitlink/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	manager  *Manager
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewHandler(manager *Manager, hub *Hub) *Handler {
	return &Handler{
		manager: manager,
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
	g := protected.Group("/notifications")
	{
		g.GET("", h.List)
		g.PATCH("/:id/read", h.MarkRead)
		g.PATCH("/read-all", h.MarkAllRead)
		g.DELETE("/:id", h.Delete)
		g.DELETE("", h.ClearAll)
		g.PUT("/preferences", h.UpdatePreferences)
	}
	protected.GET("/ws/notifications", h.Stream)
}

func (h *Handler) store(c *gin.Context) *notify.Store {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return nil
	}

	s := h.manager.StoreFor(userID)
	if s == nil {
		response.Error(c, http.StatusServiceUnavailable, "SHUTTING_DOWN", "Service is shutting down")
		return nil
	}
	return s
}

func (h *Handler) List(c *gin.Context) {
	s := h.store(c)
	if s == nil {
		return
	}

	var list []notify.Notification
	if cat := c.Query("category"); cat != "" {
		category := notify.Category(cat)
		if !category.Valid() {
			response.Error(c, http.StatusBadRequest, "INVALID_CATEGORY", "Unknown notification category")
			return
		}
		list = s.ByCategory(category)
	} else {
		list = s.List()
	}

	response.Success(c, http.StatusOK, gin.H{
		"notifications": list,
		"unread_count":  s.UnreadCount(),
	})
}

func (h *Handler) MarkRead(c *gin.Context) {
	s := h.store(c)
	if s == nil {
		return
	}

	// Absent IDs are a deliberate no-op, not a 404: the client may race a
	// delete against a mark-read and both must succeed idempotently.
	s.MarkRead(c.Param("id"))
	response.Success(c, http.StatusOK, gin.H{
		"status":       "read",
		"unread_count": s.UnreadCount(),
	})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	s := h.store(c)
	if s == nil {
		return
	}

	s.MarkAllRead()
	response.Success(c, http.StatusOK, gin.H{"status": "all_read"})
}

func (h *Handler) Delete(c *gin.Context) {
	s := h.store(c)
	if s == nil {
		return
	}

	s.Delete(c.Param("id"))
	response.Success(c, http.StatusOK, gin.H{
		"status":       "deleted",
		"unread_count": s.UnreadCount(),
	})
}

func (h *Handler) ClearAll(c *gin.Context) {
	s := h.store(c)
	if s == nil {
		return
	}

	s.ClearAll()
	response.Success(c, http.StatusOK, gin.H{"status": "cleared"})
}

func (h *Handler) UpdatePreferences(c *gin.Context) {
	s := h.store(c)
	if s == nil {
		return
	}

	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	if req.PushEnabled != nil {
		s.SetPushEnabled(*req.PushEnabled)
	}
	if req.SoundEnabled != nil {
		s.SetSoundEnabled(*req.SoundEnabled)
	}

	response.Success(c, http.StatusOK, gin.H{
		"push_enabled":  s.PushEnabled(),
		"sound_enabled": s.SoundEnabled(),
	})
}

// Stream upgrades to a websocket and forwards the store's insert events to
// the client until it disconnects.
func (h *Handler) Stream(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	s := h.manager.StoreFor(userID)
	if s == nil {
		response.Error(c, http.StatusServiceUnavailable, "SHUTTING_DOWN", "Service is shutting down")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.Register(userID, conn)
	events, cancel := s.Subscribe(16)

	go func() {
		for ev := range events {
			if !h.hub.SendToUser(userID, ev) {
				return
			}
		}
	}()

	// Read loop only detects the peer going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	cancel()
	h.hub.Unregister(userID)
}
