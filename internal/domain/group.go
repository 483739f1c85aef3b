package domain

import "time"

type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     int64     `json:"owner_id"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Filled by the service layer, not stored.
	MemberCount int `json:"member_count"`
}

type GroupMember struct {
	ID       int64     `json:"id"`
	GroupID  int64     `json:"group_id"`
	UserID   int64     `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

type MessageType string

const (
	MessageTypeText   MessageType = "text"
	MessageTypeImage  MessageType = "image"
	MessageTypeSystem MessageType = "system"
)

// Message is one group-chat message.
type Message struct {
	ID       int64       `json:"id"`
	GroupID  int64       `json:"group_id"`
	SenderID int64       `json:"sender_id"`
	Type     MessageType `json:"type"`
	Body     string      `json:"body"`
	SentAt   time.Time   `json:"sent_at"`

	SenderName string `json:"sender_name,omitempty"`
}
