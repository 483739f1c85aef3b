package chat

type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	AvatarURL   string `json:"avatar_url"`
}

type SendMessageRequest struct {
	Body string `json:"body" binding:"required"`
	Type string `json:"type"`
}

type InviteRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}
