package repository

import (
	"context"
	"time"

	"fitlink/internal/domain"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

type messageModel struct {
	ID       int64     `gorm:"column:id;primaryKey"`
	GroupID  int64     `gorm:"column:group_id;index:idx_messages_group_time"`
	SenderID int64     `gorm:"column:sender_id"`
	Type     string    `gorm:"column:type"`
	Body     string    `gorm:"column:body"`
	SentAt   time.Time `gorm:"column:sent_at;index:idx_messages_group_time"`
}

func (messageModel) TableName() string { return "messages" }

func toDomainMessage(m messageModel) domain.Message {
	return domain.Message{
		ID:       m.ID,
		GroupID:  m.GroupID,
		SenderID: m.SenderID,
		Type:     domain.MessageType(m.Type),
		Body:     m.Body,
		SentAt:   m.SentAt,
	}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	m := messageModel{
		GroupID:  msg.GroupID,
		SenderID: msg.SenderID,
		Type:     string(msg.Type),
		Body:     msg.Body,
		SentAt:   msg.SentAt,
	}
	if m.SentAt.IsZero() {
		m.SentAt = time.Now()
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*msg = toDomainMessage(m)
	return nil
}

// ListByGroup pages backwards through history: messages strictly older than
// before (zero means "from now"), newest first.
func (r *MessageRepository) ListByGroup(ctx context.Context, groupID int64, before time.Time, limit int) ([]domain.Message, error) {
	if before.IsZero() {
		before = time.Now()
	}

	var rows []messageModel
	tx := r.db.WithContext(ctx).
		Where("group_id = ? AND sent_at < ?", groupID, before).
		Order("sent_at DESC").
		Limit(limit).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Message, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainMessage(m))
	}
	return out, nil
}
