package chat

import (
	"context"
	"time"

	"fitlink/internal/domain"
	"fitlink/internal/notify"
)

type GroupRepository interface {
	Create(ctx context.Context, g *domain.Group) error
	GetByID(ctx context.Context, id int64) (*domain.Group, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Group, error)
	AddMember(ctx context.Context, groupID, userID int64) error
	RemoveMember(ctx context.Context, groupID, userID int64) error
	IsMember(ctx context.Context, groupID, userID int64) (bool, error)
	MemberIDs(ctx context.Context, groupID int64) ([]int64, error)
	CountMembers(ctx context.Context, groupID int64) (int, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListByGroup(ctx context.Context, groupID int64, before time.Time, limit int) ([]domain.Message, error)
}

// Notifier fans application events out to user notification feeds.
type Notifier interface {
	Publish(userID int64, d notify.Draft)
}
