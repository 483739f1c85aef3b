package challenge

import (
	"context"
	"time"

	"fitlink/internal/domain"
	"fitlink/internal/modules/health"
	"fitlink/internal/notify"
)

type ChallengeRepository interface {
	Create(ctx context.Context, c *domain.Challenge) error
	GetByID(ctx context.Context, id int64) (*domain.Challenge, error)
	List(ctx context.Context, from, to time.Time, limit int) ([]domain.Challenge, error)
	Join(ctx context.Context, challengeID, userID int64) error
	Leave(ctx context.Context, challengeID, userID int64) error
	IsParticipant(ctx context.Context, challengeID, userID int64) (bool, error)
	MarkCompleted(ctx context.Context, challengeID, userID int64) (bool, error)
	ParticipantIDs(ctx context.Context, challengeID int64) ([]int64, error)
	CountParticipants(ctx context.Context, challengeID int64) (int, error)
}

// StatsProvider supplies the derived per-metric view that participant
// progress is computed from. Challenges never store progress themselves.
type StatsProvider interface {
	Stats(ctx context.Context, userID int64, metric domain.MetricType, from, to time.Time) (*health.StatsSummary, error)
}

// Notifier fans application events out to user notification feeds.
type Notifier interface {
	Publish(userID int64, d notify.Draft)
}
