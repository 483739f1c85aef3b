package health

import (
	"context"
	"time"

	"fitlink/internal/domain"
)

// LogRepository is the read/write port to the health-log store. ListInRange
// must return an empty slice, not an error, when nothing matches.
type LogRepository interface {
	Create(ctx context.Context, l *domain.HealthLog) error
	ListInRange(ctx context.Context, userID int64, metric domain.MetricType, from, to time.Time) ([]domain.HealthLog, error)
	ListRecent(ctx context.Context, userID int64, limit int) ([]domain.HealthLog, error)
	Delete(ctx context.Context, id, userID int64) error
}

// GoalRepository persists user health goals.
type GoalRepository interface {
	Create(ctx context.Context, g *domain.HealthGoal) error
	GetByID(ctx context.Context, id, userID int64) (*domain.HealthGoal, error)
	ListByUser(ctx context.Context, userID int64, activeOnly bool) ([]domain.HealthGoal, error)
	Update(ctx context.Context, g *domain.HealthGoal) error
	Delete(ctx context.Context, id, userID int64) error
}
