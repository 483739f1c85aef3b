package repository

import (
	"context"
	"time"

	"fitlink/internal/domain"

	"gorm.io/gorm"
)

type HealthLogRepository struct {
	db *gorm.DB
}

func NewHealthLogRepository(db *gorm.DB) *HealthLogRepository {
	return &HealthLogRepository{db: db}
}

type healthLogModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index:idx_health_logs_user_metric_time"`
	Metric    string    `gorm:"column:metric;index:idx_health_logs_user_metric_time"`
	Value     float64   `gorm:"column:value"`
	Unit      string    `gorm:"column:unit"`
	LoggedAt  time.Time `gorm:"column:logged_at;index:idx_health_logs_user_metric_time"`
	Note      *string   `gorm:"column:note"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (healthLogModel) TableName() string { return "health_logs" }

func toDomainHealthLog(m healthLogModel) domain.HealthLog {
	var note string
	if m.Note != nil {
		note = *m.Note
	}
	return domain.HealthLog{
		ID:        m.ID,
		UserID:    m.UserID,
		Metric:    domain.MetricType(m.Metric),
		Value:     m.Value,
		Unit:      m.Unit,
		LoggedAt:  m.LoggedAt,
		Note:      note,
		CreatedAt: m.CreatedAt,
	}
}

func toHealthLogModel(l *domain.HealthLog) healthLogModel {
	var note *string
	if l.Note != "" {
		v := l.Note
		note = &v
	}
	return healthLogModel{
		ID:        l.ID,
		UserID:    l.UserID,
		Metric:    string(l.Metric),
		Value:     l.Value,
		Unit:      l.Unit,
		LoggedAt:  l.LoggedAt,
		Note:      note,
		CreatedAt: l.CreatedAt,
	}
}

func (r *HealthLogRepository) Create(ctx context.Context, l *domain.HealthLog) error {
	m := toHealthLogModel(l)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*l = toDomainHealthLog(m)
	return nil
}

// ListInRange returns the user's entries for one metric inside [from, to],
// oldest first. An empty result is not an error.
func (r *HealthLogRepository) ListInRange(ctx context.Context, userID int64, metric domain.MetricType, from, to time.Time) ([]domain.HealthLog, error) {
	var rows []healthLogModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND metric = ? AND logged_at >= ? AND logged_at <= ?",
			userID, string(metric), from, to).
		Order("logged_at ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.HealthLog, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainHealthLog(m))
	}
	return out, nil
}

// ListRecent returns the user's newest entries across all metrics.
func (r *HealthLogRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.HealthLog, error) {
	var rows []healthLogModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("logged_at DESC").
		Limit(limit).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.HealthLog, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainHealthLog(m))
	}
	return out, nil
}

func (r *HealthLogRepository) Delete(ctx context.Context, id, userID int64) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&healthLogModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
