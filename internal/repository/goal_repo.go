package repository

import (
	"context"
	"time"

	"fitlink/internal/domain"

	"gorm.io/gorm"
)

type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

type goalModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	Metric    string    `gorm:"column:metric"`
	Target    float64   `gorm:"column:target"`
	Unit      string    `gorm:"column:unit"`
	Current   float64   `gorm:"column:current"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (goalModel) TableName() string { return "health_goals" }

func toDomainGoal(m goalModel) *domain.HealthGoal {
	return &domain.HealthGoal{
		ID:        m.ID,
		UserID:    m.UserID,
		Metric:    domain.MetricType(m.Metric),
		Target:    m.Target,
		Unit:      m.Unit,
		Current:   m.Current,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toGoalModel(g *domain.HealthGoal) goalModel {
	return goalModel{
		ID:        g.ID,
		UserID:    g.UserID,
		Metric:    string(g.Metric),
		Target:    g.Target,
		Unit:      g.Unit,
		Current:   g.Current,
		Active:    g.Active,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func (r *GoalRepository) Create(ctx context.Context, g *domain.HealthGoal) error {
	m := toGoalModel(g)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*g = *toDomainGoal(m)
	return nil
}

func (r *GoalRepository) GetByID(ctx context.Context, id, userID int64) (*domain.HealthGoal, error) {
	var m goalModel
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainGoal(m), nil
}

func (r *GoalRepository) ListByUser(ctx context.Context, userID int64, activeOnly bool) ([]domain.HealthGoal, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var rows []goalModel
	tx := q.Order("created_at DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.HealthGoal, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainGoal(m))
	}
	return out, nil
}

func (r *GoalRepository) Update(ctx context.Context, g *domain.HealthGoal) error {
	tx := r.db.WithContext(ctx).
		Model(&goalModel{}).
		Where("id = ? AND user_id = ?", g.ID, g.UserID).
		Updates(map[string]interface{}{
			"target":     g.Target,
			"unit":       g.Unit,
			"current":    g.Current,
			"active":     g.Active,
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GoalRepository) Delete(ctx context.Context, id, userID int64) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&goalModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
