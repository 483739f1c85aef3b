package repository

import (
	"context"
	"time"

	"fitlink/internal/domain"

	"gorm.io/gorm"
)

type ChallengeRepository struct {
	db *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

type challengeModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Title       string    `gorm:"column:title"`
	Description *string   `gorm:"column:description"`
	Metric      string    `gorm:"column:metric"`
	Target      float64   `gorm:"column:target"`
	StartDate   time.Time `gorm:"column:start_date"`
	EndDate     time.Time `gorm:"column:end_date"`
	CreatorID   int64     `gorm:"column:creator_id"`
	GroupID     *int64    `gorm:"column:group_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (challengeModel) TableName() string { return "challenges" }

type challengeParticipantModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	ChallengeID int64      `gorm:"column:challenge_id;index:idx_challenge_participants_unique,unique"`
	UserID      int64      `gorm:"column:user_id;index:idx_challenge_participants_unique,unique"`
	JoinedAt    time.Time  `gorm:"column:joined_at"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
}

func (challengeParticipantModel) TableName() string { return "challenge_participants" }

func toDomainChallenge(m challengeModel) *domain.Challenge {
	var desc string
	if m.Description != nil {
		desc = *m.Description
	}
	return &domain.Challenge{
		ID:          m.ID,
		Title:       m.Title,
		Description: desc,
		Metric:      domain.MetricType(m.Metric),
		Target:      m.Target,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		CreatorID:   m.CreatorID,
		GroupID:     m.GroupID,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *ChallengeRepository) Create(ctx context.Context, c *domain.Challenge) error {
	var desc *string
	if c.Description != "" {
		v := c.Description
		desc = &v
	}
	m := challengeModel{
		Title:       c.Title,
		Description: desc,
		Metric:      string(c.Metric),
		Target:      c.Target,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		CreatorID:   c.CreatorID,
		GroupID:     c.GroupID,
		CreatedAt:   time.Now(),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainChallenge(m)
	return nil
}

func (r *ChallengeRepository) GetByID(ctx context.Context, id int64) (*domain.Challenge, error) {
	var m challengeModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainChallenge(m), nil
}

// List returns challenges whose window overlaps [from, to], newest first.
func (r *ChallengeRepository) List(ctx context.Context, from, to time.Time, limit int) ([]domain.Challenge, error) {
	var rows []challengeModel
	tx := r.db.WithContext(ctx).
		Where("end_date >= ? AND start_date <= ?", from, to).
		Order("start_date DESC").
		Limit(limit).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Challenge, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainChallenge(m))
	}
	return out, nil
}

func (r *ChallengeRepository) Join(ctx context.Context, challengeID, userID int64) error {
	m := challengeParticipantModel{ChallengeID: challengeID, UserID: userID, JoinedAt: time.Now()}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		if isUniqueViolation(tx.Error) {
			return ErrDuplicate
		}
		return tx.Error
	}
	return nil
}

func (r *ChallengeRepository) Leave(ctx context.Context, challengeID, userID int64) error {
	tx := r.db.WithContext(ctx).
		Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		Delete(&challengeParticipantModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ChallengeRepository) IsParticipant(ctx context.Context, challengeID, userID int64) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).
		Model(&challengeParticipantModel{}).
		Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

// MarkCompleted stamps the participant row the first time their progress
// reaches the target. It reports whether this call made the transition;
// later calls find the stamp already set and return false.
func (r *ChallengeRepository) MarkCompleted(ctx context.Context, challengeID, userID int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&challengeParticipantModel{}).
		Where("challenge_id = ? AND user_id = ? AND completed_at IS NULL", challengeID, userID).
		Update("completed_at", time.Now())
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *ChallengeRepository) ParticipantIDs(ctx context.Context, challengeID int64) ([]int64, error) {
	var ids []int64
	tx := r.db.WithContext(ctx).
		Model(&challengeParticipantModel{}).
		Where("challenge_id = ?", challengeID).
		Order("joined_at ASC").
		Pluck("user_id", &ids)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return ids, nil
}

func (r *ChallengeRepository) CountParticipants(ctx context.Context, challengeID int64) (int, error) {
	var count int64
	tx := r.db.WithContext(ctx).
		Model(&challengeParticipantModel{}).
		Where("challenge_id = ?", challengeID).
		Count(&count)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return int(count), nil
}
