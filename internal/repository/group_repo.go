package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"fitlink/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicate is returned when a unique constraint rejects an insert
// (already a member, already joined, duplicate email).
var ErrDuplicate = errors.New("duplicate record")

// isUniqueViolation maps driver-level unique-constraint errors for both
// backends the service runs on. The gorm sqlite dialect does not translate
// modernc driver errors, so they are matched here directly.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		switch sqErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

type groupModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Description *string   `gorm:"column:description"`
	OwnerID     int64     `gorm:"column:owner_id;index"`
	AvatarURL   *string   `gorm:"column:avatar_url"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (groupModel) TableName() string { return "groups" }

type groupMemberModel struct {
	ID       int64     `gorm:"column:id;primaryKey"`
	GroupID  int64     `gorm:"column:group_id;index:idx_group_members_unique,unique"`
	UserID   int64     `gorm:"column:user_id;index:idx_group_members_unique,unique"`
	JoinedAt time.Time `gorm:"column:joined_at"`
}

func (groupMemberModel) TableName() string { return "group_members" }

func toDomainGroup(m groupModel) *domain.Group {
	var desc, avatar string
	if m.Description != nil {
		desc = *m.Description
	}
	if m.AvatarURL != nil {
		avatar = *m.AvatarURL
	}
	return &domain.Group{
		ID:          m.ID,
		Name:        m.Name,
		Description: desc,
		OwnerID:     m.OwnerID,
		AvatarURL:   avatar,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *GroupRepository) Create(ctx context.Context, g *domain.Group) error {
	var desc, avatar *string
	if g.Description != "" {
		v := g.Description
		desc = &v
	}
	if g.AvatarURL != "" {
		v := g.AvatarURL
		avatar = &v
	}
	m := groupModel{
		Name:        g.Name,
		Description: desc,
		OwnerID:     g.OwnerID,
		AvatarURL:   avatar,
		CreatedAt:   time.Now(),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*g = *toDomainGroup(m)
	return nil
}

func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	var m groupModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainGroup(m), nil
}

func (r *GroupRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Group, error) {
	var rows []groupModel
	tx := r.db.WithContext(ctx).
		Joins("JOIN group_members gm ON gm.group_id = groups.id").
		Where("gm.user_id = ?", userID).
		Order("groups.created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Group, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainGroup(m))
	}
	return out, nil
}

func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID int64) error {
	m := groupMemberModel{GroupID: groupID, UserID: userID, JoinedAt: time.Now()}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		if isUniqueViolation(tx.Error) {
			return ErrDuplicate
		}
		return tx.Error
	}
	return nil
}

func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, userID int64) error {
	tx := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&groupMemberModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GroupRepository) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).
		Model(&groupMemberModel{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

func (r *GroupRepository) MemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	var ids []int64
	tx := r.db.WithContext(ctx).
		Model(&groupMemberModel{}).
		Where("group_id = ?", groupID).
		Pluck("user_id", &ids)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return ids, nil
}

func (r *GroupRepository) CountMembers(ctx context.Context, groupID int64) (int, error) {
	var count int64
	tx := r.db.WithContext(ctx).
		Model(&groupMemberModel{}).
		Where("group_id = ?", groupID).
		Count(&count)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return int(count), nil
}
