package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"fitlink/internal/database"
	"fitlink/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestIsUniqueViolation(t *testing.T) {
	pgDup := &pgconn.PgError{Code: "23505"}
	// What the modernc driver surfaces through gorm on a duplicate insert.
	sqliteDup := errors.New("constraint failed: UNIQUE constraint failed: group_members.group_id, group_members.user_id (2067)")

	assert.True(t, isUniqueViolation(pgDup))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", pgDup)))
	assert.True(t, isUniqueViolation(sqliteDup))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))

	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(errors.New("no such table: groups")))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestGroupRepository_AddMember_DuplicateOnSQLite(t *testing.T) {
	db := newTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	g := &domain.Group{Name: "Morning Runners", OwnerID: 1}
	require.NoError(t, repo.Create(ctx, g))

	require.NoError(t, repo.AddMember(ctx, g.ID, 2))
	err := repo.AddMember(ctx, g.ID, 2)

	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestChallengeRepository_Join_DuplicateOnSQLite(t *testing.T) {
	db := newTestDB(t)
	repo := NewChallengeRepository(db)
	ctx := context.Background()

	c := &domain.Challenge{
		Title:     "Weekly 70k steps",
		Metric:    domain.MetricSteps,
		Target:    70000,
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 0, 7),
		CreatorID: 1,
	}
	require.NoError(t, repo.Create(ctx, c))

	require.NoError(t, repo.Join(ctx, c.ID, 2))
	err := repo.Join(ctx, c.ID, 2)

	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestChallengeRepository_MarkCompleted_TransitionsOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewChallengeRepository(db)
	ctx := context.Background()

	c := &domain.Challenge{
		Title:     "Hydration Month",
		Metric:    domain.MetricWater,
		Target:    60,
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 1, 0),
		CreatorID: 1,
	}
	require.NoError(t, repo.Create(ctx, c))
	require.NoError(t, repo.Join(ctx, c.ID, 2))

	first, err := repo.MarkCompleted(ctx, c.ID, 2)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := repo.MarkCompleted(ctx, c.ID, 2)
	require.NoError(t, err)
	assert.False(t, again)
}
