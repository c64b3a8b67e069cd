package repository

import (
	"context"
	"regexp"
	"testing"

	"skillswap/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// The decision must be one conditional UPDATE whose WHERE clause carries the
// expected status and the acting party's column. No SELECT beforehand.
func TestSwapRepositoryTransitionSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "swaps" SET "status"=$1,"updated_at"=$2 WHERE id = $3 AND status = $4 AND provider_id = $5`)).
		WithArgs("accepted", sqlmock.AnyArg(), 7, "pending", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.Transition(ctx, 7, 2, RoleProvider,
		models.SwapStatusPending, models.SwapStatusAccepted)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSwapRepositoryTransitionSQLEitherParty(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "swaps" SET "status"=$1,"updated_at"=$2 WHERE id = $3 AND status = $4 AND (requester_id = $5 OR provider_id = $6)`)).
		WithArgs("completed", sqlmock.AnyArg(), 7, "accepted", 2, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.Transition(ctx, 7, 2, RoleEither,
		models.SwapStatusAccepted, models.SwapStatusCompleted)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSwapRepositoryTransitionSQLZeroRows(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "swaps" SET "status"=$1,"updated_at"=$2 WHERE id = $3 AND status = $4 AND requester_id = $5`)).
		WithArgs("cancelled", sqlmock.AnyArg(), 7, "pending", 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err := repo.Transition(ctx, 7, 3, RoleRequester,
		models.SwapStatusPending, models.SwapStatusCancelled)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
