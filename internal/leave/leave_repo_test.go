package leave_test

import (
	"context"
	"regexp"
	"testing"

	"lucia-hrms/internal/leave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) (leave.Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return leave.NewRepository(db), mock
}

func TestLeaveRepository_LockEmployee(t *testing.T) {
	repo, mock := setupRepo(t)
	employeeID := uuid.NewString()

	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext($1))")).
		WithArgs(employeeID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.LockEmployee(context.Background(), employeeID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRepository_Transition(t *testing.T) {
	req := &leave.LeaveRequest{ID: uuid.New(), Status: leave.StatusPrimaryApproved, CurrentApprovalLevel: leave.LevelFinal}

	t.Run("applied", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectExec(`UPDATE "leave_requests" SET .*status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Transition(context.Background(), req, leave.StatusPending)

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lost the race", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectExec(`UPDATE "leave_requests" SET .*status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.Transition(context.Background(), req, leave.StatusPending)

		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestLeaveRepository_FindQueue(t *testing.T) {
	repo, mock := setupRepo(t)
	branchID := uuid.NewString()

	mock.ExpectQuery(`SELECT \* FROM "leave_requests" WHERE status = \$1 AND branch_id = \$2 ORDER BY CASE priority WHEN 'URGENT' THEN 0 .* END,created_at ASC`).
		WithArgs(leave.StatusPending, branchID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "priority"}).
			AddRow(uuid.NewString(), leave.StatusPending, leave.PriorityUrgent).
			AddRow(uuid.NewString(), leave.StatusPending, leave.PriorityLow))

	got, err := repo.FindQueue(context.Background(), leave.QueueFilter{Status: leave.StatusPending, BranchID: branchID})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, leave.PriorityUrgent, got[0].Priority)
	assert.NoError(t, mock.ExpectationsWereMet())
}
