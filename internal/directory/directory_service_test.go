package directory_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"lucia-hrms/internal/directory"
	directoryerrors "lucia-hrms/internal/directory/errors"
	directoryMock "lucia-hrms/internal/directory/mock"
	"lucia-hrms/internal/shared/apperror"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	service   directory.Service
	repo      *directoryMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	rdb, redisMock := redismock.NewClientMock()
	repo := directoryMock.NewMockRepository(ctrl)

	return &serviceDeps{
		service:   directory.NewService(repo, rdb),
		repo:      repo,
		redismock: redisMock,
	}
}

func TestDirectoryService_Lookup(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	branchID := uuid.New()
	teamID := uuid.New()
	cacheKey := directory.GetEmployeeKey(employeeID.String())

	want := directory.EmployeeRef{
		ID:       employeeID.String(),
		FullName: "Dewi Lestari",
		BranchID: branchID.String(),
		TeamID:   teamID.String(),
	}
	payload, _ := json.Marshal(want)

	t.Run("cache hit", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(cacheKey).SetVal(string(payload))

		got, err := deps.service.Lookup(ctx, employeeID.String())

		assert.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("cache miss reads repository and fills cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().
			FindByID(ctx, employeeID.String()).
			Return(&directory.Employee{ID: employeeID, FullName: "Dewi Lestari", BranchID: branchID, TeamID: &teamID}, nil)
		deps.redismock.ExpectSet(cacheKey, string(payload), directory.DefaultCacheTTL).SetVal("OK")

		got, err := deps.service.Lookup(ctx, employeeID.String())

		assert.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().FindByID(ctx, employeeID.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Lookup(ctx, employeeID.String())

		assert.ErrorIs(t, err, directoryerrors.ErrEmployeeNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().FindByID(ctx, employeeID.String()).Return(nil, errors.New("connection reset"))

		_, err := deps.service.Lookup(ctx, employeeID.String())

		assert.True(t, apperror.Is(err, apperror.CodeStorageError))
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Lookup(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, directoryerrors.ErrInvalidEmployeeID)
	})

	t.Run("without redis", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := directoryMock.NewMockRepository(ctrl)
		repo.EXPECT().FindByID(ctx, employeeID.String()).Return(&directory.Employee{ID: employeeID, BranchID: branchID}, nil)

		got, err := directory.NewService(repo, nil).Lookup(ctx, employeeID.String())

		assert.NoError(t, err)
		assert.Equal(t, branchID.String(), got.BranchID)
		assert.Empty(t, got.TeamID)
	})
}

func TestDirectoryService_Invalidate(t *testing.T) {
	deps := setupServiceTest(t)
	id := uuid.NewString()
	deps.redismock.ExpectDel(directory.GetEmployeeKey(id)).SetVal(1)

	assert.NoError(t, deps.service.Invalidate(context.Background(), id))
	assert.NoError(t, deps.redismock.ExpectationsWereMet())
}
