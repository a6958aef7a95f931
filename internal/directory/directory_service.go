package directory

import (
	"context"
	"encoding/json"
	"time"

	directoryerrors "lucia-hrms/internal/directory/errors"
	"lucia-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeKeyPrefix = "directory:employee:"
	DefaultCacheTTL   = 10 * time.Minute
)

func GetEmployeeKey(employeeID string) string {
	return EmployeeKeyPrefix + employeeID
}

// Service resolves employee -> branch/team. Lookups are read through a
// redis cache; concurrent misses for one employee share a single query.
//
//go:generate mockgen -source=directory_service.go -destination=mock/directory_service_mock.go -package=mock
type Service interface {
	Lookup(ctx context.Context, employeeID string) (EmployeeRef, error)
	Invalidate(ctx context.Context, employeeID string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	ttl    time.Duration
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewService builds the directory. rdb may be nil, in which case every
// lookup goes to the database.
func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("directory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("directory.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		ttl:    DefaultCacheTTL,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Lookup(ctx context.Context, employeeID string) (EmployeeRef, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(employeeID); err != nil {
		return EmployeeRef{}, directoryerrors.ErrInvalidEmployeeID
	}

	cacheKey := GetEmployeeKey(employeeID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var ref EmployeeRef
			if json.Unmarshal([]byte(cached), &ref) == nil {
				return ref, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empl, err := s.repo.FindByID(ctx, employeeID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		ref := toRef(*empl)

		if s.rdb != nil {
			if payload, err := json.Marshal(ref); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, string(payload), s.ttl).Err(); err != nil {
					logger.Warn("directory cache write failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return ref, nil
	})
	if err != nil {
		logger.Warn("directory lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
		return EmployeeRef{}, err
	}

	return v.(EmployeeRef), nil
}

// Invalidate drops the cached entry, e.g. after an employee moved branch.
func (s *service) Invalidate(ctx context.Context, employeeID string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, GetEmployeeKey(employeeID)).Err()
}
