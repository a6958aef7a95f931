package leavebalance

import (
	"context"
	"database/sql"
	"time"

	"lucia-hrms/internal/activity"
	"lucia-hrms/internal/authz"
	"lucia-hrms/internal/directory"
	"lucia-hrms/internal/events"
	leavebalanceerrors "lucia-hrms/internal/leavebalance/errors"
	"lucia-hrms/internal/shared/apperror"
	"lucia-hrms/internal/shared/contextutil"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leavebalance_service.go -destination=mock/leavebalance_service_mock.go -package=mock
type Service interface {
	GetBalances(ctx context.Context, auth authz.Context, employeeID string, year int) ([]BalanceResponse, error)
	ListAdjustments(ctx context.Context, auth authz.Context, employeeID string, year int) ([]AdjustmentResponse, error)
	Adjust(ctx context.Context, auth authz.Context, req AdjustBalanceRequest) (AdjustBalanceResponse, error)
	RecomputePending(ctx context.Context, auth authz.Context, req RecomputePendingRequest) ([]BalanceResponse, error)
	InitializeYear(ctx context.Context, employeeID string, year int) error
}

type service struct {
	db        *sql.DB
	ledger    Ledger
	repo      Repository
	directory directory.Service
	recorder  activity.Recorder
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	ledger Ledger,
	repo Repository,
	dir directory.Service,
	recorder activity.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{
		db:        db,
		ledger:    ledger,
		repo:      repo,
		directory: dir,
		recorder:  recorder,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) GetBalances(ctx context.Context, auth authz.Context, employeeID string, year int) ([]BalanceResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	employeeID, year, err := s.resolveTarget(ctx, auth, employeeID, year)
	if err != nil {
		return nil, err
	}
	logger.Debug("get leave balances requested", zap.String("employee_id", employeeID), zap.Int("year", year))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("get leave balances begin tx failed", zap.Error(err))
		return nil, apperror.Storage(err)
	}
	defer tx.Rollback()

	balances, err := s.ledger.WithTx(tx).GetOrInitialize(ctx, employeeID, year)
	if err != nil {
		logger.Error("get leave balances failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("get leave balances commit failed", zap.Error(err))
		return nil, apperror.Storage(err)
	}

	return mapToBalanceResponses(balances), nil
}

func (s *service) ListAdjustments(ctx context.Context, auth authz.Context, employeeID string, year int) ([]AdjustmentResponse, error) {
	employeeID, year, err := s.resolveTarget(ctx, auth, employeeID, year)
	if err != nil {
		return nil, err
	}

	adjustments, err := s.repo.ListAdjustments(ctx, employeeID, year)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	out := make([]AdjustmentResponse, 0, len(adjustments))
	for _, a := range adjustments {
		out = append(out, mapToAdjustmentResponse(a))
	}
	return out, nil
}

func (s *service) Adjust(ctx context.Context, auth authz.Context, req AdjustBalanceRequest) (AdjustBalanceResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Debug("adjust leave balance requested",
		zap.String("actor_id", auth.CallerID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("adjustment_type", req.AdjustmentType),
	)

	if !auth.HasOrgAuthority() {
		logger.Warn("adjust leave balance forbidden", zap.String("role", string(auth.Role)))
		return AdjustBalanceResponse{}, apperror.ErrForbidden
	}
	if _, err := s.directory.Lookup(ctx, req.EmployeeID); err != nil {
		return AdjustBalanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("adjust leave balance begin tx failed", zap.Error(err))
		return AdjustBalanceResponse{}, apperror.Storage(err)
	}
	defer tx.Rollback()

	balance, adj, err := s.ledger.WithTx(tx).Adjust(ctx, AdjustInput{
		EmployeeID:     req.EmployeeID,
		Year:           req.Year,
		LeaveType:      req.LeaveType,
		AdjustmentType: req.AdjustmentType,
		Days:           req.Days,
		Reason:         req.Reason,
		ActorID:        auth.CallerID,
	})
	if err != nil {
		return AdjustBalanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("adjust leave balance commit failed", zap.Error(err))
		return AdjustBalanceResponse{}, apperror.Storage(err)
	}

	s.recorder.Record(ctx, events.LeaveActivityEvent{
		Action:     events.ActionLeaveBalanceAdjusted,
		EntityType: events.EntityLeaveBalance,
		EntityID:   balance.ID.String(),
		ActorID:    auth.CallerID,
		ActorRole:  string(auth.Role),
		EmployeeID: req.EmployeeID,
		LeaveType:  balance.LeaveType,
		Days:       adj.Days,
		Status:     adj.AdjustmentType,
		Comments:   adj.Reason,
	})

	return AdjustBalanceResponse{
		Balance:    mapToBalanceResponse(*balance),
		Adjustment: mapToAdjustmentResponse(*adj),
	}, nil
}

func (s *service) RecomputePending(ctx context.Context, auth authz.Context, req RecomputePendingRequest) ([]BalanceResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	if !auth.HasOrgAuthority() {
		logger.Warn("recompute pending forbidden", zap.String("role", string(auth.Role)))
		return nil, apperror.ErrForbidden
	}
	if _, err := s.directory.Lookup(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	year := req.Year
	if year == 0 {
		year = s.now().Year()
	}
	if !ValidYear(year) {
		return nil, leavebalanceerrors.ErrInvalidYear
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("recompute pending begin tx failed", zap.Error(err))
		return nil, apperror.Storage(err)
	}
	defer tx.Rollback()

	balances, err := s.ledger.WithTx(tx).RecomputePending(ctx, req.EmployeeID, year)
	if err != nil {
		logger.Error("recompute pending failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("recompute pending commit failed", zap.Error(err))
		return nil, apperror.Storage(err)
	}

	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Pending)
	}
	s.recorder.Record(ctx, events.LeaveActivityEvent{
		Action:     events.ActionLeavePendingRecomputed,
		EntityType: events.EntityLeaveBalance,
		EntityID:   req.EmployeeID,
		ActorID:    auth.CallerID,
		ActorRole:  string(auth.Role),
		EmployeeID: req.EmployeeID,
		Days:       total,
	})

	return mapToBalanceResponses(balances), nil
}

// InitializeYear seeds an employee's balances ahead of the first read. It is
// driven by employee lifecycle events and needs no caller authority.
func (s *service) InitializeYear(ctx context.Context, employeeID string, year int) error {
	if !ValidYear(year) {
		return leavebalanceerrors.ErrInvalidYear
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Storage(err)
	}
	defer tx.Rollback()

	if _, err := s.ledger.WithTx(tx).GetOrInitialize(ctx, employeeID, year); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperror.Storage(err)
	}
	return nil
}

// resolveTarget defaults the employee to the caller and the year to the
// current one, then checks the caller may see that employee.
func (s *service) resolveTarget(ctx context.Context, auth authz.Context, employeeID string, year int) (string, int, error) {
	if employeeID == "" {
		employeeID = auth.CallerID
	}
	if year == 0 {
		year = s.now().Year()
	}
	if !ValidYear(year) {
		return "", 0, leavebalanceerrors.ErrInvalidYear
	}

	if _, err := directory.Authorize(ctx, s.directory, auth, employeeID); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("leave balance access denied",
			zap.String("caller_id", auth.CallerID),
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return "", 0, err
	}
	return employeeID, year, nil
}
