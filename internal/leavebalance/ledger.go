package leavebalance

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	leavebalanceerrors "lucia-hrms/internal/leavebalance/errors"
	"lucia-hrms/internal/shared/apperror"
	"lucia-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Movement moves days between the pending and used buckets of one balance
// row.
type Movement struct {
	EmployeeID string
	Year       int
	LeaveType  string
	Days       decimal.Decimal
}

type AdjustInput struct {
	EmployeeID     string
	Year           int
	LeaveType      string
	AdjustmentType string
	Days           decimal.Decimal
	Reason         string
	ActorID        string
}

// Ledger mutates balances inside a transaction the caller owns. Every
// mutation locks the affected row first.
//
//go:generate mockgen -source=ledger.go -destination=mock/ledger_mock.go -package=mock
type Ledger interface {
	WithTx(tx *sql.Tx) Ledger
	Policy() Policy

	GetOrInitialize(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	Reserve(ctx context.Context, mv Movement) (*LeaveBalance, error)
	Release(ctx context.Context, mv Movement) (*LeaveBalance, error)
	Consume(ctx context.Context, mv Movement, leaveRequestID, actorID, reason string) (*LeaveBalance, error)
	Adjust(ctx context.Context, in AdjustInput) (*LeaveBalance, *LeaveBalanceAdjustment, error)
	RecomputePending(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
}

type ledger struct {
	repo   Repository
	policy Policy
	logger *zap.Logger
}

func NewLedger(repo Repository, policy Policy, logger ...*zap.Logger) Ledger {
	l := zap.L().Named("leavebalance.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.ledger")
	}
	return &ledger{repo: repo, policy: policy, logger: l}
}

func (l *ledger) WithTx(tx *sql.Tx) Ledger {
	return &ledger{
		repo:   l.repo.WithTx(tx),
		policy: l.policy,
		logger: l.logger,
	}
}

func (l *ledger) Policy() Policy {
	return l.policy
}

func (l *ledger) GetOrInitialize(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error) {
	empID, err := parseEmployeeID(employeeID)
	if err != nil {
		return nil, err
	}

	balances, err := l.repo.FindByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if l.coversPolicy(balances) {
		return balances, nil
	}

	// Rows created earlier by an adjustment keep their values; only the
	// missing policy types are added.
	if err := l.repo.CreateIfAbsent(ctx, l.defaultBalances(empID, year)); err != nil {
		return nil, mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, l.logger).Info("leave balances initialized",
		zap.String("employee_id", employeeID),
		zap.Int("year", year),
		zap.Int("existing", len(balances)),
	)

	balances, err = l.repo.FindByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return balances, nil
}

func (l *ledger) Reserve(ctx context.Context, mv Movement) (*LeaveBalance, error) {
	empID, err := parseEmployeeID(mv.EmployeeID)
	if err != nil {
		return nil, err
	}

	balance, err := l.lockOrCreate(ctx, empID, mv.Year, mv.LeaveType, true)
	if err != nil {
		return nil, err
	}

	if l.policy.RejectsInsufficient() && balance.Available.LessThan(mv.Days) {
		contextutil.GetLogger(ctx, l.logger).Warn("leave reservation exceeds available balance",
			zap.String("employee_id", mv.EmployeeID),
			zap.String("leave_type", mv.LeaveType),
			zap.String("available", balance.Available.String()),
			zap.String("days", mv.Days.String()),
		)
		return nil, insufficient(mv, balance.Available)
	}

	balance.Pending = balance.Pending.Add(mv.Days)
	balance.Recompute()

	if err := l.repo.Update(ctx, balance); err != nil {
		return nil, mapRepositoryError(err)
	}
	return balance, nil
}

// Release returns reserved days. A missing row has nothing reserved, so it
// yields a nil balance and no error.
func (l *ledger) Release(ctx context.Context, mv Movement) (*LeaveBalance, error) {
	if _, err := parseEmployeeID(mv.EmployeeID); err != nil {
		return nil, err
	}

	balance, err := l.repo.FindForUpdate(ctx, mv.EmployeeID, mv.Year, mv.LeaveType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		contextutil.GetLogger(ctx, l.logger).Warn("release on missing leave balance",
			zap.String("employee_id", mv.EmployeeID),
			zap.Int("year", mv.Year),
			zap.String("leave_type", mv.LeaveType),
		)
		return nil, nil
	}
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	balance.Pending = floorZero(balance.Pending.Sub(mv.Days))
	balance.Recompute()

	if err := l.repo.Update(ctx, balance); err != nil {
		return nil, mapRepositoryError(err)
	}
	return balance, nil
}

// Consume turns reserved days into used days and records a DEDUCT adjustment
// pointing at the approved request.
func (l *ledger) Consume(ctx context.Context, mv Movement, leaveRequestID, actorID, reason string) (*LeaveBalance, error) {
	empID, err := parseEmployeeID(mv.EmployeeID)
	if err != nil {
		return nil, err
	}
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return nil, leavebalanceerrors.ErrInvalidActorID
	}
	requestID, err := uuid.Parse(leaveRequestID)
	if err != nil {
		return nil, apperror.InvalidField("leave_request_id")
	}

	balance, err := l.lockOrCreate(ctx, empID, mv.Year, mv.LeaveType, false)
	if err != nil {
		return nil, err
	}

	before := balance.Available
	balance.Pending = floorZero(balance.Pending.Sub(mv.Days))
	balance.Used = balance.Used.Add(mv.Days)
	balance.Recompute()

	if l.policy.RejectsInsufficient() && balance.Available.IsNegative() && balance.Available.LessThan(before) {
		return nil, insufficient(mv, before)
	}

	if err := l.repo.Update(ctx, balance); err != nil {
		return nil, mapRepositoryError(err)
	}

	if err := l.repo.CreateAdjustment(ctx, &LeaveBalanceAdjustment{
		ID:             uuid.New(),
		EmployeeID:     empID,
		LeaveType:      mv.LeaveType,
		Year:           mv.Year,
		AdjustmentType: AdjustmentDeduct,
		Days:           mv.Days,
		Reason:         reason,
		AdjustedBy:     actor,
		LeaveRequestID: &requestID,
	}); err != nil {
		return nil, mapRepositoryError(err)
	}

	return balance, nil
}

func (l *ledger) Adjust(ctx context.Context, in AdjustInput) (*LeaveBalance, *LeaveBalanceAdjustment, error) {
	logger := contextutil.GetLogger(ctx, l.logger)

	empID, actor, err := l.validateAdjust(&in)
	if err != nil {
		logger.Warn("leave balance adjustment rejected", zap.String("employee_id", in.EmployeeID), zap.Error(err))
		return nil, nil, err
	}

	var balance *LeaveBalance
	switch in.AdjustmentType {
	case AdjustmentAdd, AdjustmentDeduct:
		balance, err = l.repo.FindForUpdate(ctx, in.EmployeeID, in.Year, in.LeaveType)
		if err != nil {
			return nil, nil, mapRepositoryError(err)
		}
	default:
		balance, err = l.lockOrCreate(ctx, empID, in.Year, in.LeaveType, true)
		if err != nil {
			return nil, nil, err
		}
	}

	switch in.AdjustmentType {
	case AdjustmentAdd:
		balance.TotalAllowed = balance.TotalAllowed.Add(in.Days)
	case AdjustmentDeduct:
		balance.Used = balance.Used.Add(in.Days)
	case AdjustmentSet:
		balance.TotalAllowed = in.Days
	case AdjustmentCarryForward:
		balance.CarriedForward = in.Days
	}
	balance.Recompute()

	if err := l.repo.Update(ctx, balance); err != nil {
		return nil, nil, mapRepositoryError(err)
	}

	adj := &LeaveBalanceAdjustment{
		ID:             uuid.New(),
		EmployeeID:     empID,
		LeaveType:      in.LeaveType,
		Year:           in.Year,
		AdjustmentType: in.AdjustmentType,
		Days:           in.Days,
		Reason:         in.Reason,
		AdjustedBy:     actor,
	}
	if err := l.repo.CreateAdjustment(ctx, adj); err != nil {
		return nil, nil, mapRepositoryError(err)
	}

	logger.Info("leave balance adjusted",
		zap.String("employee_id", in.EmployeeID),
		zap.String("leave_type", in.LeaveType),
		zap.String("adjustment_type", in.AdjustmentType),
		zap.String("days", in.Days.String()),
	)
	return balance, adj, nil
}

// RecomputePending rebuilds pending from the employee's open requests. It
// repairs drift in the incrementally maintained figure.
func (l *ledger) RecomputePending(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error) {
	empID, err := parseEmployeeID(employeeID)
	if err != nil {
		return nil, err
	}

	balances, err := l.GetOrInitialize(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	sums, err := l.repo.SumActiveRequestDays(ctx, employeeID, year)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	known := make(map[string]bool, len(balances))
	for _, b := range balances {
		known[b.LeaveType] = true
	}
	var missing []LeaveBalance
	for leaveType := range sums {
		if !known[leaveType] {
			missing = append(missing, newBalance(empID, year, leaveType, decimal.Zero))
		}
	}
	if len(missing) > 0 {
		if err := l.repo.CreateIfAbsent(ctx, missing); err != nil {
			return nil, mapRepositoryError(err)
		}
		if balances, err = l.repo.FindByEmployeeYear(ctx, employeeID, year); err != nil {
			return nil, mapRepositoryError(err)
		}
	}

	out := make([]LeaveBalance, 0, len(balances))
	for _, b := range balances {
		locked, err := l.repo.FindForUpdate(ctx, employeeID, year, b.LeaveType)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		locked.Pending = decimal.NewFromInt(sums[b.LeaveType])
		locked.Recompute()
		if err := l.repo.Update(ctx, locked); err != nil {
			return nil, mapRepositoryError(err)
		}
		out = append(out, *locked)
	}

	contextutil.GetLogger(ctx, l.logger).Info("leave pending recomputed",
		zap.String("employee_id", employeeID),
		zap.Int("year", year),
		zap.Int("rows", len(out)),
	)
	return out, nil
}

// lockOrCreate locks the row, creating it when absent. withDefaults seeds the
// whole year from the policy; otherwise only a zero-allowance row is added.
func (l *ledger) lockOrCreate(ctx context.Context, empID uuid.UUID, year int, leaveType string, withDefaults bool) (*LeaveBalance, error) {
	balance, err := l.repo.FindForUpdate(ctx, empID.String(), year, leaveType)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, mapRepositoryError(err)
	}

	var rows []LeaveBalance
	if withDefaults {
		rows = l.defaultBalances(empID, year)
	}
	if !withDefaults || !l.policy.Defines(leaveType) {
		rows = append(rows, newBalance(empID, year, leaveType, decimal.Zero))
	}
	if err := l.repo.CreateIfAbsent(ctx, rows); err != nil {
		return nil, mapRepositoryError(err)
	}

	balance, err = l.repo.FindForUpdate(ctx, empID.String(), year, leaveType)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return balance, nil
}

func (l *ledger) coversPolicy(balances []LeaveBalance) bool {
	have := make(map[string]bool, len(balances))
	for _, b := range balances {
		have[b.LeaveType] = true
	}
	for _, lt := range l.policy.LeaveTypes {
		if !have[lt.Code] {
			return false
		}
	}
	return true
}

func (l *ledger) defaultBalances(empID uuid.UUID, year int) []LeaveBalance {
	rows := make([]LeaveBalance, 0, len(l.policy.LeaveTypes))
	for _, lt := range l.policy.LeaveTypes {
		allowed, _ := l.policy.Allowance(lt.Code)
		rows = append(rows, newBalance(empID, year, lt.Code, allowed))
	}
	return rows
}

func (l *ledger) validateAdjust(in *AdjustInput) (uuid.UUID, uuid.UUID, error) {
	empID, err := parseEmployeeID(in.EmployeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	actor, err := uuid.Parse(in.ActorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, leavebalanceerrors.ErrInvalidActorID
	}
	if !ValidYear(in.Year) {
		return uuid.Nil, uuid.Nil, leavebalanceerrors.ErrInvalidYear
	}

	in.LeaveType = strings.ToUpper(strings.TrimSpace(in.LeaveType))
	if !l.policy.Defines(in.LeaveType) {
		return uuid.Nil, uuid.Nil, leavebalanceerrors.ErrUnknownLeaveType
	}

	in.AdjustmentType = strings.ToUpper(strings.TrimSpace(in.AdjustmentType))
	switch in.AdjustmentType {
	case AdjustmentAdd, AdjustmentDeduct:
		if !in.Days.IsPositive() {
			return uuid.Nil, uuid.Nil, leavebalanceerrors.ErrDaysMustBePositive
		}
	case AdjustmentSet, AdjustmentCarryForward:
		if in.Days.IsNegative() {
			return uuid.Nil, uuid.Nil, leavebalanceerrors.ErrDaysMustNotBeNegative
		}
	default:
		return uuid.Nil, uuid.Nil, leavebalanceerrors.ErrInvalidAdjustmentType
	}

	in.Reason = strings.TrimSpace(in.Reason)
	if in.Reason == "" {
		return uuid.Nil, uuid.Nil, leavebalanceerrors.ErrReasonRequired
	}
	return empID, actor, nil
}

func insufficient(mv Movement, available decimal.Decimal) error {
	return leavebalanceerrors.ErrInsufficientBalance.WithDetails(map[string]any{
		"leave_type": mv.LeaveType,
		"year":       mv.Year,
		"available":  available.InexactFloat64(),
		"requested":  mv.Days.InexactFloat64(),
	})
}

func parseEmployeeID(employeeID string) (uuid.UUID, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return uuid.Nil, leavebalanceerrors.ErrInvalidEmployeeID
	}
	return id, nil
}

// ValidYear bounds the balance years the ledger accepts.
func ValidYear(year int) bool {
	return year >= 2000 && year <= 2100
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
