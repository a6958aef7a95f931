package leave

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"lucia-hrms/internal/activity"
	"lucia-hrms/internal/authz"
	"lucia-hrms/internal/directory"
	"lucia-hrms/internal/events"
	leaveerrors "lucia-hrms/internal/leave/errors"
	"lucia-hrms/internal/leavebalance"
	"lucia-hrms/internal/shared/apperror"
	"lucia-hrms/internal/shared/contextutil"
	"lucia-hrms/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	requestNumberCounter = "leave_request_number"
	maxRequestDays       = 366
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, auth authz.Context, req SubmitLeaveRequest) (SubmitLeaveResponse, error)
	List(ctx context.Context, auth authz.Context, filter ListFilter) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, auth authz.Context, id string) (LeaveRequestResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	counter   counter.Repository
	ledger    leavebalance.Ledger
	directory directory.Service
	recorder  activity.Recorder
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	ledger leavebalance.Ledger,
	dir directory.Service,
	recorder activity.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		counter:   counterRepo,
		ledger:    ledger,
		directory: dir,
		recorder:  recorder,
		now:       time.Now,
		logger:    l,
	}
}

type submission struct {
	actorID    uuid.UUID
	employeeID uuid.UUID
	leaveType  string
	priority   string
	startDate  time.Time
	endDate    time.Time
	totalDays  int
	reason     string
}

func (s *service) Submit(ctx context.Context, auth authz.Context, req SubmitLeaveRequest) (SubmitLeaveResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Debug("submit leave requested",
		zap.String("actor_id", auth.CallerID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	sub, err := s.validateSubmit(auth, req)
	if err != nil {
		logger.Warn("submit leave validation failed", zap.Error(err))
		return SubmitLeaveResponse{}, err
	}

	ref, err := directory.Authorize(ctx, s.directory, auth, sub.employeeID.String())
	if err != nil {
		logger.Warn("submit leave not permitted",
			zap.String("actor_id", auth.CallerID),
			zap.String("employee_id", sub.employeeID.String()),
			zap.Error(err),
		)
		return SubmitLeaveResponse{}, err
	}
	branchID, err := uuid.Parse(ref.BranchID)
	if err != nil {
		return SubmitLeaveResponse{}, apperror.InvalidField("branch_id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("submit leave begin tx failed", zap.Error(err))
		return SubmitLeaveResponse{}, apperror.Storage(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.LockEmployee(ctx, sub.employeeID.String()); err != nil {
		logger.Error("submit leave lock failed", zap.Error(err))
		return SubmitLeaveResponse{}, MapRepositoryError(err)
	}

	existing, err := qtx.FindBlockingInRange(ctx, sub.employeeID.String(), sub.startDate, sub.endDate)
	if err != nil {
		logger.Error("submit leave overlap check failed", zap.Error(err))
		return SubmitLeaveResponse{}, MapRepositoryError(err)
	}
	if conflicts := Overlapping(existing, sub.startDate, sub.endDate); len(conflicts) > 0 {
		numbers := make([]string, 0, len(conflicts))
		for _, c := range conflicts {
			numbers = append(numbers, c.RequestNumber)
		}
		logger.Warn("submit leave overlap detected",
			zap.String("employee_id", sub.employeeID.String()),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
			zap.Strings("conflicting_requests", numbers),
		)
		return SubmitLeaveResponse{}, leaveerrors.ErrOverlappingRequest.WithDetails(map[string]any{
			"conflicting_requests": numbers,
		})
	}

	balance, err := s.ledger.WithTx(tx).Reserve(ctx, leavebalance.Movement{
		EmployeeID: sub.employeeID.String(),
		Year:       sub.startDate.Year(),
		LeaveType:  sub.leaveType,
		Days:       decimal.NewFromInt(int64(sub.totalDays)),
	})
	if err != nil {
		logger.Warn("submit leave reservation failed", zap.Error(err))
		return SubmitLeaveResponse{}, err
	}

	number, err := s.nextRequestNumber(ctx, tx)
	if err != nil {
		logger.Error("submit leave numbering failed", zap.Error(err))
		return SubmitLeaveResponse{}, apperror.Storage(err)
	}

	l := &LeaveRequest{
		ID:                   uuid.New(),
		RequestNumber:        number,
		EmployeeID:           sub.employeeID,
		BranchID:             branchID,
		LeaveType:            sub.leaveType,
		Priority:             sub.priority,
		StartDate:            sub.startDate,
		EndDate:              sub.endDate,
		TotalDays:            sub.totalDays,
		Reason:               sub.reason,
		AttachmentURL:        req.AttachmentURL,
		Status:               StatusPending,
		CurrentApprovalLevel: LevelPrimary,
		CreatedBy:            sub.actorID,
	}

	if err := qtx.Create(ctx, l); err != nil {
		logger.Error("submit leave persist failed", zap.Error(err))
		return SubmitLeaveResponse{}, MapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("submit leave commit failed", zap.Error(err))
		return SubmitLeaveResponse{}, MapRepositoryError(err)
	}
	logger.Info("submit leave success",
		zap.String("leave_request_id", l.ID.String()),
		zap.String("request_number", l.RequestNumber),
		zap.String("employee_id", l.EmployeeID.String()),
		zap.Int("total_days", l.TotalDays),
	)

	s.recorder.Record(ctx, events.LeaveActivityEvent{
		Action:     events.ActionLeaveSubmitted,
		EntityType: events.EntityLeaveRequest,
		EntityID:   l.ID.String(),
		ActorID:    auth.CallerID,
		ActorRole:  string(auth.Role),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		Days:       decimal.NewFromInt(int64(l.TotalDays)),
		Status:     l.Status,
	})

	return SubmitLeaveResponse{
		LeaveRequestResponse: MapToResponse(*l),
		AvailableDays:        balance.Available.InexactFloat64(),
	}, nil
}

func (s *service) List(ctx context.Context, auth authz.Context, filter ListFilter) ([]LeaveRequestResponse, error) {
	filter.Status = strings.ToUpper(strings.TrimSpace(filter.Status))
	filter.LeaveType = strings.ToUpper(strings.TrimSpace(filter.LeaveType))
	if filter.Status != "" && !IsKnownStatus(filter.Status) {
		return nil, leaveerrors.ErrInvalidStatus
	}

	requests, err := s.repo.FindVisible(ctx, auth, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list leave requests failed", zap.Error(err))
		return nil, MapRepositoryError(err)
	}
	return MapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, auth authz.Context, id string) (LeaveRequestResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidLeaveRequestID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, MapRepositoryError(err)
	}
	if !auth.CanActFor(l.EmployeeID.String(), l.BranchID.String()) {
		return LeaveRequestResponse{}, apperror.ErrForbidden
	}
	return MapToResponse(*l), nil
}

func (s *service) validateSubmit(auth authz.Context, req SubmitLeaveRequest) (submission, error) {
	var sub submission

	actorID, err := uuid.Parse(auth.CallerID)
	if err != nil {
		return sub, leaveerrors.ErrInvalidActorID
	}
	sub.actorID = actorID

	employeeID := strings.TrimSpace(req.EmployeeID)
	if employeeID == "" {
		employeeID = auth.CallerID
	}
	if sub.employeeID, err = uuid.Parse(employeeID); err != nil {
		return sub, leaveerrors.ErrInvalidEmployeeID
	}

	sub.leaveType = strings.ToUpper(strings.TrimSpace(req.LeaveType))
	if !s.ledger.Policy().Defines(sub.leaveType) {
		return sub, leaveerrors.ErrUnknownLeaveType
	}

	sub.priority = strings.ToUpper(strings.TrimSpace(req.Priority))
	if sub.priority == "" {
		sub.priority = PriorityMedium
	}
	if !IsKnownPriority(sub.priority) {
		return sub, leaveerrors.ErrInvalidPriority
	}

	sub.reason = strings.TrimSpace(req.Reason)
	if sub.reason == "" {
		return sub, leaveerrors.ErrReasonRequired
	}

	sub.startDate, sub.endDate, err = parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return sub, err
	}
	sub.totalDays = InclusiveDays(sub.startDate, sub.endDate)

	return sub, nil
}

func (s *service) nextRequestNumber(ctx context.Context, tx *sql.Tx) (string, error) {
	year := s.now().Year()
	seq, err := s.counter.WithTx(tx).GetNextValue(ctx, fmt.Sprintf("%d", year), requestNumberCounter)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("LV-%d-%06d", year, seq), nil
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(dateLayout, strings.TrimSpace(start))
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := time.Parse(dateLayout, strings.TrimSpace(end))
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	if !leavebalance.ValidYear(startDate.Year()) || !leavebalance.ValidYear(endDate.Year()) {
		return time.Time{}, time.Time{}, leaveerrors.ErrDateOutOfRange
	}
	if InclusiveDays(startDate, endDate) > maxRequestDays {
		return time.Time{}, time.Time{}, leaveerrors.ErrRangeTooLong
	}
	return startDate, endDate, nil
}

// InclusiveDays counts calendar days in [start, end].
func InclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func IsKnownPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func IsKnownStatus(status string) bool {
	switch status {
	case StatusPending, StatusPrimaryApproved, StatusPrimaryRejected, StatusFinalApproved, StatusFinalRejected:
		return true
	}
	return false
}
