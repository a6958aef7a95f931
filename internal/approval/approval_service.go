package approval

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"lucia-hrms/internal/activity"
	approvalerrors "lucia-hrms/internal/approval/errors"
	"lucia-hrms/internal/authz"
	"lucia-hrms/internal/directory"
	"lucia-hrms/internal/events"
	"lucia-hrms/internal/leave"
	leaveerrors "lucia-hrms/internal/leave/errors"
	"lucia-hrms/internal/leavebalance"
	"lucia-hrms/internal/shared/apperror"
	"lucia-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service drives the two-level approval of leave requests. Primary decisions
// belong to the branch of the requesting employee, final decisions to the
// organization.
//
//go:generate mockgen -source=approval_service.go -destination=mock/approval_service_mock.go -package=mock
type Service interface {
	PrimaryQueue(ctx context.Context, auth authz.Context, priority string) ([]leave.LeaveRequestResponse, error)
	FinalQueue(ctx context.Context, auth authz.Context, branchID, priority string) ([]leave.LeaveRequestResponse, error)
	PrimaryDecision(ctx context.Context, auth authz.Context, id string, req DecisionRequest) (leave.LeaveRequestResponse, error)
	FinalDecision(ctx context.Context, auth authz.Context, id string, req DecisionRequest) (leave.LeaveRequestResponse, error)
}

type service struct {
	db        *sql.DB
	repo      leave.Repository
	ledger    leavebalance.Ledger
	directory directory.Service
	recorder  activity.Recorder
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo leave.Repository,
	ledger leavebalance.Ledger,
	dir directory.Service,
	recorder activity.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("approval.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		ledger:    ledger,
		directory: dir,
		recorder:  recorder,
		now:       time.Now,
		logger:    l,
	}
}

type decision struct {
	actorID  uuid.UUID
	approve  bool
	comments string
}

func (s *service) PrimaryQueue(ctx context.Context, auth authz.Context, priority string) ([]leave.LeaveRequestResponse, error) {
	if !auth.Role.IsBranchScoped() || auth.ScopedBranchID == "" {
		return nil, approvalerrors.ErrBranchRequired
	}
	return s.queue(ctx, leave.QueueFilter{
		Status:   leave.StatusPending,
		BranchID: auth.ScopedBranchID,
		Priority: priority,
	})
}

func (s *service) FinalQueue(ctx context.Context, auth authz.Context, branchID, priority string) ([]leave.LeaveRequestResponse, error) {
	if !auth.HasOrgAuthority() {
		return nil, apperror.ErrForbidden
	}
	return s.queue(ctx, leave.QueueFilter{
		Status:   leave.StatusPrimaryApproved,
		BranchID: branchID,
		Priority: priority,
	})
}

func (s *service) queue(ctx context.Context, filter leave.QueueFilter) ([]leave.LeaveRequestResponse, error) {
	filter.Priority = strings.ToUpper(strings.TrimSpace(filter.Priority))
	if filter.Priority != "" && !leave.IsKnownPriority(filter.Priority) {
		return nil, leaveerrors.ErrInvalidPriority
	}

	requests, err := s.repo.FindQueue(ctx, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("load approval queue failed", zap.String("status", filter.Status), zap.Error(err))
		return nil, leave.MapRepositoryError(err)
	}
	return leave.MapToListResponse(requests), nil
}

func (s *service) PrimaryDecision(ctx context.Context, auth authz.Context, id string, req DecisionRequest) (leave.LeaveRequestResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Debug("primary decision requested", zap.String("leave_request_id", id), zap.String("action", req.Action))

	d, err := parseDecision(auth, req)
	if err != nil {
		logger.Warn("primary decision validation failed", zap.Error(err))
		return leave.LeaveRequestResponse{}, err
	}
	if !auth.Role.IsBranchScoped() {
		return leave.LeaveRequestResponse{}, approvalerrors.ErrBranchRequired
	}

	l, err := s.load(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	// The employee may have moved branch since submitting; authority follows
	// the current assignment.
	ref, err := s.directory.Lookup(ctx, l.EmployeeID.String())
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !auth.HasBranchAuthority(ref.BranchID) {
		logger.Warn("primary decision forbidden",
			zap.String("leave_request_id", id),
			zap.String("caller_branch_id", auth.ScopedBranchID),
			zap.String("employee_branch_id", ref.BranchID),
		)
		return leave.LeaveRequestResponse{}, apperror.ErrForbidden
	}

	if l.Status != leave.StatusPending {
		return leave.LeaveRequestResponse{}, approvalerrors.ErrInvalidState
	}

	now := s.now()
	if d.approve {
		l.Status = leave.StatusPrimaryApproved
		l.CurrentApprovalLevel = leave.LevelFinal
		l.PrimaryApproverID = &d.actorID
		l.PrimaryApprovedAt = &now
		l.PrimaryComments = optional(d.comments)
	} else {
		l.Status = leave.StatusPrimaryRejected
		l.PrimaryComments = optional(d.comments)
		l.RejectionReason = optional(d.comments)
		l.RejectedBy = &d.actorID
		l.RejectedAt = &now
	}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.transition(ctx, tx, l, leave.StatusPending); err != nil {
			return err
		}
		if d.approve {
			return nil
		}
		_, err := s.ledger.WithTx(tx).Release(ctx, movement(*l))
		return err
	})
	if err != nil {
		logger.Warn("primary decision failed", zap.String("leave_request_id", id), zap.Error(err))
		return leave.LeaveRequestResponse{}, err
	}

	action := events.ActionLeavePrimaryApproved
	if !d.approve {
		action = events.ActionLeavePrimaryRejected
	}
	logger.Info("primary decision recorded", zap.String("leave_request_id", id), zap.String("status", l.Status))
	s.record(ctx, auth, action, *l, d.comments)

	return leave.MapToResponse(*l), nil
}

func (s *service) FinalDecision(ctx context.Context, auth authz.Context, id string, req DecisionRequest) (leave.LeaveRequestResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Debug("final decision requested", zap.String("leave_request_id", id), zap.String("action", req.Action))

	d, err := parseDecision(auth, req)
	if err != nil {
		logger.Warn("final decision validation failed", zap.Error(err))
		return leave.LeaveRequestResponse{}, err
	}
	if !auth.HasOrgAuthority() {
		return leave.LeaveRequestResponse{}, apperror.ErrForbidden
	}

	l, err := s.load(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if l.Status != leave.StatusPrimaryApproved {
		return leave.LeaveRequestResponse{}, approvalerrors.ErrInvalidState
	}

	now := s.now()
	if d.approve {
		l.Status = leave.StatusFinalApproved
		l.FinalApproverID = &d.actorID
		l.FinalApprovedAt = &now
		l.FinalComments = optional(d.comments)
	} else {
		l.Status = leave.StatusFinalRejected
		l.FinalComments = optional(d.comments)
		l.RejectionReason = optional(d.comments)
		l.RejectedBy = &d.actorID
		l.RejectedAt = &now
	}

	// The conditional transition runs first so a duplicate decision fails
	// before the balance is touched.
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.transition(ctx, tx, l, leave.StatusPrimaryApproved); err != nil {
			return err
		}
		ledger := s.ledger.WithTx(tx)
		if d.approve {
			reason := fmt.Sprintf("leave request %s approved", l.RequestNumber)
			_, err := ledger.Consume(ctx, movement(*l), l.ID.String(), d.actorID.String(), reason)
			return err
		}
		_, err := ledger.Release(ctx, movement(*l))
		return err
	})
	if err != nil {
		logger.Warn("final decision failed", zap.String("leave_request_id", id), zap.Error(err))
		return leave.LeaveRequestResponse{}, err
	}

	action := events.ActionLeaveFinalApproved
	if !d.approve {
		action = events.ActionLeaveFinalRejected
	}
	logger.Info("final decision recorded", zap.String("leave_request_id", id), zap.String("status", l.Status))
	s.record(ctx, auth, action, *l, d.comments)

	return leave.MapToResponse(*l), nil
}

func (s *service) load(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrInvalidLeaveRequestID
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, leave.MapRepositoryError(err)
	}
	return l, nil
}

func (s *service) transition(ctx context.Context, tx *sql.Tx, l *leave.LeaveRequest, from string) error {
	ok, err := s.repo.WithTx(tx).Transition(ctx, l, from)
	if err != nil {
		return leave.MapRepositoryError(err)
	}
	if !ok {
		return approvalerrors.ErrInvalidState
	}
	return nil
}

func (s *service) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Storage(err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperror.Storage(err)
	}
	return nil
}

func (s *service) record(ctx context.Context, auth authz.Context, action string, l leave.LeaveRequest, comments string) {
	s.recorder.Record(ctx, events.LeaveActivityEvent{
		Action:     action,
		EntityType: events.EntityLeaveRequest,
		EntityID:   l.ID.String(),
		ActorID:    auth.CallerID,
		ActorRole:  string(auth.Role),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		Days:       decimal.NewFromInt(int64(l.TotalDays)),
		Status:     l.Status,
		Comments:   comments,
	})
}

func parseDecision(auth authz.Context, req DecisionRequest) (decision, error) {
	var d decision

	actorID, err := uuid.Parse(auth.CallerID)
	if err != nil {
		return d, leaveerrors.ErrInvalidActorID
	}
	d.actorID = actorID
	d.comments = strings.TrimSpace(req.Comments)

	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case ActionApprove:
		d.approve = true
	case ActionReject:
		if d.comments == "" {
			return d, approvalerrors.ErrCommentsRequired
		}
	default:
		return d, approvalerrors.ErrInvalidAction
	}
	return d, nil
}

func movement(l leave.LeaveRequest) leavebalance.Movement {
	return leavebalance.Movement{
		EmployeeID: l.EmployeeID.String(),
		Year:       l.Year(),
		LeaveType:  l.LeaveType,
		Days:       decimal.NewFromInt(int64(l.TotalDays)),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
