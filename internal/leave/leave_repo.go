package leave

import (
	"context"
	"database/sql"
	"time"

	"lucia-hrms/internal/authz"
	"lucia-hrms/internal/shared/connection"
	"lucia-hrms/internal/tenant"

	"gorm.io/gorm"
)

const priorityOrder = `CASE priority WHEN 'URGENT' THEN 0 WHEN 'HIGH' THEN 1 WHEN 'MEDIUM' THEN 2 ELSE 3 END`

// transitionColumns are the columns a state transition may write.
var transitionColumns = []string{
	"status",
	"current_approval_level",
	"primary_approver_id",
	"primary_approved_at",
	"primary_comments",
	"final_approver_id",
	"final_approved_at",
	"final_comments",
	"rejection_reason",
	"rejected_by",
	"rejected_at",
	"updated_at",
}

type ListFilter struct {
	EmployeeID string
	Status     string
	LeaveType  string
	Year       int
}

type QueueFilter struct {
	Status   string
	BranchID string
	Priority string
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	LockEmployee(ctx context.Context, employeeID string) error
	Create(ctx context.Context, req *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindVisible(ctx context.Context, auth authz.Context, filter ListFilter) ([]LeaveRequest, error)
	FindBlockingInRange(ctx context.Context, employeeID string, start, end time.Time) ([]LeaveRequest, error)
	FindQueue(ctx context.Context, filter QueueFilter) ([]LeaveRequest, error)
	Transition(ctx context.Context, req *LeaveRequest, fromStatus string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// LockEmployee takes a transaction-scoped advisory lock so submissions for one
// employee run one at a time.
func (r *repository) LockEmployee(ctx context.Context, employeeID string) error {
	return connection.Bind(ctx, r.db, r.tx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", employeeID).Error
}

func (r *repository) Create(ctx context.Context, req *LeaveRequest) error {
	return connection.Bind(ctx, r.db, r.tx).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := connection.Bind(ctx, r.db, r.tx).
		Where("id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) FindVisible(ctx context.Context, auth authz.Context, filter ListFilter) ([]LeaveRequest, error) {
	var out []LeaveRequest

	q := connection.Bind(ctx, r.db, r.tx).
		Model(&LeaveRequest{}).
		Scopes(tenant.Visible(auth))

	if filter.EmployeeID != "" {
		q = q.Scopes(tenant.EmployeeScope(filter.EmployeeID))
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.LeaveType != "" {
		q = q.Where("leave_type = ?", filter.LeaveType)
	}
	if filter.Year != 0 {
		q = q.Where("EXTRACT(YEAR FROM start_date) = ?", filter.Year)
	}

	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *repository) FindBlockingInRange(ctx context.Context, employeeID string, start, end time.Time) ([]LeaveRequest, error) {
	var out []LeaveRequest
	err := connection.Bind(ctx, r.db, r.tx).
		Scopes(tenant.EmployeeScope(employeeID)).
		Where("status IN ?", BlockingStatuses).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Find(&out).Error
	return out, err
}

// FindQueue orders by priority, most urgent first, then oldest first.
func (r *repository) FindQueue(ctx context.Context, filter QueueFilter) ([]LeaveRequest, error) {
	var out []LeaveRequest

	q := connection.Bind(ctx, r.db, r.tx).
		Model(&LeaveRequest{}).
		Where("status = ?", filter.Status)

	if filter.BranchID != "" {
		q = q.Scopes(tenant.BranchScope(filter.BranchID))
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}

	err := q.Order(priorityOrder).Order("created_at ASC").Find(&out).Error
	return out, err
}

// Transition writes req only while the stored status still equals
// fromStatus. It reports false when another transaction got there first.
func (r *repository) Transition(ctx context.Context, req *LeaveRequest, fromStatus string) (bool, error) {
	req.UpdatedAt = time.Now()

	res := connection.Bind(ctx, r.db, r.tx).
		Model(req).
		Where("status = ?", fromStatus).
		Select(transitionColumns).
		Updates(req)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
