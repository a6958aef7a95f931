package leavebalance

import (
	"context"
	"database/sql"

	"lucia-hrms/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// activeRequestStatuses are the request states that hold pending days.
var activeRequestStatuses = []string{"PENDING", "PRIMARY_APPROVED"}

//go:generate mockgen -source=leavebalance_repo.go -destination=mock/leavebalance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	FindByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	FindForUpdate(ctx context.Context, employeeID string, year int, leaveType string) (*LeaveBalance, error)
	CreateIfAbsent(ctx context.Context, balances []LeaveBalance) error
	Update(ctx context.Context, balance *LeaveBalance) error

	CreateAdjustment(ctx context.Context, adj *LeaveBalanceAdjustment) error
	ListAdjustments(ctx context.Context, employeeID string, year int) ([]LeaveBalanceAdjustment, error)

	SumActiveRequestDays(ctx context.Context, employeeID string, year int) (map[string]int64, error)
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

func (r *repository) FindByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := connection.Bind(ctx, r.db, r.tx).
		Where("employee_id = ? AND year = ?", employeeID, year).
		Order("leave_type ASC").
		Find(&balances).Error
	return balances, err
}

// FindForUpdate row-locks the balance until the surrounding transaction ends.
func (r *repository) FindForUpdate(ctx context.Context, employeeID string, year int, leaveType string) (*LeaveBalance, error) {
	var balance LeaveBalance
	err := connection.Bind(ctx, r.db, r.tx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ? AND year = ? AND leave_type = ?", employeeID, year, leaveType).
		First(&balance).Error
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// CreateIfAbsent inserts rows that do not exist yet. Rows another transaction
// created first are left untouched, so callers must re-read afterwards.
func (r *repository) CreateIfAbsent(ctx context.Context, balances []LeaveBalance) error {
	if len(balances) == 0 {
		return nil
	}
	return connection.Bind(ctx, r.db, r.tx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "employee_id"},
				{Name: "year"},
				{Name: "leave_type"},
			},
			DoNothing: true,
		}).
		Create(&balances).Error
}

func (r *repository) Update(ctx context.Context, balance *LeaveBalance) error {
	return connection.Bind(ctx, r.db, r.tx).
		Model(balance).
		Select("total_allowed", "used", "pending", "carried_forward", "available", "updated_at").
		Updates(balance).Error
}

func (r *repository) CreateAdjustment(ctx context.Context, adj *LeaveBalanceAdjustment) error {
	return connection.Bind(ctx, r.db, r.tx).Create(adj).Error
}

func (r *repository) ListAdjustments(ctx context.Context, employeeID string, year int) ([]LeaveBalanceAdjustment, error) {
	var adjustments []LeaveBalanceAdjustment
	err := connection.Bind(ctx, r.db, r.tx).
		Where("employee_id = ? AND year = ?", employeeID, year).
		Order("created_at DESC").
		Find(&adjustments).Error
	return adjustments, err
}

type leaveTypeDays struct {
	LeaveType string
	Days      int64
}

// SumActiveRequestDays totals the days of requests still awaiting a final
// decision, keyed by leave type.
func (r *repository) SumActiveRequestDays(ctx context.Context, employeeID string, year int) (map[string]int64, error) {
	var rows []leaveTypeDays
	err := connection.Bind(ctx, r.db, r.tx).
		Table("leave_requests").
		Select("leave_type, COALESCE(SUM(total_days), 0) AS days").
		Where("employee_id = ? AND EXTRACT(YEAR FROM start_date) = ? AND status IN ?", employeeID, year, activeRequestStatuses).
		Group("leave_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.LeaveType] = row.Days
	}
	return out, nil
}
