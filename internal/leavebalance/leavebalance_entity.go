package leavebalance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AdjustmentAdd          = "ADD"
	AdjustmentDeduct       = "DEDUCT"
	AdjustmentSet          = "SET"
	AdjustmentCarryForward = "CARRY_FORWARD"
)

type LeaveBalance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_employee_year_type"`
	Year       int       `gorm:"not null;uniqueIndex:uq_leave_balances_employee_year_type"`
	LeaveType  string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_leave_balances_employee_year_type"`

	TotalAllowed   decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	Used           decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	Pending        decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	CarriedForward decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	Available      decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

// Recompute is the only place Available is written.
func (b *LeaveBalance) Recompute() {
	b.Available = b.TotalAllowed.Add(b.CarriedForward).Sub(b.Used).Sub(b.Pending)
}

func newBalance(employeeID uuid.UUID, year int, leaveType string, allowed decimal.Decimal) LeaveBalance {
	b := LeaveBalance{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		Year:         year,
		LeaveType:    leaveType,
		TotalAllowed: allowed,
	}
	b.Recompute()
	return b
}

// LeaveBalanceAdjustment is append-only.
type LeaveBalanceAdjustment struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_leave_balance_adjustments_employee_year"`
	LeaveType      string          `gorm:"type:varchar(30);not null"`
	Year           int             `gorm:"not null;index:idx_leave_balance_adjustments_employee_year"`
	AdjustmentType string          `gorm:"type:varchar(20);not null"`
	Days           decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	Reason         string          `gorm:"type:text;not null"`
	AdjustedBy     uuid.UUID       `gorm:"type:uuid;not null"`
	LeaveRequestID *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt      time.Time
}

func (LeaveBalanceAdjustment) TableName() string {
	return "leave_balance_adjustments"
}
