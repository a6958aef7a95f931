package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const LeaveActivityTopic = "hr.leave.activity.v1"

const (
	ActionLeaveSubmitted         = "LEAVE_SUBMITTED"
	ActionLeavePrimaryApproved   = "LEAVE_PRIMARY_APPROVED"
	ActionLeavePrimaryRejected   = "LEAVE_PRIMARY_REJECTED"
	ActionLeaveFinalApproved     = "LEAVE_FINAL_APPROVED"
	ActionLeaveFinalRejected     = "LEAVE_FINAL_REJECTED"
	ActionLeaveBalanceAdjusted   = "LEAVE_BALANCE_ADJUSTED"
	ActionLeavePendingRecomputed = "LEAVE_PENDING_RECOMPUTED"
)

const (
	EntityLeaveRequest = "leave_request"
	EntityLeaveBalance = "leave_balance"
)

// LeaveActivityEvent is emitted after every committed leave state change. It
// carries enough for an audit trail or a notifier.
type LeaveActivityEvent struct {
	EventType  string          `json:"event_type"`
	RequestID  string          `json:"request_id,omitempty"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	ActorID    string          `json:"actor_id"`
	ActorRole  string          `json:"actor_role,omitempty"`
	EmployeeID string          `json:"employee_id"`
	LeaveType  string          `json:"leave_type,omitempty"`
	Days       decimal.Decimal `json:"days"`
	Status     string          `json:"status,omitempty"`
	Comments   string          `json:"comments,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}
