package events

import "time"

// EmployeeLifecycleTopic is published by the employee service.
const EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

const (
	EmployeeCreated       = "employee_created"
	EmployeeUpdated       = "employee_updated"
	EmployeeBranchChanged = "employee_branch_changed"
)

type EmployeeLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	BranchID   string    `json:"branch_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
