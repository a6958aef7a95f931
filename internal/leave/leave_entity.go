package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending         = "PENDING"
	StatusPrimaryApproved = "PRIMARY_APPROVED"
	StatusPrimaryRejected = "PRIMARY_REJECTED"
	StatusFinalApproved   = "FINAL_APPROVED"
	StatusFinalRejected   = "FINAL_REJECTED"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

const (
	LevelPrimary = 1
	LevelFinal   = 2
)

// BlockingStatuses are the states whose date range no other request of the
// same employee may overlap.
var BlockingStatuses = []string{StatusPending, StatusPrimaryApproved, StatusFinalApproved}

type LeaveRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestNumber string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_leave_requests_number"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;index"`
	BranchID      uuid.UUID `gorm:"type:uuid"`
	LeaveType     string    `gorm:"type:varchar(30);not null"`
	Priority      string    `gorm:"type:varchar(10);not null;default:MEDIUM"`
	StartDate     time.Time `gorm:"type:date;not null"`
	EndDate       time.Time `gorm:"type:date;not null"`
	TotalDays     int       `gorm:"not null"`
	Reason        string    `gorm:"type:text;not null"`
	AttachmentURL *string   `gorm:"type:text"`

	Status               string `gorm:"type:varchar(20);not null;default:PENDING"`
	CurrentApprovalLevel int    `gorm:"not null;default:1"`

	PrimaryApproverID *uuid.UUID `gorm:"type:uuid"`
	PrimaryApprovedAt *time.Time
	PrimaryComments   *string `gorm:"type:text"`

	FinalApproverID *uuid.UUID `gorm:"type:uuid"`
	FinalApprovedAt *time.Time
	FinalComments   *string `gorm:"type:text"`

	RejectionReason *string    `gorm:"type:text"`
	RejectedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectedAt      *time.Time

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// Year is the balance year the request is charged to.
func (r LeaveRequest) Year() int {
	return r.StartDate.Year()
}

func IsTerminal(status string) bool {
	return status == StatusPrimaryRejected || status == StatusFinalApproved || status == StatusFinalRejected
}
