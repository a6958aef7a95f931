package directory

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is the read-only slice of the employees table the leave engine
// depends on. The table is owned by the employee service.
type Employee struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FullName  string     `gorm:"column:full_name"`
	BranchID  uuid.UUID  `gorm:"type:uuid;column:branch_id"`
	TeamID    *uuid.UUID `gorm:"type:uuid;column:team_id"`
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeeRef is what other modules see of an employee. It is also the
// cached form.
type EmployeeRef struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	BranchID string `json:"branch_id"`
	TeamID   string `json:"team_id,omitempty"`
}

func toRef(e Employee) EmployeeRef {
	ref := EmployeeRef{
		ID:       e.ID.String(),
		FullName: e.FullName,
		BranchID: e.BranchID.String(),
	}
	if e.TeamID != nil {
		ref.TeamID = e.TeamID.String()
	}
	return ref
}
