// Package leavetest provides an in-memory leave.Repository for tests that
// drive the request lifecycle without a database.
package leavetest

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"lucia-hrms/internal/authz"
	"lucia-hrms/internal/leave"

	"gorm.io/gorm"
)

var priorityRank = map[string]int{
	leave.PriorityUrgent: 0,
	leave.PriorityHigh:   1,
	leave.PriorityMedium: 2,
	leave.PriorityLow:    3,
}

type MemoryRepository struct {
	mu       sync.Mutex
	requests map[string]leave.LeaveRequest
	order    []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{requests: make(map[string]leave.LeaveRequest)}
}

func (r *MemoryRepository) WithTx(*sql.Tx) leave.Repository {
	return r
}

func (r *MemoryRepository) LockEmployee(context.Context, string) error {
	return nil
}

func (r *MemoryRepository) Create(_ context.Context, req *leave.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	r.requests[req.ID.String()] = *req
	r.order = append(r.order, req.ID.String())
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &req, nil
}

func (r *MemoryRepository) FindVisible(_ context.Context, auth authz.Context, filter leave.ListFilter) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []leave.LeaveRequest
	for i := len(r.order) - 1; i >= 0; i-- {
		req := r.requests[r.order[i]]
		if !auth.CanActFor(req.EmployeeID.String(), req.BranchID.String()) {
			continue
		}
		if filter.EmployeeID != "" && req.EmployeeID.String() != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		if filter.LeaveType != "" && req.LeaveType != filter.LeaveType {
			continue
		}
		if filter.Year != 0 && req.StartDate.Year() != filter.Year {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (r *MemoryRepository) FindBlockingInRange(_ context.Context, employeeID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []leave.LeaveRequest
	for _, id := range r.order {
		req := r.requests[id]
		if req.EmployeeID.String() == employeeID && leave.IsBlocking(req.Status) &&
			leave.RangesOverlap(req.StartDate, req.EndDate, start, end) {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *MemoryRepository) FindQueue(_ context.Context, filter leave.QueueFilter) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []leave.LeaveRequest
	for _, id := range r.order {
		req := r.requests[id]
		if req.Status != filter.Status {
			continue
		}
		if filter.BranchID != "" && req.BranchID.String() != filter.BranchID {
			continue
		}
		if filter.Priority != "" && req.Priority != filter.Priority {
			continue
		}
		out = append(out, req)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return priorityRank[out[i].Priority] < priorityRank[out[j].Priority]
	})
	return out, nil
}

func (r *MemoryRepository) Transition(_ context.Context, req *leave.LeaveRequest, fromStatus string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.requests[req.ID.String()]
	if !ok || stored.Status != fromStatus {
		return false, nil
	}
	req.UpdatedAt = time.Now()
	r.requests[req.ID.String()] = *req
	return true, nil
}
