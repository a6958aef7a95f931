// Package leavebalancetest provides an in-memory leavebalance.Repository for
// tests that exercise the ledger without a database.
package leavebalancetest

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"lucia-hrms/internal/leavebalance"

	"gorm.io/gorm"
)

type MemoryRepository struct {
	mu          sync.Mutex
	balances    map[string]leavebalance.LeaveBalance
	adjustments []leavebalance.LeaveBalanceAdjustment

	// ActiveDays backs SumActiveRequestDays, keyed by employee id then
	// leave type.
	ActiveDays map[string]map[string]int64

	// Inserts counts rows actually created by CreateIfAbsent.
	Inserts int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		balances:   make(map[string]leavebalance.LeaveBalance),
		ActiveDays: make(map[string]map[string]int64),
	}
}

func key(employeeID string, year int, leaveType string) string {
	return fmt.Sprintf("%s|%d|%s", employeeID, year, leaveType)
}

func (r *MemoryRepository) WithTx(*sql.Tx) leavebalance.Repository {
	return r
}

func (r *MemoryRepository) FindByEmployeeYear(_ context.Context, employeeID string, year int) ([]leavebalance.LeaveBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []leavebalance.LeaveBalance
	for _, b := range r.balances {
		if b.EmployeeID.String() == employeeID && b.Year == year {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LeaveType < out[j].LeaveType })
	return out, nil
}

func (r *MemoryRepository) FindForUpdate(_ context.Context, employeeID string, year int, leaveType string) (*leavebalance.LeaveBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.balances[key(employeeID, year, leaveType)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (r *MemoryRepository) CreateIfAbsent(_ context.Context, balances []leavebalance.LeaveBalance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range balances {
		k := key(b.EmployeeID.String(), b.Year, b.LeaveType)
		if _, exists := r.balances[k]; exists {
			continue
		}
		b.CreatedAt = time.Now()
		b.UpdatedAt = b.CreatedAt
		r.balances[k] = b
		r.Inserts++
	}
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, balance *leavebalance.LeaveBalance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(balance.EmployeeID.String(), balance.Year, balance.LeaveType)
	if _, ok := r.balances[k]; !ok {
		return gorm.ErrRecordNotFound
	}
	balance.UpdatedAt = time.Now()
	r.balances[k] = *balance
	return nil
}

func (r *MemoryRepository) CreateAdjustment(_ context.Context, adj *leavebalance.LeaveBalanceAdjustment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	adj.CreatedAt = time.Now()
	r.adjustments = append(r.adjustments, *adj)
	return nil
}

func (r *MemoryRepository) ListAdjustments(_ context.Context, employeeID string, year int) ([]leavebalance.LeaveBalanceAdjustment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []leavebalance.LeaveBalanceAdjustment
	for i := len(r.adjustments) - 1; i >= 0; i-- {
		a := r.adjustments[i]
		if a.EmployeeID.String() == employeeID && a.Year == year {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *MemoryRepository) SumActiveRequestDays(_ context.Context, employeeID string, _ int) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]int64)
	for leaveType, days := range r.ActiveDays[employeeID] {
		out[leaveType] = days
	}
	return out, nil
}

// Balance returns the stored row, or false when none exists.
func (r *MemoryRepository) Balance(employeeID string, year int, leaveType string) (leavebalance.LeaveBalance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.balances[key(employeeID, year, leaveType)]
	return b, ok
}

func (r *MemoryRepository) Adjustments() []leavebalance.LeaveBalanceAdjustment {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]leavebalance.LeaveBalanceAdjustment(nil), r.adjustments...)
}
