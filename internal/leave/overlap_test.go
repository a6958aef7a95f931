package leave_test

import (
	"testing"
	"time"

	"lucia-hrms/internal/leave"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd string
		bStart, bEnd string
		want         bool
	}{
		{"identical", "2025-03-10", "2025-03-14", "2025-03-10", "2025-03-14", true},
		{"shared last day", "2025-03-10", "2025-03-14", "2025-03-14", "2025-03-20", true},
		{"shared first day", "2025-03-10", "2025-03-14", "2025-03-01", "2025-03-10", true},
		{"contained", "2025-03-10", "2025-03-20", "2025-03-12", "2025-03-13", true},
		{"single day inside", "2025-03-10", "2025-03-14", "2025-03-12", "2025-03-12", true},
		{"adjacent after", "2025-03-10", "2025-03-14", "2025-03-15", "2025-03-16", false},
		{"adjacent before", "2025-03-10", "2025-03-14", "2025-03-08", "2025-03-09", false},
		{"far apart", "2025-01-01", "2025-01-02", "2025-12-01", "2025-12-02", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, leave.RangesOverlap(date(tt.aStart), date(tt.aEnd), date(tt.bStart), date(tt.bEnd)))
			assert.Equal(t, tt.want, leave.RangesOverlap(date(tt.bStart), date(tt.bEnd), date(tt.aStart), date(tt.aEnd)), "symmetric")
		})
	}
}

func TestHasOverlap(t *testing.T) {
	existing := func(status string) []leave.LeaveRequest {
		return []leave.LeaveRequest{{Status: status, StartDate: date("2025-03-10"), EndDate: date("2025-03-14")}}
	}

	for _, status := range []string{leave.StatusPending, leave.StatusPrimaryApproved, leave.StatusFinalApproved} {
		assert.True(t, leave.HasOverlap(existing(status), date("2025-03-12"), date("2025-03-18")), status)
	}
	for _, status := range []string{leave.StatusPrimaryRejected, leave.StatusFinalRejected} {
		assert.False(t, leave.HasOverlap(existing(status), date("2025-03-12"), date("2025-03-18")), status)
	}
	assert.False(t, leave.HasOverlap(nil, date("2025-03-12"), date("2025-03-18")))
	assert.False(t, leave.HasOverlap(existing(leave.StatusPending), date("2025-03-15"), date("2025-03-18")))
}

func TestInclusiveDays(t *testing.T) {
	assert.Equal(t, 1, leave.InclusiveDays(date("2025-03-10"), date("2025-03-10")))
	assert.Equal(t, 5, leave.InclusiveDays(date("2025-03-10"), date("2025-03-14")))
	assert.Equal(t, 3, leave.InclusiveDays(date("2024-02-28"), date("2024-03-01")))
	assert.Equal(t, 2, leave.InclusiveDays(date("2025-12-31"), date("2026-01-01")))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, leave.IsTerminal(leave.StatusPending))
	assert.False(t, leave.IsTerminal(leave.StatusPrimaryApproved))
	assert.True(t, leave.IsTerminal(leave.StatusPrimaryRejected))
	assert.True(t, leave.IsTerminal(leave.StatusFinalApproved))
	assert.True(t, leave.IsTerminal(leave.StatusFinalRejected))
}
