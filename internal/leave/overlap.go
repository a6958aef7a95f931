package leave

import "time"

// RangesOverlap reports whether two inclusive date ranges share a day.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

func IsBlocking(status string) bool {
	for _, s := range BlockingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Overlapping returns the blocking requests in existing that share a day
// with [start, end].
func Overlapping(existing []LeaveRequest, start, end time.Time) []LeaveRequest {
	var out []LeaveRequest
	for _, r := range existing {
		if IsBlocking(r.Status) && RangesOverlap(r.StartDate, r.EndDate, start, end) {
			out = append(out, r)
		}
	}
	return out
}

func HasOverlap(existing []LeaveRequest, start, end time.Time) bool {
	return len(Overlapping(existing, start, end)) > 0
}
