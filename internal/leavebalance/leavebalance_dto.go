package leavebalance

import (
	"time"

	"github.com/shopspring/decimal"
)

type BalanceQuery struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Year       int    `form:"year" binding:"omitempty,gte=2000,lte=2100"`
}

type AdjustBalanceRequest struct {
	EmployeeID     string          `json:"employee_id" binding:"required,uuid"`
	Year           int             `json:"year" binding:"required,gte=2000,lte=2100"`
	LeaveType      string          `json:"leave_type" binding:"required"`
	AdjustmentType string          `json:"adjustment_type" binding:"required,oneof=ADD DEDUCT SET CARRY_FORWARD"`
	Days           decimal.Decimal `json:"days"`
	Reason         string          `json:"reason" binding:"required"`
}

type RecomputePendingRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Year       int    `json:"year" binding:"omitempty,gte=2000,lte=2100"`
}

type BalanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	Year           int     `json:"year"`
	LeaveType      string  `json:"leave_type"`
	TotalAllowed   float64 `json:"total_allowed"`
	Used           float64 `json:"used"`
	Pending        float64 `json:"pending"`
	CarriedForward float64 `json:"carried_forward"`
	Available      float64 `json:"available"`
}

type AdjustmentResponse struct {
	ID             string    `json:"id"`
	EmployeeID     string    `json:"employee_id"`
	LeaveType      string    `json:"leave_type"`
	Year           int       `json:"year"`
	AdjustmentType string    `json:"adjustment_type"`
	Days           float64   `json:"days"`
	Reason         string    `json:"reason"`
	AdjustedBy     string    `json:"adjusted_by"`
	LeaveRequestID *string   `json:"leave_request_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type AdjustBalanceResponse struct {
	Balance    BalanceResponse    `json:"balance"`
	Adjustment AdjustmentResponse `json:"adjustment"`
}

func mapToBalanceResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:             b.ID.String(),
		EmployeeID:     b.EmployeeID.String(),
		Year:           b.Year,
		LeaveType:      b.LeaveType,
		TotalAllowed:   b.TotalAllowed.InexactFloat64(),
		Used:           b.Used.InexactFloat64(),
		Pending:        b.Pending.InexactFloat64(),
		CarriedForward: b.CarriedForward.InexactFloat64(),
		Available:      b.Available.InexactFloat64(),
	}
}

func mapToBalanceResponses(balances []LeaveBalance) []BalanceResponse {
	out := make([]BalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, mapToBalanceResponse(b))
	}
	return out
}

func mapToAdjustmentResponse(a LeaveBalanceAdjustment) AdjustmentResponse {
	resp := AdjustmentResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		LeaveType:      a.LeaveType,
		Year:           a.Year,
		AdjustmentType: a.AdjustmentType,
		Days:           a.Days.InexactFloat64(),
		Reason:         a.Reason,
		AdjustedBy:     a.AdjustedBy.String(),
		CreatedAt:      a.CreatedAt,
	}
	if a.LeaveRequestID != nil {
		id := a.LeaveRequestID.String()
		resp.LeaveRequestID = &id
	}
	return resp
}
