package leave

import "time"

const dateLayout = "2006-01-02"

type SubmitLeaveRequest struct {
	EmployeeID    string  `json:"employee_id" binding:"omitempty,uuid"`
	LeaveType     string  `json:"leave_type" binding:"required"`
	Priority      string  `json:"priority"`
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       string  `json:"end_date" binding:"required"`
	Reason        string  `json:"reason" binding:"required"`
	AttachmentURL *string `json:"attachment_url" binding:"omitempty,url"`
}

type ListLeaveRequestsQuery struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status"`
	LeaveType  string `form:"leave_type"`
	Year       int    `form:"year" binding:"omitempty,gte=2000,lte=2100"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type LeaveRequestResponse struct {
	ID                   string     `json:"id"`
	RequestNumber        string     `json:"request_number"`
	EmployeeID           string     `json:"employee_id"`
	BranchID             string     `json:"branch_id"`
	LeaveType            string     `json:"leave_type"`
	Priority             string     `json:"priority"`
	StartDate            string     `json:"start_date"`
	EndDate              string     `json:"end_date"`
	TotalDays            int        `json:"total_days"`
	Reason               string     `json:"reason"`
	AttachmentURL        *string    `json:"attachment_url,omitempty"`
	Status               string     `json:"status"`
	CurrentApprovalLevel int        `json:"current_approval_level"`
	PrimaryApproverID    *string    `json:"primary_approver_id,omitempty"`
	PrimaryApprovedAt    *time.Time `json:"primary_approved_at,omitempty"`
	PrimaryComments      *string    `json:"primary_comments,omitempty"`
	FinalApproverID      *string    `json:"final_approver_id,omitempty"`
	FinalApprovedAt      *time.Time `json:"final_approved_at,omitempty"`
	FinalComments        *string    `json:"final_comments,omitempty"`
	RejectionReason      *string    `json:"rejection_reason,omitempty"`
	RejectedBy           *string    `json:"rejected_by,omitempty"`
	RejectedAt           *time.Time `json:"rejected_at,omitempty"`
	CreatedBy            string     `json:"created_by"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

type SubmitLeaveResponse struct {
	LeaveRequestResponse
	AvailableDays float64 `json:"available_days"`
}

func MapToResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:                   r.ID.String(),
		RequestNumber:        r.RequestNumber,
		EmployeeID:           r.EmployeeID.String(),
		BranchID:             r.BranchID.String(),
		LeaveType:            r.LeaveType,
		Priority:             r.Priority,
		StartDate:            r.StartDate.Format(dateLayout),
		EndDate:              r.EndDate.Format(dateLayout),
		TotalDays:            r.TotalDays,
		Reason:               r.Reason,
		AttachmentURL:        r.AttachmentURL,
		Status:               r.Status,
		CurrentApprovalLevel: r.CurrentApprovalLevel,
		PrimaryApprovedAt:    r.PrimaryApprovedAt,
		PrimaryComments:      r.PrimaryComments,
		FinalApprovedAt:      r.FinalApprovedAt,
		FinalComments:        r.FinalComments,
		RejectionReason:      r.RejectionReason,
		RejectedAt:           r.RejectedAt,
		CreatedBy:            r.CreatedBy.String(),
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
	if r.PrimaryApproverID != nil {
		v := r.PrimaryApproverID.String()
		resp.PrimaryApproverID = &v
	}
	if r.FinalApproverID != nil {
		v := r.FinalApproverID.String()
		resp.FinalApproverID = &v
	}
	if r.RejectedBy != nil {
		v := r.RejectedBy.String()
		resp.RejectedBy = &v
	}
	return resp
}

func MapToListResponse(requests []LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, MapToResponse(r))
	}
	return out
}
