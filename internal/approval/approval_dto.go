package approval

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

type DecisionRequest struct {
	Action   string `json:"action" binding:"required"`
	Comments string `json:"comments"`
}

type QueueQuery struct {
	BranchID string `form:"branch_id" binding:"omitempty,uuid"`
	Priority string `form:"priority"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}
