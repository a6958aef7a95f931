package domain

const (
	ResourceLeaveRequest  = "leave_request"
	ResourceLeaveBalance  = "leave_balance"
	ResourceLeaveApproval = "leave_approval"

	ActionCreate    = "create"
	ActionRead      = "read"
	ActionAdjust    = "adjust"
	ActionRecompute = "recompute"
	ActionPrimary   = "primary"
	ActionFinal     = "final"
)

type EnforceRequest struct {
	Role     string `json:"role"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type PermissionResponse struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}
