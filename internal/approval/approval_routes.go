package approval

import (
	"lucia-hrms/internal/domain"
	"lucia-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to already carry the auth middleware. writes run
// in front of the decision routes only.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	writes ...gin.HandlerFunc,
) {
	primary := middleware.RBACAuthorize(rbacService, domain.ResourceLeaveApproval, domain.ActionPrimary)
	final := middleware.RBACAuthorize(rbacService, domain.ResourceLeaveApproval, domain.ActionFinal)

	approvals := r.Group("/leave-approvals")
	{
		approvals.GET("/primary", primary, handler.PrimaryQueue)
		approvals.GET("/final", final, handler.FinalQueue)

		decisions := approvals.Group("", writes...)
		decisions.POST("/:id/primary", primary, handler.PrimaryDecision)
		decisions.POST("/:id/final", final, handler.FinalDecision)
	}
}
