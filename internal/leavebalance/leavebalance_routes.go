package leavebalance

import (
	"lucia-hrms/internal/domain"
	"lucia-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to already carry the auth middleware. writes run
// in front of the mutating routes only.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	writes ...gin.HandlerFunc,
) {
	balances := r.Group("/leave-balances")
	{
		balances.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveBalance, domain.ActionRead), handler.GetBalances)
		balances.GET("/adjustments", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveBalance, domain.ActionRead), handler.ListAdjustments)

		mutations := balances.Group("", writes...)
		mutations.POST("/adjust", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveBalance, domain.ActionAdjust), handler.Adjust)
		mutations.POST("/recompute", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveBalance, domain.ActionRecompute), handler.RecomputePending)
	}
}
