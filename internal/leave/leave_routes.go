package leave

import (
	"lucia-hrms/internal/domain"
	"lucia-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to already carry the auth middleware. writes run
// in front of the submit route only.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	writes ...gin.HandlerFunc,
) {
	requests := r.Group("/leave-requests")
	{
		requests.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveRequest, domain.ActionRead), handler.List)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveRequest, domain.ActionRead), handler.GetByID)

		mutations := requests.Group("", writes...)
		mutations.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveRequest, domain.ActionCreate), handler.Submit)
	}
}
