package approval

import (
	"context"
	"net/http"

	"lucia-hrms/internal/authz"
	"lucia-hrms/internal/leave"
	"lucia-hrms/internal/middleware"
	"lucia-hrms/internal/shared/apperror"
	"lucia-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("approval.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("approval request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) PrimaryQueue(c *gin.Context) {
	auth, ok := middleware.GetAuthorization(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	var q QueueQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.service.PrimaryQueue(c.Request.Context(), auth, q.Priority)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, meta := response.Paginate(resp, q.Page, q.PageSize)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) FinalQueue(c *gin.Context) {
	auth, ok := middleware.GetAuthorization(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	var q QueueQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.service.FinalQueue(c.Request.Context(), auth, q.BranchID, q.Priority)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, meta := response.Paginate(resp, q.Page, q.PageSize)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) PrimaryDecision(c *gin.Context) {
	h.decide(c, h.service.PrimaryDecision)
}

func (h *Handler) FinalDecision(c *gin.Context) {
	h.decide(c, h.service.FinalDecision)
}

type decideFunc func(ctx context.Context, auth authz.Context, id string, req DecisionRequest) (leave.LeaveRequestResponse, error)

func (h *Handler) decide(c *gin.Context, fn decideFunc) {
	auth, ok := middleware.GetAuthorization(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http approval decision validation failed", zap.Error(err))
		response.BindError(c, err)
		return
	}

	resp, err := fn(c.Request.Context(), auth, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
