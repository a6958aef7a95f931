package approval_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lucia-hrms/internal/approval"
	approvalerrors "lucia-hrms/internal/approval/errors"
	approvalMock "lucia-hrms/internal/approval/mock"
	"lucia-hrms/internal/authz"
	"lucia-hrms/internal/leave"
	"lucia-hrms/internal/middleware"
	"lucia-hrms/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type apiEnvelope struct {
	Ok   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
	Meta *struct {
		Total    int64 `json:"total"`
		Page     int   `json:"page"`
		PageSize int   `json:"pageSize"`
	} `json:"meta"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func newTestContext(method, target, body string, auth *authz.Context) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if auth != nil {
		middleware.SetAuthorization(c, *auth)
	}
	return c, w
}

func TestApprovalHandler_PrimaryQueue(t *testing.T) {
	auth := authz.Context{CallerID: uuid.NewString(), Role: authz.RoleBranchManager, ScopedBranchID: uuid.NewString()}

	t.Run("paginated", func(t *testing.T) {
		svc := approvalMock.NewMockService(gomock.NewController(t))
		svc.EXPECT().PrimaryQueue(gomock.Any(), auth, "URGENT").Return([]leave.LeaveRequestResponse{
			{ID: uuid.NewString()}, {ID: uuid.NewString()}, {ID: uuid.NewString()},
		}, nil)

		c, w := newTestContext(http.MethodGet, "/leave-approvals/primary?priority=URGENT&page=2&page_size=2", "", &auth)
		approval.NewHandler(svc).PrimaryQueue(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		require.NotNil(t, env.Meta)
		assert.Equal(t, int64(3), env.Meta.Total)
		var got []leave.LeaveRequestResponse
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 1)
	})

	t.Run("branch role required", func(t *testing.T) {
		svc := approvalMock.NewMockService(gomock.NewController(t))
		svc.EXPECT().PrimaryQueue(gomock.Any(), gomock.Any(), "").Return(nil, approvalerrors.ErrBranchRequired)

		c, w := newTestContext(http.MethodGet, "/leave-approvals/primary", "", &auth)
		approval.NewHandler(svc).PrimaryQueue(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, apperror.CodeForbidden, decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc := approvalMock.NewMockService(gomock.NewController(t))

		c, w := newTestContext(http.MethodGet, "/leave-approvals/primary", "", nil)
		approval.NewHandler(svc).PrimaryQueue(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestApprovalHandler_FinalQueue(t *testing.T) {
	auth := authz.Context{CallerID: uuid.NewString(), Role: authz.RoleAdmin}
	branchID := uuid.NewString()

	t.Run("branch filter", func(t *testing.T) {
		svc := approvalMock.NewMockService(gomock.NewController(t))
		svc.EXPECT().FinalQueue(gomock.Any(), auth, branchID, "").Return([]leave.LeaveRequestResponse{}, nil)

		c, w := newTestContext(http.MethodGet, "/leave-approvals/final?branch_id="+branchID, "", &auth)
		approval.NewHandler(svc).FinalQueue(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed branch", func(t *testing.T) {
		svc := approvalMock.NewMockService(gomock.NewController(t))

		c, w := newTestContext(http.MethodGet, "/leave-approvals/final?branch_id=north", "", &auth)
		approval.NewHandler(svc).FinalQueue(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperror.CodeValidation, decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})
}

func TestApprovalHandler_Decisions(t *testing.T) {
	id := uuid.NewString()
	manager := authz.Context{CallerID: uuid.NewString(), Role: authz.RoleBranchManager, ScopedBranchID: uuid.NewString()}
	admin := authz.Context{CallerID: uuid.NewString(), Role: authz.RoleSuperAdmin}

	t.Run("primary approve", func(t *testing.T) {
		svc := approvalMock.NewMockService(gomock.NewController(t))
		svc.EXPECT().PrimaryDecision(gomock.Any(), manager, id, approval.DecisionRequest{Action: "approve", Comments: "ok"}).
			Return(leave.LeaveRequestResponse{ID: id, Status: leave.StatusPrimaryApproved}, nil)

		c, w := newTestContext(http.MethodPost, "/leave-approvals/"+id+"/primary", `{"action":"approve","comments":"ok"}`, &manager)
		c.Params = gin.Params{{Key: "id", Value: id}}
		approval.NewHandler(svc).PrimaryDecision(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var got leave.LeaveRequestResponse
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w.Body.Bytes()).Data, &got))
		assert.Equal(t, leave.StatusPrimaryApproved, got.Status)
	})

	t.Run("final on wrong state", func(t *testing.T) {
		svc := approvalMock.NewMockService(gomock.NewController(t))
		svc.EXPECT().FinalDecision(gomock.Any(), admin, id, gomock.Any()).
			Return(leave.LeaveRequestResponse{}, approvalerrors.ErrInvalidState)

		c, w := newTestContext(http.MethodPost, "/leave-approvals/"+id+"/final", `{"action":"approve"}`, &admin)
		c.Params = gin.Params{{Key: "id", Value: id}}
		approval.NewHandler(svc).FinalDecision(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperror.CodeInvalidState, decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("missing action", func(t *testing.T) {
		svc := approvalMock.NewMockService(gomock.NewController(t))

		c, w := newTestContext(http.MethodPost, "/leave-approvals/"+id+"/final", `{"comments":"x"}`, &admin)
		c.Params = gin.Params{{Key: "id", Value: id}}
		approval.NewHandler(svc).FinalDecision(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperror.CodeValidation, decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})
}
