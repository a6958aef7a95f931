package leave_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lucia-hrms/internal/authz"
	"lucia-hrms/internal/leave"
	leaveerrors "lucia-hrms/internal/leave/errors"
	leaveMock "lucia-hrms/internal/leave/mock"
	"lucia-hrms/internal/middleware"
	"lucia-hrms/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  *apiMeta        `json:"meta"`
	Error *apiError       `json:"error"`
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

func TestLeaveHandler_Submit(t *testing.T) {
	employeeID := uuid.NewString()
	auth := authz.Context{CallerID: employeeID, Role: authz.RoleEmployee}

	t.Run("created", func(t *testing.T) {
		svc := leaveMock.NewMockService(gomock.NewController(t))
		svc.EXPECT().Submit(gomock.Any(), auth, gomock.Any()).
			DoAndReturn(func(_ any, _ authz.Context, req leave.SubmitLeaveRequest) (leave.SubmitLeaveResponse, error) {
				assert.Equal(t, "ANNUAL", req.LeaveType)
				assert.Equal(t, "2025-03-10", req.StartDate)
				return leave.SubmitLeaveResponse{
					LeaveRequestResponse: leave.LeaveRequestResponse{
						ID:        uuid.NewString(),
						Status:    leave.StatusPending,
						TotalDays: 5,
					},
					AvailableDays: 16,
				}, nil
			})

		body := `{"leave_type":"ANNUAL","start_date":"2025-03-10","end_date":"2025-03-14","reason":"Family trip"}`
		c, w := newTestContext(http.MethodPost, "/leave-requests", body, &auth)
		leave.NewHandler(svc).Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, leave.StatusPending, got["status"])
		assert.Equal(t, float64(5), got["total_days"])
		assert.Equal(t, float64(16), got["available_days"])
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := leaveMock.NewMockService(gomock.NewController(t))

		c, w := newTestContext(http.MethodPost, "/leave-requests", `{}`, &auth)
		leave.NewHandler(svc).Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, apperror.CodeValidation, env.Error.Code)
	})

	t.Run("overlap", func(t *testing.T) {
		svc := leaveMock.NewMockService(gomock.NewController(t))
		svc.EXPECT().Submit(gomock.Any(), auth, gomock.Any()).Return(leave.SubmitLeaveResponse{}, leaveerrors.ErrOverlappingRequest)

		body := `{"leave_type":"ANNUAL","start_date":"2025-03-10","end_date":"2025-03-14","reason":"Family trip"}`
		c, w := newTestContext(http.MethodPost, "/leave-requests", body, &auth)
		leave.NewHandler(svc).Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperror.CodeOverlappingRequest, decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("no auth context", func(t *testing.T) {
		svc := leaveMock.NewMockService(gomock.NewController(t))

		c, w := newTestContext(http.MethodPost, "/leave-requests", `{}`, nil)
		leave.NewHandler(svc).Submit(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLeaveHandler_List(t *testing.T) {
	auth := authz.Context{CallerID: uuid.NewString(), Role: authz.RoleAdmin}

	svc := leaveMock.NewMockService(gomock.NewController(t))
	svc.EXPECT().
		List(gomock.Any(), auth, leave.ListFilter{Status: "PENDING", Year: 2025}).
		Return([]leave.LeaveRequestResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil)

	c, w := newTestContext(http.MethodGet, "/leave-requests?status=PENDING&year=2025&page=2&page_size=2", "", &auth)
	leave.NewHandler(svc).List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	var got []leave.LeaveRequestResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(3), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.Page)
}

func TestLeaveHandler_GetByID(t *testing.T) {
	auth := authz.Context{CallerID: uuid.NewString(), Role: authz.RoleEmployee}
	id := uuid.NewString()

	t.Run("found", func(t *testing.T) {
		svc := leaveMock.NewMockService(gomock.NewController(t))
		svc.EXPECT().GetByID(gomock.Any(), auth, id).Return(leave.LeaveRequestResponse{ID: id}, nil)

		c, w := newTestContext(http.MethodGet, "/leave-requests/"+id, "", &auth)
		c.Params = gin.Params{{Key: "id", Value: id}}
		leave.NewHandler(svc).GetByID(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := leaveMock.NewMockService(gomock.NewController(t))
		svc.EXPECT().GetByID(gomock.Any(), auth, id).Return(leave.LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound)

		c, w := newTestContext(http.MethodGet, "/leave-requests/"+id, "", &auth)
		c.Params = gin.Params{{Key: "id", Value: id}}
		leave.NewHandler(svc).GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperror.CodeNotFound, decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})
}
