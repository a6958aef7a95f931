package rbac

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lucia-hrms/internal/authz"
	"lucia-hrms/internal/domain"
	"lucia-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockService struct {
	lastReq domain.EnforceRequest
}

func (m *mockService) LoadPolicy() error {
	return nil
}

func (m *mockService) Enforce(req domain.EnforceRequest) (bool, error) {
	m.lastReq = req
	return req.Role == "BRANCH_MANAGER" && req.Resource == domain.ResourceLeaveApproval, nil
}

func (m *mockService) PermissionsForRole(role string) ([]domain.PermissionResponse, error) {
	return []domain.PermissionResponse{{Resource: domain.ResourceLeaveRequest, Action: domain.ActionRead}}, nil
}

func withAuth(auth authz.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetAuthorization(c, auth)
		c.Next()
	}
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	service := &mockService{}
	handler := NewHandler(service)

	router := gin.New()
	router.POST("/rbac/enforce", withAuth(authz.Context{CallerID: "mgr-1", Role: authz.RoleBranchManager}), handler.Enforce)

	// role in the body is ignored, the caller's own role is checked
	body, _ := json.Marshal(domain.EnforceRequest{Role: "SUPER_ADMIN", Resource: domain.ResourceLeaveApproval, Action: domain.ActionPrimary})
	req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "BRANCH_MANAGER", service.lastReq.Role)

	var resp struct {
		Ok   bool                   `json:"ok"`
		Data domain.EnforceResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Ok)
	assert.True(t, resp.Data.Allowed)
}

func TestHandler_Enforce_Unauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/rbac/enforce", NewHandler(&mockService{}).Enforce)

	req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_ListPermissions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/rbac/permissions", withAuth(authz.Context{CallerID: "emp-1", Role: authz.RoleEmployee}), NewHandler(&mockService{}).ListPermissions)

	req, _ := http.NewRequest(http.MethodGet, "/rbac/permissions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"resource":"leave_request"`)
}
