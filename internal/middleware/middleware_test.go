package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lucia-hrms/internal/authz"
	"lucia-hrms/internal/domain"
	"lucia-hrms/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const testSecret = "test-secret"

type apiEnvelope struct {
	Ok    bool `json:"ok"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

type capturedAuth struct {
	authz.Context
	RequestCallerID string
}

func newAuthRouter() (*gin.Engine, *capturedAuth) {
	gin.SetMode(gin.TestMode)
	var captured capturedAuth
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret), func(c *gin.Context) {
		captured.Context, _ = GetAuthorization(c)
		captured.RequestCallerID = contextutil.GetCallerID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return r, &captured
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid branch manager token", func(t *testing.T) {
		r, captured := newAuthRouter()
		token := signToken(t, jwt.MapClaims{
			"employee_id": "mgr-1",
			"role":        "branch_manager",
			"branch_id":   "branch-a",
			"exp":         time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, authz.Context{CallerID: "mgr-1", Role: authz.RoleBranchManager, ScopedBranchID: "branch-a"}, captured.Context)
		assert.Equal(t, "mgr-1", captured.RequestCallerID)
	})

	t.Run("token from cookie", func(t *testing.T) {
		r, captured := newAuthRouter()
		token := signToken(t, jwt.MapClaims{"employee_id": "emp-1", "role": "EMPLOYEE"})

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "emp-1", captured.CallerID)
	})

	t.Run("missing token", func(t *testing.T) {
		r, _ := newAuthRouter()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", decodeEnvelope(t, w).Error.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		r, _ := newAuthRouter()
		token := signToken(t, jwt.MapClaims{
			"employee_id": "emp-1",
			"role":        "EMPLOYEE",
			"exp":         time.Now().Add(-time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_EXPIRED", decodeEnvelope(t, w).Error.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		r, _ := newAuthRouter()
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"employee_id": "emp-1", "role": "EMPLOYEE"}).SignedString([]byte("other"))

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_TOKEN", decodeEnvelope(t, w).Error.Code)
	})

	t.Run("branch role without branch", func(t *testing.T) {
		r, _ := newAuthRouter()
		token := signToken(t, jwt.MapClaims{"employee_id": "mgr-1", "role": "BRANCH_ADMIN"})

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Branch ID not found in token", decodeEnvelope(t, w).Error.Message)
	})

	t.Run("unknown role", func(t *testing.T) {
		r, _ := newAuthRouter()
		token := signToken(t, jwt.MapClaims{"employee_id": "emp-1", "role": "OWNER"})

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

type fakeRBAC struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func withAuth(auth authz.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		SetAuthorization(c, auth)
		c.Next()
	}
}

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("allowed", func(t *testing.T) {
		svc := &fakeRBAC{allowed: true}
		r := gin.New()
		r.POST("/x", withAuth(authz.Context{CallerID: "adm-1", Role: authz.RoleAdmin}),
			RBACAuthorize(svc, domain.ResourceLeaveApproval, domain.ActionFinal),
			func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.EnforceRequest{Role: "ADMIN", Resource: "leave_approval", Action: "final"}, svc.got)
	})

	t.Run("denied", func(t *testing.T) {
		r := gin.New()
		r.POST("/x", withAuth(authz.Context{CallerID: "emp-1", Role: authz.RoleEmployee}),
			RBACAuthorize(&fakeRBAC{}, domain.ResourceLeaveApproval, domain.ActionFinal),
			func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", decodeEnvelope(t, w).Error.Code)
	})

	t.Run("no auth context", func(t *testing.T) {
		r := gin.New()
		r.POST("/x", RBACAuthorize(&fakeRBAC{allowed: true}, "a", "b"), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const (
		cacheKey = "idemp:/leave-requests:emp-1:key-1"
		lockKey  = cacheKey + ":lock"
		ttl      = time.Hour
	)

	newRouter := func(calls *int) (*gin.Engine, redismock.ClientMock) {
		rdb, mock := redismock.NewClientMock()
		r := gin.New()
		r.POST("/leave-requests",
			withAuth(authz.Context{CallerID: "emp-1", Role: authz.RoleEmployee}),
			Idempotency(rdb, ttl),
			func(c *gin.Context) {
				*calls++
				c.JSON(http.StatusCreated, gin.H{"id": "lr-1"})
			})
		return r, mock
	}

	stored, _ := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: `{"id":"lr-1"}`})

	t.Run("first request is executed and cached", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(&calls)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", idempotencyLockTTL).SetVal(true)
		mock.ExpectSet(cacheKey, string(stored), ttl).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		req := httptest.NewRequest(http.MethodPost, "/leave-requests", nil)
		req.Header.Set(IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replay returns stored response", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(&calls)
		mock.ExpectGet(cacheKey).SetVal(string(stored))

		req := httptest.NewRequest(http.MethodPost, "/leave-requests", nil)
		req.Header.Set(IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, `{"id":"lr-1"}`, w.Body.String())
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replay"))
		assert.Equal(t, 0, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(&calls)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", idempotencyLockTTL).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/leave-requests", nil)
		req.Header.Set(IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "PROCESSING", decodeEnvelope(t, w).Error.Code)
		assert.Equal(t, 0, calls)
	})

	t.Run("no header skips redis", func(t *testing.T) {
		calls := 0
		r, mock := newRouter(&calls)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leave-requests", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", withAuth(authz.Context{CallerID: "emp-1", Role: authz.RoleEmployee}),
		RateLimitByUser(rate.Limit(0.001), 1),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestContextLogger_PropagatesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var rid string
	r := gin.New()
	r.Use(RequestID(), ContextLogger(zap.NewNop()))
	r.GET("/x", func(c *gin.Context) {
		rid = contextutil.GetRequestID(c.Request.Context())
		assert.NotNil(t, contextutil.GetLogger(c.Request.Context(), nil))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", rid)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestRequestID_ReplacesMalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"header injection", "abc\r\nX-Admin: 1"},
		{"too long", strings.Repeat("a", 65)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.header != "" {
				req.Header[RequestIDHeader] = []string{tt.header}
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			assert.NotEqual(t, tt.header, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}
