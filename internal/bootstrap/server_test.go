package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/leave-requests", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestHandler_CORS(t *testing.T) {
	h := Handler(newRouter(), []string{"https://hr.example.com"})

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/leave-requests", nil)
		req.Header.Set("Origin", "https://hr.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Idempotency-Key")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Equal(t, "https://hr.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin gets no grant", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/leave-requests", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestHandler_NoOrigins(t *testing.T) {
	router := newRouter()
	assert.Same(t, http.Handler(router), Handler(router, nil))
}
