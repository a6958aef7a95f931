package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"lucia-hrms/internal/authz"
	"lucia-hrms/internal/shared/apperror"
	"lucia-hrms/internal/shared/contextutil"
	"lucia-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	ContextAuthorization = "authorization"
	ContextEmployeeID    = "employee_id"
	ContextRole          = "role"
)

var (
	errTokenNotFound = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	errInvalidToken  = apperror.New("INVALID_TOKEN", "Invalid token", http.StatusUnauthorized)
	errTokenExpired  = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
)

// AuthMiddleware verifies the HMAC-signed access token issued by the identity
// service and resolves the caller's authz.Context from its claims
// (employee_id, role, branch_id).
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, errTokenNotFound)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, errTokenExpired)
				return
			}
			abortWith(c, errInvalidToken)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, errInvalidToken)
			return
		}

		auth, err := authorizationFromClaims(claims)
		if err != nil {
			abortWith(c, err)
			return
		}

		SetAuthorization(c, auth)
		c.Next()
	}
}

func authorizationFromClaims(claims jwt.MapClaims) (authz.Context, error) {
	employeeID, _ := claims["employee_id"].(string)
	if employeeID == "" {
		return authz.Context{}, apperror.New("INVALID_TOKEN", "Employee ID not found in token", http.StatusUnauthorized)
	}

	roleClaim, _ := claims["role"].(string)
	role := authz.Role(strings.ToUpper(roleClaim))
	if !role.Valid() {
		return authz.Context{}, apperror.New("INVALID_TOKEN", "Role not recognized", http.StatusUnauthorized)
	}

	branchID, _ := claims["branch_id"].(string)
	if role.IsBranchScoped() && branchID == "" {
		return authz.Context{}, apperror.New("INVALID_TOKEN", "Branch ID not found in token", http.StatusUnauthorized)
	}

	return authz.Context{
		CallerID:       employeeID,
		Role:           role,
		ScopedBranchID: branchID,
	}, nil
}

// SetAuthorization stores auth on the gin context and propagates the caller
// id to the request context and its logger.
func SetAuthorization(c *gin.Context, auth authz.Context) {
	c.Set(ContextAuthorization, auth)
	c.Set(ContextEmployeeID, auth.CallerID)
	c.Set(ContextRole, string(auth.Role))

	ctx := c.Request.Context()
	logger := contextutil.GetLogger(ctx, zap.L()).With(
		zap.String("caller_id", auth.CallerID),
		zap.String("role", string(auth.Role)),
	)
	ctx = contextutil.WithCallerID(ctx, auth.CallerID)
	ctx = contextutil.WithLogger(ctx, logger)
	c.Request = c.Request.WithContext(ctx)
}

func GetAuthorization(c *gin.Context) (authz.Context, bool) {
	v, exists := c.Get(ContextAuthorization)
	if !exists {
		return authz.Context{}, false
	}
	auth, ok := v.(authz.Context)
	return auth, ok
}

func abortWith(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
	c.Abort()
}
