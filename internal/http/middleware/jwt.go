package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/services"
	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/utils"
)

// Context keys set by JWTAuth for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUsercode = "usercode"
	CtxRole     = "role"
)

type AuthConfig struct {
	Secret string
}

// JWTAuth is the authorization gate for protected route groups. It
// distinguishes a missing bearer token, a structurally or
// cryptographically invalid one, and an expired one; on success it
// attaches the decoded identity to the request context.
func JWTAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "UNAUTHENTICATED", "missing bearer token", nil))
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.ParseWithClaims(tokenStr, &services.Claims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.Secret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "TOKEN_EXPIRED", "token expired", nil))
			} else {
				utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "TOKEN_INVALID", "invalid token", nil))
			}
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*services.Claims)
		if !ok || !token.Valid {
			utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "TOKEN_INVALID", "invalid token", nil))
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsercode, claims.Usercode)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user id set by JWTAuth.
func UserIDFromContext(c *gin.Context) (int64, bool) {
	value, exists := c.Get(CtxUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}
