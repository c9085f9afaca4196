package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/models"
	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/services"
)

const testSecret = "gate-test-secret"

func gateRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	protected := router.Group("/protected")
	protected.Use(JWTAuth(AuthConfig{Secret: testSecret}))
	protected.GET("/ping", func(c *gin.Context) {
		userID, _ := UserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id":  userID,
			"usercode": c.GetString(CtxUsercode),
			"role":     c.GetInt64(CtxRole),
		})
	})
	return router
}

func mintTestToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	token, _, err := services.MintToken(&models.User{UserID: 42, Usercode: "E001", Role: 1}, secret, ttl)
	require.NoError(t, err)
	return token
}

func doGet(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	router := gateRouter()

	rec := doGet(router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")

	rec = doGet(router, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
}

func TestJWTAuth_ValidToken(t *testing.T) {
	router := gateRouter()
	token := mintTestToken(t, testSecret, time.Hour)

	rec := doGet(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":42`)
	assert.Contains(t, rec.Body.String(), `"usercode":"E001"`)
	assert.Contains(t, rec.Body.String(), `"role":1`)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	router := gateRouter()
	token := mintTestToken(t, testSecret, -time.Minute)

	rec := doGet(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	router := gateRouter()
	token := mintTestToken(t, "other-secret", time.Hour)

	rec := doGet(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_INVALID")
}

// Flipping any single byte of a valid token must invalidate it.
func TestJWTAuth_MutatedToken(t *testing.T) {
	router := gateRouter()
	token := mintTestToken(t, testSecret, time.Hour)

	for _, idx := range []int{0, len(token) / 2, len(token) - 1} {
		mutated := []byte(token)
		if mutated[idx] == 'A' {
			mutated[idx] = 'B'
		} else {
			mutated[idx] = 'A'
		}

		rec := doGet(router, "Bearer "+string(mutated))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "mutation at byte %d accepted", idx)
	}
}

func TestJWTAuth_Malformed(t *testing.T) {
	router := gateRouter()

	rec := doGet(router, "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_INVALID")
}
