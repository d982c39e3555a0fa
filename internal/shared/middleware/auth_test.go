package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery-backend/internal/shared"
	"gallery-backend/pkg/jwt"
)

const testSecret = "test-secret"

func authRouter() (*gin.Engine, *shared.Actor) {
	gin.SetMode(gin.TestMode)
	seen := &shared.Actor{}

	r := gin.New()
	r.GET("/protected", AuthMiddleware(testSecret), func(c *gin.Context) {
		*seen = GetActor(c)
		c.Status(http.StatusOK)
	})
	return r, seen
}

func TestAuthMiddlewareResolvesActor(t *testing.T) {
	r, seen := authRouter()

	token, err := jwt.NewManager(testSecret).GenerateToken("editor-7", shared.ActorTypeUser, time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "editor-7", seen.ID)
	assert.Equal(t, shared.ActorTypeUser, seen.Type)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	r, _ := authRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	r, _ := authRouter()

	// Signed with a different secret.
	token, err := jwt.NewManager("other-secret").GenerateToken("editor-7", shared.ActorTypeUser, time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	r, _ := authRouter()

	token, err := jwt.NewManager(testSecret).GenerateToken("editor-7", shared.ActorTypeUser, -time.Minute)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
