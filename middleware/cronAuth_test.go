package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"shotfolio/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func cronTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/cron", CronAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doCronRequest(t *testing.T, r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/cron", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCronAuth_ValidSecret(t *testing.T) {
	config.AppConfig.CronSecret = "sweep-secret"
	t.Cleanup(func() { config.AppConfig.CronSecret = "" })

	w := doCronRequest(t, cronTestRouter(), "Bearer sweep-secret")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCronAuth_WrongSecret(t *testing.T) {
	config.AppConfig.CronSecret = "sweep-secret"
	t.Cleanup(func() { config.AppConfig.CronSecret = "" })

	w := doCronRequest(t, cronTestRouter(), "Bearer not-the-secret")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCronAuth_MissingHeader(t *testing.T) {
	config.AppConfig.CronSecret = "sweep-secret"
	t.Cleanup(func() { config.AppConfig.CronSecret = "" })

	w := doCronRequest(t, cronTestRouter(), "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCronAuth_UnconfiguredSecretRefusesAll(t *testing.T) {
	config.AppConfig.CronSecret = ""

	w := doCronRequest(t, cronTestRouter(), "Bearer anything")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
