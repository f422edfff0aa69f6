package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abubakar4101/call-center-crm-sub000/internal/auth"
)

func newAuthRouter(mgr *auth.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api", BearerAuth(mgr))
	api.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"staffId":  c.GetString(CtxStaffID),
			"tenantId": c.GetString(CtxTenantID),
		})
	})
	api.GET("/guarded", RequirePermission("dialer"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestBearerAuthMissingHeader(t *testing.T) {
	r := newAuthRouter(auth.NewManager("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header is required")
}

func TestBearerAuthInvalidToken(t *testing.T) {
	r := newAuthRouter(auth.NewManager("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestBearerAuthExpiredToken(t *testing.T) {
	mgr := auth.NewManager("secret", -time.Minute)
	token, err := mgr.Issue("staff-1", "tenant-1", nil)
	require.NoError(t, err)

	r := newAuthRouter(auth.NewManager("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has expired")
}

func TestBearerAuthSetsIdentity(t *testing.T) {
	mgr := auth.NewManager("secret", time.Hour)
	token, err := mgr.Issue("staff-1", "tenant-1", []string{"dialer"})
	require.NoError(t, err)

	r := newAuthRouter(mgr)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "staff-1")
	assert.Contains(t, w.Body.String(), "tenant-1")
}

func TestRequirePermission(t *testing.T) {
	mgr := auth.NewManager("secret", time.Hour)
	r := newAuthRouter(mgr)

	granted, err := mgr.Issue("staff-1", "tenant-1", []string{"dialer"})
	require.NoError(t, err)
	denied, err := mgr.Issue("staff-2", "tenant-1", []string{"meeting"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+granted)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+denied)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient permissions")
}
