package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Minimal-Programmer/Task-Manager/internal/app/models"
	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/session"
)

// guardedEngine serves /seed to establish a session and /guarded behind the
// middleware under test.
func guardedEngine(store *session.Store, allowedRoles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	r.GET("/seed", func(c *gin.Context) {
		store.Login(c, c.Query("token"), c.Query("role"))
		c.Status(http.StatusOK)
	})
	guarded := r.Group("/")
	guarded.Use(RequireSession(store, zap.NewNop(), allowedRoles...))
	guarded.GET("/guarded", func(c *gin.Context) {
		c.String(http.StatusOK, "content")
	})
	return r
}

func serve(r *gin.Engine, path string, cookies []*http.Cookie, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireSessionRedirectsAnonymousToLogin(t *testing.T) {
	store := session.NewStore(zap.NewNop())
	r := guardedEngine(store, models.RoleSuperuser)

	w := serve(r, "/guarded", nil, false)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireSessionRedirectsWrongRoleHome(t *testing.T) {
	store := session.NewStore(zap.NewNop())
	r := guardedEngine(store, models.RoleSuperuser)

	seed := serve(r, "/seed?token=tok&role=user", nil, false)
	w := serve(r, "/guarded", seed.Result().Cookies(), false)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRequireSessionAllowsMatchingRole(t *testing.T) {
	store := session.NewStore(zap.NewNop())
	r := guardedEngine(store, models.RoleSuperuser)

	seed := serve(r, "/seed?token=tok&role=superuser", nil, false)
	w := serve(r, "/guarded", seed.Result().Cookies(), false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "content", w.Body.String())
}

func TestRequireSessionAllowsAnyRoleWhenUnscoped(t *testing.T) {
	store := session.NewStore(zap.NewNop())
	r := guardedEngine(store)

	seed := serve(r, "/seed?token=tok&role=user", nil, false)
	w := serve(r, "/guarded", seed.Result().Cookies(), false)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSessionAnswersHTMXWithRedirectHeader(t *testing.T) {
	store := session.NewStore(zap.NewNop())
	r := guardedEngine(store, models.RoleSuperuser)

	w := serve(r, "/guarded", nil, true)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/login", w.Header().Get("HX-Redirect"))
	assert.Empty(t, w.Header().Get("Location"))
}
