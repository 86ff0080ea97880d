package users

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Minimal-Programmer/Task-Manager/internal/app/domain"
	"github.com/Minimal-Programmer/Task-Manager/internal/app/templates"
	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/apiclient"
	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/session"
)

type profileTestEnv struct {
	engine  *gin.Engine
	cookies []*http.Cookie
}

func newProfileTestEnv(t *testing.T, upstream http.HandlerFunc) *profileTestEnv {
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	log := zap.NewNop()
	store := session.NewStore(log)
	base := domain.NewBaseHandler(store, log)
	client := NewClient(apiclient.New(srv.URL, 5*time.Second, log), log)
	h := NewProfileHandlers(base, client, store, log)

	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	tmpl, err := templates.Load()
	require.NoError(t, err)
	r.SetHTMLTemplate(tmpl)

	r.GET("/seed", func(c *gin.Context) {
		store.Login(c, "tok-123", "user")
		c.Status(http.StatusOK)
	})
	r.GET("/profile", h.ShowProfilePage)
	r.PUT("/profile", h.UpdateProfile)
	r.PUT("/profile/password", h.ChangePassword)

	env := &profileTestEnv{engine: r}

	seedW := httptest.NewRecorder()
	r.ServeHTTP(seedW, httptest.NewRequest(http.MethodGet, "/seed", nil))
	env.cookies = seedW.Result().Cookies()

	return env
}

func (env *profileTestEnv) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("HX-Request", "true")
	for _, c := range env.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	return w
}

func TestShowProfilePagePrefillsForm(t *testing.T) {
	env := newProfileTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/profile", r.URL.Path)
		w.Write([]byte(`{"name": "Alice", "email": "alice@example.com"}`))
	})

	w := env.do(http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)

	assert.Equal(t, "Alice", doc.Find(`#profile-form input[name="name"]`).AttrOr("value", ""))
	assert.Equal(t, "alice@example.com", doc.Find(`#profile-form input[name="email"]`).AttrOr("value", ""))
	assert.Equal(t, 1, doc.Find(`#password-form input[name="oldPassword"]`).Length())
	assert.Equal(t, 1, doc.Find(`#password-form input[name="newPassword"]`).Length())
}

func TestUpdateProfileValidatesFields(t *testing.T) {
	var upstreamPuts int
	env := newProfileTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			upstreamPuts++
		}
		w.WriteHeader(http.StatusOK)
	})

	w := env.do(http.MethodPut, "/profile", url.Values{
		"name":  {"Alice"},
		"email": {""},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "#profile-banner", w.Header().Get("HX-Retarget"))
	assert.Contains(t, w.Body.String(), "email is required")
	assert.Zero(t, upstreamPuts)
}

func TestUpdateProfileSuccessShowsBanner(t *testing.T) {
	env := newProfileTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	w := env.do(http.MethodPut, "/profile", url.Values{
		"name":  {"Alice"},
		"email": {"alice@example.com"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Profile updated.")
}

func TestChangePasswordEnforcesMinimumLength(t *testing.T) {
	env := newProfileTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	w := env.do(http.MethodPut, "/profile/password", url.Values{
		"oldPassword": {"old-secret"},
		"newPassword": {"12345"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "#password-banner", w.Header().Get("HX-Retarget"))
	assert.Contains(t, w.Body.String(), "new password must be at least 6 characters")
}

func TestChangePasswordSurfacesUpstreamRejection(t *testing.T) {
	env := newProfileTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "Old password is incorrect"}`))
	})

	w := env.do(http.MethodPut, "/profile/password", url.Values{
		"oldPassword": {"wrong-old"},
		"newPassword": {"new-secret"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Old password is incorrect")
}
