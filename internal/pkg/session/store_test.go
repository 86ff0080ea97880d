package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testRig runs each step as its own request, carrying cookies across steps
// the way a browser would.
type testRig struct {
	t       *testing.T
	engine  *gin.Engine
	cookies []*http.Cookie
}

func newTestRig(t *testing.T, store *Store, steps map[string]gin.HandlerFunc) *testRig {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	for path, h := range steps {
		r.GET(path, h)
	}
	return &testRig{t: t, engine: r}
}

func (rig *testRig) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range rig.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	rig.engine.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		rig.cookies = set
	}
	return w
}

func TestStoreLoginPersistsPair(t *testing.T) {
	store := NewStore(zap.NewNop())

	var got Session
	rig := newTestRig(t, store, map[string]gin.HandlerFunc{
		"/login": func(c *gin.Context) {
			store.Login(c, "tok-123", "superuser")
			c.Status(http.StatusOK)
		},
		"/read": func(c *gin.Context) {
			got = store.Current(c)
			c.Status(http.StatusOK)
		},
	})

	rig.get("/login")
	rig.get("/read")

	assert.Equal(t, Session{Token: "tok-123", Role: "superuser"}, got)
	assert.True(t, got.Present())
}

func TestStoreLoginRejectsHalfValidPair(t *testing.T) {
	cases := []struct {
		name  string
		token string
		role  string
	}{
		{"missing role", "tok-123", ""},
		{"missing token", "", "user"},
		{"both missing", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewStore(zap.NewNop())

			var got Session
			rig := newTestRig(t, store, map[string]gin.HandlerFunc{
				"/login": func(c *gin.Context) {
					store.Login(c, tc.token, tc.role)
					c.Status(http.StatusOK)
				},
				"/read": func(c *gin.Context) {
					got = store.Current(c)
					c.Status(http.StatusOK)
				},
			})

			rig.get("/login")
			rig.get("/read")

			assert.Equal(t, Session{}, got)
			assert.False(t, got.Present())
		})
	}
}

func TestStoreLogoutIsIdempotent(t *testing.T) {
	store := NewStore(zap.NewNop())

	var got Session
	rig := newTestRig(t, store, map[string]gin.HandlerFunc{
		"/login": func(c *gin.Context) {
			store.Login(c, "tok-123", "user")
			c.Status(http.StatusOK)
		},
		"/logout": func(c *gin.Context) {
			store.Logout(c)
			c.Status(http.StatusOK)
		},
		"/read": func(c *gin.Context) {
			got = store.Current(c)
			c.Status(http.StatusOK)
		},
	})

	rig.get("/login")
	rig.get("/logout")
	rig.get("/logout")
	rig.get("/read")

	assert.False(t, got.Present())
}

func TestSessionUsername(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
	})
	signed, err := token.SignedString([]byte("any-key"))
	require.NoError(t, err)

	s := Session{Token: signed, Role: "user"}
	assert.Equal(t, "alice", s.Username())

	assert.Empty(t, Session{}.Username())
	assert.Empty(t, Session{Token: "not-a-jwt", Role: "user"}.Username())
}
