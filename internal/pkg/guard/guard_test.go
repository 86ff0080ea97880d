package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/session"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		name    string
		sess    session.Session
		allowed []string
		want    Decision
	}{
		{
			name:    "no session goes to login",
			sess:    session.Session{},
			allowed: []string{"superuser"},
			want:    Decision{RedirectTo: LoginPath},
		},
		{
			name:    "wrong role goes home",
			sess:    session.Session{Token: "tok", Role: "user"},
			allowed: []string{"superuser"},
			want:    Decision{RedirectTo: HomePath},
		},
		{
			name:    "matching role is allowed",
			sess:    session.Session{Token: "tok", Role: "superuser"},
			allowed: []string{"superuser"},
			want:    Decision{Allow: true},
		},
		{
			name:    "any role allowed when set is empty",
			sess:    session.Session{Token: "tok", Role: "user"},
			allowed: nil,
			want:    Decision{Allow: true},
		},
		{
			name:    "role in multi-role set is allowed",
			sess:    session.Session{Token: "tok", Role: "user"},
			allowed: []string{"superuser", "user"},
			want:    Decision{Allow: true},
		},
		{
			name:    "missing session beats role check",
			sess:    session.Session{},
			allowed: nil,
			want:    Decision{RedirectTo: LoginPath},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(tc.sess, tc.allowed))
		})
	}
}
