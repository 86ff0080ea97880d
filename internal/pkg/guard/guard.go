// Package guard decides whether a navigation target may render for the
// current session. The decision is a pure function so it can be tested
// without any router or rendering in the loop.
package guard

import (
	"slices"

	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/session"
)

// Redirect targets for the two terminal outcomes.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Decision is either Allow, or a redirect to RedirectTo. Exactly one holds.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Decide gates a view by session presence and role membership:
//
//  1. no session token        -> redirect to the login view
//  2. role outside allowedRoles (when the set is non-empty) -> redirect home
//  3. otherwise               -> allow
//
// An empty allowedRoles set means any authenticated session may render.
func Decide(sess session.Session, allowedRoles []string) Decision {
	if !sess.Present() {
		return Decision{RedirectTo: LoginPath}
	}
	if len(allowedRoles) > 0 && !slices.Contains(allowedRoles, sess.Role) {
		return Decision{RedirectTo: HomePath}
	}
	return Decision{Allow: true}
}
