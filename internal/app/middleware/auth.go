package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/guard"
	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/session"
)

// RequireSession gates a route by session presence and, when allowedRoles is
// non-empty, by role membership. Authorization failures never surface as an
// error message; they redirect per the guard's decision.
func RequireSession(store *session.Store, logger *zap.Logger, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := guard.Decide(store.Current(c), allowedRoles)
		if decision.Allow {
			c.Next()
			return
		}

		logger.Debug("Route guard redirect",
			zap.String("path", c.Request.URL.Path),
			zap.String("target", decision.RedirectTo),
		)
		AuthRedirect(c, decision.RedirectTo)
	}
}

// AuthRedirect handles auth redirects for both regular and HTMX requests.
// Handlers use it too, when an upstream call reports the session expired.
func AuthRedirect(c *gin.Context, redirectURL string) {
	if c.GetHeader("HX-Request") == "true" {
		// HTMX swaps cannot follow a 302; the HX-Redirect header tells the
		// client to navigate instead.
		c.Header("HX-Redirect", redirectURL)
		c.AbortWithStatus(http.StatusUnauthorized)
	} else {
		c.Redirect(http.StatusFound, redirectURL)
		c.Abort()
	}
}

// Redirect navigates HTMX-aware from inside a handler, after a successful
// form post for example.
func Redirect(c *gin.Context, url string) {
	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Redirect", url)
		c.Status(http.StatusOK)
		return
	}
	c.Redirect(http.StatusFound, url)
}
