package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Minimal-Programmer/Task-Manager/internal/app/domain"
	"github.com/Minimal-Programmer/Task-Manager/internal/app/middleware"
	"github.com/Minimal-Programmer/Task-Manager/internal/app/models"
	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/session"
	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/validate"
)

type AuthHandlers struct {
	base   *domain.BaseHandler
	client *Client
	store  *session.Store
	logger *zap.Logger
}

func NewAuthHandlers(base *domain.BaseHandler, client *Client, store *session.Store, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		base:   base,
		client: client,
		store:  store,
		logger: logger,
	}
}

func (h *AuthHandlers) ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "pages/login", h.base.Layout(c, "Sign In - Task Manager", "Login"))
}

func (h *AuthHandlers) ShowRegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "pages/register", h.base.Layout(c, "Register - Task Manager", "Register"))
}

// LoginHandler validates the form, calls the remote login endpoint and, on
// success, persists token and role atomically before navigating to the
// role's dashboard.
func (h *AuthHandlers) LoginHandler(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	h.logger.Info("Login attempt", zap.String("username", username))

	if err := validate.Login(username, password); err != nil {
		h.banner(c, "#login-banner", http.StatusBadRequest, models.Banner{
			Type:    "error",
			Message: err.Error(),
		})
		return
	}

	result, err := h.client.Login(c.Request.Context(), models.Credentials{Username: username, Password: password})
	if err != nil {
		h.logger.Warn("Login rejected", zap.String("username", username), zap.Error(err))
		h.banner(c, "#login-banner", http.StatusUnauthorized, models.Banner{
			Type:        "error",
			Message:     err.Error(),
			Description: "Please check your credentials and try again",
		})
		return
	}

	if result.Role == "" {
		// The store would refuse this pair anyway; tell the user instead of
		// silently doing nothing.
		h.logger.Error("Login response missing role", zap.String("username", username))
		h.banner(c, "#login-banner", http.StatusBadGateway, models.Banner{
			Type:    "error",
			Message: "Unexpected error: role not received.",
		})
		return
	}

	h.store.Login(c, result.AccessToken, result.Role)

	h.logger.Info("Successful login",
		zap.String("username", username),
		zap.String("role", result.Role),
	)

	target := "/user-dashboard"
	if result.Role == models.RoleSuperuser {
		target = "/admin-dashboard"
	}
	middleware.Redirect(c, target)
}

// RegisterHandler validates the form and creates the account. Registration
// does not log the user in; the login endpoint owns token issuance.
func (h *AuthHandlers) RegisterHandler(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	h.logger.Info("Registration attempt", zap.String("username", username))

	if err := validate.Registration(username, password); err != nil {
		h.banner(c, "#register-banner", http.StatusBadRequest, models.Banner{
			Type:    "error",
			Message: err.Error(),
		})
		return
	}

	if err := h.client.Register(c.Request.Context(), models.Credentials{Username: username, Password: password}); err != nil {
		h.logger.Warn("Registration rejected", zap.String("username", username), zap.Error(err))
		h.banner(c, "#register-banner", http.StatusBadRequest, models.Banner{
			Type:        "error",
			Message:     err.Error(),
			Description: "Username may already be registered. Try signing in or pick another.",
		})
		return
	}

	h.logger.Info("Successful registration", zap.String("username", username))
	middleware.Redirect(c, "/login")
}

// LogoutHandler clears the session and lands on the home page. Logging out
// twice is fine; the store's clear is idempotent.
func (h *AuthHandlers) LogoutHandler(c *gin.Context) {
	h.logger.Info("User logout")
	h.store.Logout(c)
	middleware.Redirect(c, "/")
}

func (h *AuthHandlers) banner(c *gin.Context, target string, status int, b models.Banner) {
	c.Header("HX-Retarget", target)
	c.HTML(status, "partials/banner", b)
}
