package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Minimal-Programmer/Task-Manager/internal/app/domain"
	"github.com/Minimal-Programmer/Task-Manager/internal/app/middleware"
	"github.com/Minimal-Programmer/Task-Manager/internal/app/models"
	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/session"
	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/validate"
)

type ProfileHandlers struct {
	base   *domain.BaseHandler
	client *Client
	store  *session.Store
	logger *zap.Logger
}

func NewProfileHandlers(base *domain.BaseHandler, client *Client, store *session.Store, logger *zap.Logger) *ProfileHandlers {
	return &ProfileHandlers{
		base:   base,
		client: client,
		store:  store,
		logger: logger,
	}
}

type profileData struct {
	models.Layout
	Profile models.Profile
	Error   string
}

// ShowProfilePage fetches the bearer's profile and renders the settings page.
func (h *ProfileHandlers) ShowProfilePage(c *gin.Context) {
	sess := h.store.Current(c)

	data := profileData{
		Layout: h.base.Layout(c, "Profile - Task Manager", "Profile"),
	}

	profile, err := h.client.Profile(c.Request.Context(), sess.Token)
	if err != nil {
		if h.sessionExpired(c, err) {
			return
		}
		h.logger.Error("Failed to load profile", zap.Error(err))
		data.Error = "Failed to load profile."
		c.HTML(http.StatusOK, "pages/profile", data)
		return
	}

	data.Profile = profile
	c.HTML(http.StatusOK, "pages/profile", data)
}

// UpdateProfile saves name and email from the profile form.
func (h *ProfileHandlers) UpdateProfile(c *gin.Context) {
	sess := h.store.Current(c)

	profile := models.Profile{
		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
	}

	if err := validate.First(
		validate.NonEmpty("name", profile.Name),
		validate.NonEmpty("email", profile.Email),
	); err != nil {
		h.banner(c, "#profile-banner", http.StatusBadRequest, models.Banner{Type: "error", Message: err.Error()})
		return
	}

	if err := h.client.UpdateProfile(c.Request.Context(), sess.Token, profile); err != nil {
		if h.sessionExpired(c, err) {
			return
		}
		h.logger.Warn("Profile update failed", zap.Error(err))
		h.banner(c, "#profile-banner", http.StatusBadRequest, models.Banner{Type: "error", Message: err.Error()})
		return
	}

	h.banner(c, "#profile-banner", http.StatusOK, models.Banner{Type: "success", Message: "Profile updated."})
}

// ChangePassword swaps the password after checking the new one is usable.
func (h *ProfileHandlers) ChangePassword(c *gin.Context) {
	sess := h.store.Current(c)

	input := ChangePasswordInput{
		OldPassword: c.PostForm("oldPassword"),
		NewPassword: c.PostForm("newPassword"),
	}

	if err := validate.First(
		validate.NonEmpty("current password", input.OldPassword),
		validate.MinLength("new password", input.NewPassword, 6),
	); err != nil {
		h.banner(c, "#password-banner", http.StatusBadRequest, models.Banner{Type: "error", Message: err.Error()})
		return
	}

	if err := h.client.ChangePassword(c.Request.Context(), sess.Token, input); err != nil {
		if h.sessionExpired(c, err) {
			return
		}
		h.logger.Warn("Password change failed", zap.Error(err))
		h.banner(c, "#password-banner", http.StatusBadRequest, models.Banner{Type: "error", Message: err.Error()})
		return
	}

	h.logger.Info("Password changed")
	h.banner(c, "#password-banner", http.StatusOK, models.Banner{Type: "success", Message: "Password changed."})
}

func (h *ProfileHandlers) banner(c *gin.Context, target string, status int, b models.Banner) {
	c.Header("HX-Retarget", target)
	c.HTML(status, "partials/banner", b)
}

func (h *ProfileHandlers) sessionExpired(c *gin.Context, err error) bool {
	if !errors.Is(err, models.ErrUnauthenticated) {
		return false
	}
	h.store.Logout(c)
	middleware.AuthRedirect(c, "/login")
	return true
}
