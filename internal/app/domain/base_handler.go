package domain

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Minimal-Programmer/Task-Manager/internal/app/models"
	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/session"
)

// BaseHandler carries what every page handler needs: the session store for
// read access and a logger.
type BaseHandler struct {
	Store  *session.Store
	Logger *zap.Logger
}

func NewBaseHandler(store *session.Store, logger *zap.Logger) *BaseHandler {
	return &BaseHandler{Store: store, Logger: logger}
}

// Layout assembles the chrome for a page render from the current session.
func (b *BaseHandler) Layout(c *gin.Context, title, activeNav string) models.Layout {
	sess := b.Store.Current(c)

	nav := models.OfflineNav
	if sess.Present() {
		nav = models.MainNav
	}

	return models.Layout{
		Title:     title,
		ActiveNav: activeNav,
		Nav:       nav,
		Viewer: models.Viewer{
			LoggedIn: sess.Present(),
			Username: sess.Username(),
			Role:     sess.Role,
		},
	}
}
