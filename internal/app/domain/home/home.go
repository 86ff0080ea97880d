package home

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Minimal-Programmer/Task-Manager/internal/app/domain"
)

type HomeHandlers struct {
	base *domain.BaseHandler
}

func NewHomeHandlers(base *domain.BaseHandler) *HomeHandlers {
	return &HomeHandlers{base: base}
}

func (h *HomeHandlers) ShowHomePage(c *gin.Context) {
	c.HTML(http.StatusOK, "pages/home", h.base.Layout(c, "Task Manager", "Home"))
}
