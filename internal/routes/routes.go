package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Minimal-Programmer/Task-Manager/internal/app/domain"
	"github.com/Minimal-Programmer/Task-Manager/internal/app/domain/auth"
	"github.com/Minimal-Programmer/Task-Manager/internal/app/domain/home"
	"github.com/Minimal-Programmer/Task-Manager/internal/app/domain/tasks"
	"github.com/Minimal-Programmer/Task-Manager/internal/app/domain/users"
	"github.com/Minimal-Programmer/Task-Manager/internal/app/middleware"
	"github.com/Minimal-Programmer/Task-Manager/internal/app/models"
	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/apiclient"
	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/config"
	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/session"
)

type AppHandlers struct {
	Home    *home.HomeHandlers
	Auth    *auth.AuthHandlers
	Tasks   *tasks.DashboardHandlers
	Profile *users.ProfileHandlers
	Store   *session.Store
}

func Setup(r *gin.Engine, cfg *config.Config, log *zap.Logger) {
	handlers := setupDependencies(cfg, log)
	setupRouter(r, handlers, log)
}

func setupDependencies(cfg *config.Config, log *zap.Logger) *AppHandlers {
	store := session.NewStore(log)
	baseHandler := domain.NewBaseHandler(store, log)

	api := apiclient.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)
	authClient := auth.NewClient(api, log)
	tasksClient := tasks.NewClient(api, log)
	usersClient := users.NewClient(api, log)

	return &AppHandlers{
		Home:    home.NewHomeHandlers(baseHandler),
		Auth:    auth.NewAuthHandlers(baseHandler, authClient, store, log),
		Tasks:   tasks.NewDashboardHandlers(baseHandler, tasksClient, usersClient, store, log),
		Profile: users.NewProfileHandlers(baseHandler, usersClient, store, log),
		Store:   store,
	}
}

func setupRouter(r *gin.Engine, h *AppHandlers, log *zap.Logger) {
	public := r.Group("/")
	{
		public.GET("/", h.Home.ShowHomePage)
		public.GET("/login", h.Auth.ShowLoginPage)
		public.GET("/register", h.Auth.ShowRegisterPage)
		public.POST("/login", h.Auth.LoginHandler)
		public.POST("/register", h.Auth.RegisterHandler)
		public.POST("/logout", h.Auth.LogoutHandler)
	}

	// Any logged-in role may hit the dispatcher and the profile pages.
	authed := r.Group("/")
	authed.Use(middleware.RequireSession(h.Store, log))
	{
		authed.GET("/dashboard", h.Tasks.Dashboard)
		authed.GET("/profile", h.Profile.ShowProfilePage)
		authed.PUT("/profile", h.Profile.UpdateProfile)
		authed.PUT("/profile/password", h.Profile.ChangePassword)
	}

	admin := r.Group("/")
	admin.Use(middleware.RequireSession(h.Store, log, models.RoleSuperuser))
	{
		admin.GET("/admin-dashboard", h.Tasks.AdminDashboard)
		admin.POST("/tasks", h.Tasks.CreateTask)
		admin.PATCH("/tasks/:id", h.Tasks.UpdateTask)
		admin.DELETE("/tasks/:id", h.Tasks.DeleteTask)
	}

	user := r.Group("/")
	user.Use(middleware.RequireSession(h.Store, log, models.RoleUser))
	{
		user.GET("/user-dashboard", h.Tasks.UserDashboard)
		user.PUT("/tasks/complete/:id", h.Tasks.CompleteTask)
	}

	r.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/")
	})
}
