package tasks

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Minimal-Programmer/Task-Manager/internal/app/domain"
	"github.com/Minimal-Programmer/Task-Manager/internal/app/domain/users"
	"github.com/Minimal-Programmer/Task-Manager/internal/app/middleware"
	"github.com/Minimal-Programmer/Task-Manager/internal/app/models"
	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/session"
	"github.com/Minimal-Programmer/Task-Manager/internal/pkg/validate"
)

const pageSize = 5

type DashboardHandlers struct {
	base   *domain.BaseHandler
	tasks  *Client
	users  *users.Client
	store  *session.Store
	logger *zap.Logger
}

func NewDashboardHandlers(base *domain.BaseHandler, tasks *Client, users *users.Client, store *session.Store, logger *zap.Logger) *DashboardHandlers {
	return &DashboardHandlers{
		base:   base,
		tasks:  tasks,
		users:  users,
		store:  store,
		logger: logger,
	}
}

type dashboardData struct {
	models.Layout
	Tasks      []models.Task
	Users      []models.User
	Page       int
	TotalPages int
	Filters    models.TaskFilters
	Error      string
}

// Dashboard dispatches to the role's concrete dashboard. The role comes
// from the session store, never from raw cookie state, so the decision can
// not disagree with what the guard saw.
func (h *DashboardHandlers) Dashboard(c *gin.Context) {
	if h.store.Current(c).Role == models.RoleSuperuser {
		c.Redirect(http.StatusFound, "/admin-dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/user-dashboard")
}

// AdminDashboard renders the superuser view: create form, assignable users
// and the filtered, paginated task list. Tasks and users are fetched
// concurrently; they are independent calls.
func (h *DashboardHandlers) AdminDashboard(c *gin.Context) {
	sess := h.store.Current(c)
	filters, page := listParams(c)

	data := dashboardData{
		Layout:  h.base.Layout(c, "Admin Dashboard - Task Manager", "Dashboard"),
		Page:    page,
		Filters: filters,
	}

	g, ctx := errgroup.WithContext(c.Request.Context())

	var taskPage models.TaskPage
	g.Go(func() error {
		var err error
		taskPage, err = h.tasks.List(ctx, sess.Token, filters, page, pageSize)
		return err
	})

	var assignable []models.User
	g.Go(func() error {
		var err error
		assignable, err = h.users.Assignable(ctx, sess.Token)
		return err
	})

	if err := g.Wait(); err != nil {
		if h.sessionExpired(c, err) {
			return
		}
		h.logger.Error("Failed to load admin dashboard", zap.Error(err))
		data.Error = "Failed to fetch tasks."
		h.renderAdmin(c, data)
		return
	}

	// The remote total shrank under us; fetch the real last page instead of
	// showing an empty one.
	if page > taskPage.TotalPages {
		page = taskPage.TotalPages
		refetched, err := h.tasks.List(c.Request.Context(), sess.Token, filters, page, pageSize)
		if err == nil {
			taskPage = refetched
		}
	}

	data.Tasks = taskPage.Tasks
	data.Users = assignable
	data.Page = page
	data.TotalPages = taskPage.TotalPages
	h.renderAdmin(c, data)
}

// UserDashboard renders the tasks assigned to the logged-in user.
func (h *DashboardHandlers) UserDashboard(c *gin.Context) {
	sess := h.store.Current(c)

	data := dashboardData{
		Layout: h.base.Layout(c, "User Dashboard - Task Manager", "Dashboard"),
		Page:   1,
	}

	taskPage, err := h.tasks.List(c.Request.Context(), sess.Token, models.TaskFilters{}, 1, pageSize)
	if err != nil {
		if h.sessionExpired(c, err) {
			return
		}
		h.logger.Error("Failed to load user dashboard", zap.Error(err))
		data.Error = "Failed to load tasks."
		h.renderUser(c, data)
		return
	}

	data.Tasks = taskPage.Tasks
	data.TotalPages = taskPage.TotalPages
	h.renderUser(c, data)
}

// CreateTask validates the form, creates the task upstream and answers with
// a re-fetched task list. Mutations never patch list state locally.
func (h *DashboardHandlers) CreateTask(c *gin.Context) {
	sess := h.store.Current(c)

	input := CreateTaskInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Priority:    c.PostForm("priority"),
		DueDate:     c.PostForm("due_date"),
		AssignedTo:  c.PostForm("assigned_to"),
	}

	if err := validate.First(
		validate.NonEmpty("title", input.Title),
		validate.NonEmpty("description", input.Description),
		validate.NonEmpty("priority", input.Priority),
		validate.NonEmpty("due date", input.DueDate),
		validate.NonEmpty("assignee", input.AssignedTo),
	); err != nil {
		c.Header("HX-Retarget", "#task-form-banner")
		c.HTML(http.StatusBadRequest, "partials/banner", models.Banner{Type: "error", Message: err.Error()})
		return
	}

	if _, err := h.tasks.Create(c.Request.Context(), sess.Token, input); err != nil {
		if h.sessionExpired(c, err) {
			return
		}
		h.logger.Warn("Task creation failed", zap.Error(err))
		c.Header("HX-Retarget", "#task-form-banner")
		c.HTML(http.StatusBadRequest, "partials/banner", models.Banner{Type: "error", Message: err.Error()})
		return
	}

	h.logger.Info("Task created", zap.String("title", input.Title), zap.String("assigned_to", input.AssignedTo))
	h.refreshAdminList(c, sess)
}

// UpdateTask toggles completion via a partial update: the PATCH body holds
// only the completed field, nothing else on the task changes.
func (h *DashboardHandlers) UpdateTask(c *gin.Context) {
	sess := h.store.Current(c)
	id := c.Param("id")

	completed, err := strconv.ParseBool(c.PostForm("completed"))
	if err != nil {
		c.Header("HX-Retarget", "#task-form-banner")
		c.HTML(http.StatusBadRequest, "partials/banner", models.Banner{Type: "error", Message: "invalid completed value"})
		return
	}

	if _, err := h.tasks.Update(c.Request.Context(), sess.Token, id, map[string]any{"completed": completed}); err != nil {
		if h.sessionExpired(c, err) {
			return
		}
		h.logger.Warn("Task update failed", zap.String("task_id", id), zap.Error(err))
		h.renderListError(c, sess, "Error updating task: "+err.Error())
		return
	}

	h.refreshAdminList(c, sess)
}

// DeleteTask removes the task and re-fetches the list.
func (h *DashboardHandlers) DeleteTask(c *gin.Context) {
	sess := h.store.Current(c)
	id := c.Param("id")

	if err := h.tasks.Delete(c.Request.Context(), sess.Token, id); err != nil {
		if h.sessionExpired(c, err) {
			return
		}
		h.logger.Warn("Task deletion failed", zap.String("task_id", id), zap.Error(err))
		h.renderListError(c, sess, "Error deleting task: "+err.Error())
		return
	}

	h.logger.Info("Task deleted", zap.String("task_id", id))
	h.refreshAdminList(c, sess)
}

// CompleteTask marks a task done through the dedicated endpoint and then
// re-fetches, same policy as every other mutation.
func (h *DashboardHandlers) CompleteTask(c *gin.Context) {
	sess := h.store.Current(c)
	id := c.Param("id")

	if err := h.tasks.Complete(c.Request.Context(), sess.Token, id); err != nil {
		if h.sessionExpired(c, err) {
			return
		}
		h.logger.Warn("Task completion failed", zap.String("task_id", id), zap.Error(err))
		h.renderListError(c, sess, "Error completing task: "+err.Error())
		return
	}

	taskPage, err := h.tasks.List(c.Request.Context(), sess.Token, models.TaskFilters{}, 1, pageSize)
	data := dashboardData{Layout: h.base.Layout(c, "User Dashboard - Task Manager", "Dashboard"), Page: 1}
	if err != nil {
		data.Error = "Failed to load tasks."
	} else {
		data.Tasks = taskPage.Tasks
		data.TotalPages = taskPage.TotalPages
	}
	c.HTML(http.StatusOK, "partials/user_task_list", data)
}

// refreshAdminList re-fetches the current page and answers with the list
// partial for the HTMX swap.
func (h *DashboardHandlers) refreshAdminList(c *gin.Context, sess session.Session) {
	filters, page := listParams(c)

	data := dashboardData{
		Layout:  h.base.Layout(c, "Admin Dashboard - Task Manager", "Dashboard"),
		Page:    page,
		Filters: filters,
	}

	taskPage, err := h.tasks.List(c.Request.Context(), sess.Token, filters, page, pageSize)
	if err != nil {
		data.Error = "Failed to fetch tasks."
		c.HTML(http.StatusOK, "partials/admin_task_list", data)
		return
	}

	// A delete can shrink the total below the viewer's page; show the real
	// last page instead of an empty one.
	if page > taskPage.TotalPages {
		page = taskPage.TotalPages
		refetched, err := h.tasks.List(c.Request.Context(), sess.Token, filters, page, pageSize)
		if err == nil {
			taskPage = refetched
		}
	}

	data.Tasks = taskPage.Tasks
	data.Page = page
	data.TotalPages = taskPage.TotalPages
	c.HTML(http.StatusOK, "partials/admin_task_list", data)
}

func (h *DashboardHandlers) renderListError(c *gin.Context, sess session.Session, msg string) {
	filters, page := listParams(c)
	data := dashboardData{
		Layout:  h.base.Layout(c, "Admin Dashboard - Task Manager", "Dashboard"),
		Page:    page,
		Filters: filters,
		Error:   msg,
	}
	c.HTML(http.StatusOK, "partials/admin_task_list", data)
}

func (h *DashboardHandlers) renderAdmin(c *gin.Context, data dashboardData) {
	if c.GetHeader("HX-Request") == "true" {
		c.HTML(http.StatusOK, "partials/admin_task_list", data)
		return
	}
	c.HTML(http.StatusOK, "pages/admin_dashboard", data)
}

func (h *DashboardHandlers) renderUser(c *gin.Context, data dashboardData) {
	if c.GetHeader("HX-Request") == "true" {
		c.HTML(http.StatusOK, "partials/user_task_list", data)
		return
	}
	c.HTML(http.StatusOK, "pages/user_dashboard", data)
}

// sessionExpired logs the user out and redirects when the upstream rejected
// our bearer. The rejection itself never surfaces as text.
func (h *DashboardHandlers) sessionExpired(c *gin.Context, err error) bool {
	if !errors.Is(err, models.ErrUnauthenticated) {
		return false
	}
	h.logger.Info("Upstream rejected bearer, clearing session")
	h.store.Logout(c)
	middleware.AuthRedirect(c, "/login")
	return true
}

// listParams reads filters and the 1-indexed page from the query. The create
// form posts the page as a hidden field instead, so the form value is the
// fallback. Anything unparseable falls back to page 1.
func listParams(c *gin.Context) (models.TaskFilters, int) {
	filters := models.TaskFilters{
		Priority:      c.Query("priority"),
		SortByDueDate: c.Query("sortByDueDate"),
	}

	raw := c.Query("page")
	if raw == "" {
		raw = c.PostForm("page")
	}
	page := 1
	if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
		page = parsed
	}

	return filters, page
}
