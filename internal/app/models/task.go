package models

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Privilege tiers the remote API knows about.
const (
	RoleUser      = "user"
	RoleSuperuser = "superuser"
)

// Task priorities as the API stores them.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Task is owned by the remote service; this is the shape we consume.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
	Completed   bool   `json:"completed"`
	AssignedTo  string `json:"assigned_to"`
}

var titleCaser = cases.Title(language.English)

// PriorityLabel normalises the priority for display. Filter values travel
// lowercase on the wire ("high"), stored tasks carry title case ("High").
func (t Task) PriorityLabel() string {
	if t.Priority == "" {
		return ""
	}
	return titleCaser.String(t.Priority)
}

// DueLabel formats the due date for task cards. The API sends calendar dates
// as "2006-01-02"; anything else is shown as-is.
func (t Task) DueLabel() string {
	if t.DueDate == "" {
		return "No due date"
	}
	parsed, err := time.Parse("2006-01-02", t.DueDate)
	if err != nil {
		return t.DueDate
	}
	return parsed.Format("02 Jan 2006")
}

// TaskPage is one page of the remote task listing.
type TaskPage struct {
	Tasks      []Task `json:"tasks"`
	TotalPages int    `json:"totalPages"`
}

// TaskFilters mirrors the query parameters the listing endpoint accepts.
// Filtering and sorting happen server-side; the view never re-orders locally.
type TaskFilters struct {
	Priority      string
	SortByDueDate string
}

type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
