package models

// Viewer is what the navbar and page chrome know about the current visitor.
type Viewer struct {
	LoggedIn bool
	Username string
	Role     string
}

type NavItem struct {
	Name string
	URL  string
}

type Navigation struct {
	Items []NavItem
}

// Layout carries the fields every rendered page needs. Page data structs
// embed it so templates can reach Title, Viewer and Nav directly.
type Layout struct {
	Title     string
	Viewer    Viewer
	Nav       Navigation
	ActiveNav string
}

// Banner is an inline message swapped into a form via HX-Retarget.
type Banner struct {
	Type        string // "error" or "success"
	Message     string
	Description string
}

var MainNav = Navigation{
	Items: []NavItem{
		{Name: "Home", URL: "/"},
		{Name: "Dashboard", URL: "/dashboard"},
		{Name: "Profile", URL: "/profile"},
	},
}

var OfflineNav = Navigation{
	Items: []NavItem{
		{Name: "Home", URL: "/"},
		{Name: "Login", URL: "/login"},
		{Name: "Register", URL: "/register"},
	},
}
