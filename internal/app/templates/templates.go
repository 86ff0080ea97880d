// Package templates embeds the HTML views. The app is server-rendered:
// pages are full documents, partials are HTMX swap targets.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses the embedded template set.
func Load() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}).ParseFS(files, "*.html")
}
