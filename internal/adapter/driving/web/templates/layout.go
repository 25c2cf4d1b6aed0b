// Package templates holds the page shell shared by every HTML page.
package templates

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/jobtracker/internal/adapter/driving/web/viewmodel"
)

//go:embed html/layout.html
var files embed.FS

var shell = template.Must(template.ParseFS(files, "html/layout.html"))

type navLink struct {
	Path  string
	Label string
}

// navLinks are shown to authenticated users, in order.
var navLinks = []navLink{
	{Path: "/", Label: "Applications"},
	{Path: "/add", Label: "Add"},
	{Path: "/stats", Label: "Statistics"},
	{Path: "/export", Label: "Export CSV"},
}

// shellData is the header template's input.
type shellData struct {
	vm.LayoutViewModel
	Links []navLink
}

// Layout renders the document shell (head, navigation, flash message) around body.
func Layout(meta vm.LayoutViewModel, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := shell.ExecuteTemplate(w, "header", shellData{LayoutViewModel: meta, Links: navLinks}); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		return shell.ExecuteTemplate(w, "footer", nil)
	})
}
