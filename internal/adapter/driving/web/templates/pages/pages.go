// Package pages renders the body of each HTML page. Bodies are html/template
// documents embedded in the binary and exposed as templ components so the
// layout can compose them.
package pages

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/jobtracker/internal/adapter/driving/web/viewmodel"
)

//go:embed html/*.html
var files embed.FS

var pageTemplates = template.Must(template.ParseFS(files, "html/*.html"))

func page(name string, data any) templ.Component {
	return templ.FromGoHTML(pageTemplates.Lookup(name), data)
}

// Login renders the login form.
func Login(data vm.LoginViewModel) templ.Component { return page("login", data) }

// Index renders the filtered application list with its summary counts.
func Index(data vm.IndexViewModel) templ.Component { return page("index", data) }

// Form renders the add or edit form.
func Form(data vm.FormViewModel) templ.Component { return page("form", data) }

// View renders a single application.
func View(data vm.DetailViewModel) templ.Component { return page("view", data) }

// Stats renders the statistics page.
func Stats(data vm.StatsViewModel) templ.Component { return page("stats", data) }

// NotFound renders the 404 page body.
func NotFound(data vm.NotFoundViewModel) templ.Component { return page("notfound", data) }
