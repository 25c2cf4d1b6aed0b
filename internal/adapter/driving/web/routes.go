package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux.
// Static assets are served from the embedded filesystem at /static/*.
// Every data route is wrapped by the session gate.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /logout", h.Logout)
	mux.HandleFunc("POST /logout", h.LogoutForm)

	mux.HandleFunc("GET /{$}", h.requireSession(h.Index))
	mux.HandleFunc("GET /add", h.requireSession(h.AddPage))
	mux.HandleFunc("POST /add", h.requireSession(h.Add))
	mux.HandleFunc("GET /edit/{id}", h.requireSession(h.EditPage))
	mux.HandleFunc("POST /edit/{id}", h.requireSession(h.Edit))
	mux.HandleFunc("GET /view/{id}", h.requireSession(h.View))
	mux.HandleFunc("POST /delete/{id}", h.requireSession(h.Delete))
	mux.HandleFunc("GET /export", h.requireSession(h.Export))
	mux.HandleFunc("GET /stats", h.requireSession(h.Stats))
}
