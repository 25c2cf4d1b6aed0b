// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/jobtracker/internal/adapter/driving/session"
	"github.com/ericfisherdev/jobtracker/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/jobtracker/internal/adapter/driving/web/templates/pages"
	vm "github.com/ericfisherdev/jobtracker/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/jobtracker/internal/application"
	"github.com/ericfisherdev/jobtracker/internal/domain/model"
	"github.com/ericfisherdev/jobtracker/internal/domain/port/driven"
	"github.com/ericfisherdev/jobtracker/internal/domain/search"
	"github.com/ericfisherdev/jobtracker/internal/metrics"
)

// Flash messages.
const (
	msgLoginRequired  = "Please login to access this page"
	msgLoginOK        = "Login successful!"
	msgLoginFailed    = "Invalid username or password"
	msgLoggedOut      = "You have been logged out"
	msgAdded          = "Application added successfully!"
	msgUpdated        = "Application updated successfully!"
	msgDeleted        = "Application deleted successfully!"
	msgNotFound       = "The application you are looking for does not exist."
	msgInvalidRequest = "Invalid or expired form. Please try again."
)

// Sessions logs users in and out and resolves session tokens.
type Sessions interface {
	Login(ctx context.Context, username, password string) (application.Session, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (model.Identity, error)
}

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	records  *application.RecordService
	stats    *application.StatsService
	exporter *application.ExportService
	sessions Sessions
	cookies  session.Cookies
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	records *application.RecordService,
	stats *application.StatsService,
	exporter *application.ExportService,
	sessions Sessions,
	cookies session.Cookies,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		records:  records,
		stats:    stats,
		exporter: exporter,
		sessions: sessions,
		cookies:  cookies,
		logger:   logger,
	}
}

// sessionHandler is a page handler that runs only for authenticated requests.
type sessionHandler func(w http.ResponseWriter, r *http.Request, identity model.Identity)

// requireSession resolves the session cookie once and passes the identity to
// next. Anonymous requests are redirected to the login page with a flash.
func (h *Handler) requireSession(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := session.FromRequest(r)
		identity, err := h.sessions.Authenticate(r.Context(), token)
		if err != nil {
			if !errors.Is(err, application.ErrUnauthenticated) {
				h.logger.Error("session check failed", "error", err)
			}
			if token != "" {
				h.cookies.Clear(w)
			}
			h.setFlash(w, flashError, msgLoginRequired)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next(w, r, identity)
	}
}

// render writes the page inside the layout with the given status code. A
// pending flash cookie is consumed unless meta already carries a message.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, meta vm.LayoutViewModel, body templ.Component) {
	if meta.Flash == nil {
		meta.Flash = h.popFlash(w, r)
	}

	templ.Handler(
		templates.Layout(meta, body),
		templ.WithStatus(status),
		templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
			h.logger.Error("failed to render page", "path", r.URL.Path, "error", err)
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "internal server error", http.StatusInternalServerError)
			})
		}),
	).ServeHTTP(w, r)
}

func (h *Handler) layout(identity model.Identity, title, csrf string) vm.LayoutViewModel {
	return vm.LayoutViewModel{Title: title, Username: identity.Username, CSRFToken: csrf}
}

func (h *Handler) serverError(w http.ResponseWriter, msg string, err error, args ...any) {
	h.logger.Error(msg, append(args, "error", err)...)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, identity model.Identity) {
	csrf := h.csrfToken(w, r)
	h.render(w, r, http.StatusNotFound, h.layout(identity, "Not Found", csrf),
		pages.NotFound(vm.NotFoundViewModel{Message: msgNotFound}))
}

// rejectCSRF answers a form post whose CSRF token is missing or wrong.
func (h *Handler) rejectCSRF(w http.ResponseWriter, r *http.Request) bool {
	if validateCSRF(r) {
		return false
	}
	h.logger.Warn("csrf validation failed", "path", r.URL.Path)
	http.Error(w, msgInvalidRequest, http.StatusForbidden)
	return true
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// LoginPage renders the login form, or redirects home when already logged in.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if token := session.FromRequest(r); token != "" {
		if _, err := h.sessions.Authenticate(r.Context(), token); err == nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}

	csrf := h.csrfToken(w, r)
	h.render(w, r, http.StatusOK, vm.LayoutViewModel{Title: "Login"}, pages.Login(vm.LoginViewModel{CSRFToken: csrf}))
}

// Login verifies the submitted credentials and starts a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if h.rejectCSRF(w, r) {
		return
	}

	username := r.PostFormValue("username")
	sess, err := h.sessions.Login(r.Context(), username, r.PostFormValue("password"))
	if errors.Is(err, application.ErrInvalidCredentials) {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		h.logger.Warn("login failed", "username", username)

		csrf := h.csrfToken(w, r)
		meta := vm.LayoutViewModel{
			Title: "Login",
			Flash: &vm.FlashViewModel{Kind: flashError, Message: msgLoginFailed},
		}
		h.render(w, r, http.StatusUnauthorized, meta, pages.Login(vm.LoginViewModel{CSRFToken: csrf, Username: username}))
		return
	}
	if err != nil {
		h.serverError(w, "login failed", err)
		return
	}

	metrics.LoginAttemptsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	h.logger.Info("user logged in", "username", sess.Identity.Username)

	h.cookies.Set(w, sess.Token, sess.Identity.ExpiresAt)
	h.setFlash(w, flashSuccess, msgLoginOK)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LogoutForm is Logout for the layout's logout form, which must carry a
// valid CSRF token.
func (h *Handler) LogoutForm(w http.ResponseWriter, r *http.Request) {
	if h.rejectCSRF(w, r) {
		return
	}
	h.Logout(w, r)
}

// Logout revokes the current session and returns to the login page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := session.FromRequest(r); token != "" {
		if err := h.sessions.Logout(r.Context(), token); err != nil {
			h.logger.Error("failed to revoke session", "error", err)
		}
	}

	h.cookies.Clear(w)
	h.setFlash(w, flashInfo, msgLoggedOut)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Index renders the application list filtered by the search and status
// query parameters.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request, identity model.Identity) {
	q := r.URL.Query()
	criteria := search.New(q.Get("search"), q.Get("status"))

	apps, err := h.records.Search(r.Context(), criteria)
	if err != nil {
		h.serverError(w, "failed to list applications", err)
		return
	}

	summary, err := h.stats.Summarize(r.Context())
	if err != nil {
		h.serverError(w, "failed to compute stats", err)
		return
	}

	csrf := h.csrfToken(w, r)
	h.render(w, r, http.StatusOK, h.layout(identity, "Applications", csrf),
		pages.Index(toIndexViewModel(apps, summary, criteria, csrf)))
}

// AddPage renders an empty application form.
func (h *Handler) AddPage(w http.ResponseWriter, r *http.Request, identity model.Identity) {
	h.renderForm(w, r, identity, http.StatusOK, 0, application.RecordInput{}, nil)
}

// Add creates an application from the submitted form.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request, identity model.Identity) {
	if h.rejectCSRF(w, r) {
		return
	}

	in := formInput(r)
	id, err := h.records.Create(r.Context(), in)
	var ve *application.ValidationError
	if errors.As(err, &ve) {
		h.renderForm(w, r, identity, http.StatusBadRequest, 0, in, ve)
		return
	}
	if err != nil {
		h.serverError(w, "failed to create application", err)
		return
	}

	metrics.ApplicationMutationsTotal.WithLabelValues(metrics.OpCreate).Inc()
	h.logger.Info("application created", "id", id, "user", identity.Username)

	h.setFlash(w, flashSuccess, msgAdded)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// EditPage renders the form pre-filled with a stored application.
func (h *Handler) EditPage(w http.ResponseWriter, r *http.Request, identity model.Identity) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r, identity)
		return
	}

	app, err := h.records.Get(r.Context(), id)
	if errors.Is(err, driven.ErrApplicationNotFound) {
		h.notFound(w, r, identity)
		return
	}
	if err != nil {
		h.serverError(w, "failed to get application", err, "id", id)
		return
	}

	h.renderForm(w, r, identity, http.StatusOK, id, application.InputFromApplication(*app), nil)
}

// Edit replaces a stored application with the submitted form.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request, identity model.Identity) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r, identity)
		return
	}
	if h.rejectCSRF(w, r) {
		return
	}

	in := formInput(r)
	err := h.records.Update(r.Context(), id, in)
	var ve *application.ValidationError
	switch {
	case errors.As(err, &ve):
		h.renderForm(w, r, identity, http.StatusBadRequest, id, in, ve)
		return
	case errors.Is(err, driven.ErrApplicationNotFound):
		h.notFound(w, r, identity)
		return
	case err != nil:
		h.serverError(w, "failed to update application", err, "id", id)
		return
	}

	metrics.ApplicationMutationsTotal.WithLabelValues(metrics.OpUpdate).Inc()
	h.logger.Info("application updated", "id", id, "user", identity.Username)

	h.setFlash(w, flashSuccess, msgUpdated)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// View renders a single application.
func (h *Handler) View(w http.ResponseWriter, r *http.Request, identity model.Identity) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r, identity)
		return
	}

	app, err := h.records.Get(r.Context(), id)
	if errors.Is(err, driven.ErrApplicationNotFound) {
		h.notFound(w, r, identity)
		return
	}
	if err != nil {
		h.serverError(w, "failed to get application", err, "id", id)
		return
	}

	csrf := h.csrfToken(w, r)
	h.render(w, r, http.StatusOK, h.layout(identity, app.CompanyName, csrf),
		pages.View(toDetailViewModel(*app, csrf)))
}

// Delete removes an application permanently.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, identity model.Identity) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r, identity)
		return
	}
	if h.rejectCSRF(w, r) {
		return
	}

	err := h.records.Delete(r.Context(), id)
	if errors.Is(err, driven.ErrApplicationNotFound) {
		h.notFound(w, r, identity)
		return
	}
	if err != nil {
		h.serverError(w, "failed to delete application", err, "id", id)
		return
	}

	metrics.ApplicationMutationsTotal.WithLabelValues(metrics.OpDelete).Inc()
	h.logger.Info("application deleted", "id", id, "user", identity.Username)

	h.setFlash(w, flashSuccess, msgDeleted)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Export downloads every application as a CSV attachment. The document is
// built completely before any byte is sent.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request, identity model.Identity) {
	var buf bytes.Buffer
	n, err := h.exporter.Export(r.Context(), &buf)
	if err != nil {
		h.serverError(w, "failed to export applications", err)
		return
	}

	metrics.ExportsTotal.Inc()
	metrics.ExportedRecordsTotal.Add(float64(n))
	h.logger.Info("applications exported", "records", n, "user", identity.Username)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+h.exporter.FileName()+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Stats renders the statistics page.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request, identity model.Identity) {
	summary, err := h.stats.Summarize(r.Context())
	if err != nil {
		h.serverError(w, "failed to compute stats", err)
		return
	}

	csrf := h.csrfToken(w, r)
	h.render(w, r, http.StatusOK, h.layout(identity, "Statistics", csrf), pages.Stats(toStatsViewModel(summary)))
}

// renderForm renders the add form (id == 0) or the edit form for id.
func (h *Handler) renderForm(
	w http.ResponseWriter,
	r *http.Request,
	identity model.Identity,
	status int,
	id int64,
	in application.RecordInput,
	errs *application.ValidationError,
) {
	csrf := h.csrfToken(w, r)
	form := toFormViewModel(in, errs)
	form.CSRFToken = csrf

	title := "Add Application"
	form.Heading = title
	form.Action = "/add"
	form.SubmitLabel = "Add Application"
	form.CancelPath = "/"
	if id > 0 {
		title = "Edit Application"
		form.Heading = title
		form.Action = "/edit/" + strconv.FormatInt(id, 10)
		form.SubmitLabel = "Save Changes"
		form.CancelPath = "/view/" + strconv.FormatInt(id, 10)
	}

	h.render(w, r, status, h.layout(identity, title, csrf), pages.Form(form))
}

// formInput reads the application fields from a submitted form.
func formInput(r *http.Request) application.RecordInput {
	return application.RecordInput{
		CompanyName:   r.PostFormValue("company_name"),
		JobTitle:      r.PostFormValue("job_title"),
		Location:      r.PostFormValue("location"),
		DateApplied:   r.PostFormValue("date_applied"),
		Status:        r.PostFormValue("status"),
		SalaryRange:   r.PostFormValue("salary_range"),
		JobLink:       r.PostFormValue("job_link"),
		ContactPerson: r.PostFormValue("contact_person"),
		ContactEmail:  r.PostFormValue("contact_email"),
		JobMatch:      r.PostFormValue("job_match"),
		Notes:         r.PostFormValue("notes"),
	}
}
