package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ericfisherdev/jobtracker/internal/adapter/driving/session"
	"github.com/ericfisherdev/jobtracker/internal/application"
	"github.com/ericfisherdev/jobtracker/internal/domain/model"
	"github.com/ericfisherdev/jobtracker/internal/domain/port/driven"
	"github.com/ericfisherdev/jobtracker/internal/domain/search"
)

// Authenticator resolves a session token to an identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.Identity, error)
}

// Handler is the HTTP driving adapter that serves the JSON API.
type Handler struct {
	records *application.RecordService
	stats   *application.StatsService
	auth    Authenticator
	logger  *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	records *application.RecordService,
	stats *application.StatsService,
	auth Authenticator,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		records: records,
		stats:   stats,
		auth:    auth,
		logger:  logger,
	}
}

// RegisterAPIRoutes registers every /api/v1 route on mux. Data routes are
// wrapped by the session gate; health is public.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/applications", h.requireSession(h.ListApplications))
	mux.HandleFunc("GET /api/v1/applications/{id}", h.requireSession(h.GetApplication))
	mux.HandleFunc("GET /api/v1/stats", h.requireSession(h.Stats))
}

// NewServeMux creates an http.Handler with the API routes registered and
// wrapped with the standard middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	return ApplyMiddleware(mux, logger)
}

// sessionHandler is an API handler that runs only for authenticated requests.
type sessionHandler func(w http.ResponseWriter, r *http.Request, identity model.Identity)

// requireSession resolves the session cookie once and passes the identity to
// next. Requests without a valid session get 401.
func (h *Handler) requireSession(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := h.auth.Authenticate(r.Context(), session.FromRequest(r))
		if err != nil {
			if !errors.Is(err, application.ErrUnauthenticated) {
				h.logger.Error("session check failed", "error", err)
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		next(w, r, identity)
	}
}

// ListApplications returns the records matching the search and status query
// parameters, newest first.
func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request, _ model.Identity) {
	q := r.URL.Query()
	criteria := search.New(q.Get("search"), q.Get("status"))

	apps, err := h.records.Search(r.Context(), criteria)
	if err != nil {
		h.logger.Error("failed to list applications", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toApplicationResponses(apps))
}

// GetApplication returns a single record by id.
func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request, _ model.Identity) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid application id")
		return
	}

	app, err := h.records.Get(r.Context(), id)
	if errors.Is(err, driven.ErrApplicationNotFound) {
		writeError(w, http.StatusNotFound, "application not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get application", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toApplicationResponse(*app))
}

// Stats returns the statistics bundle.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request, _ model.Identity) {
	summary, err := h.stats.Summarize(r.Context())
	if err != nil {
		h.logger.Error("failed to compute stats", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toStatsResponse(summary))
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
