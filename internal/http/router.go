package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/mixlist/mixlist/internal/repository"
	"github.com/mixlist/mixlist/internal/service/auth"
	"github.com/mixlist/mixlist/internal/service/playlist"
)

// Router wires HTTP endpoints to services.
type Router struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	auth      auth.Service
	playlists playlist.Service
	dbHealth  func(context.Context) error
}

const healthCheckTimeout = 2 * time.Second

// credentialErrorMessage deliberately hides whether the email or the
// password was wrong.
const credentialErrorMessage = "please enter the correct credentials"

// NewRouter assembles routes with dependencies.
func NewRouter(logger *slog.Logger, authSvc auth.Service, playlistSvc playlist.Service, dbHealth func(context.Context) error) *Router {
	r := &Router{
		mux:       http.NewServeMux(),
		logger:    logger,
		auth:      authSvc,
		playlists: playlistSvc,
		dbHealth:  dbHealth,
	}
	r.register()
	return r
}

// ServeHTTP delegates to underlying mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) register() {
	r.mux.HandleFunc("/healthz", r.audit(r.handleHealthz))
	r.mux.HandleFunc("/api/auth/createuser", r.audit(r.handleCreateUser))
	r.mux.HandleFunc("/api/auth/login", r.audit(r.handleLogin))
	r.mux.HandleFunc("/api/playlists/", r.audit(r.requireAuth(r.handlePlaylists)))
}

func (r *Router) handleCreateUser(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var payload createUserRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	_, signed, err := r.auth.Register(req.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, auth.ErrEmailTaken.Error())
			return
		}
		r.internalError(w, req, "user registration failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"authtoken": signed})
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var payload loginRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	_, signed, err := r.auth.Login(req.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, credentialErrorMessage)
			return
		}
		r.internalError(w, req, "login failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"authtoken": signed})
}

// handlePlaylists dispatches the authenticated playlist subtree.
func (r *Router) handlePlaylists(w http.ResponseWriter, req *http.Request) {
	rest := strings.TrimPrefix(req.URL.Path, "/api/playlists/")
	switch {
	case rest == "":
		r.handleListPlaylists(w, req)
	case rest == "new-playlist":
		r.handleNewPlaylist(w, req)
	case strings.HasPrefix(rest, "update/"):
		r.handleUpdatePlaylist(w, req, strings.TrimPrefix(rest, "update/"))
	case strings.HasPrefix(rest, "delete-playlist/"):
		r.handleDeletePlaylist(w, req, strings.TrimPrefix(rest, "delete-playlist/"))
	default:
		r.notFound(w)
	}
}

func (r *Router) handleListPlaylists(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	accountID, ok := accountIDFromContext(req.Context())
	if !ok {
		r.missingAuthContext(w, req)
		return
	}
	playlists, err := r.playlists.List(req.Context(), accountID)
	if err != nil {
		r.internalError(w, req, "playlist listing failed", err)
		return
	}
	writeJSON(w, http.StatusOK, playlists)
}

func (r *Router) handleNewPlaylist(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	accountID, ok := accountIDFromContext(req.Context())
	if !ok {
		r.missingAuthContext(w, req)
		return
	}
	var payload newPlaylistRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	created, err := r.playlists.Create(req.Context(), accountID, payload.Title, payload.Description)
	if err != nil {
		r.internalError(w, req, "playlist creation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (r *Router) handleUpdatePlaylist(w http.ResponseWriter, req *http.Request, playlistID string) {
	if req.Method != http.MethodPut {
		r.methodNotAllowed(w)
		return
	}
	if playlistID == "" {
		r.notFound(w)
		return
	}
	accountID, ok := accountIDFromContext(req.Context())
	if !ok {
		r.missingAuthContext(w, req)
		return
	}
	var payload updatePlaylistRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	updated, err := r.playlists.Update(req.Context(), accountID, playlistID, payload.Title, payload.Description)
	if err != nil {
		r.writeGuardError(w, req, "playlist update failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"playlist": updated})
}

func (r *Router) handleDeletePlaylist(w http.ResponseWriter, req *http.Request, playlistID string) {
	if req.Method != http.MethodDelete {
		r.methodNotAllowed(w)
		return
	}
	if playlistID == "" {
		r.notFound(w)
		return
	}
	accountID, ok := accountIDFromContext(req.Context())
	if !ok {
		r.missingAuthContext(w, req)
		return
	}
	if err := r.playlists.Delete(req.Context(), accountID, playlistID); err != nil {
		r.writeGuardError(w, req, "playlist deletion failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"success": "your playlist has been deleted"})
}

// writeGuardError maps ownership-guard failures: the not-found check runs
// before the owner comparison, so ErrNotFound takes precedence.
func (r *Router) writeGuardError(w http.ResponseWriter, req *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		r.notFound(w)
	case errors.Is(err, playlist.ErrNotOwner):
		writeError(w, http.StatusUnauthorized, "not allowed")
	default:
		r.internalError(w, req, msg, err)
	}
}

func (r *Router) handleHealthz(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	components := make(map[string]any)
	status := "ok"
	if r.dbHealth != nil {
		ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
		defer cancel()
		if err := r.dbHealth(ctx); err != nil {
			status = "degraded"
			components["database"] = map[string]any{
				"status": "down",
				"error":  err.Error(),
			}
		} else {
			components["database"] = map[string]any{"status": "up"}
		}
	}
	payload := map[string]any{
		"status":     status,
		"components": components,
		"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, payload)
}

// internalError logs the underlying cause and returns a generic body so
// store failures never leak detail to clients.
func (r *Router) internalError(w http.ResponseWriter, req *http.Request, msg string, err error) {
	r.logger.Error(msg, "error", err, "path", req.URL.Path)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func (r *Router) missingAuthContext(w http.ResponseWriter, req *http.Request) {
	r.logger.Error("auth context missing", "path", req.URL.Path)
	writeError(w, http.StatusInternalServerError, "authorization context missing")
}

func (r *Router) audit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w}
		start := time.Now()
		next(recorder, req)

		status := recorder.status
		if status == 0 {
			status = http.StatusOK
		}
		ctx := recorder.ctx
		if ctx == nil {
			ctx = req.Context()
		}
		duration := time.Since(start)
		fields := []any{
			"method", req.Method,
			"path", req.URL.Path,
			"status", status,
			"bytes", recorder.bytes,
			"duration_ms", duration.Milliseconds(),
		}
		if ip := clientIP(req); ip != "" {
			fields = append(fields, "ip", ip)
		}
		if reqID := strings.TrimSpace(req.Header.Get("X-Request-ID")); reqID != "" {
			fields = append(fields, "request_id", reqID)
		}
		actor := "anonymous"
		if accountID, ok := accountIDFromContext(ctx); ok {
			actor = "user"
			fields = append(fields, "user_id", accountID)
		}
		fields = append(fields, "actor", actor)

		switch {
		case status >= http.StatusInternalServerError:
			r.logger.Error("http_request", fields...)
		case status >= http.StatusBadRequest:
			r.logger.Warn("http_request", fields...)
		default:
			r.logger.Info("http_request", fields...)
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
	ctx    context.Context
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

func (sr *statusRecorder) SetContext(ctx context.Context) {
	sr.ctx = ctx
}

func (sr *statusRecorder) Flush() {
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func clientIP(req *http.Request) string {
	if forwarded := strings.TrimSpace(req.Header.Get("X-Forwarded-For")); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if len(parts) > 0 {
			ip := strings.TrimSpace(parts[0])
			if ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(req.RemoteAddr))
	if err != nil {
		return strings.TrimSpace(req.RemoteAddr)
	}
	return host
}

func (r *Router) methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func (r *Router) notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "not found")
}
