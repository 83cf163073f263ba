package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/askdocs/askdocs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// DefaultAskTimeout bounds a single question end to end, including
// retrieval and generation.
const DefaultAskTimeout = 60 * time.Second

// Server exposes the question answering service over HTTP.
type Server struct {
	server *http.Server
	ln     net.Listener

	Addr   string
	Asker  askdocs.Asker
	Logger zerolog.Logger
}

// NewServer creates a new Server for the given asker.
func NewServer(asker askdocs.Asker, logger zerolog.Logger) *Server {
	return &Server{
		Asker:  asker,
		Logger: logger,
	}
}

// Handler builds the routed handler with logging middleware attached.
// Exposed separately from Open so tests can drive it with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ask", s.handleAsk)
	mux.HandleFunc("GET /health", s.handleHealth)

	return hlog.NewHandler(s.Logger)(
		hlog.RequestIDHandler("request_id", "X-Request-Id")(
			hlog.AccessHandler(func(r *http.Request, status, size int, dur time.Duration) {
				hlog.FromRequest(r).Info().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", status).
					Int("size", size).
					Dur("dur", dur).
					Msg("http")
			})(mux),
		),
	)
}

// Open starts listening on Addr. It returns once the listener is
// bound; requests are served on a background goroutine.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.server = &http.Server{Handler: s.Handler()}

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	s.Logger.Info().Str("addr", ln.Addr().String()).Msg("api server listening")
	return nil
}

// Close gracefully shuts the server down, waiting for in-flight
// requests up to a short deadline.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL the server is listening on.
// Returns an empty string until Open has been called.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return fmt.Sprintf("http://%s", s.ln.Addr())
}

type askRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, askdocs.Errorf(askdocs.EINVALID, "invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, r, askdocs.Errorf(askdocs.EINVALID, "query must not be empty"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), DefaultAskTimeout)
	defer cancel()

	answer, err := s.Asker.Ask(ctx, req.Query)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, answer)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain error codes to HTTP status codes. Internal
// error details are logged but not leaked to clients.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := askdocs.ErrorCode(err)
	status := errorStatus(code)

	if status >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Str("code", code).Msg("request failed")
	}

	writeJSON(w, r, status, errorResponse{Error: askdocs.ErrorMessage(err)})
}

func errorStatus(code string) int {
	switch code {
	case askdocs.EINVALID:
		return http.StatusBadRequest
	case askdocs.ENOTFOUND:
		return http.StatusNotFound
	case askdocs.ECONFLICT:
		return http.StatusConflict
	case askdocs.EUNAVAILABLE:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to encode response")
	}
}
