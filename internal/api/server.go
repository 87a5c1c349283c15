package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/WebHash-eth/sui-domain/internal/cid"
	"github.com/WebHash-eth/sui-domain/internal/domain/model"
	"github.com/WebHash-eth/sui-domain/internal/linker"
	"github.com/WebHash-eth/sui-domain/internal/metrics"
	"github.com/WebHash-eth/sui-domain/internal/retry"
	"github.com/WebHash-eth/sui-domain/internal/suins"
	"github.com/WebHash-eth/sui-domain/internal/tracing"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxRequestBodyBytes = 1 << 20 // 1 MB

// Linker is the link flow the API exposes. In production this is
// *linker.Linker.
type Linker interface {
	Session() linker.Session
	ListDomains(ctx context.Context, owner, query string) ([]model.DomainRecord, error)
	Link(ctx context.Context, req linker.LinkRequest) (*linker.Confirmation, error)
}

// Server serves the linker over HTTP.
type Server struct {
	linker         Linker
	metricsHandler http.Handler
	logger         *slog.Logger
}

func NewServer(l Linker, logger *slog.Logger, opts ...ServerOption) *Server {
	s := &Server{
		linker:         l,
		metricsHandler: promhttp.Handler(),
		logger:         logger.With("component", "api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ServerOption configures optional dependencies for the API server.
type ServerOption func(*Server)

// WithMetricsHandler replaces the default Prometheus handler on /metrics.
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(s *Server) { s.metricsHandler = h }
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /v1/domains", instrument("domains", s.handleListDomains))
	mux.Handle("POST /v1/cid/validate", instrument("cid_validate", s.handleValidateCID))
	mux.Handle("POST /v1/records", instrument("records", s.handleUpdateRecord))
	mux.Handle("GET /v1/session", instrument("session", s.handleSession))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", s.metricsHandler)
	return mux
}

// instrument counts responses per route and status code, inside a server
// span named after the route.
func instrument(route string, h http.HandlerFunc) http.Handler {
	return tracing.Middleware(route, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		h(sw, r)
		metrics.APIRequestsTotal.WithLabelValues(route, strconv.Itoa(sw.statusCode)).Inc()
	}))
}

// writeJSON writes v as JSON with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSONBody reads and decodes a JSON request body into v.
// Returns false (and writes an error response) if decoding fails.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}

type errorResponse struct {
	Success   *bool  `json:"success,omitempty"`
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	Retryable bool   `json:"retryable"`
}

// statusFor maps a linker error to an HTTP status.
func statusFor(err error) int {
	if errors.Is(err, suins.ErrDomainNotOwned) {
		return http.StatusForbidden
	}
	switch suins.KindOf(err) {
	case suins.KindMissingInput, suins.KindValidation:
		return http.StatusBadRequest
	case suins.KindResolution:
		return http.StatusBadGateway
	case suins.KindSubmission:
		if retry.Classify(err).IsTransient() {
			return http.StatusBadGateway
		}
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, withSuccess bool) {
	status := statusFor(err)
	resp := errorResponse{
		Error:     linker.Message(err),
		Kind:      string(suins.KindOf(err)),
		Retryable: status >= 500 && retry.Classify(err).IsTransient(),
	}
	if withSuccess {
		f := false
		resp.Success = &f
	}
	if status >= 500 {
		s.logger.Warn("request failed", "request_id", RequestID(r.Context()), "status", status, "error", err)
	}
	writeJSON(w, status, resp)
}

type domainsResponse struct {
	Owner   string               `json:"owner"`
	Domains []model.DomainRecord `json:"domains"`
}

func (s *Server) handleListDomains(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	if owner == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "owner query param required"})
		return
	}

	domains, err := s.linker.ListDomains(r.Context(), owner, r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, err, false)
		return
	}
	writeJSON(w, http.StatusOK, domainsResponse{Owner: owner, Domains: domains})
}

type validateCIDRequest struct {
	CID string `json:"cid"`
}

type validateCIDResponse struct {
	CID    string    `json:"cid"`
	Valid  bool      `json:"valid"`
	Shape  cid.Shape `json:"shape,omitempty"`
	Parsed *cid.Info `json:"parsed,omitempty"`
	Error  string    `json:"error,omitempty"`
}

func (s *Server) handleValidateCID(w http.ResponseWriter, r *http.Request) {
	var req validateCIDRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	resp := validateCIDResponse{CID: req.CID, Shape: cid.Classify(req.CID)}
	resp.Valid = resp.Shape != cid.ShapeNone
	switch {
	case req.CID == "":
		resp.Error = linker.MsgEnterCID
	case !resp.Valid:
		resp.Error = linker.MsgInvalidCID
	default:
		// Structural decoding is informational; the shape check decides validity.
		if info, err := cid.Inspect(req.CID); err == nil {
			resp.Parsed = info
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type recordResponse struct {
	Success bool `json:"success"`
	*linker.Confirmation
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	var req linker.LinkRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Owner == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: linker.MsgConnectWallet})
		return
	}

	conf, err := s.linker.Link(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, true)
		return
	}
	writeJSON(w, http.StatusOK, recordResponse{Success: true, Confirmation: conf})
}

type sessionResponse struct {
	PrefillCID string `json:"prefill_cid,omitempty"`
	ReadOnly   bool   `json:"read_only"`
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	session := s.linker.Session()
	writeJSON(w, http.StatusOK, sessionResponse{PrefillCID: session.PrefillCID, ReadOnly: session.ReadOnly()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
