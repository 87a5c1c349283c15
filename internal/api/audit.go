package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"

	// Only the head of a body is inspected for audit fields.
	maxAuditBodyBytes = 4 << 10
)

type requestIDKey struct{}

// RequestID returns the ID AuditMiddleware attached to ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// auditFields are the parts of a mutating request worth keeping. Unknown
// bodies are logged by size only.
type auditFields struct {
	Owner          string `json:"owner"`
	DomainObjectID string `json:"domain_object_id"`
	CID            string `json:"cid"`
}

// AuditMiddleware tags every request with an ID, echoed in X-Request-ID, and
// writes one audit line per POST. A caller-supplied ID is kept when it is a
// UUID.
func AuditMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	auditLogger := logger.With("component", "api_audit")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID))

		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		var head []byte
		if r.Body != nil {
			var err error
			head, err = io.ReadAll(io.LimitReader(r.Body, maxAuditBodyBytes))
			if err == nil {
				r.Body = readCloser{Reader: io.MultiReader(bytes.NewReader(head), r.Body), Closer: r.Body}
			}
		}

		sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(sw, r)

		attrs := []any{
			"request_id", requestID,
			"remote_addr", r.RemoteAddr,
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		var f auditFields
		if len(head) > 0 && len(head) < maxAuditBodyBytes && json.Unmarshal(head, &f) == nil {
			attrs = append(attrs, "owner", f.Owner, "domain_object_id", f.DomainObjectID, "cid", f.CID)
		} else {
			attrs = append(attrs, "body_bytes", len(head))
		}
		auditLogger.Info("api audit", attrs...)
	})
}

type readCloser struct {
	io.Reader
	io.Closer
}

// statusWriter records the first status code written.
type statusWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.written {
		sw.statusCode = code
		sw.written = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	sw.written = true
	return sw.ResponseWriter.Write(b)
}
