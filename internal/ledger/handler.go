package ledger

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	CorrID    string `json:"corrId,omitempty"`
	Retryable bool   `json:"retryable"`
}

type quickVerifyRequest struct {
	ProjectID string `json:"projectId"`
	Txs       any    `json:"txs"`
}

// Register exposes the ledger operations to the rendering collaborator
// over HTTP. Failures of the core operations still come back as events
// with ok=false; HTTP-level errors (missing filename, rate limits) use
// the error body shape.
func (s *Service) Register(r chi.Router) {
	r.Post("/records", s.handleIngest)
	r.Get("/records", s.handleListRecords)
	r.Get("/records/{recordID}", s.handleGetRecord)
	r.Post("/records/{recordID}/verify", s.handleVerify)
	r.Post("/verify/quick", s.handleQuickVerify)
	r.Get("/audit", s.handleAudit)
	r.Get("/audit/chain", s.handleAuditChain)
}

func (s *Service) handleIngest(w http.ResponseWriter, r *http.Request) {
	corrID := correlationID(r)
	log := CorrelationLogger(s.logger, corrID)

	if ok, retryAfter := s.limiter.Allow(clientKey(r)); !ok {
		writeJSON(w, http.StatusTooManyRequests, corrID,
			apiError{Code: "RATE_LIMITED", Message: "too many uploads", CorrID: corrID, Retryable: true},
			map[string]string{"Retry-After": formatRetryAfter(retryAfter)})
		return
	}

	filename := r.URL.Query().Get("filename")
	if filename == "" {
		writeJSON(w, http.StatusBadRequest, corrID,
			apiError{Code: "MISSING_FILENAME", Message: "filename query parameter is required", CorrID: corrID}, nil)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, corrID,
			apiError{Code: "UPLOAD_TOO_LARGE", Message: err.Error(), CorrID: corrID}, nil)
		return
	}
	defer r.Body.Close()

	rec, ev, created := s.Ingest(filename, raw)
	if !created {
		writeJSON(w, http.StatusUnprocessableEntity, corrID, map[string]any{"event": ev}, nil)
		return
	}
	writeJSON(w, http.StatusCreated, corrID, map[string]any{"record": rec, "event": ev}, nil)
	log.Info("upload ingested", "recordId", rec.ID, "file", filename)
}

func (s *Service) handleListRecords(w http.ResponseWriter, r *http.Request) {
	corrID := correlationID(r)
	writeJSON(w, http.StatusOK, corrID, map[string]any{"records": s.store.List()}, nil)
}

func (s *Service) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	corrID := correlationID(r)
	rec, ok := s.store.Get(chi.URLParam(r, "recordID"))
	if !ok {
		writeJSON(w, http.StatusNotFound, corrID,
			apiError{Code: "NOT_FOUND", Message: "record not found", CorrID: corrID}, nil)
		return
	}
	writeJSON(w, http.StatusOK, corrID, rec, nil)
}

func (s *Service) handleVerify(w http.ResponseWriter, r *http.Request) {
	corrID := correlationID(r)
	log := CorrelationLogger(s.logger, corrID)

	rec, ok := s.store.Get(chi.URLParam(r, "recordID"))
	if !ok {
		writeJSON(w, http.StatusNotFound, corrID,
			apiError{Code: "NOT_FOUND", Message: "record not found", CorrID: corrID}, nil)
		return
	}
	ev := s.Verify(rec)
	writeJSON(w, http.StatusOK, corrID, ev, nil)
	log.Info("record verified", "recordId", rec.ID, "ok", ev.OK)
}

func (s *Service) handleQuickVerify(w http.ResponseWriter, r *http.Request) {
	corrID := correlationID(r)

	var req quickVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, corrID,
			apiError{Code: "BAD_JSON", Message: err.Error(), CorrID: corrID}, nil)
		return
	}
	defer r.Body.Close()
	if req.ProjectID == "" {
		writeJSON(w, http.StatusBadRequest, corrID,
			apiError{Code: "MISSING_PROJECT_ID", Message: "projectId is required", CorrID: corrID}, nil)
		return
	}
	writeJSON(w, http.StatusOK, corrID, s.QuickVerify(req.ProjectID, req.Txs), nil)
}

func (s *Service) handleAudit(w http.ResponseWriter, r *http.Request) {
	corrID := correlationID(r)
	writeJSON(w, http.StatusOK, corrID, map[string]any{"events": s.audit.All()}, nil)
}

func (s *Service) handleAuditChain(w http.ResponseWriter, r *http.Request) {
	corrID := correlationID(r)
	writeJSON(w, http.StatusOK, corrID, s.audit.VerifyChain(), nil)
}

// CorrelationLogger scopes logger to one request's correlation ID.
func CorrelationLogger(logger *slog.Logger, corrID string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("corrId", corrID)
}

func correlationID(r *http.Request) string {
	if corr := r.Header.Get("X-Correlation-Id"); corr != "" {
		return corr
	}
	return uuid.NewString()
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, corrID string, v any, extra map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	if corrID != "" {
		w.Header().Set("X-Correlation-Id", corrID)
	}
	for k, val := range extra {
		w.Header().Set(k, val)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func formatRetryAfter(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	return fmt.Sprintf("%d", seconds)
}
