package ledger

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yourorg/fundledger/internal/integrity"
)

// Service wires the ingestion pipeline and verification engine around the
// record store and the audit log. Every operation, success or failure,
// appends exactly one VerificationEvent; no error crosses the service
// boundary.
type Service struct {
	cfg     Config
	store   *RecordStore
	audit   *AuditLog
	logger  *slog.Logger
	limiter *RateLimiter
}

func NewService(cfg Config, store *RecordStore, audit *AuditLog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:     cfg,
		store:   store,
		audit:   audit,
		logger:  logger,
		limiter: NewRateLimiter(cfg.RateLimitPerMinute, time.Minute),
	}
}

// Audit exposes the log for read-only consumers (handlers, CLI).
func (s *Service) Audit() *AuditLog { return s.audit }

// Records exposes the record store for read-only consumers.
func (s *Service) Records() *RecordStore { return s.store }

// Ingest parses raw upload bytes, signs the parsed payload, and stores the
// resulting record. On parse or signing failure no record is created; the
// failure is returned (and logged) as an ok=false event. The returned
// bool reports whether a record was created.
func (s *Service) Ingest(filename string, raw []byte) (Record, VerificationEvent, bool) {
	payload, err := parsePayload(filename, raw)
	if err != nil {
		return Record{}, s.failure(filename, err), false
	}

	signature, err := integrity.Sign(payload)
	if err != nil {
		return Record{}, s.failure(filename, err), false
	}

	rec := Record{
		ID:        uuid.NewString(),
		Name:      filename,
		Payload:   payload,
		Signature: signature,
	}
	s.store.Put(rec)

	ev := VerificationEvent{
		ID:        uuid.NewString(),
		OK:        true,
		Signature: signature,
		File:      filename,
		Time:      time.Now().UTC(),
	}
	s.audit.Append(ev)
	s.logger.Info("record ingested", "recordId", rec.ID, "file", filename, "signature", signature)
	return rec, ev, true
}

// Verify recomputes the signature for rec's payload and compares it with
// the stored one. Idempotent and side-effect free on the record itself:
// verifying an unchanged record any number of times yields the same
// outcome.
func (s *Service) Verify(rec Record) VerificationEvent {
	expected, err := integrity.Sign(rec.Payload)
	if err != nil {
		return s.failure(rec.Name, err)
	}

	ev := VerificationEvent{
		ID:        uuid.NewString(),
		OK:        expected == rec.Signature,
		Signature: rec.Signature,
		Expected:  expected,
		File:      rec.Name,
		Time:      time.Now().UTC(),
	}
	s.audit.Append(ev)
	if !ev.OK {
		s.logger.Warn("signature mismatch", "recordId", rec.ID, "file", rec.Name,
			"signature", rec.Signature, "expected", expected)
	}
	return ev
}

// QuickVerify is the fast-path check for a project's transaction subset.
// It digests the transactions scoped by project ID and logs ok=true
// unconditionally — it compares against nothing previously stored, so it
// is a demonstration affordance, not a correctness check.
func (s *Service) QuickVerify(projectID string, txs any) VerificationEvent {
	signature, err := integrity.ScopedDigest(txs, projectID)
	if err != nil {
		return s.failure(projectID, err)
	}

	ev := VerificationEvent{
		ID:        uuid.NewString(),
		OK:        true,
		Signature: signature,
		File:      projectID,
		Time:      time.Now().UTC(),
	}
	s.audit.Append(ev)
	return ev
}

func (s *Service) failure(file string, cause error) VerificationEvent {
	ev := VerificationEvent{
		ID:    uuid.NewString(),
		OK:    false,
		File:  file,
		Error: cause.Error(),
		Time:  time.Now().UTC(),
	}
	s.audit.Append(ev)
	s.logger.Warn("operation failed", "file", file, "error", cause)
	return ev
}
