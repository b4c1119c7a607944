// Package ledger implements the ingestion pipeline, verification engine,
// and append-only audit log for signed financial records.
package ledger

import (
	"fmt"
	"time"
)

// Record is an ingested financial data file plus its computed signature.
// Records are immutable after creation; verification never touches them.
type Record struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Payload   any    `json:"payload"`
	Signature string `json:"signature"`
}

// VerificationEvent is the outcome of a single ingestion or verification
// attempt. Every operation produces exactly one event, success or failure;
// events are never mutated once appended to the audit log.
type VerificationEvent struct {
	ID        string    `json:"id"`
	OK        bool      `json:"ok"`
	Signature string    `json:"signature,omitempty"`
	Expected  string    `json:"expected,omitempty"`
	File      string    `json:"file"`
	Error     string    `json:"error,omitempty"`
	Time      time.Time `json:"time"`
}

// Row is one line of a delimited upload, header names zipped against the
// line's columns. Columns past the header are dropped; missing trailing
// columns stay empty.
type Row = map[string]string

// ParseError indicates raw upload content that could not be turned into a
// structured payload. It never escapes the ingestion boundary; it becomes
// an ok=false VerificationEvent.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
