package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// ChainedEvent wraps a VerificationEvent with hash chaining so the log
// itself is tamper evident: each entry's hash covers its fields plus the
// previous entry's hash.
type ChainedEvent struct {
	Event    VerificationEvent `json:"event"`
	PrevHash string            `json:"prevHash"`
	Hash     string            `json:"hash"`
}

// ChainReport summarizes a walk over the audit chain.
type ChainReport struct {
	OK       bool   `json:"ok"`
	Checked  int    `json:"checked"`
	BrokenAt string `json:"brokenAt,omitempty"`
}

// AuditLog is the ordered, append-only store of verification events. It is
// the single shared mutable resource in the system: appends serialize
// under one mutex so entries are never lost, duplicated, or interleaved.
// There is no update or delete.
type AuditLog struct {
	mu      sync.Mutex
	entries []ChainedEvent
}

func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// Append records ev at the tail of the chain. Entries keep causal order:
// whatever order operations complete in is the order the log shows.
func (l *AuditLog) Append(ev VerificationEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	prev := ""
	if n := len(l.entries); n > 0 {
		prev = l.entries[n-1].Hash
	}
	l.entries = append(l.entries, ChainedEvent{
		Event:    ev,
		PrevHash: prev,
		Hash:     hashEvent(ev, prev),
	})
}

// All returns the events newest-first. The returned slice is a copy; the
// log's own entries are never handed out for mutation.
func (l *AuditLog) All() []VerificationEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]VerificationEvent, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		out = append(out, l.entries[i].Event)
	}
	return out
}

// Len reports the number of appended events.
func (l *AuditLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// VerifyChain recomputes every entry hash and link, reporting the first
// break. A clean report means no entry was altered since it was appended.
func (l *AuditLog) VerifyChain() ChainReport {
	l.mu.Lock()
	defer l.mu.Unlock()
	report := ChainReport{OK: true}
	prev := ""
	for _, entry := range l.entries {
		if entry.PrevHash != prev || entry.Hash != hashEvent(entry.Event, entry.PrevHash) {
			report.OK = false
			report.BrokenAt = entry.Event.ID
			return report
		}
		prev = entry.Hash
		report.Checked++
	}
	return report
}

func hashEvent(ev VerificationEvent, prevHash string) string {
	payload := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%s",
		ev.ID, strconv.FormatBool(ev.OK), ev.Signature, ev.Expected,
		ev.File, ev.Error, ev.Time.UTC().Format(time.RFC3339Nano), prevHash)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
