package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func testEvent(file string, ok bool) VerificationEvent {
	return VerificationEvent{
		ID:   uuid.NewString(),
		OK:   ok,
		File: file,
		Time: time.Now().UTC(),
	}
}

func TestAuditLogNewestFirst(t *testing.T) {
	log := NewAuditLog()
	log.Append(testEvent("first.json", true))
	log.Append(testEvent("second.json", false))
	log.Append(testEvent("third.json", true))

	events := log.All()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].File != "third.json" || events[2].File != "first.json" {
		t.Fatalf("expected newest-first order, got %s .. %s", events[0].File, events[2].File)
	}
}

func TestAuditLogAppendOnly(t *testing.T) {
	log := NewAuditLog()
	log.Append(testEvent("a.json", true))
	before := log.All()

	// Mutating a returned snapshot must not touch the log.
	before[0].File = "mutated"
	log.Append(testEvent("b.json", true))

	after := log.All()
	if len(after) != 2 {
		t.Fatalf("length must be non-decreasing, got %d", len(after))
	}
	if after[1].File != "a.json" {
		t.Fatalf("prior entry changed after read: %+v", after[1])
	}
}

func TestAuditChainIntact(t *testing.T) {
	log := NewAuditLog()
	for i := 0; i < 5; i++ {
		log.Append(testEvent("f.json", i%2 == 0))
	}
	report := log.VerifyChain()
	if !report.OK || report.Checked != 5 {
		t.Fatalf("expected intact chain over 5 entries: %+v", report)
	}
}

func TestAuditChainDetectsTamper(t *testing.T) {
	log := NewAuditLog()
	log.Append(testEvent("a.json", true))
	log.Append(testEvent("b.json", true))
	log.Append(testEvent("c.json", true))

	log.entries[1].Event.File = "doctored.json"

	report := log.VerifyChain()
	if report.OK {
		t.Fatalf("expected tamper detection")
	}
	if report.BrokenAt != log.entries[1].Event.ID {
		t.Fatalf("expected break at doctored entry, got %q", report.BrokenAt)
	}
}
