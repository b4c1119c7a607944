package ledger

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseJSONValue(t *testing.T) {
	payload, err := parsePayload("data.json", []byte(`{"a":1,"b":2}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		t.Fatalf("expected object payload, got %T", payload)
	}
	if obj["a"] != json.Number("1") || obj["b"] != json.Number("2") {
		t.Fatalf("unexpected payload: %+v", obj)
	}
}

func TestParseJSONInvalid(t *testing.T) {
	for name, raw := range map[string]string{
		"syntax":   `{"a":`,
		"empty":    "",
		"trailing": `{"a":1} garbage`,
	} {
		if _, err := parsePayload("bad.json", []byte(raw)); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
}

func TestParseDelimited(t *testing.T) {
	payload, err := parsePayload("txs.csv", []byte("id,amount\n1,50\n2,60"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []Row{
		{"id": "1", "amount": "50"},
		{"id": "2", "amount": "60"},
	}
	if !reflect.DeepEqual(payload, want) {
		t.Fatalf("payload = %+v, want %+v", payload, want)
	}
}

func TestParseDelimitedShortRow(t *testing.T) {
	payload, err := parsePayload("txs.csv", []byte("id,amount,notes\n1,50\n\n2,60,ok\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rows := payload.([]Row)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["notes"] != "" {
		t.Fatalf("short row should fill missing fields empty, got %q", rows[0]["notes"])
	}
	if rows[1]["notes"] != "ok" {
		t.Fatalf("unexpected notes: %q", rows[1]["notes"])
	}
}

func TestParseDelimitedEmpty(t *testing.T) {
	if _, err := parsePayload("txs.csv", []byte("  \n\n")); err == nil {
		t.Fatalf("expected error for empty tabular input")
	}
}

func TestParseDelimitedCRLF(t *testing.T) {
	payload, err := parsePayload("txs.txt", []byte("id,amount\r\n1,50\r\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rows := payload.([]Row)
	if len(rows) != 1 || rows[0]["amount"] != "50" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}
