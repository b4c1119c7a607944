package flowgraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

const budgetJSON = `{
  "total": 400000.50,
  "breakdown": [{"id": "Education", "amount": 400000.50}],
  "projects": [{
    "id": "Scholarships", "dept": "Education", "amount": 200000,
    "vendor": "City Grants Office",
    "txs": [{"id": "t1", "amount": 120000, "date": "2026-03-01", "notes": "spring cohort"}]
  }]
}`

const budgetYAML = `total: 400000.50
breakdown:
  - id: Education
    amount: 400000.50
projects:
  - id: Scholarships
    dept: Education
    amount: 200000
    vendor: City Grants Office
    txs:
      - id: t1
        amount: 120000
        date: "2026-03-01"
        notes: spring cohort
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadTreeJSON(t *testing.T) {
	tree, err := LoadTree(writeTemp(t, "budget.json", budgetJSON))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertSampleTree(t, tree)
}

func TestLoadTreeYAML(t *testing.T) {
	tree, err := LoadTree(writeTemp(t, "budget.yaml", budgetYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertSampleTree(t, tree)
}

func assertSampleTree(t *testing.T, tree BudgetTree) {
	t.Helper()
	if !tree.Total.Equal(decimal.RequireFromString("400000.50")) {
		t.Fatalf("total = %s, want 400000.50", tree.Total)
	}
	if len(tree.Breakdown) != 1 || tree.Breakdown[0].ID != "Education" {
		t.Fatalf("unexpected breakdown: %+v", tree.Breakdown)
	}
	if !tree.Breakdown[0].Amount.Equal(decimal.RequireFromString("400000.50")) {
		t.Fatalf("category amount = %s", tree.Breakdown[0].Amount)
	}
	if len(tree.Projects) != 1 {
		t.Fatalf("unexpected projects: %+v", tree.Projects)
	}
	proj := tree.Projects[0]
	if proj.Dept != "Education" || !proj.Amount.Equal(decimal.NewFromInt(200000)) {
		t.Fatalf("unexpected project: %+v", proj)
	}
	if len(proj.Txs) != 1 || proj.Txs[0].Notes != "spring cohort" {
		t.Fatalf("unexpected transactions: %+v", proj.Txs)
	}
}

func TestLoadTreeMissingFile(t *testing.T) {
	if _, err := LoadTree(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadTreeMalformed(t *testing.T) {
	if _, err := LoadTree(writeTemp(t, "bad.json", `{"total":`)); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
	if _, err := LoadTree(writeTemp(t, "bad.yaml", "total: [")); err == nil {
		t.Fatalf("expected error for malformed YAML")
	}
}
