package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/yourorg/fundledger/internal/flowgraph"
	"github.com/yourorg/fundledger/internal/ledger"
)

func main() {
	budget := flag.String("budget", "", "path to a budget tree file (.json/.yaml)")
	flag.Parse()

	if len(flag.Args()) == 0 {
		usage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	store := ledger.NewRecordStore()
	audit := ledger.NewAuditLog()
	svc := ledger.NewService(ledger.LoadConfig(), store, audit, logger)

	cmd := flag.Args()[0]
	files := flag.Args()[1:]
	switch cmd {
	case "ingest":
		os.Exit(runIngest(svc, files, false))
	case "verify":
		os.Exit(runIngest(svc, files, true))
	case "graph":
		os.Exit(runGraph(*budget))
	default:
		usage()
		os.Exit(1)
	}
}

// runIngest ingests each file; with reverify it also runs the verification
// engine against each fresh record. Exit code 2 when anything failed.
func runIngest(svc *ledger.Service, files []string, reverify bool) int {
	if len(files) == 0 {
		usage()
		return 1
	}
	code := 0
	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
			code = 2
			continue
		}
		rec, ev, created := svc.Ingest(filepath.Base(path), raw)
		if !created {
			fmt.Printf("FAIL %s: %s\n", path, ev.Error)
			code = 2
			continue
		}
		fmt.Printf("OK   %s signature=%s\n", path, rec.Signature)
		if reverify {
			check := svc.Verify(rec)
			if !check.OK {
				fmt.Printf("FAIL %s: recomputed %s\n", path, check.Expected)
				code = 2
			}
		}
	}
	report := svc.Audit().VerifyChain()
	fmt.Printf("audit chain: ok=%v entries=%d\n", report.OK, report.Checked)
	return code
}

func runGraph(budgetPath string) int {
	if budgetPath == "" {
		fmt.Fprintln(os.Stderr, "graph requires -budget <path>")
		return 1
	}
	tree, err := flowgraph.LoadTree(budgetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load budget: %v\n", err)
		return 2
	}
	graph, err := flowgraph.Build(tree)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build graph: %v\n", err)
		return 2
	}
	if err := writeIndented(os.Stdout, graph); err != nil {
		fmt.Fprintf(os.Stderr, "encode graph: %v\n", err)
		return 2
	}
	return 0
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func usage() {
	fmt.Println("Usage: fundledgerctl ingest <file...> | verify <file...> | -budget <path> graph")
}
