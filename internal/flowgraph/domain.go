// Package flowgraph transforms a hierarchical budget (root → category →
// project) into a node/edge graph for flow visualization.
package flowgraph

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BudgetTree is the read-only input to the builder. Amounts are exact
// decimals; the builder never mutates the tree.
type BudgetTree struct {
	Total     decimal.Decimal `json:"total"`
	Breakdown []Category      `json:"breakdown"`
	Projects  []Project       `json:"projects"`
}

// Category is one top-level budget allocation.
type Category struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
}

// Project is a funded project within a category (its Dept).
type Project struct {
	ID     string          `json:"id"`
	Dept   string          `json:"dept"`
	Amount decimal.Decimal `json:"amount"`
	Vendor string          `json:"vendor,omitempty"`
	Txs    []Transaction   `json:"txs,omitempty"`
}

// Transaction is a single spend entry under a project.
type Transaction struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date,omitempty"`
	Notes  string          `json:"notes,omitempty"`
}

// FlowGraph is the derived node/edge form. Link source and target are
// 0-based indices into Nodes; values surface as plain numbers for the
// rendering collaborator.
type FlowGraph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

type Node struct {
	Name string `json:"name"`
}

type Link struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Value  float64 `json:"value"`
}

// GraphConsistencyError indicates a malformed BudgetTree: a duplicate
// entity name or a project referencing a department that does not exist.
// The builder fails loudly on these rather than producing a wrong graph.
type GraphConsistencyError struct {
	Reason string
	Name   string
}

func (e *GraphConsistencyError) Error() string {
	return fmt.Sprintf("inconsistent budget tree: %s %q", e.Reason, e.Name)
}
