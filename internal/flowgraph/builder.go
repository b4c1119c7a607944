package flowgraph

// rootName labels the single source node every category hangs off.
const rootName = "Budget"

// Build derives the flow graph for tree: node list is [root] ++ categories
// ++ projects in that fixed order, one root→category link per breakdown
// entry and one category→project link per project. Build is pure —
// identical input yields an identical graph — and validates the tree
// up front instead of letting a name collision silently resolve to the
// first index match.
func Build(tree BudgetTree) (FlowGraph, error) {
	graph := FlowGraph{
		Nodes: make([]Node, 0, 1+len(tree.Breakdown)+len(tree.Projects)),
		Links: make([]Link, 0, len(tree.Breakdown)+len(tree.Projects)),
	}

	index := make(map[string]int, 1+len(tree.Breakdown)+len(tree.Projects))
	add := func(name string) (int, error) {
		if _, exists := index[name]; exists {
			return 0, &GraphConsistencyError{Reason: "duplicate node name", Name: name}
		}
		index[name] = len(graph.Nodes)
		graph.Nodes = append(graph.Nodes, Node{Name: name})
		return index[name], nil
	}

	rootIdx, err := add(rootName)
	if err != nil {
		return FlowGraph{}, err
	}

	// Departments resolve against categories only; a project sharing a
	// category's name is caught as a duplicate, not silently linked to.
	catIndex := make(map[string]int, len(tree.Breakdown))
	for _, cat := range tree.Breakdown {
		idx, err := add(cat.ID)
		if err != nil {
			return FlowGraph{}, err
		}
		catIndex[cat.ID] = idx
	}
	projIndex := make(map[string]int, len(tree.Projects))
	for _, proj := range tree.Projects {
		idx, err := add(proj.ID)
		if err != nil {
			return FlowGraph{}, err
		}
		projIndex[proj.ID] = idx
	}

	for _, cat := range tree.Breakdown {
		graph.Links = append(graph.Links, Link{
			Source: rootIdx,
			Target: catIndex[cat.ID],
			Value:  cat.Amount.InexactFloat64(),
		})
	}
	for _, proj := range tree.Projects {
		deptIdx, ok := catIndex[proj.Dept]
		if !ok {
			return FlowGraph{}, &GraphConsistencyError{Reason: "unknown department", Name: proj.Dept}
		}
		graph.Links = append(graph.Links, Link{
			Source: deptIdx,
			Target: projIndex[proj.ID],
			Value:  proj.Amount.InexactFloat64(),
		})
	}
	return graph, nil
}
