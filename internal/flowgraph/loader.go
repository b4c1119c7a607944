package flowgraph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadTree reads an externally supplied BudgetTree from a .json or
// .yaml/.yml file. The core never fetches or persists budget data itself;
// this is the seam where a collaborator hands it in.
func LoadTree(path string) (BudgetTree, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BudgetTree{}, fmt.Errorf("read budget file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		// Decode via generic YAML then JSON so decimal amounts parse
		// exactly from either format.
		var generic any
		if err := yaml.Unmarshal(raw, &generic); err != nil {
			return BudgetTree{}, fmt.Errorf("decode budget yaml: %w", err)
		}
		raw, err = json.Marshal(generic)
		if err != nil {
			return BudgetTree{}, fmt.Errorf("convert budget yaml: %w", err)
		}
	}

	var tree BudgetTree
	if err := json.Unmarshal(raw, &tree); err != nil {
		return BudgetTree{}, fmt.Errorf("decode budget file: %w", err)
	}
	return tree, nil
}
