package processing

import (
	"fmt"
	"strings"

	"github.com/systemstart/scriptcs-bootstrap/pkg/api"
)

// LoadVariableSet reads each variables file and merges them left to right.
// Later files override earlier ones.
func LoadVariableSet(filenames ...string) (*api.VariableSet, error) {
	merged := &api.VariableSet{}
	for _, f := range filenames {
		vars, err := api.LoadVariables(f)
		if err != nil {
			return nil, fmt.Errorf("loading variables: %w", err)
		}
		merged = api.Merge(merged, vars)
	}
	return merged, nil
}

// ParseAssignments turns name=value pairs into a variable set. A pair
// without "=" assigns null.
func ParseAssignments(pairs []string) (*api.VariableSet, error) {
	vars := &api.VariableSet{}
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("assignment %q: name is required", pair)
		}
		if !found {
			vars.Set(name, nil)
			continue
		}
		vars.SetString(name, value)
	}
	return vars, nil
}
