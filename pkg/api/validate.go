package api

import (
	"fmt"
	"strings"
)

// Validate checks the variable set for errors.
func (s *VariableSet) Validate() error {
	for i, v := range s.Variables() {
		if strings.TrimSpace(v.Name) == "" {
			return fmt.Errorf("variable %d: name is required", i)
		}
	}
	return nil
}
