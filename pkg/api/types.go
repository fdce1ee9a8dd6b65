package api

import (
	"iter"
	"slices"
)

const (
	ExtensionYAML = ".yaml"
	ExtensionYML  = ".yml"
	ExtensionEnv  = ".env"
)

// Variable is a single named runtime value. A nil Value is the null value.
type Variable struct {
	Name  string
	Value *string
}

// VariableSet is an insertion-ordered collection of uniquely named variables.
// The zero value is an empty set ready for use.
type VariableSet struct {
	vars  []Variable
	index map[string]int
}

// NewVariableSet returns a set holding vars in order.
// Later duplicates replace earlier values in place.
func NewVariableSet(vars ...Variable) *VariableSet {
	s := &VariableSet{}
	for _, v := range vars {
		s.Set(v.Name, v.Value)
	}
	return s
}

// Set adds name at the end of the set, or replaces its value without moving it.
func (s *VariableSet) Set(name string, value *string) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[name]; ok {
		s.vars[i].Value = value
		return
	}
	s.index[name] = len(s.vars)
	s.vars = append(s.vars, Variable{Name: name, Value: value})
}

// SetString is Set for a non-null value.
func (s *VariableSet) SetString(name, value string) {
	s.Set(name, &value)
}

// Get returns the value of name and whether it is present.
func (s *VariableSet) Get(name string) (*string, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.vars[i].Value, true
}

func (s *VariableSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.vars)
}

// Names returns the variable names in iteration order.
func (s *VariableSet) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.vars))
	for i, v := range s.vars {
		names[i] = v.Name
	}
	return names
}

// All yields name/value pairs in iteration order.
func (s *VariableSet) All() iter.Seq2[string, *string] {
	return func(yield func(string, *string) bool) {
		if s == nil {
			return
		}
		for _, v := range s.vars {
			if !yield(v.Name, v.Value) {
				return
			}
		}
	}
}

// Variables returns a copy of the set's contents.
func (s *VariableSet) Variables() []Variable {
	if s == nil {
		return nil
	}
	return slices.Clone(s.vars)
}

// Merge combines global and local sets. Local values override global ones;
// global order is kept and local-only names follow.
func Merge(global, local *VariableSet) *VariableSet {
	merged := &VariableSet{}
	for name, value := range global.All() {
		merged.Set(name, value)
	}
	for name, value := range local.All() {
		merged.Set(name, value)
	}
	return merged
}
