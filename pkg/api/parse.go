package api

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const nullTag = "!!null"

// LoadVariables reads a variables file, choosing the format by extension:
// .env files are parsed as dotenv, everything else as YAML.
func LoadVariables(filename string) (*VariableSet, error) {
	if strings.EqualFold(filepath.Ext(filename), ExtensionEnv) {
		return LoadEnvVariables(filename)
	}
	return LoadYAMLVariables(filename)
}

// LoadYAMLVariables reads a flat YAML mapping, keeping document order.
// Null values (~, null or empty) become null variables.
func LoadYAMLVariables(filename string) (*VariableSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading variables file: %w", err)
	}

	vars, err := ParseYAMLVariables(data)
	if err != nil {
		return nil, fmt.Errorf("parsing variables file %s: %w", filename, err)
	}

	if err := vars.Validate(); err != nil {
		return nil, fmt.Errorf("validating variables file %s: %w", filename, err)
	}

	return vars, nil
}

// ParseYAMLVariables decodes a flat YAML mapping of scalars.
func ParseYAMLVariables(data []byte) (*VariableSet, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	vars := &VariableSet{}
	if len(doc.Content) == 0 {
		return vars, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == nullTag {
		return vars, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of variable names to values", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: variable name must be a scalar", key.Line)
		}
		if value.Kind == yaml.AliasNode {
			value = value.Alias
		}
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: variable %q must have a scalar value", value.Line, key.Value)
		}
		if value.Tag == nullTag {
			vars.Set(key.Value, nil)
			continue
		}
		vars.SetString(key.Value, value.Value)
	}

	return vars, nil
}

// LoadEnvVariables reads a dotenv file. Dotenv parsing carries no order,
// so names are sorted.
func LoadEnvVariables(filename string) (*VariableSet, error) {
	env, err := godotenv.Read(filename)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", filename, err)
	}

	names := make([]string, 0, len(env))
	for name := range env {
		names = append(names, name)
	}
	slices.Sort(names)

	vars := &VariableSet{}
	for _, name := range names {
		vars.SetString(name, env[name])
	}
	return vars, nil
}
