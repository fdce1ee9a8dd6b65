package scriptcs

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/systemstart/scriptcs-bootstrap/pkg/api"
)

const (
	configurationPrefix = "Configure"
	bootstrapPrefix     = "Bootstrap"
	scriptExtension     = ".csx"
)

// Bootstrapper writes the configuration and bootstrap scripts consumed by
// scriptcs. It holds no mutable state and is safe for concurrent use.
type Bootstrapper struct {
	template *Template
}

// NewBootstrapper returns a Bootstrapper rendering configuration scripts
// with tmpl.
func NewBootstrapper(tmpl *Template) *Bootstrapper {
	return &Bootstrapper{template: tmpl}
}

// PrepareConfigurationFile writes a hidden script in workDir assigning each
// variable, in set order, and returns its absolute path.
func (b *Bootstrapper) PrepareConfigurationFile(workDir string, vars *api.VariableSet) (string, error) {
	content, err := b.template.Render(VariableDeclarations(vars))
	if err != nil {
		return "", fmt.Errorf("rendering configuration script: %w", err)
	}

	path, err := generatedPath(workDir, configurationPrefix, scriptExtension)
	if err != nil {
		return "", err
	}

	if err := writeHidden(path, content); err != nil {
		return "", fmt.Errorf("writing configuration script: %w", err)
	}

	slog.Debug("configuration script written", "path", path, "variables", vars.Len())
	return path, nil
}

// PrepareBootstrapFile writes a hidden script in workDir that loads
// configurationFile and then scriptFile, and returns its absolute path.
func (b *Bootstrapper) PrepareBootstrapFile(scriptFile, configurationFile, workDir string) (string, error) {
	path, err := generatedPath(workDir, bootstrapPrefix, "."+baseName(scriptFile))
	if err != nil {
		return "", err
	}

	content := LoadDirective(configurationFile) + "\n" + LoadDirective(scriptFile) + "\n"
	if err := writeHidden(path, content); err != nil {
		return "", fmt.Errorf("writing bootstrap script: %w", err)
	}

	slog.Debug("bootstrap script written", "path", path, "script", scriptFile)
	return path, nil
}

// VariableDeclarations renders one indexer assignment per variable. Names
// are encoded like values.
func VariableDeclarations(vars *api.VariableSet) string {
	lines := make([]string, 0, vars.Len())
	for name, value := range vars.All() {
		lines = append(lines, "this["+EncodeString(name)+"] = "+EncodeValue(value)+";")
	}
	return strings.Join(lines, "\n")
}

// LoadDirective returns a #load line for path with backslashes escaped.
func LoadDirective(path string) string {
	return `#load "` + strings.ReplaceAll(path, `\`, `\\`) + `"`
}

func generatedPath(workDir, prefix, suffix string) (string, error) {
	name := hiddenPrefix + prefix + "." + uuid.NewString() + suffix
	path, err := filepath.Abs(filepath.Join(workDir, name))
	if err != nil {
		return "", fmt.Errorf("resolving path for %s: %w", name, err)
	}
	return path, nil
}

// baseName strips both slash and backslash separated directories so
// Windows paths name the file the same way on every host.
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

func writeHidden(path, content string) error {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	w := bufio.NewWriter(out)
	_, writeErr := w.WriteString(content)
	if writeErr == nil {
		writeErr = w.Flush()
	}

	if closeErr := out.Close(); closeErr != nil {
		if writeErr != nil {
			return fmt.Errorf("writing output file: %w", writeErr)
		}
		return fmt.Errorf("closing output file: %w", closeErr)
	}
	if writeErr != nil {
		return fmt.Errorf("writing output file: %w", writeErr)
	}

	return setHidden(path)
}
