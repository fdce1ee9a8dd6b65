package scriptcs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
)

const (
	// ExecutableName is the scriptcs engine binary.
	ExecutableName = "scriptcs.exe"

	// MinimumRuntimeVersion is the first Go release with range-over-func
	// iterators, which variable sets are walked with.
	MinimumRuntimeVersion = "1.23"

	installSubdirectory = "ScriptCS"
	dependencyPackage   = "Octopus.Dependencies.ScriptCS.3.0.1"
)

var (
	ErrUnsupportedRuntime = errors.New("unsupported runtime")
	ErrExecutableNotFound = errors.New("scriptcs executable not found")
)

// Locator resolves the scriptcs executable. InstallDir is the directory of
// the running binary, WorkingDir anchors the package-manager fallback.
type Locator struct {
	InstallDir     string
	WorkingDir     string
	RuntimeVersion string
}

// NewLocator returns a Locator anchored at the running executable and the
// current working directory.
func NewLocator() (*Locator, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolving executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}

	return &Locator{
		InstallDir:     filepath.Dir(exe),
		WorkingDir:     wd,
		RuntimeVersion: runtime.Version(),
	}, nil
}

// Candidates returns the absolute primary and fallback executable paths.
func (l *Locator) Candidates() (primary, fallback string, err error) {
	primary, err = filepath.Abs(filepath.Join(l.InstallDir, installSubdirectory, ExecutableName))
	if err != nil {
		return "", "", fmt.Errorf("resolving install path: %w", err)
	}

	fallback, err = filepath.Abs(filepath.Join(l.WorkingDir, "..", "..", "packages", dependencyPackage, "runtime", ExecutableName))
	if err != nil {
		return "", "", fmt.Errorf("resolving package path: %w", err)
	}

	return primary, fallback, nil
}

// FindExecutable checks the runtime, then returns the first candidate
// path that exists.
func (l *Locator) FindExecutable() (string, error) {
	if err := CheckRuntime(l.RuntimeVersion); err != nil {
		return "", err
	}

	primary, fallback, err := l.Candidates()
	if err != nil {
		return "", err
	}

	for _, candidate := range []string{primary, fallback} {
		if isFile(candidate) {
			slog.Debug("found scriptcs executable", "path", candidate)
			return candidate, nil
		}
		slog.Debug("scriptcs executable not present", "path", candidate)
	}

	return "", fmt.Errorf("%w: %s was not found at either '%s' or '%s'", ErrExecutableNotFound, ExecutableName, primary, fallback)
}

// CheckRuntime fails unless version (as reported by runtime.Version)
// satisfies MinimumRuntimeVersion. Development builds always pass.
func CheckRuntime(version string) error {
	if strings.HasPrefix(version, "devel") {
		return nil
	}

	constraint, err := semver.NewConstraint(">= " + MinimumRuntimeVersion)
	if err != nil {
		return fmt.Errorf("parsing runtime constraint: %w", err)
	}

	v, err := parseGoVersion(version)
	if err != nil || !constraint.Check(v) {
		return fmt.Errorf("%w: scriptcs scripts require Go %s or newer, running %q", ErrUnsupportedRuntime, MinimumRuntimeVersion, version)
	}

	return nil
}

// parseGoVersion accepts forms such as go1.24.5, go1.25rc1 and
// "go1.25.0 X:nocoverageredesign".
func parseGoVersion(version string) (*semver.Version, error) {
	v := strings.TrimPrefix(version, "go")
	if end := strings.IndexFunc(v, func(r rune) bool { return r != '.' && !unicode.IsDigit(r) }); end >= 0 {
		v = v[:end]
	}
	v = strings.TrimSuffix(v, ".")
	return semver.NewVersion(v)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
