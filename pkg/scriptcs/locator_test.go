package scriptcs

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

const testRuntime = "go1.25.6"

func TestCheckRuntime(t *testing.T) {
	tests := []struct {
		version   string
		wantError bool
	}{
		{"go1.23.0", false},
		{"go1.22.12", true},
		{"go1.25.6", false},
		{"go1.26rc1", false},
		{"go1.25.0 X:nocoverageredesign", false},
		{"devel go1.27-abcdef", false},
		{"go1.21.13", true},
		{"go1.9", true},
		{"", true},
		{"gccgo", true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			err := CheckRuntime(tt.version)
			if (err != nil) != tt.wantError {
				t.Fatalf("CheckRuntime(%q) error = %v, wantError = %v", tt.version, err, tt.wantError)
			}
			if err != nil {
				if !errors.Is(err, ErrUnsupportedRuntime) {
					t.Errorf("expected ErrUnsupportedRuntime, got %v", err)
				}
				if !strings.Contains(err.Error(), "require Go "+MinimumRuntimeVersion) {
					t.Errorf("expected minimum version in message, got %v", err)
				}
			}
		})
	}
}

func TestFindExecutable_Primary(t *testing.T) {
	install := t.TempDir()
	want := filepath.Join(install, "ScriptCS", ExecutableName)
	writeTestFile(t, want)

	l := &Locator{InstallDir: install, WorkingDir: t.TempDir(), RuntimeVersion: testRuntime}
	got, err := l.FindExecutable()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFindExecutable_Fallback(t *testing.T) {
	root := t.TempDir()
	work := filepath.Join(root, "a", "b")
	want := filepath.Join(root, "packages", "Octopus.Dependencies.ScriptCS.3.0.1", "runtime", ExecutableName)
	writeTestFile(t, want)

	l := &Locator{InstallDir: t.TempDir(), WorkingDir: work, RuntimeVersion: testRuntime}
	got, err := l.FindExecutable()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFindExecutable_PrimaryPreferred(t *testing.T) {
	root := t.TempDir()
	install := filepath.Join(root, "install")
	primary := filepath.Join(install, "ScriptCS", ExecutableName)
	writeTestFile(t, primary)
	writeTestFile(t, filepath.Join(root, "packages", "Octopus.Dependencies.ScriptCS.3.0.1", "runtime", ExecutableName))

	l := &Locator{InstallDir: install, WorkingDir: filepath.Join(root, "a", "b"), RuntimeVersion: testRuntime}
	got, err := l.FindExecutable()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != primary {
		t.Fatalf("expected %q, got %q", primary, got)
	}
}

func TestFindExecutable_DirectoryIsNotExecutable(t *testing.T) {
	install := t.TempDir()
	writeTestFile(t, filepath.Join(install, "ScriptCS", ExecutableName, "inner"))

	l := &Locator{InstallDir: install, WorkingDir: t.TempDir(), RuntimeVersion: testRuntime}
	if _, err := l.FindExecutable(); !errors.Is(err, ErrExecutableNotFound) {
		t.Fatalf("expected ErrExecutableNotFound, got %v", err)
	}
}

func TestFindExecutable_NotFound(t *testing.T) {
	l := &Locator{InstallDir: t.TempDir(), WorkingDir: filepath.Join(t.TempDir(), "a", "b"), RuntimeVersion: testRuntime}
	primary, fallback, err := l.Candidates()
	if err != nil {
		t.Fatal(err)
	}

	_, err = l.FindExecutable()
	if err == nil {
		t.Fatal("expected error when neither candidate exists")
	}
	if !errors.Is(err, ErrExecutableNotFound) {
		t.Errorf("expected ErrExecutableNotFound, got %v", err)
	}
	for _, p := range []string{primary, fallback} {
		if !filepath.IsAbs(p) {
			t.Errorf("expected absolute candidate, got %q", p)
		}
		if !strings.Contains(err.Error(), p) {
			t.Errorf("expected %q in error, got %v", p, err)
		}
	}
}

func TestFindExecutable_RuntimeCheckedFirst(t *testing.T) {
	install := t.TempDir()
	writeTestFile(t, filepath.Join(install, "ScriptCS", ExecutableName))

	l := &Locator{InstallDir: install, WorkingDir: t.TempDir(), RuntimeVersion: "go1.20"}
	_, err := l.FindExecutable()
	if !errors.Is(err, ErrUnsupportedRuntime) {
		t.Fatalf("expected ErrUnsupportedRuntime, got %v", err)
	}
}

func TestNewLocator(t *testing.T) {
	l, err := NewLocator()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(l.InstallDir) || !filepath.IsAbs(l.WorkingDir) {
		t.Fatalf("expected absolute anchors, got %+v", l)
	}
	if l.RuntimeVersion == "" {
		t.Fatal("expected runtime version")
	}
}
