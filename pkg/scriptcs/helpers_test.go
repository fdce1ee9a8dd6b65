package scriptcs

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var (
	encodedPattern    = regexp.MustCompile(`^System\.Text\.Encoding\.UTF8\.GetString\(Convert\.FromBase64String\("([A-Za-z0-9+/=]*)"\)\)$`)
	assignmentPattern = regexp.MustCompile(`^this\[(.+?)\] = (.+);$`)
)

// decodeExpression evaluates an encoded expression the way scriptcs would.
// The second result is false for the null literal.
func decodeExpression(t *testing.T, expr string) (string, bool) {
	t.Helper()
	if expr == NullValue {
		return "", false
	}
	m := encodedPattern.FindStringSubmatch(expr)
	if m == nil {
		t.Fatalf("not an encoded expression: %q", expr)
	}
	raw, err := base64.StdEncoding.DecodeString(m[1])
	if err != nil {
		t.Fatalf("decoding %q: %v", m[1], err)
	}
	return string(raw), true
}

// assignments returns the trimmed assignment lines of a configuration script.
func assignments(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "this[") {
			lines = append(lines, line)
		}
	}
	return lines
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func writeTestFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("stub"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func newTestBootstrapper(t *testing.T) *Bootstrapper {
	t.Helper()
	tmpl, err := LoadTemplate()
	if err != nil {
		t.Fatalf("loading template: %v", err)
	}
	return NewBootstrapper(tmpl)
}
