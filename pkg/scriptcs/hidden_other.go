//go:build !windows

package scriptcs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dot files are the hidden convention outside Windows, so generated
// names carry the prefix from the start.
const hiddenPrefix = "."

func setHidden(path string) error {
	if !strings.HasPrefix(filepath.Base(path), hiddenPrefix) {
		return fmt.Errorf("hiding %s: name lacks %q prefix", path, hiddenPrefix)
	}
	return nil
}

// IsHidden reports whether path exists and is a dot file.
func IsHidden(path string) (bool, error) {
	if _, err := os.Lstat(path); err != nil {
		return false, fmt.Errorf("reading attributes of %s: %w", path, err)
	}
	return strings.HasPrefix(filepath.Base(path), hiddenPrefix), nil
}
