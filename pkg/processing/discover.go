package processing

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// DiscoverScripts expands glob patterns into absolute script paths.
// Relative patterns are resolved against root. Results are sorted and
// unique; a pattern matching nothing is an error.
func DiscoverScripts(root string, patterns []string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root path: %w", err)
	}

	var result []string
	for _, pattern := range patterns {
		matches, err := globScripts(absRoot, pattern)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matched no scripts", pattern)
		}
		result = append(result, matches...)
	}

	slices.Sort(result)
	return slices.Compact(result), nil
}

func globScripts(absRoot, pattern string) ([]string, error) {
	full := pattern
	if !filepath.IsAbs(full) {
		full = filepath.Join(absRoot, pattern)
	}

	base, rel := doublestar.SplitPattern(filepath.ToSlash(full))
	matches, err := doublestar.Glob(os.DirFS(filepath.FromSlash(base)), rel, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(filepath.FromSlash(base), filepath.FromSlash(m)))
	}
	return paths, nil
}
