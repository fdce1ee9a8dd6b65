//go:build windows

package scriptcs

import (
	"fmt"

	"golang.org/x/sys/windows"
)

const hiddenPrefix = ""

func setHidden(path string) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return fmt.Errorf("encoding path %s: %w", path, err)
	}

	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return fmt.Errorf("reading attributes of %s: %w", path, err)
	}

	if err := windows.SetFileAttributes(p, attrs|windows.FILE_ATTRIBUTE_HIDDEN); err != nil {
		return fmt.Errorf("hiding %s: %w", path, err)
	}
	return nil
}

// IsHidden reports whether path carries the hidden file attribute.
func IsHidden(path string) (bool, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false, fmt.Errorf("encoding path %s: %w", path, err)
	}

	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false, fmt.Errorf("reading attributes of %s: %w", path, err)
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0, nil
}
