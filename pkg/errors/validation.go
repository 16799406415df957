package errors

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const maxNameLength = 256

// ValidateName validates an identifier used as a column, layer or parameter name.
//
// The rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No leading or trailing whitespace
//   - Maximum length of 256 characters
func ValidateName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "%s name cannot be empty", kind)
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "%s name too long (max %d characters)", kind, maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s name %q contains control characters", kind, name)
		}
	}

	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidInput, "%s name %q has surrounding whitespace", kind, name)
	}

	return nil
}

// ValidateOutputDir validates a directory that is about to be wiped and recreated.
//
// The plot Init callback removes whatever exists at the output path, so a
// path that resolves to the filesystem root, the working directory or one of
// its parents is rejected, as is one that contains any of the keep paths.
// Paths are compared after [filepath.Abs]; symlinks are not resolved.
func ValidateOutputDir(dir string, keep ...string) error {
	if dir == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
	}

	for _, r := range dir {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output directory contains invalid characters")
		}
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "output directory %q", dir)
	}
	if filepath.Dir(abs) == abs {
		return New(ErrCodeInvalidPath, "refusing to use %q as output directory", dir)
	}

	if wd, err := os.Getwd(); err == nil && within(wd, abs) {
		return New(ErrCodeInvalidPath, "refusing to use %q as output directory: it contains the working directory", dir)
	}

	for _, k := range keep {
		if k == "" {
			continue
		}
		if ka, err := filepath.Abs(k); err == nil && within(ka, abs) {
			return New(ErrCodeInvalidPath, "refusing to use %q as output directory: it contains %s", dir, k)
		}
	}

	return nil
}

// within reports whether path is dir or lies below it. Both must be absolute.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
