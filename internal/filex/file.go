// Package filex holds small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir, relative to the working directory unless absolute,
// and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// ResolveIn places name under base unless name is absolute, and makes sure
// the parent directory of the result exists.
func ResolveIn(base, name string) (string, error) {
	p := name
	if !filepath.IsAbs(name) {
		p = filepath.Join(base, name)
	}

	dir, err := EnsureDir(filepath.Dir(p))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.Base(p)), nil
}
