// Package filex contains small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureSubDir creates (if needed) and returns parent/name. An empty
// parent falls back to the OS temp directory.
func EnsureSubDir(parent, name string) (string, error) {
	if parent == "" {
		parent = os.TempDir()
	}

	dir := filepath.Join(parent, name)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}
