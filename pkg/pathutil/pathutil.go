// Package pathutil provides utilities for safe path handling and validation.
package pathutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidatePath cleans path, rejects directory traversal and returns the
// absolute form. When extensions are given the path must end in one of them.
func ValidatePath(path string, extensions ...string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.Contains(path, "..") {
		return "", fmt.Errorf("path contains directory traversal pattern: %s", path)
	}

	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("getting absolute path: %w", err)
	}

	if len(extensions) == 0 {
		return absPath, nil
	}

	ext := strings.ToLower(filepath.Ext(absPath))
	for _, allowed := range extensions {
		if ext == allowed {
			return absPath, nil
		}
	}
	return "", fmt.Errorf("file must have one of %s extensions, got %q", strings.Join(extensions, ", "), ext)
}

// ValidateConfigPath validates a configuration file path.
// Config files are expected to be YAML files.
func ValidateConfigPath(path string) (string, error) {
	return ValidatePath(path, ".yaml", ".yml")
}

// ValidateOutputPath validates a path a report or fixed document is written to.
func ValidateOutputPath(path string) (string, error) {
	absPath, err := ValidatePath(path)
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}
	return absPath, nil
}

// IsWithinDirectory checks if a path is within a specific directory.
func IsWithinDirectory(path, dir string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}

	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false, nil //nolint:nilerr // different volumes are simply not nested
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel)), nil
}
