package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the file that marks a project root.
const ManifestName = "stellar.toml"

// ErrNoManifest is returned when no stellar.toml exists in startDir or
// any of its parents.
var ErrNoManifest = errors.New("no " + ManifestName + " found")

// FindManifest walks up from startDir to locate stellar.toml.
func FindManifest(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrNoManifest
}

// FindProjectRoot returns the directory containing stellar.toml.
func FindProjectRoot(startDir string) (string, error) {
	manifestPath, err := FindManifest(startDir)
	if err != nil {
		return "", err
	}
	return filepath.Dir(manifestPath), nil
}
