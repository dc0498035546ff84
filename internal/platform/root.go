package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// DataDirName marks a project-local journal.
const DataDirName = ".ideastash"

// ErrNoDataDir is returned by FindDataDir when no marker is found.
var ErrNoDataDir = errors.New("data directory not found")

// FindDataDir looks upwards from startDir for a .ideastash directory and
// returns its absolute path.
func FindDataDir(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, DataDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoDataDir
		}
		dir = parent
	}
}

// DefaultDataDir returns the project-local journal found from the working
// directory, or ~/.ideastash.
func DefaultDataDir() string {
	if wd, err := os.Getwd(); err == nil {
		if dir, err := FindDataDir(wd); err == nil {
			return dir
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, DataDirName)
	}
	return DataDirName
}
