package vcs

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/pescuma/siri/lib/utils"
)

// FindRoot returns the working tree root of the repository containing path,
// walking up the parents looking for a .git directory or file.
func FindRoot(path string) (string, error) {
	dir, err := utils.PathAbs(path)
	if err != nil {
		return "", err
	}

	for {
		// Stat fails with ENOTDIR when path is a file, so any error means keep walking
		_, err := os.Stat(filepath.Join(dir, ".git"))
		if err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Wrapf(ErrNotInRepository, "%v", path)
		}
		dir = parent
	}
}
