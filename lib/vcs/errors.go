package vcs

import (
	"github.com/pkg/errors"
)

var (
	ErrNotInRepository   = errors.New("not inside a git repository")
	ErrNotFound          = errors.New("file not found at revision")
	ErrDependencyMissing = errors.New("git executable not found in PATH, install git or use the go-git backend")
)
