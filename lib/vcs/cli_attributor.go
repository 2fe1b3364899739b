package vcs

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/pescuma/siri/lib/model"
)

type cliAttributor struct {
	git      string
	root     string
	revision string
}

func newCLIAttributor(root string, revision string) (*cliAttributor, error) {
	git, err := FindGit()
	if err != nil {
		return nil, err
	}

	return &cliAttributor{
		git:      git,
		root:     root,
		revision: revision,
	}, nil
}

// FindGit returns the path of the git executable.
func FindGit() (string, error) {
	path, err := exec.LookPath("git")
	if err != nil {
		return "", errors.Wrapf(ErrDependencyMissing, "%v", err)
	}
	return path, nil
}

func (a *cliAttributor) Blame(ctx context.Context, path string) ([]model.AttributionRecord, error) {
	cmd := exec.CommandContext(ctx, a.git, "blame", "--porcelain", a.revision, "--", path)
	cmd.Dir = a.root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	switch {
	case ctx.Err() != nil:
		return nil, errors.Wrapf(ctx.Err(), "blame of %v", path)

	case err != nil && strings.Contains(stderr.String(), "no such path"):
		return nil, errors.Wrapf(ErrNotFound, "%v at %v", path, a.revision)

	case err != nil:
		return nil, errors.Wrapf(err, "git blame %v: %v", path, strings.TrimSpace(stderr.String()))
	}

	return ParsePorcelain(&stdout)
}
