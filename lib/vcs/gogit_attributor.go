package vcs

import (
	"context"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"

	"github.com/pescuma/siri/lib/model"
)

type goGitAttributor struct {
	root string
	hash plumbing.Hash
}

func newGoGitAttributor(root string, hash plumbing.Hash) *goGitAttributor {
	return &goGitAttributor{
		root: root,
		hash: hash,
	}
}

func (a *goGitAttributor) Blame(ctx context.Context, path string) ([]model.AttributionRecord, error) {
	type blameResult struct {
		records []model.AttributionRecord
		err     error
	}

	// git.Blame can't be cancelled, so a timed out blame keeps running in the
	// background until it finishes
	done := make(chan blameResult, 1)
	go func() {
		records, err := a.blame(path)
		done <- blameResult{records, err}
	}()

	select {
	case <-ctx.Done():
		return nil, errors.Wrapf(ctx.Err(), "blame of %v", path)
	case r := <-done:
		return r.records, r.err
	}
}

func (a *goGitAttributor) blame(path string) ([]model.AttributionRecord, error) {
	// go-git repositories are not safe for concurrent use, so each blame gets its own
	gitRepo, err := git.PlainOpen(a.root)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening git repository at %v", a.root)
	}

	commit, err := gitRepo.CommitObject(a.hash)
	if err != nil {
		return nil, err
	}

	_, err = commit.File(path)
	if err == object.ErrFileNotFound {
		return nil, errors.Wrapf(ErrNotFound, "%v at %v", path, a.hash)
	} else if err != nil {
		return nil, err
	}

	blame, err := git.Blame(commit, path)
	if err != nil {
		return nil, errors.Wrapf(err, "error computing blame of %v", path)
	}

	var result []model.AttributionRecord
	for _, line := range blame.Lines {
		result = appendLine(result, line.Hash.String(), line.Author, line.Text)
	}

	return result, nil
}
