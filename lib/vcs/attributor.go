package vcs

import (
	"context"

	"github.com/pescuma/siri/lib/model"
)

type Backend string

const (
	BackendGoGit Backend = "go-git"
	BackendGit   Backend = "git"
)

// Attributor produces the attribution records of a file, in file line order.
// Implementations are safe for concurrent use.
type Attributor interface {
	Blame(ctx context.Context, path string) ([]model.AttributionRecord, error)
}

// appendLine adds the line to the last record if it belongs to the same
// commit, or starts a new record otherwise.
func appendLine(records []model.AttributionRecord, commit string, author string, text string) []model.AttributionRecord {
	if len(records) > 0 {
		last := &records[len(records)-1]
		if last.Commit == commit {
			last.Lines = append(last.Lines, text)
			return records
		}
	}

	return append(records, model.AttributionRecord{
		Commit: commit,
		Author: author,
		Lines:  []string{text},
	})
}
