package blame

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/pescuma/siri/lib/model"
	"github.com/pescuma/siri/lib/vcs"
)

// FileClassifier classifies all the lines of a file at once.
type FileClassifier interface {
	ClassifyFile(name string, lines []string) ([]model.LineKind, error)
}

type Options struct {
	Classifier model.LineClassifier
	// Languages, when set, replaces Classifier
	Languages FileClassifier
	// Timeout limits the time to compute the blame of a single file
	Timeout time.Duration
}

// Aggregator builds the FileStats of files from their attribution records.
type Aggregator struct {
	attributor vcs.Attributor
	classifier model.LineClassifier
	languages  FileClassifier
	timeout    time.Duration
}

func NewAggregator(attributor vcs.Attributor, opts *Options) *Aggregator {
	return &Aggregator{
		attributor: attributor,
		classifier: opts.Classifier,
		languages:  opts.Languages,
		timeout:    opts.Timeout,
	}
}

func (a *Aggregator) AnalyzeFile(ctx context.Context, path string) (*model.FileStats, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	records, err := a.attributor.Blame(ctx, path)
	if err != nil {
		return nil, err
	}

	result := model.NewFileStats()

	if a.languages == nil {
		for _, r := range records {
			result.AddRecord(r, a.classifier)
		}
		return result, nil
	}

	lines := lo.FlatMap(records, func(r model.AttributionRecord, _ int) []string { return r.Lines })

	kinds, err := a.languages.ClassifyFile(path, lines)
	if err != nil {
		return nil, err
	}
	if len(kinds) != len(lines) {
		return nil, errors.Errorf("%v: classified %v lines but blame has %v", path, len(kinds), len(lines))
	}

	i := 0
	for _, r := range records {
		result.AddClassifiedBlame(r.Commit, r.Author, kinds[i:i+len(r.Lines)])
		i += len(r.Lines)
	}

	return result, nil
}
