package blame

import (
	"context"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/pescuma/siri/lib/model"
	"github.com/pescuma/siri/lib/utils"
)

// Target is the group of files resolved from a single command line argument.
type Target struct {
	Name       string
	Dir        bool
	Files      []string
	Aggregator *Aggregator
	// Err is set when the argument could not be resolved to files
	Err error
}

// Sink receives the results in command line order.
type Sink interface {
	Begin(target *Target)
	File(path string, stats *model.FileStats)
	Failed(path string, err error)
	Subtotal(files int, stats *model.FileStats)
	Total(files int, stats *model.FileStats)
}

type RunnerOptions struct {
	Jobs int
	// Progress receives a progress bar, if not nil
	Progress io.Writer
}

type Runner struct {
	jobs     int
	progress io.Writer
}

func NewRunner(opts *RunnerOptions) *Runner {
	return &Runner{
		jobs:     opts.Jobs,
		progress: opts.Progress,
	}
}

type work struct {
	index  int
	target *Target
	path   string
}

type workResult struct {
	*work
	stats *model.FileStats
	err   error
}

// Run analyzes the files of all targets in parallel. Per file errors are sent
// to the sink; the returned error is only set when the run was interrupted.
func (r *Runner) Run(ctx context.Context, targets []*Target, sink Sink) error {
	var ws []*work
	for _, t := range targets {
		for _, f := range t.Files {
			ws = append(ws, &work{
				index:  len(ws),
				target: t,
				path:   f,
			})
		}
	}

	e := newEmitter(targets, sink)
	e.advance()

	// Created after the first messages so they don't end on the bar line
	var bar *progressbar.ProgressBar
	if r.progress != nil && len(ws) > 0 {
		bar = utils.NewProgressBar(len(ws), r.progress)
	}

	group := utils.ParallelFor(ws, func(w *work) (*workResult, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stats, err := w.target.Aggregator.AnalyzeFile(ctx, w.path)
		return &workResult{work: w, stats: stats, err: err}, nil
	}, utils.ParallelOptions{Routines: r.jobs})

	pending := map[int]*workResult{}
	next := 0
	for res := range group.Output {
		if bar != nil {
			bar.Describe(utils.TruncateFilename(res.path))
			_ = bar.Add(1)
		}

		pending[res.index] = res
		for ; pending[next] != nil; next++ {
			if bar != nil {
				_ = bar.Clear()
			}

			e.file(pending[next])
			delete(pending, next)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}

	if err := group.Error(); err != nil {
		return err
	}

	e.finish()

	return nil
}

// emitter merges results into subtotals and totals from a single goroutine,
// in the same order the files were listed.
type emitter struct {
	targets []*Target
	sink    Sink

	current int
	begun   bool
	done    int

	subtotal      *model.FileStats
	subtotalFiles int
	total         *model.FileStats
	totalFiles    int
}

func newEmitter(targets []*Target, sink Sink) *emitter {
	return &emitter{
		targets:  targets,
		sink:     sink,
		subtotal: model.NewFileStats(),
		total:    model.NewFileStats(),
	}
}

// advance begins the current target and closes it, and the following ones,
// while they have no more files to wait for.
func (e *emitter) advance() {
	for e.current < len(e.targets) {
		t := e.targets[e.current]

		if !e.begun {
			e.begun = true

			if t.Err != nil {
				e.sink.Failed(t.Name, t.Err)
			} else {
				e.sink.Begin(t)
			}
		}

		if e.done < len(t.Files) {
			return
		}

		e.endTarget()
	}
}

func (e *emitter) file(res *workResult) {
	if res.err != nil {
		e.sink.Failed(res.path, res.err)
	} else {
		e.sink.File(res.path, res.stats)
		e.subtotal.Merge(res.stats)
		e.subtotalFiles++
	}

	e.done++
	e.advance()
}

func (e *emitter) endTarget() {
	if e.subtotalFiles > 1 {
		e.sink.Subtotal(e.subtotalFiles, e.subtotal)
	}

	e.total.Merge(e.subtotal)
	e.totalFiles += e.subtotalFiles

	e.current++
	e.begun = false
	e.done = 0
	e.subtotal = model.NewFileStats()
	e.subtotalFiles = 0
}

func (e *emitter) finish() {
	e.advance()

	if e.totalFiles > 1 {
		e.sink.Total(e.totalFiles, e.total)
	}
}
