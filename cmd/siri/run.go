package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gertd/go-pluralize"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/pescuma/siri/lib/blame"
	"github.com/pescuma/siri/lib/classify"
	"github.com/pescuma/siri/lib/config"
	"github.com/pescuma/siri/lib/consoles"
	"github.com/pescuma/siri/lib/filters"
	"github.com/pescuma/siri/lib/output"
	"github.com/pescuma/siri/lib/report"
	"github.com/pescuma/siri/lib/vcs"
)

func run(ctx context.Context, c *cli) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}

	if vcs.Backend(c.Backend) == vcs.BackendGit {
		_, err = vcs.FindGit()
		if err != nil {
			return err
		}
	}

	exclude, err := filters.ParseExcludeFilter(c.Exclude)
	if err != nil {
		return err
	}

	console := consoles.NewWriterConsole(os.Stderr, c.Verbose)

	classifier := classify.NewMarkerClassifier(cfg.CommentMarker)
	opts := &blame.Options{
		Classifier: classifier,
		Timeout:    c.Timeout,
	}
	if c.Languages {
		opts.Languages = classify.NewLanguageClassifier(classifier)
	}

	resolver := newResolver(console, &resolverOptions{
		Revision:  c.Revision,
		Backend:   vcs.Backend(c.Backend),
		Recursive: c.Recursive,
		Filter:    filters.And(filters.ExtensionFilter(cfg.Extensions(c.Code, c.Resource)), exclude),
		Blame:     opts,
	})

	targets := make([]*blame.Target, 0, len(c.Filenames))
	for _, filename := range c.Filenames {
		targets = append(targets, resolver.Resolve(cwd, filename))
	}

	var printer output.Printer
	if c.CSV {
		printer = output.NewCSVPrinter(os.Stdout)
	} else {
		printer = output.NewTextPrinter(os.Stdout, !color.NoColor)
	}

	reporter := output.NewReporter(console, printer, report.NewBuilder(cfg.Weights()))

	runnerOpts := &blame.RunnerOptions{
		Jobs: c.Jobs,
	}
	if c.Progress && isatty.IsTerminal(os.Stderr.Fd()) {
		runnerOpts.Progress = os.Stderr
	}

	err = blame.NewRunner(runnerOpts).Run(ctx, targets, reporter)
	if err != nil {
		return err
	}

	reporter.PrintSummary()

	if reporter.Err() != nil {
		return errors.Wrap(reporter.Err(), "error writing output")
	}

	if reporter.Failures() > 0 {
		return fmt.Errorf("%v could not be analyzed", pluralize.NewClient().Pluralize("file", reporter.Failures(), true))
	}

	return nil
}
