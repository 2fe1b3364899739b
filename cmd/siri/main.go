package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
)

type cli struct {
	Code      bool          `help:"Only analyze code files."`
	Resource  bool          `help:"Only analyze resource files."`
	CSV       bool          `name:"csv" help:"Output in CSV format."`
	Recursive bool          `short:"r" help:"Analyze files in subdirectories."`
	Verbose   bool          `short:"v" help:"Include less important output."`
	Revision  string        `default:"HEAD" help:"Git revision to analyze."`
	Jobs      int           `short:"j" help:"Number of files to analyze in parallel. Default is the number of CPUs."`
	Timeout   time.Duration `default:"5m" help:"Maximum time to compute the blame of a single file."`
	Backend   string        `enum:"go-git,git" default:"go-git" help:"How to compute blame: go-git (built in) or git (requires git in path)."`
	Languages bool          `help:"Detect comments using the language of each file instead of the comment marker."`
	Exclude   []string      `placeholder:"GLOB" help:"Skip files matching the glob. Can be repeated."`
	Progress  bool          `default:"true" negatable:"" help:"Show a progress bar when stderr is a terminal."`

	Filenames []string `arg:"" name:"filename" help:"File or directory to analyze."`
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("siri"),
		kong.Description("SIRI: Should I Rewrite It? Computes who wrote the surviving lines of files in a git repository."),
		kong.UsageOnError(),
	)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(runCtx, &c)
	ctx.FatalIfErrorf(err)
}
