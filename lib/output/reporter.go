package output

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pescuma/siri/lib/blame"
	"github.com/pescuma/siri/lib/consoles"
	"github.com/pescuma/siri/lib/model"
	"github.com/pescuma/siri/lib/report"
)

// Reporter turns the results of a blame.Runner into printed reports, and
// reports failures to the console. Like any blame.Sink, it is used from a
// single goroutine.
type Reporter struct {
	console consoles.Console
	printer Printer
	builder *report.Builder
	start   time.Time

	files    int
	lines    int
	failures int
	err      error
}

var _ blame.Sink = (*Reporter)(nil)

func NewReporter(console consoles.Console, printer Printer, builder *report.Builder) *Reporter {
	return &Reporter{
		console: console,
		printer: printer,
		builder: builder,
		start:   time.Now(),
	}
}

func (r *Reporter) Begin(target *blame.Target) {
	if target.Dir {
		r.console.Printf("%v files in %v\n", len(target.Files), target.Name)
	}
}

func (r *Reporter) File(path string, stats *model.FileStats) {
	r.files++
	r.lines += stats.Aggregate().Total()

	r.print(r.builder.Build(path, stats))
}

func (r *Reporter) Failed(path string, err error) {
	r.failures++
	r.console.Printf("%v: %v\n", path, err)
}

func (r *Reporter) Subtotal(files int, stats *model.FileStats) {
	r.print(r.builder.Build(fmt.Sprintf("Subtotals from %v files", files), stats))
}

func (r *Reporter) Total(files int, stats *model.FileStats) {
	r.print(r.builder.Build(fmt.Sprintf("Totals from %v files", files), stats))
}

func (r *Reporter) print(rep *report.Report) {
	if r.err != nil {
		return
	}

	r.err = r.printer.Print(rep)
}

// Failures returns the number of files and arguments that could not be analyzed.
func (r *Reporter) Failures() int {
	return r.failures
}

// Err returns the first error writing the reports.
func (r *Reporter) Err() error {
	return r.err
}

func (r *Reporter) PrintSummary() {
	r.console.Verbosef("Analyzed %v lines in %v files (%v failed) in %v\n",
		humanize.Comma(int64(r.lines)), humanize.Comma(int64(r.files)), r.Failures(),
		time.Since(r.start).Round(time.Millisecond))
}
