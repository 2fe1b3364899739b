package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/samber/lo"

	"github.com/pescuma/siri/lib/report"
	"github.com/pescuma/siri/lib/utils"
)

type textPrinter struct {
	out     io.Writer
	bar     *color.Color
	summary *color.Color
}

// NewTextPrinter creates a printer of one activity bar per author.
func NewTextPrinter(out io.Writer, colored bool) Printer {
	result := &textPrinter{
		out:     out,
		bar:     color.New(color.FgGreen),
		summary: color.New(color.Bold),
	}

	if colored {
		result.bar.EnableColor()
		result.summary.EnableColor()
	} else {
		result.bar.DisableColor()
		result.summary.DisableColor()
	}

	return result
}

func (p *textPrinter) Print(r *report.Report) error {
	border := strings.Repeat("-", utf8.RuneCountInString(r.Caption))

	var sb strings.Builder
	sb.WriteString(border + "\n")
	sb.WriteString(r.Caption + "\n")
	sb.WriteString(border + "\n")

	if r.NoCode {
		sb.WriteString("No lines of code\n\n")
		return p.write(sb.String())
	}

	width := lo.Reduce(r.Authors, func(agg int, a *report.Author, _ int) int {
		return utils.Max(agg, utf8.RuneCountInString(a.Identity))
	}, 0)

	for _, a := range r.Authors {
		sb.WriteString(fmt.Sprintf("%*s - %s (%d)\n", width, a.Identity, p.activity(a), a.Lines))
	}

	sb.WriteString(p.summary.Sprintf("SIRI: %.1f%%", r.Weighted))
	sb.WriteString("\n\n")

	return p.write(sb.String())
}

func (p *textPrinter) activity(a *report.Author) string {
	switch {
	case a.Bar > 0:
		return p.bar.Sprint(strings.Repeat("*", a.Bar))
	case a.Lines > 0:
		return p.bar.Sprint(".")
	default:
		return ""
	}
}

func (p *textPrinter) write(s string) error {
	_, err := io.WriteString(p.out, s)
	return err
}
