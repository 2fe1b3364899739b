package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pescuma/siri/lib/report"
)

type csvPrinter struct {
	out io.Writer
}

// NewCSVPrinter creates a printer of one identity,blankLines,comments,commits,lines
// row per author.
func NewCSVPrinter(out io.Writer) Printer {
	return &csvPrinter{
		out: out,
	}
}

func (p *csvPrinter) Print(r *report.Report) error {
	_, err := fmt.Fprintln(p.out, r.Caption)
	if err != nil {
		return err
	}

	w := csv.NewWriter(p.out)
	for _, a := range r.AuthorsByIdentity() {
		err = w.Write([]string{
			a.Identity,
			strconv.Itoa(a.BlankLines),
			strconv.Itoa(a.Comments),
			strconv.Itoa(a.Commits),
			strconv.Itoa(a.Lines),
		})
		if err != nil {
			return err
		}
	}

	w.Flush()
	err = w.Error()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(p.out)
	return err
}
