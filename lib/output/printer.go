package output

import (
	"github.com/pescuma/siri/lib/report"
)

type Printer interface {
	Print(r *report.Report) error
}
