package consoles

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

type writerConsole struct {
	mutex    sync.Mutex
	out      io.Writer
	verbose  bool
	prefixes []string
}

// NewWriterConsole creates a console that writes to out, usually stderr so
// reports on stdout are kept clean.
func NewWriterConsole(out io.Writer, verbose bool) Console {
	return &writerConsole{
		out:     out,
		verbose: verbose,
	}
}

func (o *writerConsole) Printf(format string, a ...any) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	builder := strings.Builder{}
	for _, prefix := range o.prefixes {
		builder.WriteString(prefix)
	}
	builder.WriteString(fmt.Sprintf(format, a...))
	_, _ = io.WriteString(o.out, builder.String())
}

func (o *writerConsole) Verbosef(format string, a ...any) {
	if !o.verbose {
		return
	}

	o.Printf("[%v] "+format, append([]any{time.Now().Format("15:04:05")}, a...)...)
}

func (o *writerConsole) PushPrefix(format string, a ...any) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.prefixes = append(o.prefixes, fmt.Sprintf(format, a...))
}

func (o *writerConsole) PopPrefix() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.prefixes = o.prefixes[:len(o.prefixes)-1]
}
