package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Notices writes transient user-facing messages to a terminal. It is the
// CLI's stand-in for toast pop-ups: success and error outcomes of mutations,
// plus centrally-detected transport failures, all land here.
type Notices struct {
	out io.Writer
	mu  sync.Mutex
}

// NewNotices creates a Notices writing to out. A nil out defaults to stderr
// so notices never interleave with machine-readable command output.
func NewNotices(out io.Writer) *Notices {
	if out == nil {
		out = os.Stderr
	}
	return &Notices{out: out}
}

// Success shows a confirmation notice.
func (n *Notices) Success(message string) {
	n.write(FormatSuccess(message))
}

// Error shows a failure notice.
func (n *Notices) Error(message string) {
	n.write(FormatError(message))
}

// Info shows an informational notice.
func (n *Notices) Info(message string) {
	n.write(FormatInfo(message))
}

func (n *Notices) write(line string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintln(n.out, line)
}
