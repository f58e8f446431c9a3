// Package crash models the failure captured when the engine process dies
// abnormally.
package crash

import (
	"fmt"
	"strings"
)

// Failure is the diagnostic record of an abnormal engine termination.
// It is produced once by the engine runner and only read afterwards.
type Failure struct {
	// Message is the panic message, possibly spanning several lines.
	Message string
	// Backtrace holds the stack dump printed after the message, if any.
	Backtrace string
	// Command is the engine invocation that failed.
	Command []string
	// ExitCode is the process exit code, -1 when killed by a signal.
	ExitCode int
	// Signal names the terminating signal, empty for a normal exit.
	Signal string
}

// Error implements error so a Failure can travel up the normal error path.
func (f *Failure) Error() string {
	return f.Message
}

// Lines splits the message on line breaks. A trailing newline does not
// produce an empty last line.
func (f *Failure) Lines() []string {
	msg := strings.TrimRight(f.Message, "\r\n")
	if msg == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(msg, "\r\n", "\n"), "\n")
}

// Report renders the body submitted to the collector.
func (f *Failure) Report() string {
	var b strings.Builder
	b.WriteString(f.Message)
	if len(f.Command) > 0 {
		fmt.Fprintf(&b, "\n\ncommand: %s", strings.Join(f.Command, " "))
	}
	if f.Signal != "" {
		fmt.Fprintf(&b, "\nsignal: %s", f.Signal)
	} else {
		fmt.Fprintf(&b, "\nexit code: %d", f.ExitCode)
	}
	if f.Backtrace != "" {
		b.WriteString("\n\n")
		b.WriteString(f.Backtrace)
	}
	return b.String()
}
