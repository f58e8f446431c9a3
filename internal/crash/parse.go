package crash

import (
	"strings"
)

// PanicMarker is what the engine prints when it panics.
const PanicMarker = "panicked at"

// backtraceMarkers start the stack dump that follows a panic message.
var backtraceMarkers = []string{
	"stack backtrace:",
	"goroutine ",
	"note: run with `RUST_BACKTRACE",
}

// IsPanic reports whether engine stderr contains a panic.
func IsPanic(stderr string) bool {
	return strings.Contains(stderr, PanicMarker)
}

// Parse extracts the panic message and backtrace from engine stderr. Output
// before the panic line (ordinary engine logging) is discarded. Without a
// panic marker the whole trimmed output is returned as the message.
func Parse(stderr string) (message, backtrace string) {
	text := strings.ReplaceAll(stderr, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	start := -1
	for i, line := range lines {
		if strings.Contains(line, PanicMarker) {
			start = i
			break
		}
	}
	if start < 0 {
		return strings.TrimSpace(text), ""
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if isBacktraceStart(lines[i]) {
			end = i
			break
		}
	}

	message = strings.TrimSpace(strings.Join(lines[start:end], "\n"))
	backtrace = strings.TrimSpace(strings.Join(lines[end:], "\n"))
	return message, backtrace
}

func isBacktraceStart(line string) bool {
	for _, marker := range backtraceMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}

// FromStderr builds a Failure from engine stderr and exit status.
func FromStderr(stderr string, command []string, exitCode int, signal string) *Failure {
	message, backtrace := Parse(stderr)
	if message == "" {
		if signal != "" {
			message = "engine terminated by signal " + signal
		} else {
			message = "engine exited unexpectedly"
		}
	}
	return &Failure{
		Message:   message,
		Backtrace: backtrace,
		Command:   append([]string(nil), command...),
		ExitCode:  exitCode,
		Signal:    signal,
	}
}
