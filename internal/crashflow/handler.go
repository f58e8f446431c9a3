package crashflow

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/panicreport/internal/crash"
	"github.com/muurk/panicreport/internal/environ"
	"github.com/muurk/panicreport/internal/logging"
	"github.com/muurk/panicreport/internal/ui"
)

// ExitCode is the process status used on every path through the dialog.
const ExitCode = 1

// Handler runs the crash-report workflow. Fields left nil get the real
// process defaults from New.
type Handler struct {
	Probe  *environ.Probe
	Sender ui.Sender

	In  io.Reader
	Out io.Writer

	// Exit terminates the process once the dialog has been torn down.
	Exit func(code int)

	// Height reports the terminal height in rows.
	Height func() int

	Hyperlinks bool

	// Indicator overrides the default spinner.
	Indicator ui.Indicator

	ProgramOptions []tea.ProgramOption
}

// New returns a Handler bound to the real terminal and os.Exit.
func New(sender ui.Sender) *Handler {
	return &Handler{
		Probe:  environ.New(),
		Sender: sender,
		In:     os.Stdin,
		Out:    os.Stdout,
		Exit:   os.Exit,
		Height: func() int {
			_, h := ui.GetTerminalSize()
			return h
		},
		Hyperlinks: true,
	}
}

// Handle either returns failure unchanged, when nobody can be prompted, or
// shows the report dialog and exits the process with ExitCode. If Exit
// returns (as it does in tests) the dialog's Result is returned with a nil
// error. A nil failure has nothing to report and returns immediately.
func (h *Handler) Handle(ctx context.Context, failure *crash.Failure, toolVersion, engineVersion string) (ui.Result, error) {
	if failure == nil {
		return ui.Result{}, nil
	}

	probe := h.Probe
	if probe == nil {
		probe = environ.New()
	}

	interactive := probe.Interactive()
	logging.LogGuardDecision(interactive, probe.Terminal(), probe.CI(), probe.VendorCI())
	if !interactive {
		return ui.Result{}, failure
	}

	logging.LogFailure(failure)

	height := 0
	if h.Height != nil {
		height = h.Height()
	}

	model := ui.NewDialog(ui.DialogConfig{
		Context:       ctx,
		Failure:       failure,
		ToolVersion:   toolVersion,
		EngineVersion: engineVersion,
		Sender:        h.Sender,
		Indicator:     h.Indicator,
		Height:        height,
		Hyperlinks:    h.Hyperlinks,
	})

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if h.In != nil {
		opts = append(opts, tea.WithInput(h.In))
	}
	if h.Out != nil {
		opts = append(opts, tea.WithOutput(h.Out))
	}
	opts = append(opts, h.ProgramOptions...)

	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		// The dialog never got going; let the caller report the failure.
		logging.Warn("crash report dialog failed", zap.Error(err))
		return ui.Result{}, failure
	}

	var result ui.Result
	select {
	case r, ok := <-model.Done():
		if ok {
			result = r
		}
	default:
	}

	logging.Info("crash report dialog finished",
		zap.String("outcome", result.Outcome.String()),
		zap.String("report_id", result.ReportID),
	)
	logging.Sync()

	exit := h.Exit
	if exit == nil {
		exit = os.Exit
	}
	exit(ExitCode)
	return result, nil
}
