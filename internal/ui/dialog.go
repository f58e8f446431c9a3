package ui

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/panicreport/internal/crash"
	"github.com/muurk/panicreport/internal/urls"
)

// State is the dialog's position in the confirm/submit flow. States only
// move forward.
type State int

const (
	StateAwaitingDecision State = iota
	StateSending
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateAwaitingDecision:
		return "awaiting-decision"
	case StateSending:
		return "sending"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of the dialog.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeDeclined
	OutcomeSubmitted
	OutcomeSubmissionFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDeclined:
		return "declined"
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeSubmissionFailed:
		return "submission-failed"
	default:
		return "pending"
	}
}

// Result is what the dialog ends with. ReportID is set only for
// OutcomeSubmitted.
type Result struct {
	Outcome  Outcome
	ReportID string
}

// Sender transmits one error report and returns its id, or "" when the
// report was not accepted. It must not panic on transport errors.
type Sender interface {
	Send(ctx context.Context, f *crash.Failure, toolVersion, engineVersion string) string
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, f *crash.Failure, toolVersion, engineVersion string) string

func (fn SenderFunc) Send(ctx context.Context, f *crash.Failure, toolVersion, engineVersion string) string {
	return fn(ctx, f, toolVersion, engineVersion)
}

// DialogConfig configures NewDialog.
type DialogConfig struct {
	Failure       *crash.Failure
	ToolVersion   string
	EngineVersion string
	Sender        Sender

	// Context is passed to the Sender. Default: context.Background().
	Context context.Context

	// Indicator replaces Yes while sending. Default: NewSpinnerIndicator().
	Indicator Indicator

	// Height is the initial terminal height in rows; window size messages
	// update it. Zero means unknown.
	Height int

	// Hyperlinks wraps URLs in OSC 8 escape sequences.
	Hyperlinks bool

	// ProductName appears in the consent request.
	ProductName string
}

// session is shared by every copy of the Model. It makes the submission and
// the result delivery happen at most once regardless of how often Update is
// called.
type session struct {
	sendOnce sync.Once
	doneOnce sync.Once
	done     chan Result
}

func (s *session) deliver(r Result) {
	s.doneOnce.Do(func() {
		s.done <- r
		close(s.done)
	})
}

// submittedMsg carries the Sender's answer back into the event loop.
type submittedMsg struct {
	reportID string
}

type dialogKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Select key.Binding
	Yes    key.Binding
	No     key.Binding
}

func (k dialogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Select, k.Yes, k.No}
}

func (k dialogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev, k.Select, k.Yes, k.No}}
}

func defaultKeyMap() dialogKeyMap {
	return dialogKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down", "j"),
			key.WithHelp("tab/↓", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up", "k"),
			key.WithHelp("shift+tab/↑", "previous"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "send"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "ctrl+c", "esc"),
			key.WithHelp("n", "don't send"),
		),
	}
}

// Model is the Bubble Tea model of the crash-report dialog.
type Model struct {
	cfg       DialogConfig
	state     State
	focus     int
	result    Result
	height    int
	indicator Indicator
	keys      dialogKeyMap
	help      help.Model
	session   *session
}

// NewDialog creates the dialog in the awaiting-decision state.
func NewDialog(cfg DialogConfig) Model {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Indicator == nil {
		cfg.Indicator = NewSpinnerIndicator()
	}
	if cfg.ProductName == "" {
		cfg.ProductName = "panicreport"
	}
	return Model{
		cfg:       cfg,
		state:     StateAwaitingDecision,
		focus:     YesOption.TabIndex,
		height:    cfg.Height,
		indicator: cfg.Indicator,
		keys:      defaultKeyMap(),
		help:      help.New(),
		session:   &session{done: make(chan Result, 1)},
	}
}

// Done yields the Result exactly once, then is closed.
func (m Model) Done() <-chan Result {
	return m.session.done
}

// State returns the current dialog state.
func (m Model) State() State {
	return m.state
}

// Result returns the outcome reached so far.
func (m Model) Result() Result {
	return m.result
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.state != StateAwaitingDecision || m.result.Outcome == OutcomeDeclined {
			// No input is meaningful once a decision has been made.
			return m, nil
		}
		return m.handleKey(msg)

	case submittedMsg:
		return m.finish(msg.reportID)
	}

	if m.state == StateSending {
		if animated, ok := m.indicator.(Animated); ok {
			var cmd tea.Cmd
			m.indicator, cmd = animated.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next):
		m.focus = (m.focus + 1) % optionCount
	case key.Matches(msg, m.keys.Prev):
		m.focus = (m.focus + optionCount - 1) % optionCount
	case key.Matches(msg, m.keys.Yes):
		return m.selectYes()
	case key.Matches(msg, m.keys.No):
		return m.selectNo()
	case key.Matches(msg, m.keys.Select):
		if m.focus == YesOption.TabIndex {
			return m.selectYes()
		}
		return m.selectNo()
	}
	return m, nil
}

// selectNo ends the dialog without sending anything.
func (m Model) selectNo() (tea.Model, tea.Cmd) {
	m.result = Result{Outcome: OutcomeDeclined}
	m.session.deliver(m.result)
	return m, tea.Quit
}

// selectYes starts the single submission.
func (m Model) selectYes() (tea.Model, tea.Cmd) {
	m.state = StateSending
	cmds := []tea.Cmd{m.submit()}
	if animated, ok := m.indicator.(Animated); ok {
		cmds = append(cmds, animated.Init())
	}
	return m, tea.Batch(cmds...)
}

// submit returns the command performing the transmission. The Sender runs
// at most once per session even if the command is produced again.
func (m Model) submit() tea.Cmd {
	cfg := m.cfg
	s := m.session
	return func() tea.Msg {
		var id string
		ran := false
		s.sendOnce.Do(func() {
			ran = true
			if cfg.Sender != nil {
				id = cfg.Sender.Send(cfg.Context, cfg.Failure, cfg.ToolVersion, cfg.EngineVersion)
			}
		})
		if !ran {
			return nil
		}
		return submittedMsg{reportID: strings.TrimSpace(id)}
	}
}

func (m Model) finish(reportID string) (tea.Model, tea.Cmd) {
	if m.state != StateSending {
		return m, nil
	}
	m.state = StateFinished
	if reportID != "" {
		m.result = Result{Outcome: OutcomeSubmitted, ReportID: reportID}
	} else {
		m.result = Result{Outcome: OutcomeSubmissionFailed}
	}
	m.session.deliver(m.result)
	return m, tea.Quit
}

// View implements tea.Model
func (m Model) View() string {
	if m.state == StateFinished {
		return m.renderFinished()
	}
	return m.renderPrompt()
}

func (m Model) failureText() string {
	if m.cfg.Failure == nil {
		return ""
	}
	lines := VisibleLines(m.cfg.Failure.Lines(), m.height)
	return FailureTextStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderPrompt() string {
	var b strings.Builder

	b.WriteString(ErrorBannerStyle.Render("Oops, an unexpected error occurred!"))
	b.WriteString("\n")
	b.WriteString(m.failureText())
	b.WriteString("\n\n")
	b.WriteString(BoldStyle.Render("Please help us improve " + m.cfg.ProductName + " by submitting an error report."))
	b.WriteString("\n")
	b.WriteString(BoldStyle.Render("Error reports never contain personal or other sensitive information."))
	b.WriteString("\n")
	b.WriteString(MutedStyle.Render("Learn more: "))
	b.WriteString(RenderLink(urls.Telemetry, m.cfg.Hyperlinks))
	b.WriteString("\n")

	var box []string
	box = append(box, BoldStyle.Render("Submit error report"))
	if m.state == StateSending {
		box = append(box, "  "+m.indicator.View()+" "+SpinnerStyle.Render("Submitting error report"))
		box = append(box, renderOption(NoOption, false, true))
	} else {
		box = append(box, renderOption(YesOption, m.focus == YesOption.TabIndex, false))
		box = append(box, renderOption(NoOption, m.focus == NoOption.TabIndex, false))
	}
	b.WriteString(SubmitBoxStyle.Render(strings.Join(box, "\n")))

	if m.state == StateAwaitingDecision {
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderFinished() string {
	var b strings.Builder

	b.WriteString(m.failureText())
	b.WriteString("\n\n")

	switch m.result.Outcome {
	case OutcomeSubmitted:
		b.WriteString(SuccessTitleStyle.Render(SuccessMarker + " We successfully received the error report"))
		b.WriteString("\n")
		b.WriteString("To help us even more, please create an issue at ")
		b.WriteString(RenderLink(urls.NewIssue, m.cfg.Hyperlinks))
		b.WriteString("\n")
		b.WriteString("mentioning the report id ")
		b.WriteString(ReportIDStyle.Render(m.result.ReportID))
		b.WriteString(".")
	default:
		b.WriteString(FailureTitleStyle.Render(FailureMarker + " Oops. We could not send the error report."))
		b.WriteString("\n")
		b.WriteString("To help us still receive this error, please create an issue at ")
		b.WriteString(RenderLink(urls.NewIssue, m.cfg.Hyperlinks))
	}
	b.WriteString("\n\n")
	b.WriteString(BoldStyle.Render("Thanks a lot for your help! 🙏"))
	b.WriteString("\n")
	return b.String()
}
