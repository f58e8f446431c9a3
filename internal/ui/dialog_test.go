package ui

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/panicreport/internal/crash"
)

type countingSender struct {
	id    string
	calls atomic.Int32
	got   []string
}

func (s *countingSender) Send(_ context.Context, f *crash.Failure, toolVersion, engineVersion string) string {
	s.calls.Add(1)
	s.got = []string{f.Message, toolVersion, engineVersion}
	return s.id
}

func newTestDialog(sender Sender) Model {
	return NewDialog(DialogConfig{
		Failure:       &crash.Failure{Message: "thread 'main' panicked at 'boom'"},
		ToolVersion:   "1.2.3",
		EngineVersion: "4.5.6",
		Sender:        sender,
		Indicator:     StaticIndicator("*"),
		Height:        40,
	})
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(k)
	model, ok := updated.(Model)
	require.True(t, ok, "Update returned %T", updated)
	return model, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect executes cmd, expanding batches, and returns every message produced.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func findSubmitted(t *testing.T, cmd tea.Cmd) submittedMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if sm, ok := msg.(submittedMsg); ok {
			return sm
		}
	}
	t.Fatal("no submission result produced")
	return submittedMsg{}
}

func isQuit(cmd tea.Cmd) bool {
	for _, msg := range collect(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func TestDialog_InitialView(t *testing.T) {
	m := newTestDialog(&countingSender{})

	assert.Equal(t, StateAwaitingDecision, m.State())
	assert.Nil(t, m.Init())

	view := m.View()
	assert.Contains(t, view, "Oops, an unexpected error occurred!")
	assert.Contains(t, view, "panicked at 'boom'")
	assert.Contains(t, view, "Please help us improve panicreport by submitting an error report.")
	assert.Contains(t, view, "Error reports never contain personal or other sensitive information.")
	assert.Contains(t, view, "https://muurk.github.io/panicreport/telemetry/")
	assert.Contains(t, view, "Submit error report")
	assert.Contains(t, view, FocusMarker+" Yes")
	assert.Contains(t, view, "No")
}

func TestDialog_FocusNavigation(t *testing.T) {
	m := newTestDialog(&countingSender{})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, NoOption.TabIndex, m.focus)
	assert.Contains(t, m.View(), FocusMarker+" No")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, YesOption.TabIndex, m.focus)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, NoOption.TabIndex, m.focus)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, YesOption.TabIndex, m.focus)

	m, _ = press(t, m, runes("j"))
	assert.Equal(t, NoOption.TabIndex, m.focus)
}

func TestDialog_Decline(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
	}{
		{"shortcut", []tea.KeyMsg{runes("n")}},
		{"focus and enter", []tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyEnter}}},
		{"focus and space", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeySpace, Runes: []rune(" ")}}},
		{"interrupt", []tea.KeyMsg{{Type: tea.KeyCtrlC}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &countingSender{id: "42"}
			m := newTestDialog(sender)

			var cmd tea.Cmd
			for _, k := range tt.keys {
				m, cmd = press(t, m, k)
			}

			assert.True(t, isQuit(cmd), "expected quit command")
			assert.Equal(t, Result{Outcome: OutcomeDeclined}, m.Result())
			assert.Equal(t, StateAwaitingDecision, m.State())
			assert.Equal(t, int32(0), sender.calls.Load())

			select {
			case r := <-m.Done():
				assert.Equal(t, OutcomeDeclined, r.Outcome)
			default:
				t.Fatal("result not delivered")
			}

			// Further input is ignored.
			_, cmd = press(t, m, runes("y"))
			assert.Nil(t, cmd)
			assert.Equal(t, int32(0), sender.calls.Load())
		})
	}
}

func TestDialog_SubmitSuccess(t *testing.T) {
	sender := &countingSender{id: "42"}
	m := newTestDialog(sender)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, StateSending, m.State())

	view := m.View()
	assert.Contains(t, view, "Submitting error report")
	assert.NotContains(t, view, FocusMarker+" Yes")

	sm := findSubmitted(t, cmd)
	assert.Equal(t, "42", sm.reportID)
	assert.Equal(t, []string{"thread 'main' panicked at 'boom'", "1.2.3", "4.5.6"}, sender.got)

	updated, cmd := m.Update(sm)
	m = updated.(Model)
	assert.True(t, isQuit(cmd))
	assert.Equal(t, StateFinished, m.State())
	assert.Equal(t, Result{Outcome: OutcomeSubmitted, ReportID: "42"}, m.Result())

	view = m.View()
	assert.Contains(t, view, "panicked at 'boom'")
	assert.Contains(t, view, "We successfully received the error report")
	assert.Contains(t, view, "https://github.com/muurk/panicreport/issues/new")
	assert.Contains(t, view, "42")
	assert.Contains(t, view, "Thanks a lot for your help!")

	r := <-m.Done()
	assert.Equal(t, Result{Outcome: OutcomeSubmitted, ReportID: "42"}, r)
	_, open := <-m.Done()
	assert.False(t, open, "done channel should be closed after one result")
}

func TestDialog_SubmitFailure(t *testing.T) {
	sender := &countingSender{id: ""}
	m := newTestDialog(sender)

	m, cmd := press(t, m, runes("y"))
	sm := findSubmitted(t, cmd)

	updated, cmd := m.Update(sm)
	m = updated.(Model)
	assert.True(t, isQuit(cmd))
	assert.Equal(t, StateFinished, m.State())
	assert.Equal(t, Result{Outcome: OutcomeSubmissionFailed}, m.Result())

	view := m.View()
	assert.Contains(t, view, "Oops. We could not send the error report.")
	assert.Contains(t, view, "https://github.com/muurk/panicreport/issues/new")
	assert.NotContains(t, view, "report id")
	assert.NotContains(t, view, "We successfully received")
	assert.Contains(t, view, "Thanks a lot for your help!")
}

func TestDialog_WhitespaceIDIsFailure(t *testing.T) {
	m := newTestDialog(&countingSender{id: "  \n"})

	m, cmd := press(t, m, runes("y"))
	updated, _ := m.Update(findSubmitted(t, cmd))
	m = updated.(Model)

	assert.Equal(t, OutcomeSubmissionFailed, m.Result().Outcome)
}

func TestDialog_SendsAtMostOnce(t *testing.T) {
	sender := &countingSender{id: "7"}
	m := newTestDialog(sender)

	m, cmd := press(t, m, runes("y"))

	// Input while sending does nothing.
	m2, cmd2 := press(t, m, runes("y"))
	assert.Nil(t, cmd2)
	_, cmd3 := press(t, m2, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd3)

	sm := findSubmitted(t, cmd)
	// A replayed submission command does not transmit again.
	assert.Empty(t, collect(m.submit()))
	assert.Equal(t, int32(1), sender.calls.Load())

	updated, _ := m.Update(sm)
	m = updated.(Model)
	// A duplicate result message does not change the outcome.
	updated, cmd = m.Update(submittedMsg{reportID: "other"})
	m = updated.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, "7", m.Result().ReportID)
}

func TestDialog_NilSenderFails(t *testing.T) {
	m := NewDialog(DialogConfig{Failure: &crash.Failure{Message: "boom"}, Indicator: StaticIndicator("*")})

	m, cmd := press(t, m, runes("y"))
	updated, _ := m.Update(findSubmitted(t, cmd))

	assert.Equal(t, OutcomeSubmissionFailed, updated.(Model).Result().Outcome)
}

func TestDialog_TruncatesFailureText(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = fmt.Sprintf("frame-%02d", i+1)
	}
	m := NewDialog(DialogConfig{
		Failure:   &crash.Failure{Message: strings.Join(lines, "\n")},
		Indicator: StaticIndicator("*"),
	})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 25})
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "frame-05")
	assert.NotContains(t, view, "frame-06")

	updated, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	view = updated.(Model).View()
	assert.Contains(t, view, "frame-01")
	assert.NotContains(t, view, "frame-02")
}

func TestDialog_SpinnerIndicatorAnimates(t *testing.T) {
	m := NewDialog(DialogConfig{
		Failure: &crash.Failure{Message: "boom"},
		Sender:  &countingSender{id: "1"},
	})

	m, cmd := press(t, m, runes("y"))
	require.NotNil(t, cmd)

	_, isAnimated := m.indicator.(Animated)
	assert.True(t, isAnimated)
	assert.NotEmpty(t, m.indicator.View())
}

func TestStateAndOutcomeStrings(t *testing.T) {
	assert.Equal(t, "awaiting-decision", StateAwaitingDecision.String())
	assert.Equal(t, "sending", StateSending.String())
	assert.Equal(t, "finished", StateFinished.String())
	assert.Equal(t, "declined", OutcomeDeclined.String())
	assert.Equal(t, "submitted", OutcomeSubmitted.String())
	assert.Equal(t, "submission-failed", OutcomeSubmissionFailed.String())
	assert.Equal(t, "pending", OutcomePending.String())
}
