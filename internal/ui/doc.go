// Package ui renders the crash-report dialog.
//
// The dialog is a Bubble Tea model with three states:
//
//	awaitingDecision ──Yes──▶ sending ──id──────▶ finished(Submitted)
//	        │                    └────no id─────▶ finished(SubmissionFailed)
//	        └──No──▶ quit (Declined)
//
// It shows the captured failure (only as many leading lines as fit the
// terminal), asks for consent to send an error report, offers Yes and No as
// focusable options, and swaps Yes for a progress indicator while the report
// is in flight. The Sender is called at most once per dialog.
//
// The final Result is delivered exactly once on the channel returned by
// Model.Done, after which the model asks the program to quit. Mounting,
// tearing down and exiting the process are the caller's job; see
// internal/crashflow.
//
// # Usage
//
//	model := ui.NewDialog(ui.DialogConfig{
//	    Failure:       failure,
//	    ToolVersion:   version.Version,
//	    EngineVersion: engineVersion,
//	    Sender:        reporter.NewClient(cfg.Endpoint),
//	})
//	_, err := tea.NewProgram(model).Run()
//	result := <-model.Done()
package ui
