// Package engine runs the native backend binary and turns an abnormal
// termination into a *crash.Failure.
//
// Outcomes of Runner.Run:
//
//   - nil: the engine exited 0
//   - *crash.Failure: the engine panicked (panic marker on stderr) or was
//     killed by a signal
//   - *ExecutionError: the engine could not start or exited non-zero
//     without panicking (an ordinary, already-reported error)
//   - *TimeoutError: the engine exceeded Config.Timeout
//
// The engine's stdout is streamed to the operator while it runs. Stderr is
// streamed too and captured so a panic can be parsed from it.
package engine
