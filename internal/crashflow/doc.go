// Package crashflow is the entry point for an engine failure that reached
// the operator.
//
// Handle first decides whether anyone can answer a prompt. Without a
// terminal on stdout, or inside CI, the failure comes back untouched and the
// caller reports it as usual. Otherwise the report dialog from package ui is
// shown, and once it finishes and the terminal is restored the process exits
// with status 1.
//
//	h := crashflow.New(reporter.NewClient(cfg.Endpoint))
//	if _, err := h.Handle(ctx, failure, version.Version, engineVersion); err != nil {
//	    return err
//	}
package crashflow
