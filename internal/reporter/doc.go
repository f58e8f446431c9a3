// Package reporter transmits error reports to the collector.
//
// Client.Send makes exactly one HTTP attempt and never returns an error:
// transport, HTTP and decoding failures are classified, logged, and collapsed
// into an empty report id. Callers treat "" as "not delivered".
//
//	client := reporter.NewClient(cfg.Endpoint)
//	id := client.Send(ctx, failure, version.Version, engineVersion)
//	if id == "" {
//	    // ask the operator to file an issue manually
//	}
package reporter
