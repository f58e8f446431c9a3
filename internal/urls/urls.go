package urls

// NewIssue is where operators file a public issue, quoting the report id
// when one was issued.
const NewIssue = "https://github.com/muurk/panicreport/issues/new"

// Telemetry documents what an error report contains and how it is handled.
const Telemetry = "https://muurk.github.io/panicreport/telemetry/"

// DefaultReportEndpoint is the collector that receives error reports unless
// overridden by configuration.
const DefaultReportEndpoint = "https://reports.muurk.dev/v1"
