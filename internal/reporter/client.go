package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muurk/panicreport/internal/crash"
	"github.com/muurk/panicreport/internal/logging"
	"github.com/muurk/panicreport/internal/version"
)

const (
	// DefaultTimeout bounds a single HTTP request to the collector
	DefaultTimeout = 30 * time.Second

	// maxResponseSize caps how much of the collector response is read
	maxResponseSize = 64 << 10

	reportsPath = "/reports"
)

// Client submits error reports over HTTP.
type Client struct {
	// Endpoint is the collector base URL (e.g. "https://reports.example.com/v1")
	Endpoint string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// UserAgent is sent with every request
	UserAgent string

	// newKey produces the Idempotency-Key header value
	newKey func() string
}

// NewClient creates a client for the given collector endpoint.
func NewClient(endpoint string) *Client {
	return &Client{
		Endpoint:   strings.TrimRight(endpoint, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		UserAgent:  version.UserAgent(),
		newKey:     uuid.NewString,
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Report is the JSON body sent to the collector.
type Report struct {
	ToolVersion   string   `json:"tool_version"`
	EngineVersion string   `json:"engine_version"`
	Platform      string   `json:"platform"`
	Arch          string   `json:"arch"`
	Message       string   `json:"message"`
	Backtrace     string   `json:"backtrace,omitempty"`
	Command       []string `json:"command,omitempty"`
	ExitCode      int      `json:"exit_code"`
	Signal        string   `json:"signal,omitempty"`
	// Body is the plain-text rendering of the whole failure.
	Body          string   `json:"report"`
}

// NewReport builds the request body for a failure.
func NewReport(f *crash.Failure, toolVersion, engineVersion string) Report {
	return Report{
		ToolVersion:   toolVersion,
		EngineVersion: engineVersion,
		Platform:      runtime.GOOS,
		Arch:          runtime.GOARCH,
		Message:       f.Message,
		Backtrace:     f.Backtrace,
		Command:       f.Command,
		ExitCode:      f.ExitCode,
		Signal:        f.Signal,
		Body:          f.Report(),
	}
}

type reportResponse struct {
	ID json.RawMessage `json:"id"`
}

// Send transmits one report and returns the collector's report id, or ""
// when the report was not accepted. It never returns an error.
func (c *Client) Send(ctx context.Context, f *crash.Failure, toolVersion, engineVersion string) string {
	start := time.Now()
	id, err := c.submit(ctx, NewReport(f, toolVersion, engineVersion))
	logging.LogSubmission(id, time.Since(start), err)
	if err != nil {
		return ""
	}
	return id
}

func (c *Client) submit(ctx context.Context, report Report) (string, error) {
	target := c.Endpoint + reportsPath

	body, err := json.Marshal(report)
	if err != nil {
		return "", &SubmitError{Type: ErrTypeEncode, Message: "failed to encode report", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return "", &SubmitError{Type: ErrTypeEncode, Message: "failed to create request", Endpoint: target, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)
	if c.newKey != nil {
		req.Header.Set("Idempotency-Key", c.newKey())
	}

	logging.Debug("submitting error report",
		zap.String("endpoint", target),
		zap.Int("size", len(body)),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", ClassifyTransportError(err, target)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return "", NewHTTPError(resp.StatusCode, target)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", ClassifyTransportError(err, target)
	}

	var parsed reportResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", NewParseError("malformed collector response", err)
	}

	id, err := decodeID(parsed.ID)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", NewParseError("collector response has no report id", nil)
	}
	return id, nil
}

// decodeID accepts a JSON string or number. Numbers keep their literal form;
// zero is not a usable id and decodes to "".
func decodeID(raw json.RawMessage) (string, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return "", nil
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", NewParseError("malformed report id", err)
		}
		return strings.TrimSpace(s), nil
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return "", NewParseError(fmt.Sprintf("unsupported report id %s", text), err)
	}
	if n == 0 {
		return "", nil
	}
	return text, nil
}
