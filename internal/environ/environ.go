// Package environ answers whether the current process can safely prompt an
// operator: stdout must be a terminal and no CI system may be driving it.
package environ

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// VendorCIEnvVar is the vendor-specific CI flag checked on its own.
const VendorCIEnvVar = "GITHUB_ACTIONS"

// ciEnvVars signal a generic CI environment when set to a non-empty value.
var ciEnvVars = []string{
	"CONTINUOUS_INTEGRATION",
	"BUILD_NUMBER",
	"BUILD_ID",
	"RUN_ID",
	"CI_NAME",
	"JENKINS_URL",
	"GITLAB_CI",
	"TEAMCITY_VERSION",
	"TF_BUILD",
	"BUILDKITE",
	"CIRCLECI",
	"TRAVIS",
}

// Probe inspects the process environment. The zero value is not usable;
// construct it with New or fill both functions.
type Probe struct {
	Getenv     func(string) string
	IsTerminal func() bool
}

// New returns a Probe for the real process: os.Getenv and a terminal check
// on stdout.
func New() *Probe {
	return &Probe{
		Getenv: os.Getenv,
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

// Terminal reports whether stdout is attached to a terminal.
func (p *Probe) Terminal() bool {
	return p.IsTerminal()
}

// CI reports whether a generic continuous-integration environment is
// detected. CI=false explicitly opts out.
func (p *Probe) CI() bool {
	ci := strings.TrimSpace(p.Getenv("CI"))
	if strings.EqualFold(ci, "false") || ci == "0" {
		return false
	}
	if ci != "" {
		return true
	}
	for _, name := range ciEnvVars {
		if p.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// VendorCI reports whether the vendor CI flag is present.
func (p *Probe) VendorCI() bool {
	return p.Getenv(VendorCIEnvVar) != ""
}

// Interactive is true only when prompting can be answered by a person.
func (p *Probe) Interactive() bool {
	return p.Terminal() && !p.CI() && !p.VendorCI()
}
