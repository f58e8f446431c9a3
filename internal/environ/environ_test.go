package environ

import (
	"testing"
)

func probe(env map[string]string, tty bool) *Probe {
	return &Probe{
		Getenv:     func(k string) string { return env[k] },
		IsTerminal: func() bool { return tty },
	}
}

func TestInteractive(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		tty  bool
		want bool
	}{
		{"terminal, clean env", nil, true, true},
		{"not a terminal", nil, false, false},
		{"CI=true", map[string]string{"CI": "true"}, true, false},
		{"CI=1", map[string]string{"CI": "1"}, true, false},
		{"CI=false opts out", map[string]string{"CI": "false"}, true, true},
		{"CI=false wins over BUILD_NUMBER", map[string]string{"CI": "false", "BUILD_NUMBER": "12"}, true, true},
		{"BUILD_NUMBER", map[string]string{"BUILD_NUMBER": "12"}, true, false},
		{"JENKINS_URL", map[string]string{"JENKINS_URL": "http://ci"}, true, false},
		{"GITHUB_ACTIONS", map[string]string{"GITHUB_ACTIONS": "true"}, true, false},
		{"GITHUB_ACTIONS with CI=false", map[string]string{"GITHUB_ACTIONS": "true", "CI": "false"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := probe(tt.env, tt.tty).Interactive(); got != tt.want {
				t.Errorf("Interactive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVendorCI(t *testing.T) {
	if !probe(map[string]string{VendorCIEnvVar: "true"}, true).VendorCI() {
		t.Error("VendorCI() = false with GITHUB_ACTIONS set")
	}
	if probe(nil, true).VendorCI() {
		t.Error("VendorCI() = true with clean env")
	}
}

func TestNew_UsesProcessEnv(t *testing.T) {
	t.Setenv("CI", "true")

	p := New()
	if !p.CI() {
		t.Error("New().CI() should read the process environment")
	}
	if p.Interactive() {
		t.Error("Interactive() must be false when CI is set")
	}
}
