package privilege

import (
	"strings"
	"testing"
)

func TestWarningFor(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"windows", "Administrator"},
		{"linux", "'input' group"},
		{"darwin", "Accessibility"},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			if got := warningFor(tt.goos); !strings.Contains(got, tt.want) {
				t.Errorf("warningFor(%q) = %q, want it to mention %q", tt.goos, got, tt.want)
			}
		})
	}
	if got := warningFor("plan9"); got != "" {
		t.Errorf("unknown OS should have no warning, got %q", got)
	}
}
