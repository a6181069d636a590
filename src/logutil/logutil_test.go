package logutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactKey(t *testing.T) {
	assert.Equal(t, "********", RedactKey("short"))
	assert.Equal(t, "AIza...wxyz", RedactKey("AIzaSyD-1234567890wxyz"))
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"newlines", "a\nb\r\nc", "a\\nb\\n\\nc"},
		{"tab", "a\tb", "a\\tb"},
		{"control", "a\x07b", "a?b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}

	long := make([]byte, 150)
	for i := range long {
		long[i] = 'x'
	}
	got := Sanitize(string(long))
	assert.Len(t, got, maxLogLength+3)

	// the cut lands on a rune boundary
	accented := strings.Repeat("a", maxLogLength-1) + "éé"
	got = Sanitize(accented)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", maxLogLength-1)+"é...", got)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "abc", Preview("abc", 20))
	assert.Equal(t, "héllo...", Preview("héllo world", 5))
}

func TestSetupWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, err := Setup(Options{EnableFileLogging: true, FilePath: path, Level: "debug"})
	require.NoError(t, err)

	logger.Infow("Main script starting...", "component", "test")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Main script starting...")
}

func TestSetupDisabledIsNop(t *testing.T) {
	logger, err := Setup(Options{})
	require.NoError(t, err)
	logger.Info("discarded")
}
