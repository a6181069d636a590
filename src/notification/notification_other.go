//go:build !windows

package notification

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// ShowBlockingError logs the error and echoes it to stderr; there is no
// native modal dialog outside Windows.
func ShowBlockingError(title, message string) {
	zap.S().Errorf("%s: %s", title, message)
	fmt.Fprintf(os.Stderr, "%s: %s\n", title, message)
}
