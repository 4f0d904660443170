// Package guard switches the binaries into test mode when imported by a test.
package guard

import (
	"os"

	"github.com/odyssey-erp/salesdash/internal/app"
)

func init() {
	if os.Getenv(app.TestModeEnv) == "" {
		_ = os.Setenv(app.TestModeEnv, "1")
	}
	app.RefreshTestMode()
}
