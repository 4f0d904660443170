package app

import (
	"os"
	"strconv"
	"sync"
)

// TestModeEnv makes the binaries return before opening any connection.
const TestModeEnv = "SALESDASH_TEST_MODE"

var testMode struct {
	sync.RWMutex
	loaded bool
	on     bool
}

// InTestMode reports whether TestModeEnv holds a true value.
func InTestMode() bool {
	testMode.RLock()
	loaded, on := testMode.loaded, testMode.on
	testMode.RUnlock()
	if loaded {
		return on
	}
	return RefreshTestMode()
}

// RefreshTestMode re-reads TestModeEnv and returns the new value.
func RefreshTestMode() bool {
	on, _ := strconv.ParseBool(os.Getenv(TestModeEnv))
	testMode.Lock()
	testMode.loaded, testMode.on = true, on
	testMode.Unlock()
	return on
}
