package utils

import (
	"runtime/debug"

	"go.viam.com/markerviz/logging"
)

// PanicCapturingGo spawns a goroutine to run the given function and logs
// any panic that occurs instead of crashing the process.
func PanicCapturingGo(f func()) {
	go runCapturingPanic(f)
}

// runCapturingPanic runs f, logging and swallowing a panic. It returns only after the panic has
// been logged.
func runCapturingPanic(f func()) {
	defer func() {
		if err := recover(); err != nil {
			logging.Global().Errorw("panic while running function", "error", err, "stack", string(debug.Stack()))
		}
	}()
	f()
}
