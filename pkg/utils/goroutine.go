package utils

import (
	"runtime/debug"

	"market-risk-radar/pkg/logger"
)

// GoSafe runs fn in a goroutine and keeps a panic from taking the process down.
func GoSafe(log *logger.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Recovered from panic in goroutine",
					logger.Field("panic", r),
					logger.StringField("stack", string(debug.Stack())),
				)
			}
		}()
		fn()
	}()
}
