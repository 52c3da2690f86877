package logging

import (
	"go.uber.org/zap"
)

// New builds the process logger: development output for "debug", production
// JSON output otherwise.
func New(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
