package logging

import (
	"os"

	"go.uber.org/zap"
)

// New creates a new zap logger. Production encoding by default,
// the readable development encoder when APP_ENV=development.
func New() *zap.Logger {
	if os.Getenv("APP_ENV") == "development" {
		return zap.NewExample()
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewExample()
	}
	return logger
}
