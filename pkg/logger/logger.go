package logger

import (
	"os"

	"go.uber.org/zap"
)

// New builds the process logger. APP_ENV=development switches to the
// human-readable console encoder.
func New() *zap.Logger {
	if os.Getenv("APP_ENV") == "development" {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return l
	}

	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return l
}
