package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	gokitlog "github.com/go-kit/log"
)

// NewLogger creates a logger that writes to both stdout and a file in dir.
// An empty dir logs to stdout only.
func NewLogger(prefix, dir string) (gokitlog.Logger, error) {
	var out io.Writer = os.Stdout

	if dir != "" {
		// Create logs directory if it doesn't exist
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create logs directory: %w", err)
		}

		// Create log file with timestamp
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		logFile := filepath.Join(dir, fmt.Sprintf("%s_%s.log", prefix, timestamp))

		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}

		out = io.MultiWriter(os.Stdout, file)
	}

	return newLogfmtLogger(out), nil
}

func newLogfmtLogger(w io.Writer) gokitlog.Logger {
	logger := gokitlog.NewLogfmtLogger(gokitlog.NewSyncWriter(w))
	return gokitlog.With(logger, "ts", gokitlog.DefaultTimestampUTC, "caller", gokitlog.DefaultCaller)
}

// LogWithTiming logs a message with timing information
func LogWithTiming(logger gokitlog.Logger, startTime time.Time, format string, v ...interface{}) {
	elapsed := time.Since(startTime)
	message := fmt.Sprintf(format, v...)
	logger.Log("msg", fmt.Sprintf("%s (took %v)", message, elapsed))
}

// TimeFunction wraps a function with timing information
func TimeFunction(logger gokitlog.Logger, name string, fn func() error) error {
	startTime := time.Now()
	logger.Log("msg", fmt.Sprintf("Starting %s", name))

	err := fn()

	elapsed := time.Since(startTime)
	if err != nil {
		logger.Log("msg", fmt.Sprintf("Completed %s with error: %v (took %v)", name, err, elapsed))
	} else {
		logger.Log("msg", fmt.Sprintf("Completed %s successfully (took %v)", name, elapsed))
	}

	return err
}
