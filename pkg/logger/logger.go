// Package logger configures process-wide structured logging.
package logger

import (
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
)

var (
	logFile *os.File
	mu      sync.Mutex
)

// Init configures the global logger. With a path, logs append to that file;
// otherwise they go to stderr. Verbose enables debug level.
func Init(logPath string, verbose bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	if logPath == "" {
		log.SetOutput(os.Stderr)
		return nil
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	logFile = f
	log.SetOutput(f)

	return nil
}

// Close closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
		log.SetOutput(os.Stderr)
	}
}
