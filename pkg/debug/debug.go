// Package debug provides optional file-based debug logging.
//
// When the SUBLAYOUT_DEBUG environment variable names a file, reconciler
// debug output is appended to it. Otherwise the logger discards everything.
package debug

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// EnvVar names the environment variable read on first use.
const EnvVar = "SUBLAYOUT_DEBUG"

var (
	logFile *os.File
	logger  *log.Logger
	mu      sync.Mutex
)

// Init opens path for appending and routes debug logging to it.
// If path is empty, uses "sublayout-debug.log" in the current directory.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked(path)
}

// initLocked does the actual init work. Caller must hold mu.
func initLocked(path string) error {
	if path == "" {
		path = "sublayout-debug.log"
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "failed to create log directory")
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errors.Wrap(err, "failed to open debug log")
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logger = newLogger(f)
	return nil
}

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           log.DebugLevel,
		Prefix:          "sublayout",
	})
}

// Logger returns the debug logger. On first use it honors SUBLAYOUT_DEBUG;
// without it the returned logger writes nowhere.
func Logger() *log.Logger {
	mu.Lock()
	defer mu.Unlock()

	if logger != nil {
		return logger
	}
	if path := os.Getenv(EnvVar); path != "" {
		if err := initLocked(path); err == nil {
			return logger
		}
	}
	logger = newLogger(io.Discard)
	return logger
}

// Close closes the debug log file and resets the logger.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	logger = nil
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}

// Logf writes a formatted debug message.
func Logf(format string, args ...any) {
	Logger().Debugf(format, args...)
}
