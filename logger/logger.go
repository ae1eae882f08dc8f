// Package logger provides the service logger. It keeps the dated log file
// layout of the desktop app and formats entries through logrus.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger handles service logging.
type Logger struct {
	log  *logrus.Logger
	file *os.File
	mu   sync.Mutex
}

// NewLogger creates a Logger writing text entries to stderr at info level.
func NewLogger() *Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	return &Logger{log: l}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	l := NewLogger()
	l.log.SetOutput(io.Discard)
	return l
}

// Init redirects logging to a new file in logDir named
// deckgen_<date>_<run>.log, where run counts the files already written today.
func (l *Logger) Init(logDir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.file.Close()
		l.file = nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log dir: %w", err)
	}

	dateStr := time.Now().Format("2006-01-02")
	pattern := filepath.Join(logDir, fmt.Sprintf("deckgen_%s_*.log", dateStr))
	matches, _ := filepath.Glob(pattern)
	runCount := len(matches) + 1
	filename := filepath.Join(logDir, fmt.Sprintf("deckgen_%s_%d.log", dateStr, runCount))

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.file = f
	l.log.SetOutput(f)
	l.log.Info("Logging started")
	return nil
}

// SetLevel parses and applies a level name such as "debug" or "warn".
// Unknown names leave the level unchanged.
func (l *Logger) SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		l.log.Warnf("unknown log level %q, keeping %s", level, l.log.GetLevel())
		return
	}
	l.log.SetLevel(lvl)
}

// SetOutput redirects entries to w.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log.SetOutput(w)
}

// Log writes a message at info level.
func (l *Logger) Log(message string) {
	l.log.Info(message)
}

// Logf writes a formatted message at info level.
func (l *Logger) Logf(format string, args ...interface{}) {
	l.log.Infof(format, args...)
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.log.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.log.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.log.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.log.Errorf(format, args...) }

// WithFields returns an entry carrying the given structured fields.
func (l *Logger) WithFields(fields logrus.Fields) *logrus.Entry {
	return l.log.WithFields(fields)
}

// WithTemplate scopes entries to one template analysis.
func (l *Logger) WithTemplate(templateName string) *logrus.Entry {
	return l.log.WithField("template", templateName)
}

// Close closes the log file, if any, and falls back to stderr.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.log.Info("Logging stopped")
		l.file.Close()
		l.file = nil
		l.log.SetOutput(os.Stderr)
	}
}
