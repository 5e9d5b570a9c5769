package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process logger. It is nil until Init runs, and every helper
// below is a no-op in that state so packages can log unconditionally.
var Logger *log.Logger

// Config controls where and how much the logger writes.
type Config struct {
	Debug   bool
	DataDir string
	// Stderr mirrors output to stderr. Keep it off while the TUI owns the terminal.
	Stderr bool
}

// Path returns the log file location for a data directory.
func Path(dataDir string) string {
	return filepath.Join(dataDir, "logs", "habitcoach.log")
}

// Init opens the rotating log file and installs the global logger.
func Init(cfg Config) error {
	logFile := Path(cfg.DataDir)
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	var writer io.Writer = fileWriter
	if cfg.Stderr && cfg.Debug {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "habitcoach",
	})
	return nil
}

// Discard installs a logger that drops everything. Used by tests.
func Discard() {
	Logger = log.NewWithOptions(io.Discard, log.Options{})
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
