// Package logging configures the global zerolog logger. Stdout is left
// untouched because the MCP transport owns it.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the rotating log file inside the log directory.
const FileName = "worklog-insights.log"

// Init initializes the global logger with dual sinks: os.Stderr and a rotating file.
func Init(verbose bool) {
	// Init runs before config.Load, so LOGS_FOLDER may still be in the
	// binary-relative .env.
	exePath, err := os.Executable()
	if err == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(exePath), ".env"))
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	logDir := os.Getenv("LOGS_FOLDER")
	if logDir == "" {
		if err == nil {
			logDir = filepath.Join(filepath.Dir(exePath), "logs")
		} else {
			logDir = "logs"
		}
	}

	fileWriter, err := NewFileWriter(logDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.Logger = New(consoleWriter(os.Stderr), fileWriter)
}

// New builds a timestamped logger that writes to every sink.
func New(sinks ...io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.MultiLevelWriter(sinks...)).
		With().
		Timestamp().
		Logger()
}

func consoleWriter(f *os.File) zerolog.ConsoleWriter {
	isTerminal := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	return zerolog.ConsoleWriter{
		Out:        f,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal,
	}
}

// NewFileWriter returns a rotating writer for FileName in dir, failing early
// when dir cannot be created or written to.
func NewFileWriter(dir string) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %q: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		return nil, fmt.Errorf("log directory %q is not writable: %w", dir, err)
	}
	_ = os.Remove(testFile)

	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, FileName),
		MaxSize:    16, // megabytes
		MaxBackups: 8,
		MaxAge:     90, // days
		Compress:   true,
	}, nil
}
