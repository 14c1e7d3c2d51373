package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is shared by the whole process. While it is nil every helper in
// this package drops its message, so library code and tests need no setup.
var Logger *log.Logger

const fileName = "swingbooking.log"

type Config struct {
	// Debug lowers the level to debug, reports callers and mirrors the
	// file to stderr.
	Debug bool
	// Dir receives swingbooking.log. Empty means stderr only.
	Dir string
}

// Init replaces Logger according to cfg.
func Init(cfg Config) error {
	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	var w io.Writer = os.Stderr
	if cfg.Dir != "" {
		file, err := rotating(cfg.Dir)
		if err != nil {
			return err
		}
		w = file
		if cfg.Debug {
			w = io.MultiWriter(os.Stderr, file)
		}
	}

	Logger = New(w, level, cfg.Debug)
	return nil
}

// rotating keeps three compressed backups of at most 10 MB for four weeks.
func rotating(dir string) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, fileName),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}, nil
}

// New builds a logger on an arbitrary writer (tests, embedding).
func New(w io.Writer, level log.Level, reportCaller bool) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportCaller:    reportCaller,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "swingbooking",
	})
}

func emit(level log.Level, msg string, keyvals []interface{}) {
	if Logger == nil {
		return
	}
	Logger.Log(level, msg, keyvals...)
}

// Debug, Info, Warn and Error write msg with alternating key/value pairs.
func Debug(msg string, keyvals ...interface{}) { emit(log.DebugLevel, msg, keyvals) }

func Info(msg string, keyvals ...interface{}) { emit(log.InfoLevel, msg, keyvals) }

func Warn(msg string, keyvals ...interface{}) { emit(log.WarnLevel, msg, keyvals) }

func Error(msg string, keyvals ...interface{}) { emit(log.ErrorLevel, msg, keyvals) }
