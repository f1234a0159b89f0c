package logger

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/intima/internal/constants"
)

// Logger is nil until Init; every helper below is a no-op until then.
var Logger *log.Logger

type Config struct {
	// Verbose mirrors the log to stderr and lowers the level to debug
	Verbose bool
	// Dir is the directory holding the database; logs go to Dir/logs
	Dir string
}

// FilePath is where Init writes the rotating log for a given config directory
func FilePath(dir string) string {
	return filepath.Join(dir, "logs", constants.AppName+".log")
}

func Init(cfg Config) error {
	path := FilePath(cfg.Dir)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	var w io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.WarnLevel
	if cfg.Verbose {
		level = log.DebugLevel
		w = io.MultiWriter(os.Stderr, w)
	}

	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Verbose,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

// New builds a logfmt logger at debug level writing to w
func New(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:     log.DebugLevel,
		Formatter: log.LogfmtFormatter,
		Prefix:    constants.AppName,
	})
}

// StorageFailure records the driver error behind a failed store operation. Callers only pass
// the op name and error, so journal content never reaches the log. Cancelled or timed out
// operations are logged as warnings since the caller gave up, not the database.
func StorageFailure(op string, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		emit(log.WarnLevel, "storage operation abandoned", "op", op, "error", err)
		return
	}
	emit(log.ErrorLevel, "storage operation failed", "op", op, "error", err)
}

func emit(level log.Level, msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Log(level, msg, keyvals...)
	}
}

func Debug(msg string, keyvals ...interface{}) { emit(log.DebugLevel, msg, keyvals...) }
func Info(msg string, keyvals ...interface{})  { emit(log.InfoLevel, msg, keyvals...) }
func Warn(msg string, keyvals ...interface{})  { emit(log.WarnLevel, msg, keyvals...) }
func Error(msg string, keyvals ...interface{}) { emit(log.ErrorLevel, msg, keyvals...) }
