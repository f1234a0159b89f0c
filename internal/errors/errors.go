package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/intima/internal/logger"
	"github.com/julianstephens/intima/internal/storage"
)

// friendly maps storage error kinds to the message shown on the terminal
var friendly = []struct {
	kind error
	msg  string
}{
	{storage.ErrUsernameTaken, "that username is already taken"},
	{storage.ErrUserNotFound, "no such user"},
	{storage.ErrEmotionNotFound, "no such emotion"},
	{storage.ErrLogNotFound, "no such log entry"},
	{storage.ErrInvalidInput, "a required value is missing"},
	{storage.ErrStorage, "the database could not complete the request (see the log file for details)"},
}

// Describe returns a user-facing message for err. Storage kinds get a fixed message; other
// errors are shown as-is.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	for _, f := range friendly {
		if stderrors.Is(err, f.kind) {
			return f.msg
		}
	}
	return err.Error()
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", Describe(err))
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
