package storage

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/intima/internal/logger"
)

func TestFailHidesDriverError(t *testing.T) {
	var buf bytes.Buffer
	logger.Logger = logger.New(&buf)
	defer func() { logger.Logger = nil }()

	driverErr := errors.New("database disk image is malformed (11)")
	err := Fail("get all logs", driverErr)

	if !errors.Is(err, ErrStorage) {
		t.Fatalf("Fail() = %v, want ErrStorage", err)
	}
	if errors.Is(err, driverErr) {
		t.Error("Fail() must not wrap the driver error")
	}
	if strings.Contains(err.Error(), "malformed") {
		t.Errorf("Fail() leaked driver detail: %q", err.Error())
	}
	if !strings.Contains(buf.String(), "malformed") {
		t.Errorf("driver error was not logged: %q", buf.String())
	}
}

func TestKind(t *testing.T) {
	err := Kind("create log", ErrUserNotFound)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Kind() = %v, want ErrUserNotFound", err)
	}
	if err.Error() != "create log: user not found" {
		t.Errorf("Kind().Error() = %q", err.Error())
	}
}

func TestIsKnown(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain", err: errors.New("boom"), want: false},
		{name: "username taken", err: Kind("create user", ErrUsernameTaken), want: true},
		{name: "storage", err: Kind("x", ErrStorage), want: true},
		{name: "invalid input", err: ErrInvalidInput, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsKnown(tt.err); got != tt.want {
				t.Errorf("IsKnown(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
