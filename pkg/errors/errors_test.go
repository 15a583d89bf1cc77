package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownParameter, "parameter not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeUnknownParameter {
		t.Errorf("expected code %s, got %s", ErrCodeUnknownParameter, err.Code)
	}
	if err.Message != "parameter not found" {
		t.Errorf("expected message 'parameter not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ErrCodeDuplicateName, "parameter %q already registered", "R")
	want := `[DUPLICATE_NAME] parameter "R" already registered`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "operation failed", cause)

	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("bisection bracket failure")
	err := WrapWithContext(ErrCodeConvergence, "solve failed", cause, map[string]any{
		"iterations": 500,
	})

	if err.Context["iterations"] != 500 {
		t.Errorf("expected context to carry iterations, got %v", err.Context)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{"direct match", New(ErrCodeInvalidRange, "bad grid"), ErrCodeInvalidRange, true},
		{"code mismatch", New(ErrCodeInvalidRange, "bad grid"), ErrCodeUnknownSetting, false},
		{"wrapped match", Wrap(ErrCodeCircularSetting, "outer", errors.New("inner")), ErrCodeCircularSetting, true},
		{"plain error", errors.New("plain"), ErrCodeInternal, false},
		{"nil error", nil, ErrCodeInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCode(tt.err, tt.code); got != tt.want {
				t.Errorf("IsCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New(ErrCodeUnknownSetting, "setting missing")
	if err.Error() != "[UNKNOWN_SETTING] setting missing" {
		t.Errorf("unexpected error string: %s", err.Error())
	}

	wrapped := Wrap(ErrCodeUnknownSetting, "setting missing", errors.New("boom"))
	if wrapped.Error() != "[UNKNOWN_SETTING] setting missing: boom" {
		t.Errorf("unexpected wrapped error string: %s", wrapped.Error())
	}
}
