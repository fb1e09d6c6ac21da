package perrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestOutOfRangef(t *testing.T) {
	err := OutOfRangef("index %d out of range for length %d", 5, 3)
	if err.Code != OutOfRange {
		t.Errorf("Code = %s, want %s", err.Code, OutOfRange)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := &Error{Code: InvariantViolation, Message: "lookup exhausted ancestry", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should see through to the wrapped cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestDefaultLogger(t *testing.T) {
	if _, ok := Default(nil).(NoopLogger); !ok {
		t.Error("Default(nil) should return a NoopLogger")
	}

	var got []Event
	custom := loggerFunc(func(e Event) { got = append(got, e) })
	Default(custom).Log(Event{Kind: "vector.prune"})
	if len(got) != 1 || got[0].Kind != "vector.prune" {
		t.Errorf("custom logger did not receive event, got %v", got)
	}
}

type loggerFunc func(Event)

func (f loggerFunc) Log(e Event) { f(e) }
