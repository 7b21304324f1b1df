package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:     PhaseMemory,
				Kind:      KindOutOfBounds,
				Op:        "decode",
				Encoding:  "utf16le",
				Offset:    0x1000,
				Length:    64,
				HasRegion: true,
				Detail:    "destination past end",
			},
			contains: []string{"[memory]", "out_of_bounds", "in decode", "(utf16le)", "at 0x1000+64", "destination past end"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindOverflow,
			},
			contains: []string{"[decode]", "overflow"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseHost,
				Kind:   KindAllocation,
				Detail: "memory full",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[host]", "allocation", "memory full", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_NoRegion(t *testing.T) {
	err := &Error{Phase: PhaseRepair, Kind: KindInvalidInput, Offset: 7}
	if strings.Contains(err.Error(), " at 0x") {
		t.Errorf("error %q shows a region that was never set", err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindInvalidInput,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseMemory,
		Kind:  KindOutOfBounds,
		Op:    "repair",
	}

	if !err.Is(&Error{Phase: PhaseMemory, Kind: KindOutOfBounds}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseMemory, Kind: KindOverflow}) {
		t.Error("Is should not match different kind")
	}

	var wrapped error = Wrap(PhaseHost, KindInvalidInput, err, "host call")
	if !errors.Is(wrapped, &Error{Phase: PhaseMemory, Kind: KindOutOfBounds}) {
		t.Error("errors.Is should find the wrapped error")
	}

	var target *Error
	if !errors.As(wrapped, &target) || target.Phase != PhaseHost {
		t.Errorf("errors.As = %v, want the outer host error", target)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseMemory, KindOutOfBounds).
		Op("reencode").
		Encoding("utf8").
		Region(16, 32).
		Value(42).
		Cause(cause).
		Detail("need %d bytes, have %d", 32, 8).
		Build()

	if err.Phase != PhaseMemory {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseMemory)
	}
	if err.Kind != KindOutOfBounds {
		t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
	}
	if err.Op != "reencode" {
		t.Errorf("Op = %v, want 'reencode'", err.Op)
	}
	if err.Encoding != "utf8" {
		t.Errorf("Encoding = %v, want 'utf8'", err.Encoding)
	}
	if !err.HasRegion || err.Offset != 16 || err.Length != 32 {
		t.Errorf("Region = (%v, %d, %d), want (true, 16, 32)", err.HasRegion, err.Offset, err.Length)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "need 32 bytes, have 8" {
		t.Errorf("Detail = %v, want 'need 32 bytes, have 8'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseMemory, "repair", 100, 5)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if !err.HasRegion || err.Offset != 100 || err.Length != 5 {
			t.Errorf("region = %d+%d, want 100+5", err.Offset, err.Length)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseDecode, "lift", 300, 255)
		if err.Kind != KindOverflow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
		}
		if err.Value != uint32(300) {
			t.Errorf("Value = %v, want 300", err.Value)
		}
	})

	t.Run("AllocationFailed", func(t *testing.T) {
		cause := errors.New("oom")
		err := AllocationFailed(PhaseEncode, 1024, 2, cause)
		if err.Kind != KindAllocation {
			t.Errorf("Kind = %v, want %v", err.Kind, KindAllocation)
		}
		if !strings.Contains(err.Detail, "1024") {
			t.Errorf("Detail = %v, should contain size", err.Detail)
		}
		if !errors.Is(err, cause) {
			t.Error("AllocationFailed should wrap its cause")
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseLoad, "export", "run")
		if err.Kind != KindNotFound || !strings.Contains(err.Detail, `"run"`) {
			t.Errorf("got %v", err)
		}
	})

	t.Run("NotInitialized", func(t *testing.T) {
		err := NotInitialized(PhaseHost, "memory")
		if err.Kind != KindNotInitialized {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotInitialized)
		}
	})

	t.Run("Instantiation", func(t *testing.T) {
		err := Instantiation("guest", errors.New("bad magic"))
		if err.Phase != PhaseLoad || err.Kind != KindInstantiation {
			t.Errorf("got %v", err)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseConfig, "unknown mode")
		if err.Kind != KindInvalidInput || err.Detail != "unknown mode" {
			t.Errorf("got %v", err)
		}
	})
}
