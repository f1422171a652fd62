package mcp

import "testing"

func TestMapEndCodeSuccess(t *testing.T) {
	if err := mapEndCode(0); err != nil {
		t.Errorf("mapEndCode(0) = %v, want nil", err)
	}
}

func TestMapEndCodeOutOfRangeBand(t *testing.T) {
	for code := uint16(0xC051); code <= 0xC054; code++ {
		err := mapEndCode(code)
		mcErr, ok := err.(*Error)
		if !ok {
			t.Fatalf("mapEndCode(0x%04X) returned %T, want *Error", code, err)
		}
		if mcErr.Kind != KindEndCode {
			t.Errorf("mapEndCode(0x%04X).Kind = %v, want KindEndCode", code, mcErr.Kind)
		}
		if !mcErr.OutOfRange() {
			t.Errorf("mapEndCode(0x%04X).OutOfRange() = false, want true", code)
		}
	}
}

func TestMapEndCodeGenericFailureIsNotOutOfRange(t *testing.T) {
	err := mapEndCode(0x4031)
	mcErr := err.(*Error)
	if mcErr.OutOfRange() {
		t.Error("generic end code should not report OutOfRange")
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := newAddressErr("boom", nil)
	if inner.(*Error).Unwrap() != nil {
		t.Error("expected nil Unwrap for an error with no wrapped cause")
	}
}
