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
				Phase:    PhaseEncode,
				Kind:     KindTypeMismatch,
				Path:     []string{"TEST", "one", "[1]"},
				GoType:   "string",
				HostType: "c_uint",
				Detail:   "cannot convert",
			},
			contains: []string{"[encode]", "type_mismatch", "TEST.one[1]", "string", "c_uint", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindByteCast,
			},
			contains: []string{"[decode]", "byte_cast"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseHost,
				Kind:   KindHostInterop,
				Detail: "construct POINT",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[host]", "host_interop", "construct POINT", "caused by", "underlying error"},
		},
		{
			name:     "host type only",
			err:      InvalidType([]string{"TEST", "ptr"}, "CFuncPtr"),
			contains: []string{"[reflect]", "invalid_type", "TEST.ptr", "host type CFuncPtr", " - "},
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

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindHostInterop,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause in chain")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindMissingAttribute,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseEncode, Kind: KindMissingAttribute}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseDecode, Kind: KindMissingAttribute}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseEncode, Kind: KindByteCast}) {
		t.Error("Is should not match different kind")
	}

	if !errors.Is(err, ErrMissingAttribute) {
		t.Error("errors.Is should match kind sentinel regardless of phase")
	}

	if errors.Is(err, ErrByteCast) {
		t.Error("errors.Is should not match a different kind sentinel")
	}

	if err.Is(errors.New("plain")) {
		t.Error("Is should not match non-structured errors")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseEncode, KindTypeMismatch).
		Path("POINT", "x").
		GoType("string").
		HostType("c_uint").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "integer", "string").
		Build()

	if err.Phase != PhaseEncode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseEncode)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if JoinPath(err.Path) != "POINT.x" {
		t.Errorf("Path = %v, want POINT.x", err.Path)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if err.Detail != "expected integer, got string" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable")
	}
}

func TestBuilderDetailWithoutArgs(t *testing.T) {
	err := New(PhaseMemory, KindOutOfBounds).Detail("100%% literal").Build()
	if err.Detail != "100%% literal" {
		t.Errorf("Detail = %q, want verbatim message", err.Detail)
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		want string
		path []string
	}{
		{"", nil},
		{"TEST", []string{"TEST"}},
		{"TEST.one", []string{"TEST", "one"}},
		{"TEST.one[1]", []string{"TEST", "one", "[1]"}},
		{"arr[0][2].x", []string{"arr", "[0]", "[2]", "x"}},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := JoinPath(tc.path); got != tc.want {
				t.Errorf("JoinPath(%v) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		err   *Error
		name  string
		phase Phase
		kind  Kind
	}{
		{InvalidType(nil, "X"), "invalid type", PhaseReflect, KindInvalidType},
		{UnknownScalar(nil, "c_int128"), "unknown scalar", PhaseReflect, KindUnknownScalar},
		{MissingFieldType(nil, "x"), "missing field type", PhaseReflect, KindMissingFieldType},
		{MissingAttribute(PhaseEncode, nil, "x", nil), "missing attribute", PhaseEncode, KindMissingAttribute},
		{ByteCast(PhaseDecode, nil, 4, 2), "byte cast", PhaseDecode, KindByteCast},
		{HostInterop(PhaseDecode, nil, "setattr", errors.New("x")), "host interop", PhaseDecode, KindHostInterop},
		{NotImplemented(PhaseDecode, nil, "wide char"), "not implemented", PhaseDecode, KindNotImplemented},
		{Overflow(PhaseEncode, nil, uint64(1<<40), "ptr32"), "overflow", PhaseEncode, KindOverflow},
		{LengthMismatch(PhaseEncode, nil, 3, 2), "length mismatch", PhaseEncode, KindLengthMismatch},
		{OutOfBounds(PhaseMemory, 0x10, 4, 0x8), "out of bounds", PhaseMemory, KindOutOfBounds},
		{ReadOnly(0x10), "read only", PhaseMemory, KindReadOnly},
		{InvalidArch("MIPS"), "invalid arch", PhaseTarget, KindInvalidArch},
		{NotFound(PhaseTarget, "process", "a.exe"), "not found", PhaseTarget, KindNotFound},
		{InvalidInput(PhaseConfig, "bad"), "invalid input", PhaseConfig, KindInvalidInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Phase != tc.phase {
				t.Errorf("Phase = %v, want %v", tc.err.Phase, tc.phase)
			}
			if tc.err.Kind != tc.kind {
				t.Errorf("Kind = %v, want %v", tc.err.Kind, tc.kind)
			}
			if tc.err.Error() == "" {
				t.Error("empty message")
			}
		})
	}
}

func TestByteCastDetail(t *testing.T) {
	err := ByteCast(PhaseDecode, []string{"c_int"}, 4, 3)
	if !strings.Contains(err.Error(), "expected 4 bytes, got 3") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestInvalidArchMessage(t *testing.T) {
	if got := InvalidArch("MIPS").Error(); !strings.Contains(got, "the arch MIPS is not valid") {
		t.Errorf("unexpected message %q", got)
	}
}
