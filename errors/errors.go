package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode Phase = "decode" // bytes to UTF-16
	PhaseEncode Phase = "encode" // UTF-16 to bytes
	PhaseRepair Phase = "repair" // in-place repair
	PhaseMemory Phase = "memory" // linear memory access
	PhaseHost   Phase = "host"   // host module calls and registration
	PhaseLoad   Phase = "load"   // guest module loading
	PhaseConfig Phase = "config" // configuration and flags
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfBounds    Kind = "out_of_bounds"
	KindInvalidInput   Kind = "invalid_input"
	KindOverflow       Kind = "overflow"
	KindAllocation     Kind = "allocation"
	KindNotFound       Kind = "not_found"
	KindNotInitialized Kind = "not_initialized"
	KindInstantiation  Kind = "instantiation"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Op       string
	Encoding string
	Detail   string
	Offset   uint32
	Length   uint32
	// HasRegion reports whether Offset and Length are set.
	HasRegion bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}
	if e.Encoding != "" {
		b.WriteString(" (")
		b.WriteString(e.Encoding)
		b.WriteByte(')')
	}

	if e.HasRegion {
		b.WriteString(" at 0x")
		b.WriteString(strconv.FormatUint(uint64(e.Offset), 16))
		b.WriteByte('+')
		b.WriteString(strconv.FormatUint(uint64(e.Length), 10))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the operation name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Encoding sets the text encoding involved
func (b *Builder) Encoding(enc string) *Builder {
	b.err.Encoding = enc
	return b
}

// Region sets the linear memory region involved
func (b *Builder) Region(offset, length uint32) *Builder {
	b.err.Offset = offset
	b.err.Length = length
	b.err.HasRegion = true
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// OutOfBounds creates an error for a region that does not lie inside memory
func OutOfBounds(phase Phase, op string, offset, length uint32) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindOutOfBounds,
		Op:        op,
		Offset:    offset,
		Length:    length,
		HasRegion: true,
		Detail:    "region outside linear memory",
	}
}

// Overflow creates an error for a size above a configured limit
func Overflow(phase Phase, op string, size, limit uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Op:     op,
		Detail: fmt.Sprintf("size %d exceeds maximum %d", size, limit),
		Value:  size,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size, align uint32, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d)", size, align),
		Cause:  cause,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// Instantiation creates an instantiation error
func Instantiation(name string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInstantiation,
		Detail: fmt.Sprintf("instantiate module %q", name),
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
