package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLex      Phase = "lex"      // character set validation
	PhaseParse    Phase = "parse"    // schema syntax
	PhaseGenerate Phase = "generate" // handler generation
	PhaseEncode   Phase = "encode"   // Go value to bytes
	PhaseDecode   Phase = "decode"   // bytes to Go value
	PhaseMemory   Phase = "memory"   // guest memory access
	PhaseConfig   Phase = "config"   // tool configuration
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidCharacter Kind = "invalid_character"
	KindSyntax           Kind = "syntax"
	KindUnexpectedEOF    Kind = "unexpected_eof"
	KindUnrecognizedType Kind = "unrecognized_type"
	KindReservedName     Kind = "reserved_name"
	KindInvalidName      Kind = "invalid_name"
	KindUnknownCategory  Kind = "unknown_category"
	KindOutOfBounds      Kind = "out_of_bounds"
	KindTypeMismatch     Kind = "type_mismatch"
	KindInvalidInput     Kind = "invalid_input"
)

// NoPosition marks errors that cannot be tied to a schema offset.
const NoPosition = -1

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Detail   string
	Path     []string
	Position int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Position >= 0 && (e.Phase == PhaseLex || e.Phase == PhaseParse || e.Phase == PhaseGenerate) {
		b.WriteString(" at position ")
		b.WriteString(strconv.Itoa(e.Position))
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
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
			Phase:    phase,
			Kind:     kind,
			Position: NoPosition,
		},
	}
}

// At sets the schema offset
func (b *Builder) At(position int) *Builder {
	b.err.Position = position
	return b
}

// Path sets the element path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
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

// InvalidCharacter reports schema text containing characters outside the grammar
func InvalidCharacter(position int, r rune) *Error {
	return &Error{
		Phase:    PhaseLex,
		Kind:     KindInvalidCharacter,
		Position: position,
		Detail:   fmt.Sprintf("passed config contains invalid character %q", r),
		Value:    r,
	}
}

// Syntax reports an unexpected token
func Syntax(position int, format string, args ...any) *Error {
	return &Error{
		Phase:    PhaseParse,
		Kind:     KindSyntax,
		Position: position,
		Detail:   fmt.Sprintf(format, args...),
	}
}

// UnexpectedEOF reports a token stream exhausted mid-construct
func UnexpectedEOF() *Error {
	return &Error{
		Phase:    PhaseParse,
		Kind:     KindUnexpectedEOF,
		Position: NoPosition,
		Detail:   "unexpected end of string",
	}
}

// ReservedName reports use of the reserved MASK identifier
func ReservedName(position int, name string) *Error {
	return &Error{
		Phase:    PhaseParse,
		Kind:     KindReservedName,
		Position: position,
		Detail:   fmt.Sprintf("disallowed name %q given", name),
		Value:    name,
	}
}

// InvalidName reports a structure name that does not start with an uppercase letter
func InvalidName(position int, name string) *Error {
	return &Error{
		Phase:    PhaseParse,
		Kind:     KindInvalidName,
		Position: position,
		Detail:   fmt.Sprintf("structure names cannot start with lowercase letters: %q", name),
		Value:    name,
	}
}

// UnrecognizedType reports a name that is neither built in nor previously declared
func UnrecognizedType(name string) *Error {
	return &Error{
		Phase:    PhaseGenerate,
		Kind:     KindUnrecognizedType,
		Position: NoPosition,
		Detail:   fmt.Sprintf("unrecognized type %q", name),
		Value:    name,
	}
}

// UnknownCategory reports a type node the generator cannot handle
func UnknownCategory(category any) *Error {
	return &Error{
		Phase:    PhaseGenerate,
		Kind:     KindUnknownCategory,
		Position: NoPosition,
		Detail:   fmt.Sprintf("unrecognized type category %v", category),
		Value:    category,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, offset, length, size int) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindOutOfBounds,
		Position: NoPosition,
		Detail:   fmt.Sprintf("access of %d bytes at offset %d exceeds buffer of %d bytes", length, offset, size),
		Value:    offset,
	}
}

// TypeMismatch creates a type mismatch error for a value the handler cannot encode
func TypeMismatch(path []string, value any, want string) *Error {
	return &Error{
		Phase:    PhaseEncode,
		Kind:     KindTypeMismatch,
		Position: NoPosition,
		Path:     path,
		Detail:   fmt.Sprintf("cannot encode %T as %s", value, want),
		Value:    value,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidInput,
		Position: NoPosition,
		Detail:   detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     kind,
		Position: NoPosition,
		Detail:   detail,
		Cause:    cause,
	}
}

// WithPath returns err with elem prepended to its path when err is an *Error.
// Composite handlers use it to report where inside a value encoding failed.
func WithPath(err error, elem string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	path := make([]string, 0, len(e.Path)+1)
	path = append(path, elem)
	path = append(path, e.Path...)
	cp := *e
	cp.Path = path
	return &cp
}
