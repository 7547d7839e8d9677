package schema

import (
	"fmt"

	"go.uber.org/multierr"
)

// ConfigError means a field definition cannot be built: bad precision
// step, unknown time unit, broken format pattern, unknown property.
// It is fatal to the schema change carrying the definition.
type ConfigError struct {
	Field string
	Prop  string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("failed to build field [%s]: property [%s]: %s", e.Field, e.Prop, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ValueParseError means a document value survived neither the date-format
// parse nor the raw-timestamp fallback. The failing document is rejected,
// the index stays intact.
type ValueParseError struct {
	Value   string
	Pattern string

	FormatErr error
	NumberErr error
}

func (e *ValueParseError) Error() string {
	return fmt.Sprintf("failed to parse date field [%s], tried both date format [%s] and timestamp number", e.Value, e.Pattern)
}

func (e *ValueParseError) Unwrap() error {
	return multierr.Append(e.FormatErr, e.NumberErr)
}

// DateMathParseError means a query-side date expression is malformed.
// Surfaced to the query caller as a client error, never retried.
type DateMathParseError struct {
	Expr string
	Pos  int
	Msg  string
}

func (e *DateMathParseError) Error() string {
	return fmt.Sprintf("failed to parse date math [%s] at position %d: %s", e.Expr, e.Pos, e.Msg)
}

// UnknownFieldPropertyError means the object form of a document value
// carries a key the extractor does not recognize. The object form is
// strict, misspelled keys fail instead of being dropped.
type UnknownFieldPropertyError struct {
	Field string
	Prop  string
}

func (e *UnknownFieldPropertyError) Error() string {
	return fmt.Sprintf("unknown property [%s] in field [%s]", e.Prop, e.Field)
}

// IncompatibleMergeError rejects a schema update that redefines a field
// with a different kind. The existing schema stays untouched.
type IncompatibleMergeError struct {
	Field    string
	Current  FieldKind
	Incoming FieldKind
}

func (e *IncompatibleMergeError) Error() string {
	return fmt.Sprintf("mapper [%s] of different type, current_type [%s], merged_type [%s]", e.Field, e.Current, e.Incoming)
}
