package types

import (
	"fmt"
	"strings"
)

// MsgRequired is the canonical message recorded when a required field has no
// value. Consumers match on the literal text, so it must stay stable.
const MsgRequired = "This field is required."

// ConversionError reports raw input that could not be coerced into the
// field's typed form.
type ConversionError struct {
	Message string
}

func (e *ConversionError) Error() string {
	return e.Message
}

// ValidationError reports a typed value that failed one or more field-level
// constraints. Messages preserve evaluation order.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// RequiredError reports an absent value for a field that demands one.
type RequiredError struct{}

func (e *RequiredError) Error() string {
	return MsgRequired
}

// StructureError reports raw input whose shape (not content) does not match
// the container the field expects, e.g. a scalar where a mapping is needed.
type StructureError struct {
	Message string
}

func (e *StructureError) Error() string {
	return e.Message
}

// SizeError reports a collection shorter than the declared minimum.
type SizeError struct {
	Min int
}

func (e *SizeError) Error() string {
	plural := "s"
	if e.Min == 1 {
		plural = ""
	}
	return fmt.Sprintf("Please provide at least %d item%s.", e.Min, plural)
}

// Messages flattens any field-level error into the message list recorded on
// an instance's error map.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	if verr, ok := err.(*ValidationError); ok {
		return verr.Messages
	}
	return []string{err.Error()}
}
