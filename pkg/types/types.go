package types

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Type is the contract every field type satisfies: Convert coerces raw,
// untyped input into the field's typed form, Validate checks a typed value
// against the field's own constraints. Validate never mutates its argument.
type Type interface {
	Convert(raw any) (any, error)
	Validate(value any) error
	Required() bool
	Default() (any, bool)
}

// Base carries the configuration shared by all field types. Concrete types
// embed it and pick the knobs that apply to them.
type Base struct {
	required   bool
	defaultVal any
	hasDefault bool
	minSize    int
	hasMinSize bool
	sanitize   bool
	checks     []check
}

type check struct {
	rule string
	prog *vm.Program
}

// Option configures a field type prior to construction.
type Option func(*Base)

// Required marks the field as mandatory: full validation fails when the
// field ends up with no value at all.
func Required() Option {
	return func(b *Base) {
		b.required = true
	}
}

// Default assigns the value stored eagerly at construction time when the
// caller supplies none.
func Default(value any) Option {
	return func(b *Base) {
		b.defaultVal = value
		b.hasDefault = true
	}
}

// MinSize constrains list fields to a minimum element count. Scalar types
// ignore it.
func MinSize(n int) Option {
	return func(b *Base) {
		b.minSize = n
		b.hasMinSize = true
	}
}

// Sanitized strips markup from string input using a strict HTML policy.
// Only String honours it.
func Sanitized() Option {
	return func(b *Base) {
		b.sanitize = true
	}
}

// Check attaches a boolean expression evaluated against the converted value,
// exposed to the expression as `value`. It panics on an unparsable rule to
// surface configuration mistakes at declaration time.
func Check(rule string) Option {
	prog, err := expr.Compile(rule, expr.AllowUndefinedVariables())
	if err != nil {
		panic(fmt.Sprintf("types: invalid check expression %q: %v", rule, err))
	}
	return func(b *Base) {
		b.checks = append(b.checks, check{rule: rule, prog: prog})
	}
}

// NewBase resolves a set of options into a Base. Concrete field types embed
// the result.
func NewBase(options ...Option) Base {
	var b Base
	for _, opt := range options {
		opt(&b)
	}
	return b
}

// Required reports whether the field demands a value during full validation.
func (b *Base) Required() bool {
	return b.required
}

// Default returns the declared default value, if any.
func (b *Base) Default() (any, bool) {
	return b.defaultVal, b.hasDefault
}

// MinSizeConstraint returns the declared minimum element count, if any.
func (b *Base) MinSizeConstraint() (int, bool) {
	return b.minSize, b.hasMinSize
}

// RunChecks evaluates every attached check expression against the typed
// value and returns one message per failed rule.
func (b *Base) RunChecks(value any) []string {
	if len(b.checks) == 0 {
		return nil
	}
	var messages []string
	env := map[string]any{"value": value}
	for _, c := range b.checks {
		out, err := expr.Run(c.prog, env)
		if err != nil {
			messages = append(messages, fmt.Sprintf("Check %q could not be evaluated.", c.rule))
			continue
		}
		ok, isBool := out.(bool)
		if !isBool || !ok {
			messages = append(messages, fmt.Sprintf("Value failed check %q.", c.rule))
		}
	}
	return messages
}

func (b *Base) checkError(value any) error {
	if messages := b.RunChecks(value); len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}
