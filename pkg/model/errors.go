package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidConfiguration marks declaration-time mistakes: unknown
	// option keys, undefined role names, malformed definitions.
	ErrInvalidConfiguration = errors.New("model: invalid configuration")

	// ErrFieldNotSet marks reads of declared fields that currently hold no
	// value.
	ErrFieldNotSet = errors.New("model: field not set")

	// ErrMissingFields marks construction attempts that leave required
	// fields without a value.
	ErrMissingFields = errors.New("model: missing required fields")
)

// InvalidConfigurationError carries the offending detail of a
// declaration-time mistake. It matches ErrInvalidConfiguration under
// errors.Is.
type InvalidConfigurationError struct {
	Detail string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("model: invalid configuration: %s", e.Detail)
}

func (e *InvalidConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// NotSetError reports a read of a declared field that has no stored value.
type NotSetError struct {
	Model string
	Field string
}

func (e *NotSetError) Error() string {
	return fmt.Sprintf("model: field %q on %q is not set", e.Field, e.Model)
}

func (e *NotSetError) Is(target error) bool {
	return target == ErrFieldNotSet
}

// MissingFieldsError aggregates every required field left without a value
// at construction time.
type MissingFieldsError struct {
	Model  string
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("model: %q is missing required fields: %s", e.Model, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingFields
}
