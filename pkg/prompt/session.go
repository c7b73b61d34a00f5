package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-schema/pkg/model"
	"github.com/goliatone/go-schema/pkg/types"
)

const defaultMaxAttempts = 3

// Option configures a Session.
type Option func(*Session)

// WithDriver overrides the prompt driver used by the session.
func WithDriver(driver Driver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithMaxAttempts caps how often a failing field is re-prompted before the
// session gives up.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// Session collects field values for a model definition interactively,
// validating each answer with the field's own type before accepting it.
type Session struct {
	driver      Driver
	maxAttempts int
}

// NewSession constructs a session with defaults (survey driver, three
// attempts per field).
func NewSession(options ...Option) *Session {
	s := &Session{
		driver:      newSurveyDriver(),
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Fill prompts for every field of the definition in declaration order and
// constructs a validated instance from the answers. Empty answers skip
// optional fields; defaults fill in the way they would on any construction.
func (s *Session) Fill(ctx context.Context, def *model.Definition) (*model.Instance, error) {
	if ctx == nil {
		return nil, errors.New("prompt: context is required")
	}
	if def == nil {
		return nil, errors.New("prompt: definition is required")
	}

	values, err := s.collect(ctx, def, def.Name())
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return def.New(nil)
	}
	return def.New(values)
}

// collect walks the definition's registry order and prompts per field,
// returning the raw values that were supplied.
func (s *Session) collect(ctx context.Context, def *model.Definition, path string) (map[string]any, error) {
	values := make(map[string]any)
	for _, name := range def.FieldNames() {
		typ, _ := def.FieldType(name)
		fieldPath := path + "." + name

		raw, supplied, err := s.promptField(ctx, fieldPath, typ)
		if err != nil {
			return nil, err
		}
		if supplied {
			values[name] = raw
		}
	}
	return values, nil
}

func (s *Session) promptField(ctx context.Context, path string, typ types.Type) (any, bool, error) {
	switch t := typ.(type) {
	case *model.NestedType:
		return s.promptNested(ctx, path, t)
	case *types.ListType:
		return s.promptList(ctx, path, t)
	case *types.BoolType:
		return s.promptBool(ctx, path, t)
	default:
		return s.promptScalar(ctx, path, typ)
	}
}

func (s *Session) promptNested(ctx context.Context, path string, typ *model.NestedType) (any, bool, error) {
	if !typ.Required() {
		fill, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Provide %s?", path),
			Default: false,
		})
		if err != nil {
			return nil, false, err
		}
		if !fill {
			return nil, false, nil
		}
	}
	values, err := s.collect(ctx, typ.Definition(), path)
	if err != nil {
		return nil, false, err
	}
	return values, true, nil
}

func (s *Session) promptList(ctx context.Context, path string, typ *types.ListType) (any, bool, error) {
	min, constrained := typ.MinSizeConstraint()
	items := []any{}

	if !typ.Required() && !constrained {
		add, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add items to %s?", path),
			Default: false,
		})
		if err != nil {
			return nil, false, err
		}
		if !add {
			return nil, false, nil
		}
	}

	for {
		itemPath := fmt.Sprintf("%s[%d]", path, len(items))

		var raw any
		var supplied bool
		var err error
		// Adding an item already expresses intent, so nested elements skip
		// the opt-in confirmation a standalone nested field would get.
		if nested, ok := typ.Inner().(*model.NestedType); ok {
			raw, err = s.collect(ctx, nested.Definition(), itemPath)
			supplied = err == nil
		} else {
			raw, supplied, err = s.promptField(ctx, itemPath, typ.Inner())
		}
		if err != nil {
			return nil, false, err
		}
		if supplied {
			items = append(items, raw)
		}

		if constrained && len(items) < min {
			continue
		}
		more, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: "Add another?",
			Default: false,
		})
		if err != nil {
			return nil, false, err
		}
		if !more {
			return items, true, nil
		}
	}
}

func (s *Session) promptBool(ctx context.Context, path string, typ *types.BoolType) (any, bool, error) {
	def := false
	if raw, ok := typ.Default(); ok {
		if b, ok := raw.(bool); ok {
			def = b
		}
	}
	value, err := s.driver.Confirm(ctx, ConfirmConfig{
		Message: path,
		Default: def,
	})
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// promptScalar asks for a text answer and accepts it only once the field
// type converts and validates it. An empty answer skips optional fields.
func (s *Session) promptScalar(ctx context.Context, path string, typ types.Type) (any, bool, error) {
	defaultVal := ""
	if raw, ok := typ.Default(); ok {
		defaultVal = fmt.Sprint(raw)
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		answer, err := s.driver.Input(ctx, InputConfig{
			Message: path,
			Default: defaultVal,
		})
		if err != nil {
			return nil, false, err
		}

		if strings.TrimSpace(answer) == "" {
			if !typ.Required() {
				return nil, false, nil
			}
			if err := s.driver.Info(ctx, fmt.Sprintf("%s: %s", path, types.MsgRequired)); err != nil {
				return nil, false, err
			}
			continue
		}

		converted, err := typ.Convert(answer)
		if err == nil {
			err = typ.Validate(converted)
		}
		if err != nil {
			for _, msg := range types.Messages(err) {
				if err := s.driver.Info(ctx, fmt.Sprintf("%s: %s", path, msg)); err != nil {
					return nil, false, err
				}
			}
			continue
		}
		return converted, true, nil
	}
	return nil, false, fmt.Errorf("%w for %s", ErrTooManyAttempts, path)
}
