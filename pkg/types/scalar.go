package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stringPolicyOnce sync.Once
	stringPolicy     *bluemonday.Policy
)

func sanitizePolicy() *bluemonday.Policy {
	stringPolicyOnce.Do(func() {
		stringPolicy = bluemonday.StrictPolicy()
	})
	return stringPolicy
}

// StringType accepts any value coercible to text.
type StringType struct {
	Base
}

// String builds a text field type.
func String(options ...Option) *StringType {
	return &StringType{Base: NewBase(options...)}
}

func (t *StringType) Convert(raw any) (any, error) {
	var out string
	switch v := raw.(type) {
	case string:
		out = v
	case []byte:
		out = string(v)
	case fmt.Stringer:
		out = v.String()
	case int:
		out = strconv.Itoa(v)
	case int32:
		out = strconv.FormatInt(int64(v), 10)
	case int64:
		out = strconv.FormatInt(v, 10)
	case uint:
		out = strconv.FormatUint(uint64(v), 10)
	case uint64:
		out = strconv.FormatUint(v, 10)
	case float32:
		out = strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		out = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return nil, &ConversionError{Message: "Couldn't interpret value as a string."}
	}
	if t.sanitize {
		out = strings.TrimSpace(sanitizePolicy().Sanitize(out))
	}
	return out, nil
}

func (t *StringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return &ValidationError{Messages: []string{"Value is not a string."}}
	}
	return t.checkError(value)
}

// IntType accepts numeric-coercible input, including numeric strings.
type IntType struct {
	Base
}

// Int builds an integer field type.
func Int(options ...Option) *IntType {
	return &IntType{Base: NewBase(options...)}
}

func (t *IntType) Convert(raw any) (any, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, &ConversionError{Message: "Value is not an integer."}
		}
		return int64(v), nil
	case float32:
		return t.fromFloat(float64(v))
	case float64:
		return t.fromFloat(v)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, &ConversionError{Message: "Value is not an integer."}
		}
		return parsed, nil
	default:
		return nil, &ConversionError{Message: "Value is not an integer."}
	}
}

func (t *IntType) fromFloat(v float64) (any, error) {
	if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, &ConversionError{Message: "Value is not an integer."}
	}
	return int64(v), nil
}

func (t *IntType) Validate(value any) error {
	if _, ok := value.(int64); !ok {
		return &ValidationError{Messages: []string{"Value is not an integer."}}
	}
	return t.checkError(value)
}

// BoolType accepts native bools and the usual textual/numeric spellings.
type BoolType struct {
	Base
}

// Bool builds a boolean field type.
func Bool(options ...Option) *BoolType {
	return &BoolType{Base: NewBase(options...)}
}

func (t *BoolType) Convert(raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
		return nil, &ConversionError{Message: "Value is not a boolean."}
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	default:
		return nil, &ConversionError{Message: "Value is not a boolean."}
	}
}

func (t *BoolType) Validate(value any) error {
	if _, ok := value.(bool); !ok {
		return &ValidationError{Messages: []string{"Value is not a boolean."}}
	}
	return t.checkError(value)
}

// datetimeLayouts lists the ISO-8601 shapes accepted for string input, most
// specific first. Zone-less layouts parse in the local zone so values round
// trip against locally produced timestamps.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DateTimeType accepts a native time.Time or an ISO-8601 formatted string.
type DateTimeType struct {
	Base
}

// DateTime builds a date/time field type.
func DateTime(options ...Option) *DateTimeType {
	return &DateTimeType{Base: NewBase(options...)}
}

func (t *DateTimeType) Convert(raw any) (any, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return nil, &ConversionError{Message: "Could not parse value as a date/time."}
		}
		return *v, nil
	case string:
		trimmed := strings.TrimSpace(v)
		for _, layout := range datetimeLayouts {
			if parsed, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
				return parsed, nil
			}
		}
		return nil, &ConversionError{Message: "Could not parse value as a date/time."}
	default:
		return nil, &ConversionError{Message: "Could not parse value as a date/time."}
	}
}

func (t *DateTimeType) Validate(value any) error {
	if _, ok := value.(time.Time); !ok {
		return &ValidationError{Messages: []string{"Value is not a date/time."}}
	}
	return t.checkError(value)
}
