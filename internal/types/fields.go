package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownField is returned when a field name does not exist on a record.
	ErrUnknownField = errors.New("unknown field")
	// ErrFieldType is returned when a value cannot be converted to the field's type.
	ErrFieldType = errors.New("invalid value for field")
)

// FieldError describes a rejected field assignment.
type FieldError struct {
	Record string
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Record, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func unknownField(record, field string) error {
	return &FieldError{Record: record, Field: field, Err: ErrUnknownField}
}

func badValue(record, field string, value any) error {
	return &FieldError{Record: record, Field: field, Err: fmt.Errorf("%w: %T", ErrFieldType, value)}
}

// Field values arrive either typed (programmatic callers, decoded JSON) or as
// strings (form inputs, CLI arguments); the helpers below accept both.

func asString(record, field string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return "", badValue(record, field, value)
	}
}

func asBool(record, field string, value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, badValue(record, field, value)
		}
		return b, nil
	default:
		return false, badValue(record, field, value)
	}
}

func asInt(record, field string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, badValue(record, field, value)
		}
		return n, nil
	default:
		return 0, badValue(record, field, value)
	}
}

func asStrings(record, field string, value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return append([]string{}, v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, badValue(record, field, value)
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		// comma separated list, e.g. "B, C1" for driving licenses
		out := []string{}
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	default:
		return nil, badValue(record, field, value)
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}
