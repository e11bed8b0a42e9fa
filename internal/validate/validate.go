// Package validate turns untyped request bodies into normalized records. A
// Schema lists the fields a resource accepts; Normalize checks presence of the
// mandatory ones and coerces numeric values to integers.
package validate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Kind classifies a validation failure.
type Kind string

const (
	KindMissingField  Kind = "missing field"
	KindInvalidNumber Kind = "invalid number"
	KindInvalidID     Kind = "invalid id"
)

// Error describes a single violated constraint and the field that violated it.
type Error struct {
	Kind  Kind
	Field string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Field)
}

// ErrEmptyUpdate is returned when an update body contains no usable values.
var ErrEmptyUpdate = errors.New("no values to be updated")

// Field declares how one record field is validated. Numeric fields are coerced
// to int64; non-required numeric fields fall back to Default when absent.
type Field struct {
	Name     string
	Required bool
	Numeric  bool
	Default  int64
}

// Schema is the ordered field list of a resource. The order determines which
// missing mandatory field is reported first.
type Schema []Field

// DriverSchema covers the drivers table: name and team are mandatory, the
// statistics columns default to zero.
var DriverSchema = Schema{
	{Name: "name", Required: true},
	{Name: "team", Required: true},
	{Name: "points", Numeric: true},
	{Name: "wins", Numeric: true},
	{Name: "podiums", Numeric: true},
}

// ConstructorSchema covers the constructor standings documents.
var ConstructorSchema = Schema{
	{Name: "position", Required: true, Numeric: true},
	{Name: "team", Required: true},
	{Name: "color"},
	{Name: "drivers", Required: true},
	{Name: "points", Numeric: true},
	{Name: "wins", Numeric: true},
	{Name: "podiums", Numeric: true},
	{Name: "season", Numeric: true, Default: 2024},
}

// ContactSchema covers contact form submissions. Only presence is checked;
// email format checking is left to the front end.
var ContactSchema = Schema{
	{Name: "name", Required: true},
	{Name: "email", Required: true},
	{Name: "number", Required: true},
	{Name: "msg", Required: true},
}

// Normalize checks the raw record against the schema and returns a typed copy:
// text fields as string, numeric fields as int64. Mandatory fields must be
// present and non-empty; absent optional numerics take their default value.
func (s Schema) Normalize(raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(s))
	for _, f := range s {
		v, err := f.normalize(raw[f.Name])
		if err != nil {
			return nil, err
		}
		if v != nil {
			out[f.Name] = v
		}
	}
	return out, nil
}

// NormalizeUpdate applies the same typing rules but treats every field as
// optional and keeps only the fields present in the raw record. An update
// without a single usable value is rejected.
func (s Schema) NormalizeUpdate(raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	for _, f := range s {
		v, present := raw[f.Name]
		if !present {
			continue
		}
		if f.Numeric {
			n, ok, err := toInt(v)
			if err != nil {
				return nil, &Error{Kind: KindInvalidNumber, Field: f.Name}
			}
			if !ok {
				continue
			}
			out[f.Name] = n
		} else {
			t, ok := toText(v)
			if !ok {
				continue
			}
			out[f.Name] = t
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyUpdate
	}
	return out, nil
}

// normalize coerces a single value according to the field declaration. It
// returns nil for an optional text field that was not supplied.
func (f Field) normalize(v any) (any, error) {
	if f.Numeric {
		n, ok, err := toInt(v)
		if err != nil {
			return nil, &Error{Kind: KindInvalidNumber, Field: f.Name}
		}
		if !ok {
			if f.Required {
				return nil, &Error{Kind: KindMissingField, Field: f.Name}
			}
			n = f.Default
		}
		return n, nil
	}
	t, ok := toText(v)
	if !ok {
		if f.Required {
			return nil, &Error{Kind: KindMissingField, Field: f.Name}
		}
		return nil, nil
	}
	return t, nil
}

// ParseID validates a path-supplied identifier for the relational store. Ids
// must parse as positive integers; document-store ids are passed through
// opaquely and never reach this function.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, &Error{Kind: KindInvalidID, Field: "id"}
	}
	return id, nil
}

// toInt converts a raw JSON value to an int64. The second return value is
// false when the value counts as absent (nil, empty string, or false).
func toInt(v any) (int64, bool, error) {
	switch t := v.(type) {
	case nil:
		return 0, false, nil
	case bool:
		return 0, false, nil
	case string:
		if t == "" {
			return 0, false, nil
		}
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, false, err
		}
		return n, true, nil
	case float64:
		if t != math.Trunc(t) {
			return 0, false, fmt.Errorf("fractional value %v", t)
		}
		return int64(t), true, nil
	case int:
		return int64(t), true, nil
	case int64:
		return t, true, nil
	default:
		return 0, false, fmt.Errorf("unsupported value %v", v)
	}
}

// toText converts a raw JSON value to a string. The second return value is
// false when the value counts as absent (nil, empty string, or a boolean).
func toText(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case bool:
		return "", false
	case string:
		return t, t != ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return fmt.Sprint(t), true
	}
}
