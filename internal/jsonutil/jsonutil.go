// Package jsonutil provides helpers for the loosely typed values that arrive
// in JSON request bodies: decoding with context, and conversion of decoded
// interface{} values to the scalar and pair types the callbacks take.
package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// ErrType is returned when a value cannot be converted to the requested type.
var ErrType = errors.New("unexpected value type")

// DecodeWithContext decodes a single JSON document from r into v and wraps
// any error with the provided context message. Unknown fields are rejected.
func DecodeWithContext(r io.Reader, v interface{}, context string) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// ToString converts a decoded value to a string. Strings pass through;
// numbers and bools are formatted. nil is an error.
func ToString(v interface{}) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case float64:
		// Format as integer for whole numbers, otherwise as float
		if val == math.Trunc(val) && !math.IsInf(val, 0) {
			return strconv.FormatFloat(val, 'f', 0, 64), nil
		}
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case json.Number:
		return val.String(), nil
	case bool:
		return strconv.FormatBool(val), nil
	default:
		return "", fmt.Errorf("%w: want string, got %T", ErrType, v)
	}
}

// ToFloat64 converts a decoded value to a finite float64. Numeric strings
// are accepted because HTML inputs report their values as text.
func ToFloat64(v interface{}) (float64, error) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case int:
		f = float64(val)
	case json.Number:
		n, err := val.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrType, val.String())
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrType, val)
		}
		f = n
	default:
		return 0, fmt.Errorf("%w: want number, got %T", ErrType, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v is not finite", ErrType, f)
	}
	return f, nil
}

// ToFloatPair converts a decoded two-element array to a pair of float64.
func ToFloatPair(v interface{}) ([2]float64, error) {
	var out [2]float64
	var items []interface{}
	switch val := v.(type) {
	case []interface{}:
		items = val
	case []float64:
		items = make([]interface{}, len(val))
		for i, f := range val {
			items[i] = f
		}
	default:
		return out, fmt.Errorf("%w: want [low, high], got %T", ErrType, v)
	}
	if err := lenCheck(len(items)); err != nil {
		return out, err
	}
	for i, item := range items {
		f, err := ToFloat64(item)
		if err != nil {
			return out, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

func lenCheck(n int) error {
	if n != 2 {
		return fmt.Errorf("%w: want 2 elements, got %d", ErrType, n)
	}
	return nil
}
