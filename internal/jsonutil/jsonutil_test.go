package jsonutil

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestDecodeWithContext(t *testing.T) {
	type body struct {
		Output string `json:"output"`
	}

	var v body
	if err := DecodeWithContext(strings.NewReader(`{"output":"a.b"}`), &v, "decode"); err != nil {
		t.Fatalf("DecodeWithContext() error = %v", err)
	}
	if v.Output != "a.b" {
		t.Errorf("DecodeWithContext() v.Output = %q, want %q", v.Output, "a.b")
	}

	if err := DecodeWithContext(strings.NewReader(`{"output":"a.b","extra":1}`), &v, "decode"); err == nil {
		t.Error("DecodeWithContext() expected error for unknown field")
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    string
		wantErr bool
	}{
		{"string", "KSC LC-39A", "KSC LC-39A", false},
		{"whole float", 42.0, "42", false},
		{"fractional float", 3.14, "3.14", false},
		{"json number", json.Number("7"), "7", false},
		{"bool", true, "true", false},
		{"nil", nil, "", true},
		{"slice", []interface{}{"a"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToString(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToString(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrType) {
				t.Errorf("ToString(%v) error = %v, want ErrType", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ToString(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    float64
		wantErr bool
	}{
		{"float", 2500.5, 2500.5, false},
		{"int", 3, 3, false},
		{"numeric string", "1000", 1000, false},
		{"json number", json.Number("9600"), 9600, false},
		{"text", "heavy", 0, true},
		{"bool", true, 0, true},
		{"NaN string", "NaN", 0, true},
		{"Inf string", "Inf", 0, true},
		{"negative Inf string", "-Inf", 0, true},
		{"NaN float", math.NaN(), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToFloat64(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToFloat64(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ToFloat64(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToFloatPair(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    [2]float64
		wantErr bool
	}{
		{"decoded array", []interface{}{0.0, 9600.0}, [2]float64{0, 9600}, false},
		{"string elements", []interface{}{"100", "200"}, [2]float64{100, 200}, false},
		{"float slice", []float64{1, 2}, [2]float64{1, 2}, false},
		{"short float slice", []float64{1}, [2]float64{}, true},
		{"one element", []interface{}{1.0}, [2]float64{}, true},
		{"three elements", []interface{}{1.0, 2.0, 3.0}, [2]float64{}, true},
		{"bad element", []interface{}{1.0, "x"}, [2]float64{}, true},
		{"scalar", 5.0, [2]float64{}, true},
		{"NaN string", []interface{}{"NaN", 5000.0}, [2]float64{}, true},
		{"infinite float slice", []float64{0, math.Inf(1)}, [2]float64{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToFloatPair(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToFloatPair(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrType) {
				t.Errorf("ToFloatPair(%v) error = %v, want ErrType", tt.input, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ToFloatPair(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
