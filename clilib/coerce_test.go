package clilib

import (
	"testing"
)

func TestToBool(t *testing.T) {
	tests := []struct {
		in       any
		expected bool
	}{
		{"True", true},
		{"true", true},
		{"t", true},
		{"YES", true},
		{"y", true},
		{"1", true},
		{1, true},
		{true, true},
		{"F", false},
		{"false-ish", false},
		{"", false},
		{"0", false},
		{"no", false},
		{nil, false},
		{false, false},
		{2, false},
	}
	for _, tt := range tests {
		if got := ToBool(tt.in); got != tt.expected {
			t.Errorf("ToBool(%#v) = %v, expected %v", tt.in, got, tt.expected)
		}
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		t        Type
		in       any
		expected any
		fail     bool
	}{
		{"no type keeps value", NoType, "abc", "abc", false},
		{"no type keeps nil", NoType, nil, nil, false},
		{"bool nil", BoolType, nil, false, false},
		{"int nil", IntType, nil, nil, false},
		{"int string", IntType, " 12 ", 12, false},
		{"int negative", IntType, "-3", -3, false},
		{"int from integral float", IntType, 4.0, 4, false},
		{"int from fractional float", IntType, 4.5, nil, true},
		{"int from bool", IntType, true, 1, false},
		{"int bad string", IntType, "1e3", nil, true},
		{"float string", Float64Type, "1e3", 1000.0, false},
		{"float int", Float64Type, 2, 2.0, false},
		{"float bad", Float64Type, "abc", nil, true},
		{"string int", StringType, 5, "5", false},
		{"string string", StringType, "x", "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convert(tt.t, tt.in)
			if tt.fail {
				if err == nil {
					t.Errorf("expected error, got %#v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if got != tt.expected {
				t.Errorf("got %#v, expected %#v", got, tt.expected)
			}
		})
	}
}

func TestTypeString(t *testing.T) {
	for typ, s := range map[Type]string{NoType: "value", BoolType: "bool", IntType: "int", Float64Type: "float64", StringType: "string"} {
		if typ.String() != s {
			t.Errorf("got %s, expected %s", typ.String(), s)
		}
	}
}
