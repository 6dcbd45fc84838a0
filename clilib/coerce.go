// This file is part of spicebox.
//
// Copyright (C) 2019-2025  Rawser Spicer
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package clilib

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spicebox-go/spicebox/text"
)

var errNotIntegral = errors.New("not an integral number")

// truthy holds the lowercase strings ToBool considers true.
var truthy = map[string]bool{
	"true": true,
	"t":    true,
	"yes":  true,
	"y":    true,
	"1":    true,
}

// ToBool - Converts any value to a bool.
// Any value whose lowercase string form is not one of 'true', 't', 'yes', 'y'
// or '1' is false, including nil.
func ToBool(x any) bool {
	return truthy[strings.ToLower(fmt.Sprint(x))]
}

type convertFn func(v any) (any, error)

// converters - Per type conversion. NoType is absent and leaves values untouched.
var converters = map[Type]convertFn{
	BoolType:    func(v any) (any, error) { return ToBool(v), nil },
	IntType:     toInt,
	Float64Type: toFloat64,
	StringType:  toString,
}

func convert(t Type, v any) (any, error) {
	fn, ok := converters[t]
	if !ok {
		return v, nil
	}
	// Bool conversion applies to absent values as well.
	if v == nil && t != BoolType {
		return nil, nil
	}
	return fn(v)
}

// coerce - Converts a flag value and wraps failures in a FlagError.
func coerce(flag string, r Rule, v any) (any, error) {
	out, err := convert(r.Type, v)
	if err == nil {
		return out, nil
	}
	msg := fmt.Sprintf("Flag(%s) argument %q is not a %s", flag, fmt.Sprint(v), r.Type)
	switch r.Type {
	case IntType:
		msg = fmt.Sprintf(text.ErrorConvertToInt, flag, fmt.Sprint(v))
	case Float64Type:
		msg = fmt.Sprintf(text.ErrorConvertToFloat64, flag, fmt.Sprint(v))
	}
	return nil, &FlagError{
		Kind:  ErrorTypeConversion,
		Flags: []string{flag},
		Value: v,
		Err:   err,
		lines: []string{msg},
	}
}

func toInt(v any) (any, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int32:
		return int(x), nil
	case int64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) {
			return nil, errNotIntegral
		}
		return int(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.Atoi(strings.TrimSpace(x))
	default:
		return strconv.Atoi(strings.TrimSpace(fmt.Sprint(v)))
	}
}

func toFloat64(v any) (any, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		return strconv.ParseFloat(strings.TrimSpace(fmt.Sprint(v)), 64)
	}
}

func toString(v any) (any, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprint(v), nil
}

// accepted - Checks v against the rule accepted values.
// Absent values are always accepted.
func accepted(flag string, r Rule, v any) error {
	if len(r.AcceptedValues) == 0 || v == nil {
		return nil
	}
	for _, a := range r.AcceptedValues {
		if a == v {
			return nil
		}
	}
	return &FlagError{
		Kind:     ErrorInvalidValue,
		Flags:    []string{flag},
		Value:    v,
		Accepted: r.AcceptedValues,
		lines:    []string{fmt.Sprintf(text.ErrorInvalidValue, v, flag, r.AcceptedValues)},
	}
}
