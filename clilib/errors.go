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
	"strings"
)

// ErrorHelpRequested - Indicates one of the unrecognized flags asked for help.
// It is a control signal rather than a failure.
var ErrorHelpRequested = errors.New("help requested")

// ErrorMandatoryMissing - One or more required flags were not passed.
var ErrorMandatoryMissing = errors.New("mandatory flag missing")

// ErrorUnknownFlag - One or more passed flags are not part of the rule set.
var ErrorUnknownFlag = errors.New("unknown flag")

// ErrorInvalidValue - A flag value is not in its accepted values.
var ErrorInvalidValue = errors.New("invalid value")

// ErrorTypeConversion - A flag value can't be converted to its declared type.
var ErrorTypeConversion = errors.New("type conversion failure")

// ErrorNotDeclared - Lookup of a flag that is not part of the rule set.
var ErrorNotDeclared = errors.New("flag not declared")

// ErrorRuleDefinition - A rule set file could not be turned into rules.
var ErrorRuleDefinition = errors.New("rule definition error")

// FlagError - Error returned by the validator.
//
// Kind is one of the sentinel errors above so callers can use errors.Is.
// Flags lists every flag involved, in the order they were found.
type FlagError struct {
	Kind     error
	Flags    []string
	Value    any   // Offending value for ErrorInvalidValue and ErrorTypeConversion
	Accepted []any // Accepted values for ErrorInvalidValue
	Err      error // Underlying error, if any

	lines []string
}

func (e *FlagError) Error() string {
	return strings.Join(e.lines, "\n")
}

func (e *FlagError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}
