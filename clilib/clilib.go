// This file is part of spicebox.
//
// Copyright (C) 2019-2025  Rawser Spicer
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

/*
Package clilib - Validates `flag=value` command line arguments against a
declarative rule set.

Each flag in the rule set can be required or optional, can declare a type the
raw string is converted to, a default used when it is not passed and a list of
accepted values.

Usage

		rules := clilib.NewRuleSet().
			Add("--a", clilib.Rule{Required: true, Type: clilib.BoolType}).
			Add("--b", clilib.Rule{Required: true, Type: clilib.StringType, AcceptedValues: []any{"t", "f"}}).
			Add("--c", clilib.Rule{Type: clilib.BoolType, Default: true})

		cli, err := clilib.New(rules, os.Args[1:])
		if errors.Is(err, clilib.ErrorHelpRequested) {
			fmt.Fprint(os.Stderr, rules.Usage("tool"))
			os.Exit(0)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(2)
		}
		a, _ := cli.Bool("--a")

A token without the split character, for example `--a`, is passed with an
absent value. Bool flags convert any value with ToBool, so an absent value is
false.

Any unrecognized token containing `--help` or `--h` makes the validator return
ErrorHelpRequested.
*/
package clilib

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spicebox-go/spicebox/text"
)

// Logger instance set to `io.Discard` by default.
// Enable debug logging by setting: `Logger.SetOutput(os.Stderr)`.
var Logger = log.New(io.Discard, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)

// DefaultSplit - Separates flag names from their values.
const DefaultSplit = "="

// helpPatterns - Unrecognized flags containing any of these request help.
var helpPatterns = []string{"--help", "--h"}

// CLI - Resolved arguments.
// It is read only once built.
type CLI struct {
	flags []string
	args  map[string]any
}

// New - Validates args (without the program name) against rules using DefaultSplit.
func New(rules *RuleSet, args []string) (*CLI, error) {
	return NewSplit(rules, args, DefaultSplit)
}

// FromOSArgs - Validates os.Args[1:] against rules.
func FromOSArgs(rules *RuleSet) (*CLI, error) {
	return New(rules, os.Args[1:])
}

// NewSplit - Validates args against rules using split to separate flag names
// from values. An empty split uses DefaultSplit.
//
// The rules are copied before use so the same RuleSet can be reused.
//
// A flag passed without a value, like `--n`, resolves to nil even when it is
// required, except for bool flags which resolve to false.
//
// Type conversion and accepted value failures are returned as soon as they are
// found. Missing required flags and unrecognized flags are collected and
// reported together at the end, help requests first.
func NewSplit(rules *RuleSet, args []string, split string) (*CLI, error) {
	if split == "" {
		split = DefaultSplit
	}
	working := rules.clone()
	cli := &CLI{
		flags: working.Names(),
		args:  make(map[string]any, working.Len()),
	}
	passed := tokenize(args, split)

	missing := []string{}
	for _, flag := range working.Names() {
		rule := working.rules[flag]
		raw, ok := passed.lookup(flag)

		var value any
		switch {
		case rule.Required && !ok:
			Logger.Printf("missing required flag: %s\n", flag)
			missing = append(missing, flag)
			continue
		case !ok:
			value = rule.Default
		default:
			value = raw
		}

		value, err := coerce(flag, rule, value)
		if err != nil {
			return nil, err
		}
		if err := accepted(flag, rule, value); err != nil {
			return nil, err
		}

		Logger.Printf("flag %s: %#v\n", flag, value)
		passed.consume(flag)
		working.remove(flag)
		cli.args[flag] = value
	}

	unknown := passed.remaining()
	for _, flag := range unknown {
		if isHelp(flag) {
			return nil, &FlagError{
				Kind:  ErrorHelpRequested,
				Flags: []string{flag},
				lines: []string{fmt.Sprintf(text.ErrorHelpRequested, flag)},
			}
		}
	}
	if len(missing) > 0 {
		return nil, flagListError(ErrorMandatoryMissing, text.ErrorMissingRequiredFlag, missing)
	}
	if len(unknown) > 0 {
		return nil, flagListError(ErrorUnknownFlag, text.ErrorUnknownFlag, unknown)
	}
	return cli, nil
}

func isHelp(flag string) bool {
	for _, p := range helpPatterns {
		if strings.Contains(flag, p) {
			return true
		}
	}
	return false
}

func flagListError(kind error, format string, flags []string) *FlagError {
	e := &FlagError{Kind: kind, Flags: flags}
	for _, f := range flags {
		e.lines = append(e.lines, fmt.Sprintf(format, f))
	}
	return e
}

// Flags - Declared flag names in rule set order.
func (cli *CLI) Flags() []string {
	flags := make([]string, len(cli.flags))
	copy(flags, cli.flags)
	return flags
}

// Args - Returns a copy of the resolved arguments.
func (cli *CLI) Args() map[string]any {
	m := make(map[string]any, len(cli.args))
	for k, v := range cli.args {
		m[k] = v
	}
	return m
}

// Value - Get untyped flag value.
// Declared flags always return a value, possibly nil.
// Undeclared flags return ErrorNotDeclared.
func (cli *CLI) Value(name string) (any, error) {
	if v, ok := cli.args[name]; ok {
		return v, nil
	}
	for _, f := range cli.flags {
		if f == name {
			return nil, nil
		}
	}
	return nil, &FlagError{
		Kind:  ErrorNotDeclared,
		Flags: []string{name},
		lines: []string{fmt.Sprintf(text.ErrorNotDeclared, name)},
	}
}

// IsSet - Indicates the flag resolved to a non nil value.
func (cli *CLI) IsSet(name string) bool {
	v, err := cli.Value(name)
	return err == nil && v != nil
}

// Bool - Get the flag value as a bool. Absent values are false.
func (cli *CLI) Bool(name string) (bool, error) {
	v, err := cli.Value(name)
	if err != nil || v == nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, wrongKind(name, "bool", v)
	}
	return b, nil
}

// Int - Get the flag value as an int. Absent values are 0.
func (cli *CLI) Int(name string) (int, error) {
	v, err := cli.Value(name)
	if err != nil || v == nil {
		return 0, err
	}
	i, ok := v.(int)
	if !ok {
		return 0, wrongKind(name, "int", v)
	}
	return i, nil
}

// Float64 - Get the flag value as a float64. Absent values are 0.
// Int values are widened.
func (cli *CLI) Float64(name string) (float64, error) {
	v, err := cli.Value(name)
	if err != nil || v == nil {
		return 0, err
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	}
	return 0, wrongKind(name, "float64", v)
}

// String - Get the flag value as a string. Absent values are "".
func (cli *CLI) String(name string) (string, error) {
	v, err := cli.Value(name)
	if err != nil || v == nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", wrongKind(name, "string", v)
	}
	return s, nil
}

func wrongKind(name, kind string, v any) error {
	return &FlagError{
		Kind:  ErrorTypeConversion,
		Flags: []string{name},
		Value: v,
		lines: []string{fmt.Sprintf(text.ErrorWrongValueKind, name, kind, v)},
	}
}

// Str - Stable rendering of the resolved arguments.
// Not String because String is the typed lookup.
func (cli *CLI) Str() string {
	return fmt.Sprint(cli.args)
}
