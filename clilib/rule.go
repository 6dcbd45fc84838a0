// This file is part of spicebox.
//
// Copyright (C) 2019-2025  Rawser Spicer
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package clilib

import (
	"fmt"
	"reflect"
)

// Type - Indicates the type a flag value is coerced to.
type Type int

// Flag Types
const (
	NoType Type = iota // Raw string value, no coercion
	BoolType
	IntType
	Float64Type
	StringType
)

func (t Type) String() string {
	switch t {
	case BoolType:
		return "bool"
	case IntType:
		return "int"
	case Float64Type:
		return "float64"
	case StringType:
		return "string"
	default:
		return "value"
	}
}

// Rule - Describes one recognized flag.
type Rule struct {
	Required bool
	Type     Type

	// Default is used when the flag is optional and not passed.
	// nil means there is no default.
	Default any

	// AcceptedValues restricts the coerced value when not empty.
	AcceptedValues []any

	// Description is only used for the usage text.
	Description string
}

func (r Rule) clone() Rule {
	c := r
	if r.AcceptedValues != nil {
		c.AcceptedValues = make([]any, len(r.AcceptedValues))
		copy(c.AcceptedValues, r.AcceptedValues)
	}
	return c
}

// RuleSet - Ordered mapping of flag names to rules.
type RuleSet struct {
	Description string

	names []string
	rules map[string]Rule
}

// NewRuleSet - Returns an empty RuleSet.
// This is the starting point when using clilib.
// For example:
//
//	rules := clilib.NewRuleSet().
//		Add("--in", clilib.Rule{Required: true, Type: clilib.StringType}).
//		Add("--verbose", clilib.Rule{Type: clilib.BoolType, Default: false})
func NewRuleSet() *RuleSet {
	return &RuleSet{
		rules: map[string]Rule{},
	}
}

// Add - Adds a flag to the rule set.
//
// Add will *panic* if the flag is already defined, if the name is empty or if
// the default or accepted values can't be converted to the declared type.
// This is not an error because the programmer has to fix this!
func (rs *RuleSet) Add(name string, r Rule) *RuleSet {
	if err := rs.add(name, r); err != nil {
		panic(err.Error())
	}
	return rs
}

func (rs *RuleSet) add(name string, r Rule) error {
	if name == "" {
		return fmt.Errorf("flag name can't be empty")
	}
	if _, ok := rs.rules[name]; ok {
		return fmt.Errorf("flag '%s' is already defined", name)
	}
	r = r.clone()
	if r.Default != nil {
		v, err := convert(r.Type, r.Default)
		if err != nil {
			return fmt.Errorf("%s definition error: default %#v is not a %s", name, r.Default, r.Type)
		}
		r.Default = v
		if len(r.AcceptedValues) > 0 && !reflect.ValueOf(v).Comparable() {
			return fmt.Errorf("%s definition error: default %#v is not comparable", name, v)
		}
	}
	for i, a := range r.AcceptedValues {
		if a == nil {
			return fmt.Errorf("%s definition error: nil accepted value", name)
		}
		if !reflect.ValueOf(a).Comparable() {
			return fmt.Errorf("%s definition error: accepted value %#v is not comparable", name, a)
		}
		v, err := convert(r.Type, a)
		if err != nil {
			return fmt.Errorf("%s definition error: accepted value %#v is not a %s", name, a, r.Type)
		}
		r.AcceptedValues[i] = v
	}
	Logger.Printf("rule %s: %+v\n", name, r)
	rs.names = append(rs.names, name)
	rs.rules[name] = r
	return nil
}

// Names - Flag names in declaration order.
func (rs *RuleSet) Names() []string {
	names := make([]string, len(rs.names))
	copy(names, rs.names)
	return names
}

// Rule - Returns a copy of the rule for the given flag.
func (rs *RuleSet) Rule(name string) (Rule, bool) {
	r, ok := rs.rules[name]
	if !ok {
		return Rule{}, false
	}
	return r.clone(), true
}

// Len - Number of flags in the rule set.
func (rs *RuleSet) Len() int {
	return len(rs.names)
}

// Merge - Returns a new rule set with the rules of rs followed by the rules of
// other. The description comes from rs. A flag defined in both is an
// ErrorRuleDefinition.
func (rs *RuleSet) Merge(other *RuleSet) (*RuleSet, error) {
	m := rs.clone()
	for _, name := range other.names {
		if err := m.add(name, other.rules[name]); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrorRuleDefinition, err)
		}
	}
	return m, nil
}

func (rs *RuleSet) clone() *RuleSet {
	c := &RuleSet{
		Description: rs.Description,
		names:       rs.Names(),
		rules:       make(map[string]Rule, len(rs.rules)),
	}
	for k, v := range rs.rules {
		c.rules[k] = v.clone()
	}
	return c
}

func (rs *RuleSet) remove(name string) {
	delete(rs.rules, name)
	for i, n := range rs.names {
		if n == name {
			rs.names = append(rs.names[:i], rs.names[i+1:]...)
			return
		}
	}
}
