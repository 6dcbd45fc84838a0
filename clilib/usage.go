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
	"strconv"
	"strings"

	"github.com/spicebox-go/spicebox/text"
)

// Padding - Indentation used for the usage sections.
var Padding = 4

// synopsisWidth - Synopsis lines are wrapped at this width.
const synopsisWidth = 80

// Usage - Returns the NAME, SYNOPSIS and flag list sections for the rule set.
// Flags are listed in declaration order, required ones first.
func (rs *RuleSet) Usage(progName string) string {
	out := ""
	if rs.Description != "" {
		out += fmt.Sprintf("%s:\n%s%s - %s\n\n", text.HelpNameHeader, strings.Repeat(" ", Padding), progName, rs.Description)
	}
	out += rs.synopsis(progName)
	list := rs.flagList()
	if list != "" {
		out += "\n" + list
	}
	return out
}

func (rs *RuleSet) ordered() (required, optional []string) {
	for _, name := range rs.names {
		if rs.rules[name].Required {
			required = append(required, name)
		} else {
			optional = append(optional, name)
		}
	}
	return required, optional
}

func flagArg(name string, r Rule) string {
	return fmt.Sprintf("%s%s<%s>", name, DefaultSplit, r.Type)
}

func (rs *RuleSet) synopsis(progName string) string {
	scriptName := strings.Repeat(" ", Padding) + progName
	required, optional := rs.ordered()
	var out string
	line := scriptName
	for _, name := range append(required, optional...) {
		r := rs.rules[name]
		syn := flagArg(name, r)
		if !r.Required {
			syn = "[" + syn + "]"
		}
		if len(line)+len(syn) > synopsisWidth {
			out += line + "\n"
			line = fmt.Sprintf("%s %s", strings.Repeat(" ", len(scriptName)), syn)
		} else {
			line += fmt.Sprintf(" %s", syn)
		}
	}
	out += line
	return fmt.Sprintf("%s:\n%s\n", text.HelpSynopsisHeader, out)
}

func defaultStr(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(v)
}

// pad - Given a string and a padding factor it will return the string padded with spaces.
func pad(s string, factor int) string {
	return fmt.Sprintf("%-"+strconv.Itoa(factor)+"s", s)
}

func (rs *RuleSet) flagList() string {
	factor := 0
	for _, name := range rs.names {
		if l := len(flagArg(name, rs.rules[name])); l > factor {
			factor = l
		}
	}
	factor += Padding
	padding := strings.Repeat(" ", Padding+factor)

	helpString := func(name string) string {
		r := rs.rules[name]
		txt := strings.Repeat(" ", Padding) + pad(flagArg(name, r), factor)
		notes := []string{}
		if r.Description != "" {
			notes = append(notes, strings.ReplaceAll(r.Description, "\n", "\n"+padding))
		}
		if !r.Required && r.Default != nil {
			notes = append(notes, fmt.Sprintf("(default: %s)", defaultStr(r.Default)))
		}
		if len(r.AcceptedValues) > 0 {
			values := []string{}
			for _, a := range r.AcceptedValues {
				values = append(values, fmt.Sprint(a))
			}
			notes = append(notes, fmt.Sprintf("(one of: %s)", strings.Join(values, ", ")))
		}
		return strings.TrimRight(txt+strings.Join(notes, " "), " ") + "\n\n"
	}

	required, optional := rs.ordered()
	out := ""
	if len(required) > 0 {
		out += fmt.Sprintf("%s:\n", text.HelpRequiredOptionsHeader)
		for _, name := range required {
			out += helpString(name)
		}
	}
	if len(optional) > 0 {
		out += fmt.Sprintf("%s:\n", text.HelpOptionsHeader)
		for _, name := range optional {
			out += helpString(name)
		}
	}
	return out
}
