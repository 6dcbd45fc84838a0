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
	"strings"
	"testing"
)

func TestUsage(t *testing.T) {
	rules := NewRuleSet().
		Add("--a", Rule{Required: true, Type: BoolType, Description: "Enable a"}).
		Add("--b", Rule{Required: true, Type: StringType, AcceptedValues: []any{"t", "f"}}).
		Add("--c", Rule{Type: BoolType, Default: true}).
		Add("--name", Rule{Type: StringType, Default: "x"}).
		Add("--raw", Rule{})
	rules.Description = "Sample tool"

	expected := `NAME:
    tool - Sample tool

SYNOPSIS:
    tool --a=<bool> --b=<string> [--c=<bool>] [--name=<string>] [--raw=<value>]

REQUIRED PARAMETERS:
    --a=<bool>         Enable a

    --b=<string>       (one of: t, f)

OPTIONS:
    --c=<bool>         (default: true)

    --name=<string>    (default: "x")

    --raw=<value>

`
	got := rules.Usage("tool")
	if got != expected {
		t.Errorf("Unexpected usage:\n%s", firstDiff(got, expected))
	}
}

func TestUsageSynopsisWraps(t *testing.T) {
	rules := NewRuleSet()
	for i := 0; i < 12; i++ {
		rules.Add(fmt.Sprintf("--option-%02d", i), Rule{Type: StringType})
	}
	got := rules.synopsis("tool")
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected the synopsis to wrap:\n%s", got)
	}
	for _, l := range lines {
		if len(l) > synopsisWidth {
			t.Errorf("line too long (%d): %q", len(l), l)
		}
	}
	if !strings.HasPrefix(lines[2], strings.Repeat(" ", len("    tool")+1)+"[--option") {
		t.Errorf("continuation line not indented: %q", lines[2])
	}
}

func TestUsageWithoutDescription(t *testing.T) {
	got := NewRuleSet().Usage("tool")
	expected := "SYNOPSIS:\n    tool\n"
	if got != expected {
		t.Errorf("Unexpected usage:\n%s", firstDiff(got, expected))
	}
}
