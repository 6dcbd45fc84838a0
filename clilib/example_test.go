// This file is part of spicebox.
//
// Copyright (C) 2019-2025  Rawser Spicer
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package clilib_test

import (
	"errors"
	"fmt"

	"github.com/spicebox-go/spicebox/clilib"
)

func ExampleNew() {
	rules := clilib.NewRuleSet().
		Add("--a", clilib.Rule{Required: true, Type: clilib.BoolType}).
		Add("--b", clilib.Rule{Required: true, Type: clilib.StringType, AcceptedValues: []any{"t", "f"}}).
		Add("--c", clilib.Rule{Type: clilib.BoolType, Default: true})

	cli, err := clilib.New(rules, []string{"--a=True", "--b=f"})
	if err != nil {
		fmt.Println(err)
		return
	}
	a, _ := cli.Bool("--a")
	b, _ := cli.String("--b")
	c, _ := cli.Bool("--c")
	fmt.Println(a, b, c)

	// Output:
	// true f true
}

func ExampleNew_errors() {
	rules := clilib.NewRuleSet().
		Add("--a", clilib.Rule{Required: true, Type: clilib.BoolType}).
		Add("--b", clilib.Rule{Required: true, Type: clilib.StringType, AcceptedValues: []any{"t", "f"}})

	_, err := clilib.New(rules, []string{})
	fmt.Println(errors.Is(err, clilib.ErrorMandatoryMissing))
	fmt.Println(err)

	_, err = clilib.New(rules, []string{"--a=True", "--b=f", "--d=bogus"})
	fmt.Println(errors.Is(err, clilib.ErrorUnknownFlag))
	fmt.Println(err)

	_, err = clilib.New(rules, []string{"--a=True", "--b=f", "--d=bogus", "--help"})
	fmt.Println(errors.Is(err, clilib.ErrorHelpRequested))

	// Output:
	// true
	// Required Flag(--a) missing
	// Required Flag(--b) missing
	// true
	// Flag(--d) not recognized
	// true
}

func ExampleRuleSet_Usage() {
	rules := clilib.NewRuleSet().
		Add("--in", clilib.Rule{Required: true, Type: clilib.StringType, Description: "Input raster"}).
		Add("--level", clilib.Rule{Type: clilib.IntType, Default: 6})

	fmt.Print(rules.Usage("tool"))

	// Output:
	// SYNOPSIS:
	//     tool --in=<string> [--level=<int>]
	//
	// REQUIRED PARAMETERS:
	//     --in=<string>    Input raster
	//
	// OPTIONS:
	//     --level=<int>    (default: 6)
}
