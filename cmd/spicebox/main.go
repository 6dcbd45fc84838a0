// This file is part of spicebox.
//
// Copyright (C) 2019-2025  Rawser Spicer
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Command spicebox - Remote sensing and GIS helpers.
//
//	spicebox <command> [<flag>=<value>...]
//
// Run `spicebox <command> --help` for the flags of a command.
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spicebox-go/spicebox/clilib"
	"github.com/spicebox-go/spicebox/internal/ctxlog"
	"github.com/spicebox-go/spicebox/raster"
	"github.com/spicebox-go/spicebox/text"
)

const progName = "spicebox"

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

//go:embed rules.hcl
var rulesHCL []byte

// errUsage - The command line is invalid; wrapped errors exit with exitUsage.
var errUsage = errors.New("usage error")

type commandFn func(ctx context.Context, f *flags, stdout io.Writer) error

var commands = map[string]commandFn{
	"toa":       runTOA,
	"clip":      runClip,
	"figure":    runFigure,
	"centroids": runCentroids,
	"hull":      runHull,
	"archive":   runArchive,
}

func main() {
	os.Exit(program(os.Args, os.Stdout, os.Stderr))
}

func program(args []string, stdout, stderr io.Writer) int {
	sets, err := clilib.ParseRuleSetsHCL(rulesHCL, "rules.hcl")
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %s\n", err)
		return exitError
	}
	global := sets[""]
	if global == nil {
		global = clilib.NewRuleSet()
	}

	if len(args) < 2 {
		fmt.Fprint(stderr, usage(sets))
		return exitUsage
	}
	name := args[1]
	switch name {
	case "help", "--help", "-h":
		fmt.Fprint(stdout, usage(sets))
		return exitOK
	}
	run, ok := commands[name]
	cmdRules := sets[name]
	if !ok || cmdRules == nil {
		fmt.Fprintf(stderr, "ERROR: unknown command %q\n\n%s", name, usage(sets))
		return exitUsage
	}
	rules, err := cmdRules.Merge(global)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %s\n", err)
		return exitError
	}

	cli, err := clilib.New(rules, args[2:])
	if err != nil {
		if errors.Is(err, clilib.ErrorHelpRequested) {
			fmt.Fprint(stdout, rules.Usage(progName+" "+name))
			return exitOK
		}
		fmt.Fprintf(stderr, "ERROR: %s\n\n%s", err, rules.Usage(progName+" "+name))
		return exitUsage
	}

	f := &flags{cli: cli}
	level, format := f.str("--log-level"), f.str("--log-format")
	logger := newLogger(level, format, stderr)
	if level == "debug" {
		clilib.Logger.SetOutput(stderr)
		raster.Logger.SetOutput(stderr)
	}
	logger.Debug("arguments", "command", name, "args", cli.Str())

	ctx, cancel, done := interruptContext(ctxlog.WithLogger(context.Background(), logger), stderr)
	defer func() { cancel(); <-done }()

	err = run(ctx, f, stdout)
	if err == nil {
		err = f.err
	}
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "ERROR: %s\n", err)
		return exitUsage
	default:
		logger.Error("command failed", "command", name, "error", err)
		fmt.Fprintf(stderr, "ERROR: %s\n", err)
		return exitError
	}
}

func usage(sets map[string]*clilib.RuleSet) string {
	names := make([]string, 0, len(commands))
	width := 0
	for name := range commands {
		names = append(names, name)
		width = max(width, len(name))
	}
	sort.Strings(names)

	pad := strings.Repeat(" ", clilib.Padding)
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n%s%s - Remote sensing and GIS helpers\n\n", text.HelpNameHeader, pad, progName)
	fmt.Fprintf(&b, "%s:\n%s%s <command> [<flag>=<value>...]\n\n", text.HelpSynopsisHeader, pad, progName)
	fmt.Fprintf(&b, "%s:\n", text.HelpCommandsHeader)
	for _, name := range names {
		desc := ""
		if rs := sets[name]; rs != nil {
			desc = rs.Description
		}
		fmt.Fprintf(&b, "%s%-*s%s%s\n", pad, width, name, pad, desc)
	}
	fmt.Fprintf(&b, "\nUse '%s <command> --help' to see the flags of a command.\n", progName)
	return b.String()
}

// flags - Typed lookups that keep the first error.
type flags struct {
	cli *clilib.CLI
	err error
}

func (f *flags) keep(err error) {
	if f.err == nil && err != nil {
		f.err = err
	}
}

func (f *flags) str(name string) string {
	v, err := f.cli.String(name)
	f.keep(err)
	return v
}

func (f *flags) float(name string) float64 {
	v, err := f.cli.Float64(name)
	f.keep(err)
	return v
}

func (f *flags) integer(name string) int {
	v, err := f.cli.Int(name)
	f.keep(err)
	return v
}

func (f *flags) boolean(name string) bool {
	v, err := f.cli.Bool(name)
	f.keep(err)
	return v
}

func (f *flags) isSet(name string) bool {
	return f.cli.IsSet(name)
}
