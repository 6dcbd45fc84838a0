// This file is part of spicebox.
//
// Copyright (C) 2019-2025  Rawser Spicer
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package clilib

import (
	"strings"
)

// passedFlags - Tokenized command line.
// A nil value means the flag was passed without a value.
type passedFlags struct {
	order  []string
	values map[string]*string
}

// tokenize - Splits each argument on the first occurrence of split.
// When a flag is repeated the last value wins but it keeps its first position.
func tokenize(args []string, split string) *passedFlags {
	p := &passedFlags{values: map[string]*string{}}
	for _, arg := range args {
		flag, value, found := strings.Cut(arg, split)
		if _, ok := p.values[flag]; !ok {
			p.order = append(p.order, flag)
		}
		if found {
			v := value
			p.values[flag] = &v
		} else {
			p.values[flag] = nil
		}
	}
	Logger.Printf("tokenized: %v\n", p.order)
	return p
}

// lookup - Returns the raw value as an untyped value (nil when absent) and
// whether the flag was passed at all.
func (p *passedFlags) lookup(flag string) (any, bool) {
	v, ok := p.values[flag]
	if !ok || v == nil {
		return nil, ok
	}
	return *v, true
}

func (p *passedFlags) consume(flag string) {
	if _, ok := p.values[flag]; !ok {
		return
	}
	delete(p.values, flag)
	for i, f := range p.order {
		if f == flag {
			p.order = append(p.order[:i], p.order[i+1:]...)
			return
		}
	}
}

// remaining - Flags never consumed, in the order they were passed.
func (p *passedFlags) remaining() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}
