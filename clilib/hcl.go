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

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	ctyconvert "github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ruleFile - Top level structure of a rule set file.
// Flags outside of a command block belong to the rule set named "".
type ruleFile struct {
	Commands []*commandBlock `hcl:"command,block"`
	Flags    []*flagBlock    `hcl:"flag,block"`
}

type commandBlock struct {
	Name        string       `hcl:"name,label"`
	Description string       `hcl:"description,optional"`
	Flags       []*flagBlock `hcl:"flag,block"`
}

type flagBlock struct {
	Name        string         `hcl:"name,label"`
	Required    bool           `hcl:"required"`
	Type        *hcl.Attribute `hcl:"type,optional"`
	Default     *hcl.Attribute `hcl:"default,optional"`
	Accepted    *hcl.Attribute `hcl:"accepted,optional"`
	Description string         `hcl:"description,optional"`
}

// typeKeywords - Keywords allowed in the `type` attribute.
var typeKeywords = map[string]Type{
	"bool":   BoolType,
	"int":    IntType,
	"float":  Float64Type,
	"number": Float64Type,
	"string": StringType,
}

// LoadRuleSetsHCL - Reads a rule set file from disk.
// See ParseRuleSetsHCL.
func LoadRuleSetsHCL(path string) (map[string]*RuleSet, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse HCL file %s: %s", ErrorRuleDefinition, path, diags.Error())
	}
	return decodeRuleSets(file, path)
}

// ParseRuleSetsHCL - Decodes rule sets from HCL source.
//
// Each `command "<name>"` block becomes a rule set keyed by name, and each
// `flag "<name>"` block inside it a rule:
//
//	command "archive" {
//	  description = "Bundle a file or directory"
//	  flag "--compression" {
//	    required = false
//	    type     = string
//	    default  = "gzip"
//	    accepted = ["gzip", "zstd", "none"]
//	  }
//	}
//
// The `type` attribute takes a bare keyword: bool, int, float, number or string.
func ParseRuleSetsHCL(src []byte, filename string) (map[string]*RuleSet, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse HCL file %s: %s", ErrorRuleDefinition, filename, diags.Error())
	}
	return decodeRuleSets(file, filename)
}

func decodeRuleSets(file *hcl.File, filename string) (map[string]*RuleSet, error) {
	var rf ruleFile
	diags := gohcl.DecodeBody(file.Body, nil, &rf)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode HCL file %s: %s", ErrorRuleDefinition, filename, diags.Error())
	}

	sets := map[string]*RuleSet{}
	if len(rf.Flags) > 0 {
		rs, err := buildRuleSet(rf.Flags)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrorRuleDefinition, filename, err)
		}
		sets[""] = rs
	}
	for _, cmd := range rf.Commands {
		if _, ok := sets[cmd.Name]; ok {
			return nil, fmt.Errorf("%w: %s: duplicate command %q", ErrorRuleDefinition, filename, cmd.Name)
		}
		rs, err := buildRuleSet(cmd.Flags)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: command %q: %w", ErrorRuleDefinition, filename, cmd.Name, err)
		}
		rs.Description = cmd.Description
		sets[cmd.Name] = rs
	}
	Logger.Printf("decoded %d rule sets from %s\n", len(sets), filename)
	return sets, nil
}

func buildRuleSet(flags []*flagBlock) (*RuleSet, error) {
	rs := NewRuleSet()
	for _, fb := range flags {
		r, diags := fb.rule()
		if diags.HasErrors() {
			return nil, diags
		}
		if err := rs.add(fb.Name, r); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

func (fb *flagBlock) rule() (Rule, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	r := Rule{
		Required:    fb.Required,
		Description: fb.Description,
	}

	if fb.Type != nil {
		t, typeDiags := typeFromExpr(fb.Type.Expr)
		diags = append(diags, typeDiags...)
		r.Type = t
	}

	if fb.Default != nil {
		v, valDiags := fb.Default.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if !valDiags.HasErrors() {
			d, err := ctyToGo(v)
			if err != nil {
				diags = append(diags, valueDiag(fb.Default, "Invalid default", err))
			}
			r.Default = d
		}
	}

	if fb.Accepted != nil {
		v, valDiags := fb.Accepted.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if !valDiags.HasErrors() {
			if v.IsNull() || !v.CanIterateElements() || v.Type().IsMapType() || v.Type().IsObjectType() {
				diags = append(diags, valueDiag(fb.Accepted, "Invalid accepted values", fmt.Errorf("a list of values is required")))
				return r, diags
			}
			it := v.ElementIterator()
			for it.Next() {
				_, ev := it.Element()
				a, err := ctyToGo(ev)
				if err != nil || a == nil {
					diags = append(diags, valueDiag(fb.Accepted, "Invalid accepted values", fmt.Errorf("element %#v is not a primitive value", ev)))
					continue
				}
				r.AcceptedValues = append(r.AcceptedValues, a)
			}
		}
	}
	return r, diags
}

// typeFromExpr - Converts a bare keyword like `string` into a Type.
func typeFromExpr(expr hcl.Expression) (Type, hcl.Diagnostics) {
	traversal, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() || len(traversal) != 1 {
		return NoType, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail:   "The 'type' attribute must be a type keyword like 'string', 'int', 'float' or 'bool'.",
			Subject:  expr.Range().Ptr(),
		}}
	}
	t, ok := typeKeywords[traversal.RootName()]
	if !ok {
		return NoType, hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported type",
			Detail:   fmt.Sprintf("The keyword '%s' is not a valid type. Supported types are: bool, int, float, number, string.", traversal.RootName()),
			Subject:  expr.Range().Ptr(),
		}}
	}
	return t, nil
}

// ctyToGo - Converts a primitive cty value into string, bool, int or float64.
// Null values are nil.
func ctyToGo(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value must be known")
	}
	ty := v.Type()
	switch {
	case ty.Equals(cty.String):
		var s string
		err := gocty.FromCtyValue(v, &s)
		return s, err
	case ty.Equals(cty.Bool):
		var b bool
		err := gocty.FromCtyValue(v, &b)
		return b, err
	case ty.Equals(cty.Number):
		var i int
		if err := gocty.FromCtyValue(v, &i); err == nil {
			return i, nil
		}
		var f float64
		err := gocty.FromCtyValue(v, &f)
		return f, err
	}
	sv, err := ctyconvert.Convert(v, cty.String)
	if err != nil {
		return nil, err
	}
	return sv.AsString(), nil
}

func valueDiag(attr *hcl.Attribute, summary string, err error) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   err.Error(),
		Subject:  attr.Expr.Range().Ptr(),
	}
}
