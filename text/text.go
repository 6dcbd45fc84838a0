// This file is part of spicebox.
//
// Copyright (C) 2019-2025  Rawser Spicer
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package text - User facing strings.
//
// They are variables so they can be overridden, for example to translate them.
package text

// ErrorMissingRequiredFlag holds the text for a required flag that was not passed.
// It has a string placeholder '%s' for the name of the flag.
var ErrorMissingRequiredFlag = "Required Flag(%s) missing"

// ErrorUnknownFlag holds the text for a flag that is not part of the rule set.
// It has a string placeholder '%s' for the name of the flag.
var ErrorUnknownFlag = "Flag(%s) not recognized"

// ErrorInvalidValue holds the text for a value outside of the accepted values.
// It has placeholders for the value, the flag name and the accepted values.
var ErrorInvalidValue = "Value of: %v, not accepted for flag: %s.\nUse one of the following instead: %v"

// ErrorConvertToInt holds the text for Int Coversion argument error.
// It has two string placeholders ('%s'). The first one for the name of the flag and the second one for the value that failed.
var ErrorConvertToInt = "Flag(%s) argument %q is not an integer"

// ErrorConvertToFloat64 holds the text for Float64 Coversion argument error.
// It has two string placeholders ('%s'). The first one for the name of the flag and the second one for the value that failed.
var ErrorConvertToFloat64 = "Flag(%s) argument %q is not a number"

// ErrorNotDeclared holds the text for a lookup of a flag that was never declared.
var ErrorNotDeclared = "Flag(%s) not declared"

// ErrorWrongValueKind holds the text for a typed lookup that doesn't match the stored value.
// It has placeholders for the flag name, the requested kind and the stored value.
var ErrorWrongValueKind = "Flag(%s) is not a %s: %#v"

// ErrorHelpRequested holds the text for a help request.
// It has a string placeholder '%s' for the flag that requested it.
var ErrorHelpRequested = "help requested with %s"

// HelpNameHeader holds the header text for the command name
var HelpNameHeader = "NAME"

// HelpSynopsisHeader holds the header text for the synopsis
var HelpSynopsisHeader = "SYNOPSIS"

// HelpCommandsHeader holds the header text for the command list
var HelpCommandsHeader = "COMMANDS"

// HelpRequiredOptionsHeader holds the header text for the required parameters
var HelpRequiredOptionsHeader = "REQUIRED PARAMETERS"

// HelpOptionsHeader holds the header text for the option list
var HelpOptionsHeader = "OPTIONS"

// MessageOnInterrupt holds the text shown when a signal cancels the running command.
var MessageOnInterrupt = "Signal received, cancelling..."
