// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file contains the per-option consistency rules. They run after the
// attribute checks, so every field is already present with the right type.
package model

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

var longSpelling = regexp.MustCompile(`^[0-9a-zA-Z\-=]+$`)

// validate checks the rules that relate attributes of one option to each
// other. The first violation is returned.
func (o *Option) validate() error {
	loc := o.Location

	if o.Name == "" && o.SMTName == "" && o.Short == "" && o.Long == "" {
		return consistencyErrorf(loc, "option declares none of name, smt_name, short or long")
	}

	if o.Kind == KindMode {
		if o.HelpMode == "" {
			return consistencyErrorf(loc, "defines modes but no help_mode")
		}
		if o.Handler != "" {
			return consistencyErrorf(loc, "defines modes and a handler")
		}
		if len(o.Modes) == 0 {
			return consistencyErrorf(loc, "mode table of type '%s' declares no values", o.Type)
		}
		if o.Default != "" && !slices.Contains(o.ModeKeys(), o.Default) {
			return consistencyErrorf(loc, "invalid default value '%s' (expected one of %s)",
				o.Default, strings.Join(o.ModeKeys(), ", "))
		}
		if o.Long == "" {
			return consistencyErrorf(loc, "mode options require a long option")
		}
	}

	if o.Short != "" {
		if o.Long == "" {
			return consistencyErrorf(loc, "short option '%s' specified but no long option", o.Short)
		}
		r, size := utf8.DecodeRuneInString(o.Short)
		if size != len(o.Short) || !(unicode.IsLetter(r) || unicode.IsDigit(r)) || r > unicode.MaxASCII {
			return consistencyErrorf(loc, "short option '%s' must be a single alphanumeric character", o.Short)
		}
	}

	if o.Long != "" {
		if strings.HasPrefix(o.Long, "--") {
			return consistencyErrorf(loc, "remove -- prefix from long '%s'", o.Long)
		}
		if !longSpelling.MatchString(o.Long) {
			return consistencyErrorf(loc, "long '%s' does not match regex criteria '%s'", o.Long, longSpelling)
		}
		if o.LongBase() == "" {
			return consistencyErrorf(loc, "long '%s' has an empty option name", o.Long)
		}
		hasArg := strings.Contains(o.Long, "=")
		switch {
		case o.TakesArgument() && !hasArg:
			return consistencyErrorf(loc, "long '%s' of %s option requires an argument marker (e.g. '%s=ARG')",
				o.Long, o.Kind, o.Long)
		case !o.TakesArgument() && hasArg:
			return consistencyErrorf(loc, "long '%s' of %s option must not carry an argument marker",
				o.Long, o.Kind)
		case hasArg && o.LongArg() == "":
			return consistencyErrorf(loc, "long '%s' has an empty argument marker", o.Long)
		}
	}

	switch o.Kind {
	case KindBool:
		if o.Handler != "" {
			return consistencyErrorf(loc, "defining handlers for bool options is not allowed")
		}
	case KindVoid:
		if o.Handler == "" {
			return consistencyErrorf(loc, "void options require a handler")
		}
		if o.Name != "" {
			return consistencyErrorf(loc, "void options cannot hold a value and must not declare a name")
		}
		if o.Default != "" {
			return consistencyErrorf(loc, "void options must not declare a default")
		}
	}

	if o.Category != CategoryUndocumented && strings.TrimSpace(o.Help) == "" {
		return consistencyErrorf(loc, "help text required for %s options", o.Category)
	}
	return nil
}
