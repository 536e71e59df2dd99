// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Option, one configurable setting of the generated
// program, together with the derived facts every emitter relies on.
//
// Why derive spellings here instead of in the emitters?
//
// The same option is rendered several times: as a holder field, in the getopt
// table, in the named set/get dispatch and in the help text. Each rendering
// must agree on the base long spelling, the negated spelling and the sort
// key, otherwise IDs and dispatch entries drift apart. Keeping these
// derivations on the entity gives every emitter a single source.
package model

import (
	"strings"
)

// ModeValue is one value of an enumerated (mode) option type.
type ModeValue struct {
	// Key is the C++ enumerator.
	Key string
	// Name is the spelling accepted on the command line.
	Name string
	Help string
}

// Option is a validated option declaration. Options are immutable once
// NewModule returns.
type Option struct {
	Category Category
	// Type is the C++ type of the holder field.
	Type string
	Kind TypeKind

	// Name is the display name, also the C++ member name. Options without one
	// have no holder field and are dispatched to their handler only.
	Name    string
	SMTName string
	Short   string
	// Long is the long spelling as declared, including any "=ARG" marker.
	Long string

	Help     string
	HelpMode string
	// Default is a C++ expression, or a mode key for mode options. Empty
	// means no default was declared.
	Default string

	Includes   []string
	Handler    string
	Predicates []string
	ReadOnly   bool
	Alternate  bool
	Modes      []ModeValue

	// Module is the identifier of the declaring module.
	Module   string
	Location Location
}

// Identity names the option in diagnostics.
func (o *Option) Identity() string {
	return optionIdentity(o.Name, o.Long, o.SMTName)
}

func optionIdentity(name, long, smt string) string {
	switch {
	case name != "":
		return name
	case long != "":
		return long
	default:
		return smt
	}
}

// LongBase returns the long spelling without its argument marker.
func (o *Option) LongBase() string {
	base, _, _ := strings.Cut(o.Long, "=")
	return base
}

// LongArg returns the argument marker of the long spelling ("ARG" in
// "extra=ARG"), or "" when there is none.
func (o *Option) LongArg() string {
	_, arg, _ := strings.Cut(o.Long, "=")
	return arg
}

// Negated returns the alternate spelling of a boolean option ("no-foo"), or
// "" when the option has none.
func (o *Option) Negated() string {
	if !o.HasAlternate() {
		return ""
	}
	return "no-" + o.LongBase()
}

// HasAlternate reports whether a negated long spelling is generated.
func (o *Option) HasAlternate() bool {
	return o.Kind == KindBool && o.Alternate && o.Long != ""
}

// TakesArgument reports whether command-line spellings need an argument.
func (o *Option) TakesArgument() bool {
	return o.Kind.TakesArgument()
}

// ExternalName is the name exposed through the named set/get interface:
// the smt name if declared, else the long base spelling.
func (o *Option) ExternalName() string {
	if o.SMTName != "" {
		return o.SMTName
	}
	return o.LongBase()
}

// NamedKeys returns the keys that select this option in the named
// set/get dispatch, sorted.
func (o *Option) NamedKeys() []string {
	var keys []string
	if o.SMTName != "" {
		keys = append(keys, o.SMTName)
	}
	if o.Long != "" && o.LongBase() != o.SMTName {
		keys = append(keys, o.LongBase())
	}
	if len(keys) == 2 && keys[1] < keys[0] {
		keys[0], keys[1] = keys[1], keys[0]
	}
	return keys
}

// SortKey orders options within a module: long spelling as declared, else
// display name, else smt name.
func (o *Option) SortKey() string {
	return optionIdentity(o.Long, o.Name, o.SMTName)
}

// ModeKeys returns the enumerators of a mode option in declaration order.
func (o *Option) ModeKeys() []string {
	keys := make([]string, len(o.Modes))
	for i, m := range o.Modes {
		keys[i] = m.Key
	}
	return keys
}

// DefaultValue is the C++ initializer of the holder field. Mode keys are
// qualified with the enum type; options without a declared default get
// the zero value of their kind, or "" to request value-initialization.
func (o *Option) DefaultValue() string {
	if o.Default != "" {
		if o.Kind == KindMode {
			return o.Type + "::" + o.Default
		}
		return o.Default
	}
	switch o.Kind {
	case KindBool:
		return "false"
	case KindInteger:
		return "0"
	case KindFloat:
		return "0.0"
	case KindString:
		return `""`
	default:
		return ""
	}
}
