// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the error kinds of a generation run. All of them are
// fatal: the run stops at the first one and nothing is written.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every *Error matches exactly one of them with errors.Is.
var (
	// ErrAttribute reports an unknown, missing or mistyped attribute.
	ErrAttribute = errors.New("attribute error")
	// ErrConsistency reports attributes that are individually valid but
	// contradict each other.
	ErrConsistency = errors.New("consistency error")
	// ErrUniqueness reports a collision in one of the global namespaces.
	ErrUniqueness = errors.New("uniqueness error")
	// ErrIO reports an unreadable input or an unwritable destination.
	ErrIO = errors.New("io error")
	// ErrTemplate reports drift between a template and the generator.
	ErrTemplate = errors.New("template error")
)

// Error is a fatal generation error tied to a place in the specification.
type Error struct {
	Kind error
	// Loc is where the offending declaration lives.
	Loc Location
	// Prior is the earlier declaration a uniqueness error collided with.
	Prior *Location
	Msg   string
	Err   error
}

// Error renders a single-line diagnostic.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if loc := e.Loc.String(); loc != "" {
		b.WriteString(" in ")
		b.WriteString(loc)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if e.Prior != nil {
		fmt.Fprintf(&b, " (previously defined in %s)", e.Prior)
	}
	if e.Err != nil {
		b.WriteString(": ")
		// Wrapped parser diagnostics may span lines; the process contract
		// is a single-line message.
		b.WriteString(strings.Join(strings.Fields(e.Err.Error()), " "))
	}
	return b.String()
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

func attributeErrorf(loc Location, format string, args ...any) *Error {
	return &Error{Kind: ErrAttribute, Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

func consistencyErrorf(loc Location, format string, args ...any) *Error {
	return &Error{Kind: ErrConsistency, Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

// UniquenessError builds the error for value colliding in namespace ns.
func UniquenessError(ns string, value string, loc, prior Location) *Error {
	return &Error{
		Kind:  ErrUniqueness,
		Loc:   loc,
		Prior: &prior,
		Msg:   fmt.Sprintf("%s '%s' already defined", ns, value),
	}
}

// IOError wraps err as an ErrIO for path.
func IOError(path string, err error) *Error {
	return &Error{Kind: ErrIO, Loc: Location{File: path}, Msg: "cannot access file", Err: err}
}

// TemplateError wraps a rendering failure of the named template.
func TemplateError(name string, msg string, err error) *Error {
	return &Error{Kind: ErrTemplate, Loc: Location{File: name}, Msg: msg, Err: err}
}
