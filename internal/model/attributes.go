// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file contains the strict attribute readers used by the spec loader.
//
// Why a closed attribute set?
//
// A misspelled optional key ("read-only" instead of "read_only") would
// otherwise be ignored silently and change the generated code without any
// diagnostic. Every document is therefore checked against an explicit list of
// required and allowed keys before any value is read, and every value is read
// through a typed accessor that rejects the wrong dynamic type.
package model

import (
	"slices"
	"strconv"

	"github.com/specialistvlad/optgen/internal/config"
)

// Attribute sets of the two document levels.
var (
	ModuleAttrsRequired = []string{"id", "name", "header"}
	ModuleAttrsAll      = append(slices.Clone(ModuleAttrsRequired), "option")

	OptionAttrsRequired = []string{"category", "type"}
	OptionAttrsAll      = append(slices.Clone(OptionAttrsRequired),
		"name", "help", "help_mode", "smt_name", "short", "long", "default",
		"includes", "handler", "predicates", "read_only", "alternate", "mode")

	ModeValueAttrsAll = []string{"name", "help"}
)

// attrReader reads typed values from one document and reports errors
// against the owning declaration.
type attrReader struct {
	doc  *config.Document
	loc  Location
	kind string
}

// check verifies that all required keys are present and no unknown key is.
func (r attrReader) check(required, allowed []string) error {
	suffix := ""
	if r.loc.Option != "" {
		suffix = " for '" + r.loc.Option + "'"
	}
	for _, key := range required {
		if _, ok := r.doc.Lookup(key); !ok {
			return attributeErrorf(r.loc, "required %s attribute '%s' not specified%s", r.kind, key, suffix)
		}
	}
	for _, attr := range r.doc.Attributes() {
		if !slices.Contains(allowed, attr.Key) {
			return attributeErrorf(r.at(attr), "invalid %s attribute '%s' specified%s", r.kind, attr.Key, suffix)
		}
	}
	return nil
}

// at narrows the location to the attribute's line when the format knows it.
func (r attrReader) at(attr *config.Attribute) Location {
	loc := r.loc
	if attr.Pos.Line > 0 {
		loc.Line = attr.Pos.Line
	}
	return loc
}

func (r attrReader) mistyped(attr *config.Attribute, want string) error {
	return attributeErrorf(r.at(attr), "%s attribute '%s' must be a %s, got %s",
		r.kind, attr.Key, want, config.KindOf(attr.Value))
}

func (r attrReader) str(key string) (string, error) {
	attr, ok := r.doc.Lookup(key)
	if !ok {
		return "", nil
	}
	s, ok := attr.Value.(string)
	if !ok {
		return "", r.mistyped(attr, "string")
	}
	return s, nil
}

func (r attrReader) flag(key string, fallback bool) (bool, error) {
	attr, ok := r.doc.Lookup(key)
	if !ok {
		return fallback, nil
	}
	b, ok := attr.Value.(bool)
	if !ok {
		return false, r.mistyped(attr, "bool")
	}
	return b, nil
}

// text reads a scalar of any kind as its textual form. Defaults are C++
// expressions, so `default = 3` and `default = "3"` mean the same.
func (r attrReader) text(key string) (string, error) {
	attr, ok := r.doc.Lookup(key)
	if !ok {
		return "", nil
	}
	switch v := attr.Value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	default:
		return "", r.mistyped(attr, "scalar")
	}
}

func (r attrReader) list(key string) ([]string, error) {
	attr, ok := r.doc.Lookup(key)
	if !ok {
		return nil, nil
	}
	list, ok := attr.Value.([]any)
	if !ok {
		return nil, r.mistyped(attr, "list of strings")
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, r.mistyped(attr, "list of strings")
		}
		out = append(out, s)
	}
	return out, nil
}

func (r attrReader) documents(key string) ([]*config.Document, error) {
	attr, ok := r.doc.Lookup(key)
	if !ok {
		return nil, nil
	}
	docs, ok := attr.Value.([]*config.Document)
	if !ok {
		return nil, r.mistyped(attr, "list of tables")
	}
	return docs, nil
}

func (r attrReader) table(key string) (*config.Document, error) {
	attr, ok := r.doc.Lookup(key)
	if !ok {
		return nil, nil
	}
	doc, ok := attr.Value.(*config.Document)
	if !ok {
		return nil, r.mistyped(attr, "table")
	}
	return doc, nil
}
