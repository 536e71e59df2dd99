// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the closed vocabularies of a specification: option
// categories and the classification of declared C++ types.
//
// Why classify types at all?
//
// The generator never compiles the C++ it emits, but several decisions depend
// on what kind of value an option holds: whether the command line needs an
// argument, which parser runs, how get-option renders the value and what the
// holder field defaults to. Classifying once here keeps those decisions
// consistent between the per-module and the aggregate artifacts.
package model

import (
	"fmt"
	"regexp"
)

// Category controls where an option shows up in the help text.
type Category string

const (
	CategoryCommon       Category = "common"
	CategoryExpert       Category = "expert"
	CategoryRegular      Category = "regular"
	CategoryUndocumented Category = "undocumented"
)

// Categories lists every valid category.
var Categories = []Category{CategoryCommon, CategoryExpert, CategoryRegular, CategoryUndocumented}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category '%s' (expected one of %v)", s, Categories)
}

// TypeKind is the classification of an option's declared type.
type TypeKind int

const (
	KindOpaque TypeKind = iota
	KindBool
	KindVoid
	KindInteger
	KindFloat
	KindString
	KindMode
)

var kindNames = map[TypeKind]string{
	KindOpaque:  "opaque",
	KindBool:    "bool",
	KindVoid:    "void",
	KindInteger: "integer",
	KindFloat:   "float",
	KindString:  "string",
	KindMode:    "mode",
}

func (k TypeKind) String() string {
	return kindNames[k]
}

// Numeric reports whether values of this kind render with std::to_string.
func (k TypeKind) Numeric() bool {
	return k == KindInteger || k == KindFloat
}

// TakesArgument reports whether a command-line spelling of this kind needs
// an argument.
func (k TypeKind) TakesArgument() bool {
	return k != KindBool && k != KindVoid
}

var fixedWidthInt = regexp.MustCompile(`^u?int[0-9]+_t$`)

var integerTypes = map[string]struct{}{
	"int":                {},
	"unsigned":           {},
	"unsigned int":       {},
	"long":               {},
	"unsigned long":      {},
	"long long":          {},
	"unsigned long long": {},
	"short":              {},
	"unsigned short":     {},
	"size_t":             {},
}

// ClassifyType maps a declared type to its kind. Types that declare modes
// are always KindMode; unknown type names are opaque and rely on a custom
// handler or the generic parser of the generated code.
func ClassifyType(typeName string, hasModes bool) TypeKind {
	if hasModes {
		return KindMode
	}
	switch typeName {
	case "bool":
		return KindBool
	case "void":
		return KindVoid
	case "float", "double":
		return KindFloat
	case "std::string", "string":
		return KindString
	}
	if _, ok := integerTypes[typeName]; ok || fixedWidthInt.MatchString(typeName) {
		return KindInteger
	}
	return KindOpaque
}

// CppType returns the C++ spelling of a declared type.
func CppType(typeName string) string {
	if typeName == "string" {
		return "std::string"
	}
	return typeName
}
