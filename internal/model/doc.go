// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the validated, strongly-typed representation of an
// option specification. Its core purpose is to turn a format-agnostic
// config.Document into Module and Option values that every code emitter can
// consume without re-checking anything.
//
// # Core Concepts
//
//   - Module: One specification document. It owns an identifier, a display
//     name, the include path of its generated header and its options.
//
//   - Option: One configurable setting of the generated program. It carries
//     its spellings (display name, short, long, smt name), its C++ type and
//     the classification of that type, help text, default, handler and
//     predicates.
//
//   - Location: Provenance of every declaration, so diagnostics can point at
//     the file, the line and the option involved.
//
//   - Error: The single fatal error type of a run, classified by a Kind
//     sentinel (ErrAttribute, ErrConsistency, ErrUniqueness, ErrIO,
//     ErrTemplate).
//
// Why a separate model package?
//
// The loaders know about syntax and the emitters know about C++, but neither
// should know the rules of a well-formed option. This package is the one
// place that enforces them:
//
//  1. Closed attribute set: unknown keys and missing required keys are
//     rejected before any value is read.
//
//  2. Typed record: every optional attribute has an explicit zero value, so
//     emitters never deal with absent keys.
//
//  3. Consistency: rules that relate attributes of one option to each other
//     (mode and handler, argument markers, help text) are checked here.
//     Rules that span documents belong to the registry.
package model
