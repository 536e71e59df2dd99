// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Location, the provenance record attached to every module
// and option.
//
// Uniqueness is checked across every specification of a run, so a collision
// is only actionable when it names both declarations: the file, the line when
// the source format provides one, and which option it was.
package model

import (
	"fmt"

	"github.com/specialistvlad/optgen/internal/config"
)

// Location identifies a declaration in a specification file.
type Location struct {
	File string
	Line int
	// Option is the option's identity (display name, else long spelling);
	// empty for module-level declarations.
	Option string
}

// NewLocation creates a Location from a document position.
func NewLocation(pos config.Pos, option string) Location {
	return Location{File: pos.File, Line: pos.Line, Option: option}
}

// String renders "file:line option 'x'", omitting the parts that are unknown.
func (l Location) String() string {
	s := config.Pos{File: l.File, Line: l.Line}.String()
	if l.Option != "" {
		if s != "" {
			s += " "
		}
		s += fmt.Sprintf("option '%s'", l.Option)
	}
	return s
}
