// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Module and the spec loader that builds it from a
// format-agnostic config.Document.
//
// Why validate everything up front?
//
// Generated artifacts of different modules reference each other (the
// aggregate holder includes every module header, the dispatch table names
// every option). A run that stopped halfway would leave a mix of old and new
// files that no longer agree. NewModule therefore performs every
// per-document check before returning, and the registry performs every
// cross-document check before any code is rendered.
package model

import (
	"cmp"
	"context"
	"path"
	"slices"
	"strings"

	"github.com/specialistvlad/optgen/internal/config"
	"github.com/specialistvlad/optgen/internal/ctxlog"
)

// Module is a validated option module: one specification document and the
// options it declares.
type Module struct {
	ID   string
	Name string
	// Header is the include path of the generated declaration artifact.
	Header  string
	Options []*Option
	// File is the specification the module was loaded from.
	File string
}

// Stem is the base name of the header without extension; it names both
// per-module artifacts.
func (m *Module) Stem() string {
	base := path.Base(strings.ReplaceAll(m.Header, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// Location returns the module-level provenance.
func (m *Module) Location() Location {
	return Location{File: m.File}
}

// Sorted returns the module's options in generation order. Every emitter
// and the registry's ID allocation traverse options in this order, which is
// what makes regeneration byte-identical regardless of declaration order.
func (m *Module) Sorted() []*Option {
	sorted := slices.Clone(m.Options)
	slices.SortStableFunc(sorted, func(a, b *Option) int {
		return cmp.Compare(a.SortKey(), b.SortKey())
	})
	return sorted
}

// NewModule validates doc and builds the module it describes. Any violation
// returns an *Error and no module.
func NewModule(ctx context.Context, doc *config.Document) (*Module, error) {
	file := doc.Pos.File
	ctx, logger := ctxlog.With(ctx, "spec", file)
	logger.Debug("Building module from specification document.")

	r := attrReader{doc: doc, loc: Location{File: file}, kind: "module"}
	if err := r.check(ModuleAttrsRequired, ModuleAttrsAll); err != nil {
		return nil, err
	}

	m := &Module{File: file}
	var err error
	if m.ID, err = r.str("id"); err != nil {
		return nil, err
	}
	if m.Name, err = r.str("name"); err != nil {
		return nil, err
	}
	if m.Header, err = r.str("header"); err != nil {
		return nil, err
	}
	for i, value := range []string{m.ID, m.Name, m.Header} {
		if value == "" {
			return nil, attributeErrorf(r.loc, "module attribute '%s' must not be empty", ModuleAttrsRequired[i])
		}
	}

	optionDocs, err := r.documents("option")
	if err != nil {
		return nil, err
	}
	for _, od := range optionDocs {
		opt, err := newOption(ctx, m.ID, file, od)
		if err != nil {
			return nil, err
		}
		m.Options = append(m.Options, opt)
	}

	logger.Debug("Module validated.", "module", m.ID, "options", len(m.Options))
	return m, nil
}

// newOption reads and validates one option document.
func newOption(ctx context.Context, moduleID, file string, doc *config.Document) (*Option, error) {
	// Identity is needed for diagnostics before the attributes are checked,
	// so it is read leniently here.
	name, _ := doc.Lookup("name")
	long, _ := doc.Lookup("long")
	smt, _ := doc.Lookup("smt_name")
	pos := doc.Pos
	if pos.File == "" {
		pos.File = file
	}
	loc := NewLocation(pos, optionIdentity(textOf(name), textOf(long), textOf(smt)))

	r := attrReader{doc: doc, loc: loc, kind: "option"}
	if err := r.check(OptionAttrsRequired, OptionAttrsAll); err != nil {
		return nil, err
	}

	o := &Option{Module: moduleID, Location: loc}
	var err error

	category, err := r.str("category")
	if err != nil {
		return nil, err
	}
	if o.Category, err = ParseCategory(category); err != nil {
		return nil, attributeErrorf(loc, "%s", err)
	}

	if o.Type, err = r.str("type"); err != nil {
		return nil, err
	}
	if o.Type == "" {
		return nil, attributeErrorf(loc, "option attribute 'type' must not be empty")
	}

	for _, f := range []struct {
		key string
		dst *string
	}{
		{"name", &o.Name},
		{"help", &o.Help},
		{"help_mode", &o.HelpMode},
		{"smt_name", &o.SMTName},
		{"short", &o.Short},
		{"long", &o.Long},
		{"handler", &o.Handler},
	} {
		if *f.dst, err = r.str(f.key); err != nil {
			return nil, err
		}
	}
	if o.Default, err = r.text("default"); err != nil {
		return nil, err
	}
	if o.Includes, err = r.list("includes"); err != nil {
		return nil, err
	}
	if o.Predicates, err = r.list("predicates"); err != nil {
		return nil, err
	}
	if o.ReadOnly, err = r.flag("read_only", false); err != nil {
		return nil, err
	}
	if o.Alternate, err = r.flag("alternate", true); err != nil {
		return nil, err
	}

	modes, err := r.table("mode")
	if err != nil {
		return nil, err
	}
	if modes != nil {
		if o.Modes, err = readModes(loc, modes); err != nil {
			return nil, err
		}
	}

	o.Kind = ClassifyType(o.Type, modes != nil)
	o.Type = CppType(o.Type)

	if err := o.validate(); err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Debug("Option validated.", "option", o.Identity(), "kind", o.Kind.String())
	return o, nil
}

// readModes reads the ordered mode table. Each key maps to exactly one
// {name, help} entry.
func readModes(loc Location, table *config.Document) ([]ModeValue, error) {
	values := make([]ModeValue, 0, table.Len())
	for _, attr := range table.Attributes() {
		var entry *config.Document
		switch v := attr.Value.(type) {
		case *config.Document:
			entry = v
		case []*config.Document:
			if len(v) != 1 {
				return nil, attributeErrorf(loc, "mode '%s' must be declared exactly once, found %d", attr.Key, len(v))
			}
			entry = v[0]
		default:
			return nil, attributeErrorf(loc, "mode '%s' must be a table with name and help, got %s", attr.Key, config.KindOf(attr.Value))
		}

		r := attrReader{doc: entry, loc: loc, kind: "mode"}
		if err := r.check(nil, ModeValueAttrsAll); err != nil {
			return nil, err
		}
		mv := ModeValue{Key: attr.Key}
		var err error
		if mv.Name, err = r.str("name"); err != nil {
			return nil, err
		}
		if mv.Help, err = r.str("help"); err != nil {
			return nil, err
		}
		if mv.Name == "" {
			return nil, attributeErrorf(loc, "mode '%s' has no name", attr.Key)
		}
		values = append(values, mv)
	}
	return values, nil
}

func textOf(attr *config.Attribute) string {
	if attr == nil {
		return ""
	}
	s, _ := attr.Value.(string)
	return s
}
