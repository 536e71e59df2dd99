// Package emitter renders the two per-module artifacts: the declaration
// header and the definition unit of one option module.
//
// Options are visited in the order the registry allocated IDs in. Options
// without a display name have no holder field and contribute only their
// includes; everything else about them lives in the aggregate artifacts.
package emitter

import (
	"context"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/specialistvlad/optgen/internal/artifact"
	"github.com/specialistvlad/optgen/internal/ctxlog"
	"github.com/specialistvlad/optgen/internal/helptext"
	"github.com/specialistvlad/optgen/internal/model"
	"github.com/specialistvlad/optgen/internal/registry"
	"github.com/specialistvlad/optgen/internal/render"
)

// Emitter renders per-module artifacts from a template set.
type Emitter struct {
	templates *render.Set
	strict    bool
}

// New creates an Emitter. With strict set, a template that ignores a value
// the emitter supplies is an error.
func New(templates *render.Set, strict bool) *Emitter {
	return &Emitter{templates: templates, strict: strict}
}

// Emit renders "<stem>.h" and "<stem>.cpp" for m. It only reads from a, so
// modules can be emitted concurrently.
func (e *Emitter) Emit(ctx context.Context, a *registry.Assignment, m *model.Module) ([]artifact.File, error) {
	ctx, logger := ctxlog.With(ctx, "module", m.ID)
	logger.Debug("Emitting module artifacts.")

	header, source := Values(m, a.Sorted(m))

	h, err := e.templates.ModuleHeader.Render(ctx, header, e.strict)
	if err != nil {
		return nil, err
	}
	cpp, err := e.templates.ModuleSource.Render(ctx, source, e.strict)
	if err != nil {
		return nil, err
	}

	stem := m.Stem()
	return []artifact.File{
		{Name: stem + ".h", Content: []byte(h)},
		{Name: stem + ".cpp", Content: []byte(cpp)},
	}, nil
}

// Values computes the placeholder values of the module declaration and
// definition templates from the module's options in traversal order.
func Values(m *model.Module, sorted []*model.Option) (header, source render.Values) {
	var (
		includes    []string
		holderSpecs = []string{tplHolderMacro.Expand(render.Values{"macro": HolderMacro(m)})}
		decls       []string
		specs       []string
		inls        []string
		modeDecls   []string
		accs        []string
		defs        []string
		modeImpls   []string
	)

	for _, o := range sorted {
		for _, inc := range o.Includes {
			includes = append(includes, FormatInclude(inc))
		}
		if o.Name == "" {
			continue
		}
		name := render.Values{"name": o.Name}

		init := "{}"
		if def := o.DefaultValue(); def != "" {
			init = " = " + def
		}
		holderSpecs = append(holderSpecs, tplHolderField.Expand(render.Values{"name": o.Name, "init": init}))

		decls = append(decls, tplOptionStruct.Expand(render.Values{"name": o.Name, "type": o.Type, "long": o.LongBase()}))

		if !o.ReadOnly {
			specs = append(specs, tplDeclRef.Expand(name))
			accs = append(accs, tplImplRef.Expand(name))
		}
		specs = append(specs, tplDeclBracket.Expand(name), tplDeclWasSet.Expand(name))
		accs = append(accs, tplImplBracket.Expand(name), tplImplWasSet.Expand(name))

		inls = append(inls, tplInlineCall.Expand(name))
		defs = append(defs, tplDefinition.Expand(name))

		if o.Kind == model.KindMode {
			decl, impl := modeCode(o)
			modeDecls = append(modeDecls, decl)
			modeImpls = append(modeImpls, impl)
		}
	}

	includes = lo.Uniq(includes)
	slices.Sort(includes)

	header = render.Values{
		"filename":    m.Stem(),
		"header":      m.Header,
		"id":          m.ID,
		"includes":    strings.Join(includes, "\n"),
		"holder_spec": strings.Join(holderSpecs, " \\\n"),
		"decls":       strings.Join(decls, "\n"),
		"specs":       strings.Join(specs, "\n"),
		"inls":        strings.Join(inls, "\n"),
		"modes":       strings.Join(modeDecls, ""),
	}
	source = render.Values{
		"filename": m.Stem(),
		"accs":     strings.Join(accs, "\n"),
		"defs":     strings.Join(defs, "\n"),
		"modes":    strings.Join(modeImpls, ""),
	}
	return header, source
}

// modeCode renders the enum, its stream operator and its string parser.
func modeCode(o *model.Option) (decl, impl string) {
	typ := render.Values{"type": o.Type}

	var printCases, parseCases []string
	for _, mv := range o.Modes {
		printCases = append(printCases, tplModePrintCase.Expand(render.Values{"type": o.Type, "key": mv.Key}))
		parseCases = append(parseCases, tplModeParseCase.Expand(render.Values{
			"type": o.Type,
			"key":  mv.Key,
			"name": helptext.Escape(mv.Name),
		}))
	}

	decl = tplModeEnum.Expand(render.Values{"type": o.Type, "values": strings.Join(o.ModeKeys(), ",\n  ")}) +
		tplDeclModePrint.Expand(typ) +
		tplDeclModeParse.Expand(typ)

	impl = tplImplModePrint.Expand(render.Values{"type": o.Type, "cases": strings.Join(printCases, "")}) +
		tplImplModeParse.Expand(render.Values{
			"type":  o.Type,
			"cases": strings.Join(parseCases, "\n  else "),
			"help":  strings.Join(helptext.Mode(o), "\n         "),
			"long":  o.LongBase(),
		})
	return decl, impl
}

// HolderMacro names the macro that expands to a module's holder fields.
func HolderMacro(m *model.Module) string {
	return "OPTIONS__" + m.ID + "__FOR_OPTION_HOLDER"
}

// FormatInclude renders an include directive. Angle-bracket includes are
// kept verbatim, anything else is quoted.
func FormatInclude(include string) string {
	if strings.Contains(include, "<") {
		return "#include " + include
	}
	return `#include "` + include + `"`
}
