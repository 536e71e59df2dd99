// Package assembler renders the aggregate artifacts that span every module:
// the option holder header and the options definition unit with its help
// text, command-line dispatch table and named set/get dispatch.
//
// All tables are built in one pass over the registry's traversal order, the
// same order the IDs were allocated in, so every getopt entry carries the ID
// the registry handed out for it.
package assembler

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/specialistvlad/optgen/internal/artifact"
	"github.com/specialistvlad/optgen/internal/ctxlog"
	"github.com/specialistvlad/optgen/internal/emitter"
	"github.com/specialistvlad/optgen/internal/helptext"
	"github.com/specialistvlad/optgen/internal/model"
	"github.com/specialistvlad/optgen/internal/registry"
	"github.com/specialistvlad/optgen/internal/render"
)

// Names of the aggregate artifacts.
const (
	HolderHeaderName  = "options_holder.h"
	OptionsSourceName = "options.cpp"
)

// Assembler renders the aggregate artifacts from a template set.
type Assembler struct {
	templates *render.Set
	strict    bool
}

// New creates an Assembler. strict has the same meaning as for the emitter.
func New(templates *render.Set, strict bool) *Assembler {
	return &Assembler{templates: templates, strict: strict}
}

// Assemble renders options_holder.h and options.cpp.
func (as *Assembler) Assemble(ctx context.Context, a *registry.Assignment) ([]artifact.File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Assembling aggregate artifacts.", "modules", len(a.Modules()))

	holder, options := Values(a)

	h, err := as.templates.HolderHeader.Render(ctx, holder, as.strict)
	if err != nil {
		return nil, err
	}
	cpp, err := as.templates.OptionsSource.Render(ctx, options, as.strict)
	if err != nil {
		return nil, err
	}

	return []artifact.File{
		{Name: HolderHeaderName, Content: []byte(h)},
		{Name: OptionsSourceName, Content: []byte(cpp)},
	}, nil
}

// tables accumulates the aggregate fragments during the traversal.
type tables struct {
	headersModule  []string
	headersHandler []string
	macrosModule   []string
	getoptShort    strings.Builder
	getoptLong     []string
	optionsSMT     []string
	getOptions     []string
	optionsHandler []string
	defaults       []string
	customHandlers []string
	helpCommon     []string
	helpOthers     []string
	setOption      []string
	getOption      []string
	lastID         int
}

// Values computes the placeholder values of the holder and options
// templates.
func Values(a *registry.Assignment) (holder, options render.Values) {
	t := &tables{lastID: registry.FirstID - 1}

	for _, m := range a.Modules() {
		t.headersModule = append(t.headersModule, emitter.FormatInclude(m.Header))
		t.macrosModule = append(t.macrosModule, emitter.HolderMacro(m))

		if len(m.Options) > 0 {
			t.helpOthers = append(t.helpOthers, helptext.Literals([]string{`\nFrom the ` + helptext.Escape(m.Name) + ` module:`})...)
		}

		for _, o := range a.Sorted(m) {
			t.add(o, a.IDs(o))
		}
	}

	t.headersHandler = lo.Uniq(t.headersHandler)
	slices.Sort(t.headersHandler)

	holder = render.Values{
		"headers_module": strings.Join(t.headersModule, "\n"),
		"macros_module":  strings.Join(t.macrosModule, "\n  "),
	}
	options = render.Values{
		"headers_module":     strings.Join(t.headersModule, "\n"),
		"headers_handler":    strings.Join(t.headersHandler, "\n"),
		"custom_handlers":    strings.Join(t.customHandlers, "\n"),
		"module_defaults":    strings.Join(t.defaults, ",\n  "),
		"help_common":        strings.Join(t.helpCommon, "\n"),
		"help_others":        strings.Join(t.helpOthers, "\n"),
		"cmdline_options":    strings.Join(t.getoptLong, "\n  "),
		"options_short":      t.getoptShort.String(),
		"options_handler":    strings.Join(t.optionsHandler, "\n    "),
		"option_value_begin": strconv.Itoa(registry.FirstID),
		"option_value_end":   strconv.Itoa(t.lastID + 1),
		"options_smt":        strings.Join(t.optionsSMT, "\n  "),
		"options_getoptions": strings.Join(t.getOptions, "\n  "),
		"setoption_handlers": strings.Join(t.setOption, "\n"),
		"getoption_handlers": strings.Join(t.getOption, "\n"),
	}
	return holder, options
}

func (t *tables) add(o *model.Option, ids registry.IDs) {
	if o.Handler != "" || len(o.Predicates) > 0 {
		for _, inc := range o.Includes {
			t.headersHandler = append(t.headersHandler, emitter.FormatInclude(inc))
		}
	}

	entry := helptext.Entry(o)
	if o.Category == model.CategoryCommon {
		t.helpCommon = append(t.helpCommon, entry...)
	} else {
		t.helpOthers = append(t.helpOthers, entry...)
	}

	handler := handlerCall(o)
	t.addCommandLine(o, ids, handler)
	t.addNamed(o)

	if o.Name == "" {
		return
	}
	t.addCustomHandler(o, handler)
	t.defaults = append(t.defaults,
		fmt.Sprintf("%s(%s)", o.Name, o.DefaultValue()),
		fmt.Sprintf("%s__setByUser__(false)", o.Name))
}

// handlerCall is the C++ expression that parses the argument of o, or "" for
// booleans, which take no argument.
func handlerCall(o *model.Option) string {
	switch {
	case o.Handler != "" && o.Kind == model.KindVoid:
		return fmt.Sprintf("d_handler->%s(option)", o.Handler)
	case o.Handler != "":
		return fmt.Sprintf("d_handler->%s(option, optionarg)", o.Handler)
	case o.Kind == model.KindMode:
		return fmt.Sprintf("stringTo%s(optionarg)", o.Type)
	case o.Kind == model.KindBool:
		return ""
	default:
		return fmt.Sprintf("handleOption<%s>(option, optionarg)", o.Type)
	}
}

// addCommandLine adds the getopt entries and switch cases of o.
func (t *tables) addCommandLine(o *model.Option, ids registry.IDs, handler string) {
	arg := "no"
	if o.TakesArgument() {
		arg = "required"
	}

	var cases []string
	if o.Short != "" {
		cases = append(cases, fmt.Sprintf("case '%s':", o.Short))
		t.getoptShort.WriteString(o.Short)
		if o.TakesArgument() {
			t.getoptShort.WriteString(":")
		}
	}
	if o.Long != "" {
		cases = append(cases, fmt.Sprintf("case %d:// --%s", ids.Long, o.Long))
		t.addGetopt(o.LongBase(), arg, ids.Long)
	}
	if len(cases) == 0 {
		return
	}

	switch {
	case o.Kind == model.KindBool && o.Name != "":
		cases = append(cases, tplCallAssignBool.Expand(render.Values{"name": o.Name, "option": "option", "value": "true"}))
	case o.Kind != model.KindVoid && o.Name != "":
		cases = append(cases, tplCallAssign.Expand(render.Values{"name": o.Name, "option": "option"}))
	case handler != "":
		cases = append(cases, "  "+handler+";")
	}
	cases = append(cases, "  break;\n")
	t.optionsHandler = append(t.optionsHandler, cases...)

	if o.HasAlternate() {
		t.optionsHandler = append(t.optionsHandler,
			fmt.Sprintf("case %d:// --%s", ids.Negated, o.Negated()))
		if o.Name != "" {
			t.optionsHandler = append(t.optionsHandler,
				tplCallAssignBool.Expand(render.Values{"name": o.Name, "option": "option", "value": "false"}))
		}
		t.optionsHandler = append(t.optionsHandler, "  break;\n")
		t.addGetopt(o.Negated(), arg, ids.Negated)
	}
}

func (t *tables) addGetopt(long, arg string, id int) {
	t.getoptLong = append(t.getoptLong, tplGetoptLong.Expand(render.Values{
		"long": long,
		"arg":  arg,
		"id":   strconv.Itoa(id),
	}))
	t.lastID = max(t.lastID, id)
}

// addNamed adds o to the set/get-option dispatch and the option name lists.
func (t *tables) addNamed(o *model.Option) {
	keys := o.NamedKeys()
	if len(keys) == 0 {
		return
	}
	external := o.ExternalName()
	quoted := cString(external)

	cond := strings.Join(lo.Map(keys, func(k string, _ int) string {
		return "key == " + cString(k)
	}), " || ")

	t.setOption = append(t.setOption, fmt.Sprintf("if(%s) {", cond))
	switch {
	case o.Kind == model.KindBool && o.Name != "":
		t.setOption = append(t.setOption, tplCallAssignBool.Expand(render.Values{
			"name": o.Name, "option": quoted, "value": `optionarg == "true"`,
		}))
	case o.TakesArgument() && o.Name != "":
		t.setOption = append(t.setOption, tplCallAssign.Expand(render.Values{"name": o.Name, "option": quoted}))
	case o.Handler != "" && o.Kind == model.KindVoid:
		t.setOption = append(t.setOption, fmt.Sprintf("d_handler->%s(%s);", o.Handler, quoted))
	case o.Handler != "":
		t.setOption = append(t.setOption, fmt.Sprintf("d_handler->%s(%s, optionarg);", o.Handler, quoted))
	case o.Kind == model.KindMode:
		t.setOption = append(t.setOption, fmt.Sprintf("stringTo%s(optionarg);", o.Type))
	case o.Kind != model.KindBool:
		t.setOption = append(t.setOption, fmt.Sprintf("handleOption<%s>(%s, optionarg);", o.Type, quoted))
	}
	t.setOption = append(t.setOption, "return;", "}")

	t.optionsSMT = append(t.optionsSMT, quoted+",")

	if o.Name == "" {
		return
	}

	name := render.Values{"name": o.Name}
	t.getOption = append(t.getOption, fmt.Sprintf("if (%s) {", cond))
	listed := render.Values{"name": o.Name, "key": helptext.Escape(external)}
	switch {
	case o.Kind == model.KindBool:
		t.getOption = append(t.getOption, tplGetBool.Expand(name))
		t.getOptions = append(t.getOptions, tplListBool.Expand(listed))
	case o.Kind == model.KindString:
		t.getOption = append(t.getOption, tplGetString.Expand(name))
		t.getOptions = append(t.getOptions, tplListStream.Expand(listed))
	case o.Kind.Numeric():
		t.getOption = append(t.getOption, tplGetNumeric.Expand(name))
		t.getOptions = append(t.getOptions, tplListNumeric.Expand(listed))
	default:
		t.getOption = append(t.getOption, tplGetStream.Expand(name))
		t.getOptions = append(t.getOptions, tplListStream.Expand(listed))
	}
	t.getOption = append(t.getOption, "}")
}

// cString quotes s as a C++ string literal.
func cString(s string) string {
	return `"` + helptext.Escape(s) + `"`
}

// addCustomHandler adds the assign or assignBool specialization of a named
// option.
func (t *tables) addCustomHandler(o *model.Option, handler string) {
	var predicates strings.Builder
	value := "parsedval"
	if o.Kind == model.KindBool {
		value = "value"
	}
	for _, p := range o.Predicates {
		fmt.Fprintf(&predicates, "  d_handler->%s(option, %s);\n", p, value)
	}

	switch {
	case o.Kind == model.KindBool:
		t.customHandlers = append(t.customHandlers, tplAssignBool.Expand(render.Values{
			"name":       o.Name,
			"predicates": predicates.String(),
		}))
	case o.Kind != model.KindVoid:
		t.customHandlers = append(t.customHandlers, tplAssign.Expand(render.Values{
			"name":       o.Name,
			"handler":    handler,
			"predicates": predicates.String(),
		}))
	}
}
