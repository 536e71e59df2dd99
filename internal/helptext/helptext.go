// Package helptext lays out option documentation as C++ string literals:
// the --help entries of the aggregate artifact and the per-mode help block
// printed by generated mode parsers.
package helptext

import (
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/go-wordwrap"
	"github.com/specialistvlad/optgen/internal/model"
)

const (
	// Width is the column limit of a --help line.
	Width = 80
	// LabelWidth is the column at which the body of a --help entry starts.
	LabelWidth = 25
	// ModeWidth is the column limit of a mode help block.
	ModeWidth = 78
)

var indent = strings.Repeat(" ", LabelWidth)

// Label returns the command-line spellings of o as shown in --help, short
// first: "-x ARG | --extra=ARG". Alternate booleans also list the negated
// spelling. It is empty when o has no command-line spelling.
func Label(o *model.Option) string {
	var parts []string
	if o.Short != "" {
		if arg := o.LongArg(); arg != "" {
			parts = append(parts, "-"+o.Short+" "+arg)
		} else {
			parts = append(parts, "-"+o.Short)
		}
	}
	if o.Long != "" {
		parts = append(parts, "--"+o.Long)
	}
	if o.HasAlternate() {
		parts = append(parts, "--"+o.Negated())
	}
	return strings.Join(parts, " | ")
}

// Entry returns the --help entry of o as C++ string literals, one per output
// line. Undocumented options and options without a command-line spelling
// have no entry.
func Entry(o *model.Option) []string {
	label := Label(o)
	if o.Category == model.CategoryUndocumented || label == "" {
		return nil
	}

	text := o.Help
	if o.Category == model.CategoryExpert {
		text += " (EXPERTS only)"
	}
	if o.HasAlternate() {
		text += " [*]"
	}
	body := Wrap(Escape(text), Width-LabelWidth)

	var lines []string
	if len(label) > LabelWidth-3 {
		lines = append(lines, "  "+label, indent+body[0])
	} else {
		lines = append(lines, "  "+label+strings.Repeat(" ", LabelWidth-2-len(label))+body[0])
	}
	for _, l := range body[1:] {
		lines = append(lines, indent+l)
	}

	for _, mv := range o.Modes {
		lines = append(lines, indent+"+ "+Escape(modeName(o, mv)))
		for _, l := range Wrap(Escape(mv.Help), Width-LabelWidth-2) {
			if l != "" {
				lines = append(lines, indent+"  "+l)
			}
		}
	}
	return Literals(lines)
}

// Mode returns the help block a generated mode parser prints for
// "--<long>=help", as C++ string literals.
func Mode(o *model.Option) []string {
	lines := Wrap(Escape(o.HelpMode), ModeWidth)
	lines = append(lines, "Available modes for --"+o.LongBase()+" are:")
	for _, mv := range o.Modes {
		lines = append(lines, "+ "+Escape(modeName(o, mv)))
		if mv.Help == "" {
			continue
		}
		for _, l := range Wrap(Escape(mv.Help), ModeWidth) {
			lines = append(lines, "  "+l)
		}
	}
	return Literals(lines)
}

func modeName(o *model.Option, mv model.ModeValue) string {
	if mv.Key == o.Default && mv.Name != "default" {
		return mv.Name + " (default)"
	}
	return mv.Name
}

// Wrap collapses runs of whitespace in s and wraps it to width columns.
// Words longer than width are split across lines. The result has at least
// one line.
func Wrap(s string, width int) []string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return []string{""}
	}
	var lines []string
	for _, l := range strings.Split(wordwrap.WrapString(s, uint(width)), "\n") {
		lines = append(lines, splitLong(l, width)...)
	}
	return lines
}

// splitLong cuts l into pieces of at most width runes. A backslash escape
// stays together with the character it escapes.
func splitLong(l string, width int) []string {
	if utf8.RuneCountInString(l) <= width {
		return []string{l}
	}
	var pieces []string
	var cur []rune
	runes := []rune(l)
	for i := 0; i < len(runes); i++ {
		unit := runes[i : i+1]
		if runes[i] == '\\' && i+1 < len(runes) {
			unit = runes[i : i+2]
			i++
		}
		if len(cur) > 0 && len(cur)+len(unit) > width {
			pieces = append(pieces, string(cur))
			cur = nil
		}
		cur = append(cur, unit...)
	}
	return append(pieces, string(cur))
}

// Escape makes s safe inside a C++ string literal.
func Escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// Literals quotes each line as a C++ string literal ending in a newline.
func Literals(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = `"` + l + `\n"`
	}
	return out
}
