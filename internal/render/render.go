// Package render substitutes named placeholders in template files.
//
// Templates mark placeholders as ${name}$. A template is split once, at parse
// time, into the literal byte ranges between placeholders and the placeholder
// names. Rendering splices the supplied values between the untouched literal
// bytes, so text outside placeholders is copied byte for byte whatever its
// encoding or normalization form.
//
// In strict mode rendering fails when the template references a placeholder
// that has no value, and when a value is supplied that the template never
// references. Both indicate drift between a template and the generator.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/specialistvlad/optgen/internal/ctxlog"
	"github.com/specialistvlad/optgen/internal/model"
)

var placeholder = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}\$`)

// Values maps placeholder names to their replacement text.
type Values map[string]string

// Template is a parsed template. literals holds one more element than refs:
// the output is literals[0] refs[0] literals[1] ... refs[n-1] literals[n].
type Template struct {
	Name         string
	literals     [][]byte
	refs         []string
	placeholders []string
}

// Parse splits src into literal text and placeholder references. name is
// used in diagnostics.
func Parse(name string, src []byte) (*Template, error) {
	t := &Template{Name: name}
	last := 0
	for _, m := range placeholder.FindAllSubmatchIndex(src, -1) {
		t.literals = append(t.literals, src[last:m[0]])
		t.refs = append(t.refs, string(src[m[2]:m[3]]))
		last = m[1]
	}
	t.literals = append(t.literals, src[last:])

	t.placeholders = lo.Uniq(t.refs)
	slices.Sort(t.placeholders)
	return t, nil
}

// ParseFile reads and parses the template at path.
func ParseFile(path string) (*Template, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, model.IOError(path, err)
	}
	return Parse(filepath.Base(path), src)
}

// Placeholders returns the names the template references, sorted.
func (t *Template) Placeholders() []string {
	return t.placeholders
}

// Render substitutes values into the template. A referenced placeholder
// without a value is always an error; a supplied value the template does not
// reference is an error only when strict is set.
func (t *Template) Render(ctx context.Context, values Values, strict bool) (string, error) {
	logger := ctxlog.FromContext(ctx)

	missing := lo.Filter(t.placeholders, func(name string, _ int) bool {
		_, ok := values[name]
		return !ok
	})
	if len(missing) > 0 {
		return "", model.TemplateError(t.Name,
			fmt.Sprintf("template references placeholders with no value: %s", strings.Join(missing, ", ")), nil)
	}

	unused := lo.Without(lo.Keys(values), t.placeholders...)
	slices.Sort(unused)
	if len(unused) > 0 {
		if strict {
			return "", model.TemplateError(t.Name,
				fmt.Sprintf("template does not reference supplied placeholders: %s", strings.Join(unused, ", ")), nil)
		}
		logger.Warn("Template ignores supplied placeholders.", "template", t.Name, "placeholders", unused)
	}

	var b strings.Builder
	for i, ref := range t.refs {
		b.Write(t.literals[i])
		b.WriteString(values[ref])
	}
	b.Write(t.literals[len(t.refs)])
	return b.String(), nil
}

// MustParse is Parse for templates compiled into the program. It panics on
// error.
func MustParse(name, src string) *Template {
	t, err := Parse(name, []byte(src))
	if err != nil {
		panic(err)
	}
	return t
}

// Expand renders a template compiled into the program in strict mode. Drift
// between such a template and its caller is a programming error, so Expand
// panics instead of returning it.
func (t *Template) Expand(values Values) string {
	out, err := t.Render(context.Background(), values, true)
	if err != nil {
		panic(err)
	}
	return out
}
