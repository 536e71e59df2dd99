package render

import (
	"context"
	"path/filepath"

	"github.com/specialistvlad/optgen/internal/ctxlog"
)

// Template file names expected in the template directory.
const (
	ModuleHeaderFile  = "module_template.h"
	ModuleSourceFile  = "module_template.cpp"
	HolderHeaderFile  = "options_holder_template.h"
	OptionsSourceFile = "options_template.cpp"
)

// Set holds the four templates of a generation run.
type Set struct {
	ModuleHeader  *Template
	ModuleSource  *Template
	HolderHeader  *Template
	OptionsSource *Template
}

// LoadSet reads and parses every template from dir. All templates are read
// before any output is produced.
func LoadSet(ctx context.Context, dir string) (*Set, error) {
	logger := ctxlog.FromContext(ctx)
	set := &Set{}
	for _, t := range []struct {
		name string
		dst  **Template
	}{
		{ModuleHeaderFile, &set.ModuleHeader},
		{ModuleSourceFile, &set.ModuleSource},
		{HolderHeaderFile, &set.HolderHeader},
		{OptionsSourceFile, &set.OptionsSource},
	} {
		tpl, err := ParseFile(filepath.Join(dir, t.name))
		if err != nil {
			return nil, err
		}
		*t.dst = tpl
		logger.Debug("Template loaded.", "template", t.name, "placeholders", tpl.Placeholders())
	}
	return set, nil
}
