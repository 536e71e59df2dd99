package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/optgen/internal/render"
	"github.com/stretchr/testify/require"
)

// Templates is a minimal template set referencing every placeholder the
// generator supplies. Literal ${ and %{ sequences are included on purpose:
// they must survive rendering untouched.
var Templates = map[string]string{
	render.ModuleHeaderFile: `/* ${filename}$.h generated from ${header}$ (module ${id}$) */
#pragma once
${includes}$

${holder_spec}$

namespace options {
${decls}$
}  // namespace options

${specs}$

namespace options {
${inls}$
}  // namespace options
${modes}$
#define SHELL_VAR "${HOME}" // %{not a directive}
`,
	render.ModuleSourceFile: `/* ${filename}$.cpp */
${accs}$

namespace options {
${defs}$
${modes}$
}  // namespace options
`,
	render.HolderHeaderFile: `#pragma once
${headers_module}$

struct OptionsHolder
{
  ${macros_module}$
};
`,
	render.OptionsSourceFile: `${headers_module}$
${headers_handler}$

${custom_handlers}$

OptionsHolder::OptionsHolder() :
  ${module_defaults}$
{}

static const std::string mostCommonOptionsDescription =
${help_common}$;

static const std::string optionsDescription =
  mostCommonOptionsDescription + "\n\nAdditional options:\n"
${help_others}$;

static struct option cmdlineOptions[] = {
  ${cmdline_options}$
  { nullptr, no_argument, nullptr, '\0' }
};

static const char* optionsShort = "+:${options_short}$";

void parse(int c) {
  switch(c) {
    ${options_handler}$
  }
}

static_assert(${option_value_begin}$ <= ${option_value_end}$, "ids");

std::vector<std::string> names = {
  ${options_smt}$
};

void getOptions() {
  ${options_getoptions}$
}

void setOption(const std::string& key, const std::string& optionarg) {
${setoption_handlers}$
}

std::string getOption(const std::string& key) {
${getoption_handlers}$
}
`,
}

// WriteTemplates writes Templates into dir, which is created when missing.
func WriteTemplates(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range Templates {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

// TemplateSet writes Templates to a temporary directory and loads them.
func TemplateSet(t *testing.T) *render.Set {
	t.Helper()
	dir := t.TempDir()
	WriteTemplates(t, dir)
	set, err := render.LoadSet(t.Context(), dir)
	require.NoError(t, err)
	return set
}
