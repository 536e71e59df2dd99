package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/optgen/internal/app"
	"github.com/specialistvlad/optgen/internal/model"
	"github.com/specialistvlad/optgen/internal/render"
	"github.com/specialistvlad/optgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fooSpec = `
id     = "base"
name   = "Base"
header = "options/base_options.h"

option {
  name     = "Foo"
  category = "regular"
  long     = "foo"
  type     = "bool"
  help     = "Enable foo"
}
`

var allArtifacts = []string{"base_options.cpp", "base_options.h", "options.cpp", "options_holder.h"}

func TestRun_GeneratesAllArtifacts(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	w := testutil.NewWorkspace(t, map[string]string{"base.hcl": fooSpec})

	// --- Act ---
	result := testutil.RunGenerate(context.Background(), t, w.Config())

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.ElementsMatch(t, allArtifacts, result.Result.Written)
	assert.Empty(t, result.Result.Unchanged)
	assert.ElementsMatch(t, allArtifacts, w.OutputNames(t))

	holder := w.Output(t, "options_holder.h")
	assert.Contains(t, holder, `#include "options/base_options.h"`)
	assert.Contains(t, holder, "OPTIONS__base__FOR_OPTION_HOLDER")

	header := w.Output(t, "base_options.h")
	assert.Contains(t, header, "Foo__option_t::type Foo = false;")
	assert.Contains(t, header, `#define SHELL_VAR "${HOME}" // %{not a directive}`)

	options := w.Output(t, "options.cpp")
	assert.Contains(t, options, `{ "foo", no_argument, nullptr, 256 },`)
	assert.Contains(t, options, `{ "no-foo", no_argument, nullptr, 257 },`)
	assert.Contains(t, options, `"  --foo | --no-foo       Enable foo [*]\n"`)
	assert.Contains(t, options, "static_assert(256 <= 258")
	assert.Contains(t, result.LogOutput, "Artifacts committed.")
}

func TestRun_SecondRunWritesNothing(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	w := testutil.NewWorkspace(t, map[string]string{"base.hcl": fooSpec})
	first := testutil.RunGenerate(context.Background(), t, w.Config())
	require.NoError(t, first.Err)

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	for _, name := range allArtifacts {
		require.NoError(t, os.Chtimes(filepath.Join(w.OutputDir, name), old, old))
	}

	// --- Act ---
	second := testutil.RunGenerate(context.Background(), t, w.Config())

	// --- Assert ---
	require.NoError(t, second.Err)
	assert.Empty(t, second.Result.Written)
	assert.ElementsMatch(t, allArtifacts, second.Result.Unchanged)
	for _, name := range allArtifacts {
		info, err := os.Stat(filepath.Join(w.OutputDir, name))
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(old), "%s was rewritten", name)
	}
}

func TestRun_OutputIgnoresDeclarationOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	option := func(name string) string {
		return "\noption {\n  name = \"" + name + "\"\n  category = \"regular\"\n  long = \"" + name +
			"\"\n  type = \"bool\"\n  help = \"" + name + "\"\n}\n"
	}
	fooFirst := testutil.NewWorkspace(t, map[string]string{"base.hcl": testutil.ModuleHCL("base", option("foo")+option("bar"))})
	barFirst := testutil.NewWorkspace(t, map[string]string{"base.hcl": testutil.ModuleHCL("base", option("bar")+option("foo"))})

	// --- Act ---
	r1 := testutil.RunGenerate(context.Background(), t, fooFirst.Config())
	r2 := testutil.RunGenerate(context.Background(), t, barFirst.Config())

	// --- Assert ---
	require.NoError(t, r1.Err)
	require.NoError(t, r2.Err)
	options := fooFirst.Output(t, "options.cpp")
	assert.Contains(t, options, `{ "bar", no_argument, nullptr, 256 },`)
	assert.Contains(t, options, `{ "foo", no_argument, nullptr, 258 },`)
	for _, name := range allArtifacts {
		if diff := cmp.Diff(fooFirst.Output(t, name), barFirst.Output(t, name)); diff != "" {
			t.Errorf("%s depends on declaration order (-foo first +bar first):\n%s", name, diff)
		}
	}
}

func TestRun_ModulesFollowArgumentOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	w := testutil.NewWorkspace(t, map[string]string{
		"a.hcl": testutil.ModuleHCL("alpha", "\noption {\n  name = \"a\"\n  category = \"undocumented\"\n  long = \"a\"\n  type = \"bool\"\n}\n"),
		"z.hcl": testutil.ModuleHCL("zulu", "\noption {\n  name = \"z\"\n  category = \"undocumented\"\n  long = \"z\"\n  type = \"bool\"\n}\n"),
	})

	// --- Act ---
	result := testutil.RunGenerate(context.Background(), t, w.Config(w.Spec("z.hcl"), w.Spec("a.hcl")))

	// --- Assert ---
	require.NoError(t, result.Err)
	options := w.Output(t, "options.cpp")
	assert.Contains(t, options, `{ "z", no_argument, nullptr, 256 },`)
	assert.Contains(t, options, `{ "a", no_argument, nullptr, 258 },`)
	assert.Less(t, strings.Index(options, "options/zulu_options.h"), strings.Index(options, "options/alpha_options.h"))
}

func TestRun_HCLAndTOMLProduceIdenticalArtifacts(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	const tomlSpec = `
id     = "base"
name   = "Base"
header = "options/base_options.h"

[[option]]
  name     = "Foo"
  category = "regular"
  long     = "foo"
  type     = "bool"
  help     = "Enable foo"
`
	fromHCL := testutil.NewWorkspace(t, map[string]string{"base.hcl": fooSpec})
	fromTOML := testutil.NewWorkspace(t, map[string]string{"base.toml": tomlSpec})

	// --- Act ---
	r1 := testutil.RunGenerate(context.Background(), t, fromHCL.Config())
	r2 := testutil.RunGenerate(context.Background(), t, fromTOML.Config())

	// --- Assert ---
	require.NoError(t, r1.Err)
	require.NoError(t, r2.Err)
	for _, name := range allArtifacts {
		if diff := cmp.Diff(fromHCL.Output(t, name), fromTOML.Output(t, name)); diff != "" {
			t.Errorf("%s differs (-hcl +toml):\n%s", name, diff)
		}
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	w := testutil.NewWorkspace(t, map[string]string{"base.hcl": fooSpec})
	cfg := w.Config()
	cfg.DryRun = true

	// --- Act ---
	result := testutil.RunGenerate(context.Background(), t, cfg)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.ElementsMatch(t, allArtifacts, result.Result.Written)
	assert.Empty(t, w.OutputNames(t))
}

func TestRun_FailuresWriteNothing(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		specs    map[string]string
		arrange  func(t *testing.T, w *testutil.Workspace, cfg *app.Config)
		wantKind error
		wantMsg  string
	}{
		{
			name: "uniqueness across modules",
			specs: map[string]string{
				"a.hcl": testutil.ModuleHCL("a", "\noption {\n  name = \"x\"\n  category = \"undocumented\"\n  long = \"shared\"\n  type = \"bool\"\n}\n"),
				"b.hcl": testutil.ModuleHCL("b", "\noption {\n  name = \"y\"\n  category = \"undocumented\"\n  long = \"shared\"\n  type = \"bool\"\n}\n"),
			},
			wantKind: model.ErrUniqueness,
			wantMsg:  "long option 'shared' already defined",
		},
		{
			name:     "invalid option",
			specs:    map[string]string{"base.hcl": testutil.ModuleHCL("base", "\noption {\n  name = \"v\"\n  category = \"regular\"\n  long = \"v\"\n  type = \"void\"\n  help = \"v\"\n}\n")},
			wantKind: model.ErrConsistency,
			wantMsg:  "void options require a handler",
		},
		{
			name:  "missing spec path",
			specs: map[string]string{"base.hcl": fooSpec},
			arrange: func(t *testing.T, w *testutil.Workspace, cfg *app.Config) {
				cfg.SpecPaths = []string{w.Spec("missing.hcl")}
			},
			wantKind: model.ErrIO,
			wantMsg:  "missing.hcl",
		},
		{
			name:  "missing template",
			specs: map[string]string{"base.hcl": fooSpec},
			arrange: func(t *testing.T, w *testutil.Workspace, cfg *app.Config) {
				require.NoError(t, os.Remove(filepath.Join(w.TemplateDir, render.OptionsSourceFile)))
			},
			wantKind: model.ErrIO,
			wantMsg:  render.OptionsSourceFile,
		},
		{
			name:  "template ignores a value",
			specs: map[string]string{"base.hcl": fooSpec},
			arrange: func(t *testing.T, w *testutil.Workspace, cfg *app.Config) {
				src := strings.Replace(testutil.Templates[render.ModuleSourceFile], "${defs}$", "", 1)
				require.NoError(t, os.WriteFile(filepath.Join(w.TemplateDir, render.ModuleSourceFile), []byte(src), 0o644))
			},
			wantKind: model.ErrTemplate,
			wantMsg:  "template does not reference supplied placeholders: defs",
		},
		{
			name:  "template references an unknown value",
			specs: map[string]string{"base.hcl": fooSpec},
			arrange: func(t *testing.T, w *testutil.Workspace, cfg *app.Config) {
				src := testutil.Templates[render.HolderHeaderFile] + "${bogus}$\n"
				require.NoError(t, os.WriteFile(filepath.Join(w.TemplateDir, render.HolderHeaderFile), []byte(src), 0o644))
			},
			wantKind: model.ErrTemplate,
			wantMsg:  "template references placeholders with no value: bogus",
		},
		{
			name:     "spec directory without specifications",
			specs:    map[string]string{"README.md": "# options\n"},
			wantKind: model.ErrIO,
			wantMsg:  "no specification files found (expected .hcl, .toml)",
		},
		{
			name:  "missing output directory",
			specs: map[string]string{"base.hcl": fooSpec},
			arrange: func(t *testing.T, w *testutil.Workspace, cfg *app.Config) {
				cfg.OutputDir = filepath.Join(w.OutputDir, "nested")
			},
			wantKind: model.ErrIO,
			wantMsg:  "nested",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			w := testutil.NewWorkspace(t, tc.specs)
			cfg := w.Config()
			if tc.arrange != nil {
				tc.arrange(t, w, cfg)
			}

			// --- Act ---
			result := testutil.RunGenerate(context.Background(), t, cfg)

			// --- Assert ---
			require.Error(t, result.Err)
			assert.ErrorIs(t, result.Err, tc.wantKind)
			assert.Contains(t, result.Err.Error(), tc.wantMsg)
			assert.NotContains(t, result.Err.Error(), "\n")
			assert.Empty(t, w.OutputNames(t))
		})
	}
}

func TestRun_LenientToleratesIgnoredValues(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	w := testutil.NewWorkspace(t, map[string]string{"base.hcl": fooSpec})
	src := strings.Replace(testutil.Templates[render.ModuleSourceFile], "${defs}$", "", 1)
	require.NoError(t, os.WriteFile(filepath.Join(w.TemplateDir, render.ModuleSourceFile), []byte(src), 0o644))
	cfg := w.Config()
	cfg.Lenient = true

	// --- Act ---
	result := testutil.RunGenerate(context.Background(), t, cfg)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.ElementsMatch(t, allArtifacts, result.Result.Written)
	assert.Contains(t, result.LogOutput, "Template ignores supplied placeholders.")
}

func TestList(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	w := testutil.NewWorkspace(t, map[string]string{"base.hcl": fooSpec})
	var out bytes.Buffer

	// --- Act ---
	err := app.NewApp(&testutil.SafeBuffer{}, w.Config(), nil).List(context.Background(), &out)

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "--foo")
	assert.Contains(t, out.String(), "256/257")
	assert.Empty(t, w.OutputNames(t))
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	_, err := app.NewConfig(app.Config{WorkerCount: 1})
	require.EqualError(t, err, "at least one specification path is required")

	_, err = app.NewConfig(app.Config{SpecPaths: []string{"a.hcl"}})
	require.EqualError(t, err, "worker count must be positive, got 0")

	cfg, err := app.NewConfig(app.Config{SpecPaths: []string{"a.hcl"}, WorkerCount: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.WorkerCount)
}
