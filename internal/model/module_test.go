package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/optgen/internal/model"
	"github.com/specialistvlad/optgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModule_Success(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		hcl      string
		validate func(t *testing.T, m *model.Module)
	}{
		{
			name: "boolean option with defaults",
			hcl: `
option {
  name     = "Foo"
  category = "regular"
  long     = "foo"
  type     = "bool"
  help     = "Enable foo"
}
`,
			validate: func(t *testing.T, m *model.Module) {
				require.Len(t, m.Options, 1)
				o := m.Options[0]
				assert.Equal(t, model.KindBool, o.Kind)
				assert.True(t, o.Alternate, "alternate defaults to true")
				assert.False(t, o.ReadOnly)
				assert.True(t, o.HasAlternate())
				assert.Equal(t, "no-foo", o.Negated())
				assert.Equal(t, "false", o.DefaultValue())
				assert.Equal(t, "foo", o.ExternalName())
				assert.Equal(t, "Foo", o.Location.Option)
				assert.Equal(t, "base.hcl", o.Location.File)
				assert.Equal(t, 6, o.Location.Line)
			},
		},
		{
			name: "mode option keeps declaration order",
			hcl: `
option {
  name      = "mode"
  category  = "expert"
  long      = "mode=MODE"
  type      = "Mode"
  help      = "select the mode"
  help_mode = "Modes."
  default   = "FAST"
  mode "SLOW" {
    name = "slow"
    help = "Slow and careful."
  }
  mode "FAST" {
    name = "fast"
  }
}
`,
			validate: func(t *testing.T, m *model.Module) {
				o := m.Options[0]
				assert.Equal(t, model.KindMode, o.Kind)
				want := []model.ModeValue{
					{Key: "SLOW", Name: "slow", Help: "Slow and careful."},
					{Key: "FAST", Name: "fast"},
				}
				if diff := cmp.Diff(want, o.Modes); diff != "" {
					t.Errorf("modes mismatch (-want +got):\n%s", diff)
				}
				assert.Equal(t, "Mode::FAST", o.DefaultValue())
				assert.Equal(t, "mode", o.LongBase())
				assert.Equal(t, "MODE", o.LongArg())
				assert.Empty(t, o.Negated())
			},
		},
		{
			name: "typed attributes and lists",
			hcl: `
option {
  name       = "limit"
  smt_name   = "limit-value"
  category   = "common"
  short      = "l"
  long       = "limit=N"
  type       = "uint64_t"
  default    = 10
  includes   = ["<cstdint>", "base/limits.h"]
  predicates = ["checkPositive"]
  read_only  = true
  help       = "limit the thing"
}
`,
			validate: func(t *testing.T, m *model.Module) {
				o := m.Options[0]
				assert.Equal(t, model.KindInteger, o.Kind)
				assert.Equal(t, model.CategoryCommon, o.Category)
				assert.Equal(t, "10", o.DefaultValue())
				assert.Equal(t, []string{"<cstdint>", "base/limits.h"}, o.Includes)
				assert.Equal(t, []string{"checkPositive"}, o.Predicates)
				assert.True(t, o.ReadOnly)
				assert.Equal(t, []string{"limit", "limit-value"}, o.NamedKeys())
				assert.Equal(t, "limit-value", o.ExternalName())
			},
		},
		{
			name: "string type maps to std::string",
			hcl: `
option {
  name     = "out"
  category = "undocumented"
  long     = "out=FILE"
  type     = "string"
}
`,
			validate: func(t *testing.T, m *model.Module) {
				o := m.Options[0]
				assert.Equal(t, model.KindString, o.Kind)
				assert.Equal(t, "std::string", o.Type)
				assert.Equal(t, `""`, o.DefaultValue())
			},
		},
		{
			name: "handler-only void option",
			hcl: `
option {
  category = "common"
  short    = "V"
  long     = "version"
  type     = "void"
  handler  = "showVersion"
  help     = "print version"
}
`,
			validate: func(t *testing.T, m *model.Module) {
				o := m.Options[0]
				assert.Equal(t, model.KindVoid, o.Kind)
				assert.Equal(t, "version", o.Identity())
				assert.False(t, o.TakesArgument())
			},
		},
		{
			name: "module without options",
			hcl:  ``,
			validate: func(t *testing.T, m *model.Module) {
				assert.Equal(t, "base", m.ID)
				assert.Equal(t, "base display", m.Name)
				assert.Equal(t, "base_options", m.Stem())
				assert.Empty(t, m.Options)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m, err := testutil.LoadHCLModule(t, "base.hcl", testutil.ModuleHCL("base", tc.hcl))
			require.NoError(t, err)
			tc.validate(t, m)
		})
	}
}

func TestNewModule_Failure(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		hcl     string
		kind    error
		wantMsg string
	}{
		{
			name:    "unknown option attribute",
			hcl:     "option {\nname = \"foo\"\ncategory = \"regular\"\ntype = \"bool\"\nread-only = true\n}",
			kind:    model.ErrAttribute,
			wantMsg: "invalid option attribute 'read-only' specified for 'foo'",
		},
		{
			name:    "missing category",
			hcl:     "option {\nname = \"foo\"\ntype = \"bool\"\n}",
			kind:    model.ErrAttribute,
			wantMsg: "required option attribute 'category' not specified for 'foo'",
		},
		{
			name:    "mistyped attribute",
			hcl:     "option {\nname = [\"foo\"]\ncategory = \"regular\"\ntype = \"bool\"\n}",
			kind:    model.ErrAttribute,
			wantMsg: "option attribute 'name' must be a string, got list",
		},
		{
			name:    "invalid category",
			hcl:     "option {\nname = \"foo\"\ncategory = \"hidden\"\ntype = \"bool\"\n}",
			kind:    model.ErrAttribute,
			wantMsg: "invalid category 'hidden'",
		},
		{
			name:    "no spelling at all",
			hcl:     "option {\ncategory = \"undocumented\"\ntype = \"bool\"\n}",
			kind:    model.ErrConsistency,
			wantMsg: "declares none of name, smt_name, short or long",
		},
		{
			name: "mode without help_mode",
			hcl: `
option {
  name     = "mode"
  category = "regular"
  long     = "mode=MODE"
  type     = "Mode"
  help     = "select"
  mode "A" {
    name = "a"
  }
}`,
			kind:    model.ErrConsistency,
			wantMsg: "defines modes but no help_mode",
		},
		{
			name: "mode with handler",
			hcl: `
option {
  name      = "mode"
  category  = "regular"
  long      = "mode=MODE"
  type      = "Mode"
  help      = "select"
  help_mode = "Modes."
  handler   = "parseMode"
  mode "A" {
    name = "a"
  }
}`,
			kind:    model.ErrConsistency,
			wantMsg: "defines modes and a handler",
		},
		{
			name: "mode default not among keys",
			hcl: `
option {
  name      = "mode"
  category  = "regular"
  long      = "mode=MODE"
  type      = "Mode"
  help      = "select"
  help_mode = "Modes."
  default   = "B"
  mode "A" {
    name = "a"
  }
}`,
			kind:    model.ErrConsistency,
			wantMsg: "invalid default value 'B'",
		},
		{
			name: "mode value declared twice",
			hcl: `
option {
  name      = "mode"
  category  = "regular"
  long      = "mode=MODE"
  type      = "Mode"
  help      = "select"
  help_mode = "Modes."
  mode "A" {
    name = "a"
  }
  mode "A" {
    name = "b"
  }
}`,
			kind:    model.ErrAttribute,
			wantMsg: "mode 'A' must be declared exactly once, found 2",
		},
		{
			name:    "short without long",
			hcl:     "option {\nname = \"foo\"\ncategory = \"regular\"\nshort = \"f\"\ntype = \"bool\"\nhelp = \"x\"\n}",
			kind:    model.ErrConsistency,
			wantMsg: "short option 'f' specified but no long option",
		},
		{
			name:    "argument type without marker",
			hcl:     "option {\nname = \"n\"\ncategory = \"regular\"\nlong = \"n\"\ntype = \"int\"\nhelp = \"x\"\n}",
			kind:    model.ErrConsistency,
			wantMsg: "requires an argument marker",
		},
		{
			name:    "bool with marker",
			hcl:     "option {\nname = \"b\"\ncategory = \"regular\"\nlong = \"b=X\"\ntype = \"bool\"\nhelp = \"x\"\n}",
			kind:    model.ErrConsistency,
			wantMsg: "must not carry an argument marker",
		},
		{
			name:    "long with dashes",
			hcl:     "option {\nname = \"b\"\ncategory = \"regular\"\nlong = \"--b\"\ntype = \"bool\"\nhelp = \"x\"\n}",
			kind:    model.ErrConsistency,
			wantMsg: "remove -- prefix",
		},
		{
			name:    "bool with handler",
			hcl:     "option {\nname = \"b\"\ncategory = \"regular\"\nlong = \"b\"\ntype = \"bool\"\nhandler = \"h\"\nhelp = \"x\"\n}",
			kind:    model.ErrConsistency,
			wantMsg: "defining handlers for bool options is not allowed",
		},
		{
			name:    "void without handler",
			hcl:     "option {\ncategory = \"regular\"\nlong = \"v\"\ntype = \"void\"\nhelp = \"x\"\n}",
			kind:    model.ErrConsistency,
			wantMsg: "void options require a handler",
		},
		{
			name:    "documented option without help",
			hcl:     "option {\nname = \"b\"\ncategory = \"expert\"\nlong = \"b\"\ntype = \"bool\"\n}",
			kind:    model.ErrConsistency,
			wantMsg: "help text required for expert options",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m, err := testutil.LoadHCLModule(t, "base.hcl", testutil.ModuleHCL("base", tc.hcl))
			require.Error(t, err)
			require.Nil(t, m)
			assert.True(t, errors.Is(err, tc.kind), "unexpected kind: %v", err)
			assert.Contains(t, err.Error(), tc.wantMsg)
			assert.Contains(t, err.Error(), "base.hcl")
		})
	}
}

func TestNewModule_MissingModuleAttribute(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	src := `
id   = "base"
name = "Base"
`
	// --- Act ---
	_, err := testutil.LoadHCLModule(t, "base.hcl", src)

	// --- Assert ---
	require.ErrorIs(t, err, model.ErrAttribute)
	require.EqualError(t, err, "attribute error in base.hcl: required module attribute 'header' not specified")
}

func TestModule_SortedIgnoresDeclarationOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := testutil.MustLoadHCLModule(t, "base.hcl", testutil.ModuleHCL("base", `
option {
  name     = "foo"
  category = "regular"
  long     = "foo"
  type     = "bool"
  help     = "foo"
}
option {
  category = "undocumented"
  smt_name = "zeta"
  type     = "bool"
}
option {
  name     = "bar"
  category = "regular"
  long     = "bar"
  type     = "bool"
  help     = "bar"
}
`))

	// --- Act ---
	sorted := m.Sorted()

	// --- Assert ---
	got := make([]string, len(sorted))
	for i, o := range sorted {
		got[i] = o.Identity()
	}
	require.Equal(t, []string{"bar", "foo", "zeta"}, got)
	require.Equal(t, "foo", m.Options[0].Identity(), "declaration order is kept on the module")
}

func TestNewModule_TOMLMatchesHCL(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	hclSrc := testutil.ModuleHCL("base", `
option {
  name      = "mode"
  category  = "regular"
  long      = "mode=MODE"
  type      = "Mode"
  help      = "select the mode"
  help_mode = "Modes."
  default   = "FAST"
  mode "SLOW" {
    name = "slow"
    help = "Slow."
  }
  mode "FAST" {
    name = "fast"
  }
}
`)
	tomlSrc := `
id     = "base"
name   = "base display"
header = "options/base_options.h"

[[option]]
  name      = "mode"
  category  = "regular"
  long      = "mode=MODE"
  type      = "Mode"
  help      = "select the mode"
  help_mode = "Modes."
  default   = "FAST"
[[option.mode.SLOW]]
  name = "slow"
  help = "Slow."
[[option.mode.FAST]]
  name = "fast"
`

	// --- Act ---
	fromHCL := testutil.MustLoadHCLModule(t, "base.spec", hclSrc)
	fromTOML, err := testutil.LoadTOMLModule(t, "base.spec", tomlSrc)
	require.NoError(t, err)

	// --- Assert ---
	// TOML carries no line numbers, so locations are compared by file only.
	ignoreLine := cmp.Transformer("file", func(l model.Location) string { return l.File + " " + l.Option })
	if diff := cmp.Diff(fromHCL, fromTOML, ignoreLine); diff != "" {
		t.Errorf("HCL and TOML modules differ (-hcl +toml):\n%s", diff)
	}
}
