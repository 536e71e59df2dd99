package testutil

import (
	"context"
	"testing"

	"github.com/specialistvlad/optgen/internal/hcldoc"
	"github.com/specialistvlad/optgen/internal/model"
	"github.com/specialistvlad/optgen/internal/tomldoc"
	"github.com/stretchr/testify/require"
)

// LoadHCLModule parses src as an HCL specification named path and builds
// the module it describes. Parse failures fail the test; validation errors
// are returned so callers can assert on them.
func LoadHCLModule(t *testing.T, path, src string) (*model.Module, error) {
	t.Helper()
	doc, err := hcldoc.NewLoader().LoadSource(context.Background(), path, []byte(src))
	require.NoError(t, err, "fixture must be valid HCL")
	return model.NewModule(context.Background(), doc)
}

// LoadTOMLModule is LoadHCLModule for TOML sources.
func LoadTOMLModule(t *testing.T, path, src string) (*model.Module, error) {
	t.Helper()
	doc, err := tomldoc.NewLoader().LoadSource(context.Background(), path, []byte(src))
	require.NoError(t, err, "fixture must be valid TOML")
	return model.NewModule(context.Background(), doc)
}

// MustLoadHCLModule is LoadHCLModule for fixtures that must validate.
func MustLoadHCLModule(t *testing.T, path, src string) *model.Module {
	t.Helper()
	m, err := LoadHCLModule(t, path, src)
	require.NoError(t, err)
	return m
}

// ModuleHCL wraps option blocks in a module header with the given id.
func ModuleHCL(id string, options string) string {
	return `
id     = "` + id + `"
name   = "` + id + ` display"
header = "options/` + id + `_options.h"
` + options
}
