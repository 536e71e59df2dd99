package registry_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/optgen/internal/config"
	"github.com/specialistvlad/optgen/internal/hcldoc"
	"github.com/specialistvlad/optgen/internal/model"
	"github.com/specialistvlad/optgen/internal/registry"
	"github.com/specialistvlad/optgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpec(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestLoadModules(t *testing.T) {
	t.Parallel()

	loader := config.ExtensionLoader{".hcl": hcldoc.NewLoader()}

	t.Run("keeps argument order", func(t *testing.T) {
		t.Parallel()

		// --- Arrange ---
		dir := t.TempDir()
		second := writeSpec(t, dir, "b.hcl", testutil.ModuleHCL("second", ""))
		first := writeSpec(t, dir, "a.hcl", testutil.ModuleHCL("first", ""))

		// --- Act ---
		modules, err := registry.LoadModules(context.Background(), loader, []string{second, first})

		// --- Assert ---
		require.NoError(t, err)
		require.Len(t, modules, 2)
		assert.Equal(t, "second", modules[0].ID)
		assert.Equal(t, "first", modules[1].ID)
	})

	t.Run("missing file is an io error", func(t *testing.T) {
		t.Parallel()

		// --- Act ---
		_, err := registry.LoadModules(context.Background(), loader, []string{filepath.Join(t.TempDir(), "missing.hcl")})

		// --- Assert ---
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrIO)
	})

	t.Run("syntax error is an attribute error", func(t *testing.T) {
		t.Parallel()

		// --- Arrange ---
		path := writeSpec(t, t.TempDir(), "broken.hcl", "id = \n")

		// --- Act ---
		_, err := registry.LoadModules(context.Background(), loader, []string{path})

		// --- Assert ---
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrAttribute)
		assert.Contains(t, err.Error(), "cannot parse specification")
		assert.NotContains(t, err.Error(), "\n")
	})

	t.Run("unsupported extension is an attribute error", func(t *testing.T) {
		t.Parallel()

		// --- Arrange ---
		path := writeSpec(t, t.TempDir(), "spec.yaml", "id: x\n")

		// --- Act ---
		_, err := registry.LoadModules(context.Background(), loader, []string{path})

		// --- Assert ---
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrAttribute)
		assert.Contains(t, err.Error(), `unsupported specification format ".yaml"`)
	})

	t.Run("validation error is returned unchanged", func(t *testing.T) {
		t.Parallel()

		// --- Arrange ---
		path := writeSpec(t, t.TempDir(), "bad.hcl", testutil.ModuleHCL("bad", boolOption("x", "--x", "")))

		// --- Act ---
		_, err := registry.LoadModules(context.Background(), loader, []string{path})

		// --- Assert ---
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConsistency)
		assert.Contains(t, err.Error(), "remove -- prefix from long '--x'")
	})
}
