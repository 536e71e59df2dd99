package config

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/specialistvlad/optgen/internal/ctxlog"
)

// Loader is the interface for a format-specific document loader.
type Loader interface {
	// Load reads the file at path and translates it into the
	// format-agnostic document model.
	Load(ctx context.Context, path string) (*Document, error)
}

// ExtensionLoader dispatches to a format-specific Loader based on the file
// extension (including the leading dot).
type ExtensionLoader map[string]Loader

// Extensions returns the registered extensions in sorted order.
func (l ExtensionLoader) Extensions() []string {
	exts := lo.Keys(map[string]Loader(l))
	slices.Sort(exts)
	return exts
}

// Load implements Loader.
func (l ExtensionLoader) Load(ctx context.Context, path string) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := l[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported specification format %q for %s (supported: %s)",
			ext, path, strings.Join(l.Extensions(), ", "))
	}
	ctxlog.FromContext(ctx).Debug("Loading specification document.", "path", path, "format", ext)
	return loader.Load(ctx, path)
}
