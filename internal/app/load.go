package app

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/specialistvlad/optgen/internal/ctxlog"
	"github.com/specialistvlad/optgen/internal/fsutil"
	"github.com/specialistvlad/optgen/internal/model"
	"github.com/specialistvlad/optgen/internal/registry"
)

// load expands the configured paths, builds one module per specification
// and registers them all.
func (a *App) load(ctx context.Context) (*registry.Assignment, error) {
	logger := ctxlog.FromContext(ctx)

	paths, err := fsutil.ExpandPaths(a.config.SpecPaths, a.loader.Extensions()...)
	if err != nil {
		path := ""
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			path = pathErr.Path
		}
		return nil, model.IOError(path, err)
	}
	if len(paths) == 0 {
		return nil, &model.Error{
			Kind: model.ErrIO,
			Loc:  model.Location{File: strings.Join(a.config.SpecPaths, ", ")},
			Msg:  "no specification files found (expected " + strings.Join(a.loader.Extensions(), ", ") + ")",
		}
	}
	logger.Debug("Specification paths expanded.", "count", len(paths))

	modules, err := registry.LoadModules(ctx, a.loader, paths)
	if err != nil {
		return nil, err
	}

	return registry.New().Register(ctx, modules...)
}
