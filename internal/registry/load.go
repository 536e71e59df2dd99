package registry

import (
	"context"
	"os"

	"github.com/specialistvlad/optgen/internal/config"
	"github.com/specialistvlad/optgen/internal/ctxlog"
	"github.com/specialistvlad/optgen/internal/model"
)

// LoadModules reads and validates one module per path, in order. A missing
// or unreadable file is an IO error; a file that does not parse is an
// attribute error carrying the parser's diagnostics.
func LoadModules(ctx context.Context, loader config.Loader, paths []string) ([]*model.Module, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading specification documents...", "count", len(paths))

	modules := make([]*model.Module, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			return nil, model.IOError(path, err)
		}

		doc, err := loader.Load(ctx, path)
		if err != nil {
			return nil, &model.Error{
				Kind: model.ErrAttribute,
				Loc:  model.Location{File: path},
				Msg:  "cannot parse specification",
				Err:  err,
			}
		}

		m, err := model.NewModule(ctx, doc)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
		logger.Debug("Successfully loaded module.", "file", path, "module", m.ID)
	}

	logger.Info("Specifications loaded.", "modules", len(modules))
	return modules, nil
}
