package app

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/specialistvlad/optgen/internal/artifact"
	"github.com/specialistvlad/optgen/internal/assembler"
	"github.com/specialistvlad/optgen/internal/emitter"
	"github.com/specialistvlad/optgen/internal/model"
	"github.com/specialistvlad/optgen/internal/registry"
	"github.com/specialistvlad/optgen/internal/render"
	"github.com/specialistvlad/optgen/internal/report"
	"golang.org/x/sync/errgroup"
)

// Run generates every artifact and commits the ones that changed.
func (a *App) Run(ctx context.Context) (*artifact.Result, error) {
	ctx = a.withLogger(ctx)
	a.logger.Debug("App.Run method started.")

	if a.config.TemplateDir == "" || a.config.OutputDir == "" {
		return nil, errors.New("template and output directories are required")
	}
	if err := requireDir(a.config.OutputDir); err != nil {
		return nil, err
	}

	asg, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	templates, err := render.LoadSet(ctx, a.config.TemplateDir)
	if err != nil {
		return nil, err
	}

	stage, err := a.stage(ctx, asg, templates)
	if err != nil {
		return nil, err
	}

	res, err := stage.Commit(ctx, a.config.DryRun)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("App.Run method finished.")
	return res, nil
}

// stage renders all artifacts. Modules are emitted concurrently; the results
// are staged in module order followed by the aggregate artifacts.
func (a *App) stage(ctx context.Context, asg *registry.Assignment, templates *render.Set) (*artifact.Stage, error) {
	strict := !a.config.Lenient
	em := emitter.New(templates, strict)
	modules := asg.Modules()
	rendered := make([][]artifact.File, len(modules))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.WorkerCount)
	for i, m := range modules {
		g.Go(func() error {
			files, err := em.Emit(gctx, asg, m)
			if err != nil {
				return err
			}
			rendered[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	a.logger.Debug("Module artifacts rendered.", "modules", len(modules), "workers", a.config.WorkerCount)

	aggregate, err := assembler.New(templates, strict).Assemble(ctx, asg)
	if err != nil {
		return nil, err
	}

	stage := artifact.NewStage(a.config.OutputDir)
	for _, files := range rendered {
		if err := stage.Add(files...); err != nil {
			return nil, err
		}
	}
	if err := stage.Add(aggregate...); err != nil {
		return nil, err
	}
	return stage, nil
}

// List writes the option inventory of the configured specifications to w.
func (a *App) List(ctx context.Context, w io.Writer) error {
	ctx = a.withLogger(ctx)
	asg, err := a.load(ctx)
	if err != nil {
		return err
	}
	return report.Write(w, asg)
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return model.IOError(path, err)
	}
	if !info.IsDir() {
		return &model.Error{Kind: model.ErrIO, Loc: model.Location{File: path}, Msg: "not a directory"}
	}
	return nil
}
