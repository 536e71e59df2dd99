// Package artifact stages generated files in memory and commits them to the
// output directory.
//
// Generated artifacts reference each other, so a run either commits a
// complete, mutually consistent set or nothing. Everything is rendered and
// staged first; Commit runs only after the last artifact rendered. Each file
// is then written only when its bytes differ from what is on disk, through a
// temporary file and an atomic rename, so readers never observe a partial
// file and unchanged artifacts keep their timestamps.
package artifact

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/specialistvlad/optgen/internal/ctxlog"
	"github.com/specialistvlad/optgen/internal/model"
)

// File is one rendered artifact. Name is relative to the output directory.
type File struct {
	Name    string
	Content []byte
}

// Stage collects rendered artifacts for one output directory.
type Stage struct {
	dir   string
	files []File
	index map[string]int
}

// Result lists what Commit did, in staging order.
type Result struct {
	Written   []string
	Unchanged []string
}

// NewStage creates an empty stage for dir.
func NewStage(dir string) *Stage {
	return &Stage{dir: dir, index: make(map[string]int)}
}

// Add stages files. Two artifacts with the same name would overwrite each
// other, which happens when two modules share a header base name.
func (s *Stage) Add(files ...File) error {
	for _, f := range files {
		if _, exists := s.index[f.Name]; exists {
			return &model.Error{
				Kind: model.ErrIO,
				Loc:  model.Location{File: filepath.Join(s.dir, f.Name)},
				Msg:  "artifact generated more than once",
			}
		}
		s.index[f.Name] = len(s.files)
		s.files = append(s.files, f)
	}
	return nil
}

// Files returns the staged artifacts in staging order.
func (s *Stage) Files() []File {
	return s.files
}

// Lookup returns the staged artifact called name.
func (s *Stage) Lookup(name string) (File, bool) {
	i, ok := s.index[name]
	if !ok {
		return File{}, false
	}
	return s.files[i], true
}

// Commit writes every staged artifact whose content differs from the file
// on disk. With dryRun set it only reports what it would write.
func (s *Stage) Commit(ctx context.Context, dryRun bool) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	res := &Result{}

	for _, f := range s.files {
		path := filepath.Join(s.dir, f.Name)

		existing, err := os.ReadFile(path)
		switch {
		case err == nil && bytes.Equal(existing, f.Content):
			res.Unchanged = append(res.Unchanged, f.Name)
			logger.Debug("Artifact unchanged.", "path", path)
			continue
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return res, model.IOError(path, err)
		}

		if dryRun {
			logger.Info("Artifact would be written.", "path", path, "bytes", len(f.Content))
		} else {
			if err := renameio.WriteFile(path, f.Content, 0o644); err != nil {
				return res, model.IOError(path, err)
			}
			logger.Debug("Artifact written.", "path", path, "bytes", len(f.Content))
		}
		res.Written = append(res.Written, f.Name)
	}

	logger.Info("Artifacts committed.", "written", len(res.Written), "unchanged", len(res.Unchanged), "dry_run", dryRun)
	return res, nil
}
