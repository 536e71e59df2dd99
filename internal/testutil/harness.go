package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/optgen/internal/app"
	"github.com/specialistvlad/optgen/internal/artifact"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Workspace is a temporary directory tree holding the templates, the
// specifications and the output directory of one generation run.
type Workspace struct {
	TemplateDir string
	SpecDir     string
	OutputDir   string
}

// NewWorkspace writes Templates and the given specifications (file name to
// content) into a fresh temporary tree.
func NewWorkspace(t *testing.T, specs map[string]string) *Workspace {
	t.Helper()
	root := t.TempDir()
	w := &Workspace{
		TemplateDir: filepath.Join(root, "templates"),
		SpecDir:     filepath.Join(root, "specs"),
		OutputDir:   filepath.Join(root, "out"),
	}
	WriteTemplates(t, w.TemplateDir)
	require.NoError(t, os.MkdirAll(w.SpecDir, 0o755))
	require.NoError(t, os.MkdirAll(w.OutputDir, 0o755))
	for name, content := range specs {
		w.WriteSpec(t, name, content)
	}
	return w
}

// WriteSpec (re)writes one specification file and returns its path.
func (w *Workspace) WriteSpec(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(w.SpecDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Spec returns the path of a specification file of the workspace.
func (w *Workspace) Spec(name string) string {
	return filepath.Join(w.SpecDir, name)
}

// Config returns a debug-logging configuration generating from specs, or
// from the whole spec directory when none are given.
func (w *Workspace) Config(specs ...string) *app.Config {
	if len(specs) == 0 {
		specs = []string{w.SpecDir}
	}
	return &app.Config{
		TemplateDir: w.TemplateDir,
		OutputDir:   w.OutputDir,
		SpecPaths:   specs,
		LogLevel:    "debug",
		LogFormat:   "text",
		WorkerCount: 4,
	}
}

// Output returns the content of a generated artifact, or "" if it does not
// exist.
func (w *Workspace) Output(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(w.OutputDir, name))
	if os.IsNotExist(err) {
		return ""
	}
	require.NoError(t, err)
	return string(b)
}

// OutputNames lists the files of the output directory.
func (w *Workspace) OutputNames(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(w.OutputDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// HarnessResult holds the outcomes of a generation run.
type HarnessResult struct {
	LogOutput string
	Result    *artifact.Result
	Err       error
}

// RunGenerate runs the full generation pipeline with cfg, capturing logs.
// Set OPTGEN_TEST_LOGS=true to print them.
func RunGenerate(ctx context.Context, t *testing.T, cfg *app.Config) *HarnessResult {
	t.Helper()

	logBuffer := &SafeBuffer{}
	res, err := app.NewApp(logBuffer, cfg, nil).Run(ctx)

	if os.Getenv("OPTGEN_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Result:    res,
		Err:       err,
	}
}
