package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/optgen/internal/app"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Command selects what the application does with its configuration.
type Command string

const (
	// CommandGenerate renders and writes the artifacts.
	CommandGenerate Command = "generate"
	// CommandList prints the option inventory.
	CommandList Command = "list"
)

// Invocation is a parsed command line.
type Invocation struct {
	Command Command
	Config  *app.Config
}

type flags struct {
	logFormat string
	logLevel  string
	workers   int
	dryRun    bool
	lenient   bool
}

const generateArgs = "TEMPLATE_DIR OUTPUT_DIR SPEC..."

// Parse processes command-line arguments. It returns the invocation, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Invocation, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		f   flags
		inv *Invocation
	)

	runGenerate := func(cmd *cobra.Command, args []string) error {
		if len(args) < 3 {
			return &ExitError{Code: 2, Message: "usage: optgen generate " + generateArgs}
		}
		cfg, err := newConfig(&f, app.Config{TemplateDir: args[0], OutputDir: args[1], SpecPaths: args[2:]})
		if err != nil {
			return err
		}
		inv = &Invocation{Command: CommandGenerate, Config: cfg}
		return nil
	}

	root := &cobra.Command{
		Use:   "optgen [flags] " + generateArgs,
		Short: "Generate C++ option handling code from option specifications.",
		Long: `optgen reads option specifications (.hcl or .toml, or directories of them)
and renders the per-module option headers and sources plus the aggregate
option holder and options unit from the templates in TEMPLATE_DIR.
Only artifacts whose content changed are written to OUTPUT_DIR.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				slog.Debug("No arguments provided, printing usage.")
				_ = cmd.Usage()
			}
			return runGenerate(cmd, args)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetArgs(args)
	root.SetOut(output)
	root.SetErr(output)

	pf := root.PersistentFlags()
	pf.StringVar(&f.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.StringVar(&f.logLevel, "log-level", app.DefaultLogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.IntVar(&f.workers, "workers", 4, "Number of modules rendered concurrently.")

	generate := &cobra.Command{
		Use:   "generate [flags] " + generateArgs,
		Short: "Render the artifacts and write the ones that changed.",
		Args:  cobra.ArbitraryArgs,
		RunE:  runGenerate,
	}
	for _, c := range []*cobra.Command{root, generate} {
		c.Flags().BoolVar(&f.dryRun, "dry-run", false, "Report which artifacts would change without writing them.")
		c.Flags().BoolVar(&f.lenient, "lenient", false, "Warn instead of failing when a template ignores a generated value.")
	}

	list := &cobra.Command{
		Use:   "list [flags] SPEC...",
		Short: "Print the options of the specifications and their command-line IDs.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := newConfig(&f, app.Config{SpecPaths: args})
			if err != nil {
				return err
			}
			inv = &Invocation{Command: CommandList, Config: cfg}
			return nil
		},
	}
	root.AddCommand(generate, list)

	if err := root.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if inv == nil {
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "command", inv.Command, "config", inv.Config)
	return inv, false, nil
}

// newConfig validates the shared flags and completes cfg with them.
func newConfig(f *flags, cfg app.Config) (*app.Config, error) {
	logFormat := strings.ToLower(f.logFormat)
	if logFormat != "text" && logFormat != "json" {
		return nil, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(f.logLevel)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	cfg.LogFormat = logFormat
	cfg.LogLevel = logLevel
	cfg.WorkerCount = f.workers
	cfg.DryRun = f.dryRun
	cfg.Lenient = f.lenient

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	return config, nil
}
