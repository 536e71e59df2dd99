package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/optgen/internal/app"
	"github.com/specialistvlad/optgen/internal/cli"
)

// main is the entrypoint for the optgen application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	// The real main function handles errors and exit codes.
	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, logW io.Writer, args []string) error {
	inv, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	optgen := app.NewApp(logW, inv.Config, nil)

	if inv.Command == cli.CommandList {
		return optgen.List(ctx, outW)
	}

	res, err := optgen.Run(ctx)
	if err != nil {
		return err
	}
	if inv.Config.DryRun {
		for _, name := range res.Written {
			fmt.Fprintf(outW, "would write %s\n", name)
		}
	}
	return nil
}
