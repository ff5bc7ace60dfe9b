package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/ganttsolver/internal/app"
	"github.com/vk/ganttsolver/internal/cli"
)

// main is the entrypoint for the ganttsolver application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, logW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	solverApp := app.New(outW, logW, appConfig)
	if err := solverApp.Run(context.Background(), appConfig); err != nil {
		if errors.Is(err, app.ErrNoSolution) {
			return fmt.Errorf("%w; consider raising -time-limit or -max-duration", err)
		}
		return err
	}
	return nil
}
