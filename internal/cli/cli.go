package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/ganttsolver/internal/app"
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

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("ganttsolver", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
ganttsolver - a resource-constrained project scheduler.

Usage:
  ganttsolver [options] [PLAN_PATH]

Arguments:
  PLAN_PATH
    Path to a project plan file (.hcl, or .json in HCL's JSON syntax).

Options:
`)
		flagSet.PrintDefaults()
	}

	planFlag := flagSet.String("plan", "", "Path to the project plan file.")
	outFlag := flagSet.String("out", "schedule", "Output path prefix for the per-solution record and chart artifacts.")
	timeLimitFlag := flagSet.Int("time-limit", 30, "Search time limit in seconds.")
	maxSolutionsFlag := flagSet.Int("max-solutions", 1, "Maximum number of schedules to report.")
	maxDurationFlag := flagSet.Int("max-duration", 0, "Cap on the schedule's total duration. 0 defers to the plan file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := *planFlag
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		PlanPath:         path,
		OutputPrefix:     *outFlag,
		TimeLimitSeconds: *timeLimitFlag,
		MaxSolutions:     *maxSolutionsFlag,
		MaxDuration:      *maxDurationFlag,
		LogFormat:        logFormat,
		LogLevel:         logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
