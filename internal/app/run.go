package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/vk/ganttsolver/internal/ctxlog"
	"github.com/vk/ganttsolver/internal/gantt"
	"github.com/vk/ganttsolver/internal/graph"
	"github.com/vk/ganttsolver/internal/schedule"
	"github.com/vk/ganttsolver/internal/solver"
)

// ErrNoSolution is returned when the search ends without any feasible
// schedule, whether infeasibility was proven or the time limit ran out.
var ErrNoSolution = errors.New("no feasible solution found")

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	plan, err := a.loader.Load(ctx, cfg.PlanPath)
	if err != nil {
		return fmt.Errorf("failed to load plan: %w", err)
	}

	g, err := graph.Build(ctx, plan)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}
	a.logger.Debug("Dependency graph built.", "task_count", g.Len())

	maxDuration := cfg.MaxDuration
	if maxDuration == 0 {
		maxDuration = plan.MaxDuration
	}
	model := schedule.BuildModel(ctx, g, schedule.Options{
		MaxResourcesInParallel: plan.MaxResourcesInParallel,
		MaxDuration:            maxDuration,
	})

	a.logger.Info("Starting schedule search.",
		"tasks", g.Len(),
		"max_resources_in_parallel", plan.MaxResourcesInParallel,
		"max_duration", maxDuration,
		"time_limit_seconds", cfg.TimeLimitSeconds,
	)
	collector := schedule.NewCollector(model, cfg.MaxSolutions)
	status := schedule.Solve(ctx, model, time.Duration(cfg.TimeLimitSeconds)*time.Second, collector)

	switch status {
	case solver.StatusInfeasible:
		a.logger.Error("Search proved that no feasible schedule exists.", "status", status.String())
		return ErrNoSolution
	case solver.StatusUnknown:
		a.logger.Error("Time limit reached before any feasible schedule was found.", "status", status.String())
		return ErrNoSolution
	}

	top := collector.Top()
	a.logger.Info("Search finished.",
		"status", status.String(),
		"solutions_found", collector.Len(),
		"solutions_retained", len(top),
	)

	for i, sol := range top {
		recordPath := fmt.Sprintf("%s-%d.json", cfg.OutputPrefix, i+1)
		chartPath := fmt.Sprintf("%s-%d.gantt.txt", cfg.OutputPrefix, i+1)

		if err := writeRecord(recordPath, sol); err != nil {
			return err
		}
		if err := gantt.WriteFile(chartPath, schedule.Bars(sol), sol.TotalDuration); err != nil {
			return err
		}
		a.printSolution(i+1, sol, status, recordPath, chartPath)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// writeRecord persists one solution as an indented JSON record.
func writeRecord(path string, sol *schedule.ScheduleSolution) error {
	data, err := json.MarshalIndent(sol, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schedule record: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write schedule record %s: %w", path, err)
	}
	return nil
}
