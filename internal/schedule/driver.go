package schedule

import (
	"context"
	"time"

	"github.com/vk/ganttsolver/internal/ctxlog"
	"github.com/vk/ganttsolver/internal/solver"
)

// Solve drives the engine over the model with a wall-clock budget, streaming
// every feasible schedule into the collector as it is found. It blocks until
// the search finishes or the budget elapses and makes no assumption about
// how many solutions the engine reports or in what objective order.
func Solve(ctx context.Context, model *Model, timeLimit time.Duration, c *Collector) solver.Status {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Solve: starting search.", "time_limit", timeLimit)

	eng := &solver.Solver{TimeLimit: timeLimit}
	status := eng.Solve(ctx, model.m, c.OnSolution)

	logger.Debug("Solve: search finished.", "status", status.String(), "solutions", c.Len())
	return status
}
