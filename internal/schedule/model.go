package schedule

import (
	"context"
	"fmt"

	"github.com/vk/ganttsolver/internal/ctxlog"
	"github.com/vk/ganttsolver/internal/graph"
	"github.com/vk/ganttsolver/internal/solver"
)

// Options carries the resource and duration limits for model construction.
type Options struct {
	// MaxResourcesInParallel is the capacity of the shared resource pool.
	MaxResourcesInParallel int
	// MaxDuration caps the makespan when positive; zero means no cap.
	MaxDuration int
}

// taskVars is the solver-side handle for one task.
type taskVars struct {
	task  *graph.Task
	start *solver.IntVar
	end   *solver.IntVar
}

// Model couples the solver model with the per-task variable handles needed
// to read concrete schedules back out of a solution. It is opaque to callers
// once handed to Solve.
type Model struct {
	m        *solver.Model
	makespan *solver.IntVar
	order    []string
	tasks    map[string]*taskVars
}

// BuildModel converts the graph into solver variables and constraints: one
// interval per task bounded to [0, horizon], a precedence inequality per
// dependency edge, one cumulative resource constraint over all intervals,
// and a minimized makespan tied to the maximum end time. The horizon is the
// fully-serial worst case: the sum of all durations plus all positive lags.
func BuildModel(ctx context.Context, g *graph.Graph, opts Options) *Model {
	logger := ctxlog.FromContext(ctx)

	horizon := 0
	for _, id := range g.Order() {
		task, _ := g.Task(id)
		horizon += task.Duration
		for _, dep := range task.Dependencies {
			if dep.Lag > 0 {
				horizon += dep.Lag
			}
		}
	}
	logger.Debug("BuildModel: horizon computed.", "horizon", horizon)

	sm := &Model{
		m:     solver.NewModel(),
		order: g.Order(),
		tasks: make(map[string]*taskVars, g.Len()),
	}

	// Tasks are visited in topological order, so every dependency target's
	// variables exist by the time an edge referencing them is added.
	intervals := make([]*solver.Interval, 0, g.Len())
	demands := make([]int, 0, g.Len())
	for _, id := range g.Order() {
		task, _ := g.Task(id)
		start := sm.m.NewIntVar(0, horizon, "start_"+id)
		end := sm.m.NewIntVar(0, horizon, "end_"+id)
		interval := sm.m.NewInterval(start, end, task.Duration, "interval_"+id)
		intervals = append(intervals, interval)
		demands = append(demands, task.NumResources)
		sm.tasks[id] = &taskVars{task: task, start: start, end: end}

		for _, dep := range task.Dependencies {
			target := sm.tasks[dep.TargetID]
			sm.m.AddPrecedence(start, target.end, dep.Lag)
		}
	}

	sm.m.AddCumulative(opts.MaxResourcesInParallel, intervals, demands)

	ends := make([]*solver.IntVar, 0, g.Len())
	for _, id := range g.Order() {
		ends = append(ends, sm.tasks[id].end)
	}
	sm.makespan = sm.m.NewIntVar(0, horizon, "total_duration")
	sm.m.AddMaxEquality(sm.makespan, ends)
	sm.m.Minimize(sm.makespan)

	if opts.MaxDuration > 0 {
		sm.m.AddLessOrEqual(sm.makespan, opts.MaxDuration)
	}

	logger.Debug("BuildModel: model construction complete.",
		"tasks", g.Len(),
		"capacity", opts.MaxResourcesInParallel,
		"max_duration", opts.MaxDuration,
	)
	return sm
}

// snapshot reads one task's concrete placement out of an engine solution.
func (sm *Model) snapshot(sol *solver.Solution, id string) ProjectSchedule {
	tv, ok := sm.tasks[id]
	if !ok {
		panic(fmt.Sprintf("schedule: unknown task %q in model", id))
	}
	return ProjectSchedule{
		ID:           id,
		Name:         tv.task.Name,
		NumResources: tv.task.NumResources,
		Start:        sol.Value(tv.start),
		End:          sol.Value(tv.end),
	}
}
