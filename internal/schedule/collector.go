package schedule

import (
	"sort"
	"sync"

	"github.com/vk/ganttsolver/internal/solver"
)

// Collector accumulates every feasible schedule the engine reports and
// answers best-K queries over them. OnSolution may be called concurrently
// when the engine runs parallel search workers, so the store is guarded.
type Collector struct {
	model *Model
	max   int

	mu    sync.Mutex
	found []*ScheduleSolution
}

// NewCollector creates a collector that will report at most max solutions.
func NewCollector(model *Model, max int) *Collector {
	return &Collector{model: model, max: max}
}

// OnSolution matches the engine's callback signature. It reads the makespan
// and every task's placement out of the assignment and stores an immutable
// ScheduleSolution. The store is unbounded; ranking happens in Top.
func (c *Collector) OnSolution(sol *solver.Solution) {
	tasks := make([]ProjectSchedule, 0, len(c.model.order))
	for _, id := range c.model.order {
		tasks = append(tasks, c.model.snapshot(sol, id))
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })

	solution := &ScheduleSolution{
		TotalDuration: sol.Value(c.model.makespan),
		Tasks:         tasks,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.found = append(c.found, solution)
}

// Len returns how many solutions have been collected so far.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.found)
}

// Top returns the collected solutions with the smallest total duration,
// ascending, at most the configured maximum. Solutions sharing a total
// duration are all eligible and keep their discovery order.
func (c *Collector) Top() []*ScheduleSolution {
	c.mu.Lock()
	defer c.mu.Unlock()

	ranked := make([]*ScheduleSolution, len(c.found))
	copy(ranked, c.found)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalDuration < ranked[j].TotalDuration
	})
	if len(ranked) > c.max {
		ranked = ranked[:c.max]
	}
	return ranked
}
