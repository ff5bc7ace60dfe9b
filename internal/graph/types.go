package graph

// Task is a single schedulable unit of work within the precedence graph.
type Task struct {
	ID           string
	Name         string
	Duration     int
	NumResources int
	Dependencies []Dependency
}

// Dependency is a lagged precedence edge to another task, stored by id and
// resolved through the owning graph's lookup. A negative lag is a lead time:
// the dependent may start up to |lag| time units before the target ends.
type Dependency struct {
	TargetID string
	Lag      int
}

// Graph holds the validated task set, its precedence edges, and the
// topological order computed during construction.
type Graph struct {
	tasks map[string]*Task
	order []string
}

// Task looks up a task by id.
func (g *Graph) Task(id string) (*Task, bool) {
	t, ok := g.tasks[id]
	return t, ok
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	return len(g.tasks)
}

// Order returns the task ids in topological order: every task appears after
// all of its dependency targets. Ties are broken lexicographically, so the
// order is deterministic for a given plan.
func (g *Graph) Order() []string {
	return g.order
}
