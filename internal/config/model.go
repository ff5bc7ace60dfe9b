package config

// Plan is the unified, format-agnostic representation of a project plan:
// the shared resource pool size, an optional duration cap, and every task
// with its precedence edges.
type Plan struct {
	// MaxResourcesInParallel is the capacity of the single aggregate
	// resource pool. At any instant the summed demand of running tasks
	// may not exceed it.
	MaxResourcesInParallel int

	// MaxDuration caps the schedule makespan when positive. Zero means
	// no cap. A -max-duration CLI flag overrides this value.
	MaxDuration int

	// Tasks maps task id to its definition.
	Tasks map[string]*TaskDef
}

// TaskDef is the format-agnostic representation of a `task` block.
type TaskDef struct {
	ID           string
	Name         string
	NumResources int
	Duration     int
	Dependencies []DependencyDef
}

// DependencyDef is a precedence edge from a task to one of its dependency
// targets. LagTime is the required gap after the target ends; a negative
// value is a lead time, letting the task start before the target finishes.
type DependencyDef struct {
	ProjectID string
	LagTime   int
}
