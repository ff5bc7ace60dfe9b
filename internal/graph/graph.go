package graph

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/vk/ganttsolver/internal/config"
	"github.com/vk/ganttsolver/internal/ctxlog"
)

// ErrUnknownDependency marks a dependency that references a task id not
// present in the plan.
var ErrUnknownDependency = errors.New("unknown dependency")

// ErrCycle marks a plan whose dependency edges are not acyclic.
var ErrCycle = errors.New("dependency cycle detected")

// Build constructs a complete, validated precedence graph from a plan.
func Build(ctx context.Context, plan *config.Plan) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: starting graph construction.")
	g := &Graph{tasks: make(map[string]*Task, len(plan.Tasks))}

	// First pass: create all nodes.
	for id, def := range plan.Tasks {
		g.tasks[id] = &Task{
			ID:           id,
			Name:         def.Name,
			Duration:     def.Duration,
			NumResources: def.NumResources,
		}
	}
	logger.Debug("Build: node creation complete.", "task_count", len(g.tasks))

	// Second pass: link dependency edges.
	for id, def := range plan.Tasks {
		task := g.tasks[id]
		for _, dep := range def.Dependencies {
			if _, ok := g.tasks[dep.ProjectID]; !ok {
				return nil, fmt.Errorf("task %q depends on %q: %w", id, dep.ProjectID, ErrUnknownDependency)
			}
			if dep.ProjectID == id {
				return nil, fmt.Errorf("task %q depends on itself: %w", id, ErrCycle)
			}
			task.Dependencies = append(task.Dependencies, Dependency{TargetID: dep.ProjectID, Lag: dep.LagTime})
		}
	}
	logger.Debug("Build: edge linking complete.")

	if err := g.detectCycles(); err != nil {
		return nil, fmt.Errorf("error validating dependency graph: %w", err)
	}
	logger.Debug("Build: cycle detection passed.")

	g.order = g.topoOrder()
	logger.Debug("Build: graph construction successful.", "order", g.order)
	return g, nil
}

// detectCycles checks for circular dependencies in the graph using DFS.
func (g *Graph) detectCycles() error {
	visiting := make(map[string]bool)
	visited := make(map[string]bool)

	var visit func(t *Task) error
	visit = func(t *Task) error {
		visiting[t.ID] = true
		for _, dep := range t.Dependencies {
			target := g.tasks[dep.TargetID]
			if visiting[target.ID] {
				return fmt.Errorf("involving task %q: %w", target.ID, ErrCycle)
			}
			if !visited[target.ID] {
				if err := visit(target); err != nil {
					return err
				}
			}
		}
		delete(visiting, t.ID)
		visited[t.ID] = true
		return nil
	}

	for _, t := range g.tasks {
		if !visited[t.ID] {
			if err := visit(t); err != nil {
				return err
			}
		}
	}
	return nil
}

// topoOrder computes a deterministic topological order with Kahn's
// algorithm, keeping the ready queue sorted. Only called after cycle
// detection has passed, so every task ends up in the order.
func (g *Graph) topoOrder() []string {
	inDegree := make(map[string]int, len(g.tasks))
	dependents := make(map[string][]string, len(g.tasks))
	for id, t := range g.tasks {
		inDegree[id] = len(t.Dependencies)
		for _, dep := range t.Dependencies {
			dependents[dep.TargetID] = append(dependents[dep.TargetID], id)
		}
	}

	var queue []string
	for id := range g.tasks {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	order := make([]string, 0, len(g.tasks))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		var newReady []string
		for _, dependent := range dependents[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				newReady = append(newReady, dependent)
			}
		}
		sort.Strings(newReady)
		queue = append(queue, newReady...)
	}

	return order
}
