package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/ganttsolver/internal/config"
)

func plan(tasks map[string]*config.TaskDef) *config.Plan {
	return &config.Plan{MaxResourcesInParallel: 1, Tasks: tasks}
}

func TestBuild_OrderRespectsDependencies(t *testing.T) {
	t.Parallel()

	// d -> b -> a, c -> a, e independent.
	g, err := Build(context.Background(), plan(map[string]*config.TaskDef{
		"a": {ID: "a", Duration: 1},
		"b": {ID: "b", Duration: 1, Dependencies: []config.DependencyDef{{ProjectID: "a"}}},
		"c": {ID: "c", Duration: 1, Dependencies: []config.DependencyDef{{ProjectID: "a", LagTime: -1}}},
		"d": {ID: "d", Duration: 1, Dependencies: []config.DependencyDef{{ProjectID: "b", LagTime: 2}}},
		"e": {ID: "e", Duration: 1},
	}))
	require.NoError(t, err)
	require.Equal(t, 5, g.Len())

	order := g.Order()
	require.Len(t, order, 5)

	position := make(map[string]int, len(order))
	for i, id := range order {
		position[id] = i
	}
	for _, id := range order {
		task, ok := g.Task(id)
		require.True(t, ok)
		for _, dep := range task.Dependencies {
			assert.Less(t, position[dep.TargetID], position[id],
				"task %q must come after its dependency %q", id, dep.TargetID)
		}
	}

	// Lags are carried through onto the edges.
	c, _ := g.Task("c")
	require.Len(t, c.Dependencies, 1)
	assert.Equal(t, -1, c.Dependencies[0].Lag)
}

func TestBuild_Deterministic(t *testing.T) {
	t.Parallel()

	defs := map[string]*config.TaskDef{
		"z": {ID: "z", Duration: 1},
		"m": {ID: "m", Duration: 1},
		"a": {ID: "a", Duration: 1},
	}
	first, err := Build(context.Background(), plan(defs))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "m", "z"}, first.Order())

	for i := 0; i < 10; i++ {
		g, err := Build(context.Background(), plan(defs))
		require.NoError(t, err)
		assert.Equal(t, first.Order(), g.Order())
	}
}

func TestBuild_UnknownDependency(t *testing.T) {
	t.Parallel()

	_, err := Build(context.Background(), plan(map[string]*config.TaskDef{
		"a": {ID: "a", Duration: 1, Dependencies: []config.DependencyDef{{ProjectID: "ghost"}}},
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownDependency)
}

func TestBuild_TwoCycle(t *testing.T) {
	t.Parallel()

	_, err := Build(context.Background(), plan(map[string]*config.TaskDef{
		"x": {ID: "x", Duration: 1, Dependencies: []config.DependencyDef{{ProjectID: "y"}}},
		"y": {ID: "y", Duration: 1, Dependencies: []config.DependencyDef{{ProjectID: "x"}}},
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycle)
}

func TestBuild_SelfCycle(t *testing.T) {
	t.Parallel()

	_, err := Build(context.Background(), plan(map[string]*config.TaskDef{
		"a": {ID: "a", Duration: 1, Dependencies: []config.DependencyDef{{ProjectID: "a"}}},
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycle)
}

func TestBuild_LongerCycle(t *testing.T) {
	t.Parallel()

	_, err := Build(context.Background(), plan(map[string]*config.TaskDef{
		"a": {ID: "a", Duration: 1, Dependencies: []config.DependencyDef{{ProjectID: "c"}}},
		"b": {ID: "b", Duration: 1, Dependencies: []config.DependencyDef{{ProjectID: "a"}}},
		"c": {ID: "c", Duration: 1, Dependencies: []config.DependencyDef{{ProjectID: "b"}}},
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycle)
}
