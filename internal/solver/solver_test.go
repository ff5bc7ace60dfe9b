package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scheduleModel is a small helper mirroring how the schedule package builds
// models: one interval per task, a shared cumulative, minimize the max end.
type scheduleModel struct {
	m         *Model
	starts    []*IntVar
	ends      []*IntVar
	intervals []*Interval
	makespan  *IntVar
}

type taskSpec struct {
	duration int
	demand   int
}

func newScheduleModel(t *testing.T, tasks []taskSpec, capacity int) *scheduleModel {
	t.Helper()
	horizon := 0
	for _, task := range tasks {
		horizon += task.duration
	}

	sm := &scheduleModel{m: NewModel()}
	demands := make([]int, len(tasks))
	for i, task := range tasks {
		start := sm.m.NewIntVar(0, horizon, "start")
		end := sm.m.NewIntVar(0, horizon, "end")
		sm.starts = append(sm.starts, start)
		sm.ends = append(sm.ends, end)
		sm.intervals = append(sm.intervals, sm.m.NewInterval(start, end, task.duration, "interval"))
		demands[i] = task.demand
	}
	sm.m.AddCumulative(capacity, sm.intervals, demands)

	sm.makespan = sm.m.NewIntVar(0, horizon, "makespan")
	sm.m.AddMaxEquality(sm.makespan, sm.ends)
	sm.m.Minimize(sm.makespan)
	return sm
}

func solve(t *testing.T, sm *scheduleModel) (Status, []*Solution) {
	t.Helper()
	var solutions []*Solution
	status := (&Solver{TimeLimit: 10 * time.Second}).Solve(context.Background(), sm.m, func(s *Solution) {
		solutions = append(solutions, s)
	})
	return status, solutions
}

func TestSolve_SerializedByCapacity(t *testing.T) {
	t.Parallel()

	// Two independent tasks competing for a single resource must run one
	// after the other.
	sm := newScheduleModel(t, []taskSpec{{duration: 3, demand: 1}, {duration: 2, demand: 1}}, 1)
	status, solutions := solve(t, sm)

	require.Equal(t, StatusOptimal, status)
	require.NotEmpty(t, solutions)
	best := solutions[len(solutions)-1]
	assert.Equal(t, 5, best.Objective())
	assert.Equal(t, 5, best.Value(sm.makespan))

	// The two intervals must not overlap.
	aStart, aEnd := best.Value(sm.starts[0]), best.Value(sm.ends[0])
	bStart, bEnd := best.Value(sm.starts[1]), best.Value(sm.ends[1])
	assert.True(t, aEnd <= bStart || bEnd <= aStart, "intervals overlap: [%d,%d) and [%d,%d)", aStart, aEnd, bStart, bEnd)
}

func TestSolve_ParallelWithinCapacity(t *testing.T) {
	t.Parallel()

	// Same tasks with capacity for both: full overlap, makespan is the
	// longer duration.
	sm := newScheduleModel(t, []taskSpec{{duration: 3, demand: 1}, {duration: 2, demand: 1}}, 2)
	status, solutions := solve(t, sm)

	require.Equal(t, StatusOptimal, status)
	require.NotEmpty(t, solutions)
	assert.Equal(t, 3, solutions[len(solutions)-1].Objective())
}

func TestSolve_NegativeLagPermitsOverlap(t *testing.T) {
	t.Parallel()

	// B depends on A with lag -2: B may start two time units before A ends.
	sm := newScheduleModel(t, []taskSpec{{duration: 10, demand: 1}, {duration: 2, demand: 1}}, 2)
	sm.m.AddPrecedence(sm.starts[1], sm.ends[0], -2)
	status, solutions := solve(t, sm)

	require.Equal(t, StatusOptimal, status)
	require.NotEmpty(t, solutions)
	best := solutions[len(solutions)-1]
	assert.Equal(t, 10, best.Objective())
	assert.Equal(t, 0, best.Value(sm.starts[0]))
	assert.Equal(t, 8, best.Value(sm.starts[1]))
}

func TestSolve_PositiveLagForcesGap(t *testing.T) {
	t.Parallel()

	// The horizon must absorb the mandatory three-unit gap after A.
	m := NewModel()
	aStart := m.NewIntVar(0, 10, "start_a")
	aEnd := m.NewIntVar(0, 10, "end_a")
	a := m.NewInterval(aStart, aEnd, 2, "interval_a")
	bStart := m.NewIntVar(0, 10, "start_b")
	bEnd := m.NewIntVar(0, 10, "end_b")
	b := m.NewInterval(bStart, bEnd, 1, "interval_b")
	m.AddCumulative(2, []*Interval{a, b}, []int{1, 1})
	m.AddPrecedence(bStart, aEnd, 3)
	makespan := m.NewIntVar(0, 10, "makespan")
	m.AddMaxEquality(makespan, []*IntVar{aEnd, bEnd})
	m.Minimize(makespan)

	var solutions []*Solution
	status := (&Solver{TimeLimit: 10 * time.Second}).Solve(context.Background(), m, func(s *Solution) {
		solutions = append(solutions, s)
	})

	require.Equal(t, StatusOptimal, status)
	require.NotEmpty(t, solutions)
	best := solutions[len(solutions)-1]
	assert.Equal(t, 0, best.Value(aStart))
	assert.Equal(t, 5, best.Value(bStart))
	assert.Equal(t, 6, best.Objective())
}

func TestSolve_DemandExceedsCapacity(t *testing.T) {
	t.Parallel()

	sm := newScheduleModel(t, []taskSpec{{duration: 1, demand: 2}}, 1)
	status, solutions := solve(t, sm)

	assert.Equal(t, StatusInfeasible, status)
	assert.Empty(t, solutions)
}

func TestSolve_MakespanCapInfeasible(t *testing.T) {
	t.Parallel()

	// Forced serialization needs 5 time units; a cap of 4 leaves nothing.
	sm := newScheduleModel(t, []taskSpec{{duration: 3, demand: 1}, {duration: 2, demand: 1}}, 1)
	sm.m.AddLessOrEqual(sm.makespan, 4)
	status, solutions := solve(t, sm)

	assert.Equal(t, StatusInfeasible, status)
	assert.Empty(t, solutions)
}

func TestSolve_MakespanCapSatisfiable(t *testing.T) {
	t.Parallel()

	sm := newScheduleModel(t, []taskSpec{{duration: 3, demand: 1}, {duration: 2, demand: 1}}, 1)
	sm.m.AddLessOrEqual(sm.makespan, 5)
	status, solutions := solve(t, sm)

	require.Equal(t, StatusOptimal, status)
	require.NotEmpty(t, solutions)
	assert.Equal(t, 5, solutions[len(solutions)-1].Objective())
}

func TestSolve_ObjectiveNeverIncreasesAcrossCallbacks(t *testing.T) {
	t.Parallel()

	sm := newScheduleModel(t, []taskSpec{
		{duration: 2, demand: 2},
		{duration: 3, demand: 1},
		{duration: 3, demand: 1},
		{duration: 1, demand: 2},
	}, 2)
	status, solutions := solve(t, sm)

	require.Equal(t, StatusOptimal, status)
	require.NotEmpty(t, solutions)
	for i := 1; i < len(solutions); i++ {
		assert.Less(t, solutions[i].Objective(), solutions[i-1].Objective())
	}
}

func TestSolve_EnumeratesWithoutObjective(t *testing.T) {
	t.Parallel()

	// With no objective the engine streams every feasible assignment.
	m := NewModel()
	var intervals []*Interval
	for i := 0; i < 2; i++ {
		start := m.NewIntVar(0, 1, "start")
		end := m.NewIntVar(0, 2, "end")
		intervals = append(intervals, m.NewInterval(start, end, 1, "interval"))
	}
	m.AddCumulative(2, intervals, []int{1, 1})

	count := 0
	status := (&Solver{TimeLimit: 10 * time.Second}).Solve(context.Background(), m, func(*Solution) {
		count++
	})

	assert.Equal(t, StatusOptimal, status)
	assert.Equal(t, 4, count)
}

func TestSolve_TimeBudgetExhaustedWithoutSolution(t *testing.T) {
	t.Parallel()

	sm := newScheduleModel(t, []taskSpec{{duration: 3, demand: 1}, {duration: 2, demand: 1}}, 1)
	status, solutions := solve(t, sm)
	require.Equal(t, StatusOptimal, status)
	require.NotEmpty(t, solutions)

	// A fresh model with an immediately-elapsed budget reports UNKNOWN.
	sm = newScheduleModel(t, []taskSpec{{duration: 3, demand: 1}, {duration: 2, demand: 1}}, 1)
	var called bool
	status = (&Solver{TimeLimit: time.Nanosecond}).Solve(context.Background(), sm.m, func(*Solution) {
		called = true
	})
	assert.Equal(t, StatusUnknown, status)
	assert.False(t, called)
}

func TestSolve_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sm := newScheduleModel(t, []taskSpec{{duration: 3, demand: 1}, {duration: 2, demand: 1}}, 1)
	status := (&Solver{TimeLimit: 10 * time.Second}).Solve(ctx, sm.m, nil)
	assert.Equal(t, StatusUnknown, status)
}

func TestSolve_FixedVariableValue(t *testing.T) {
	t.Parallel()

	sm := newScheduleModel(t, []taskSpec{{duration: 2, demand: 1}}, 1)
	demand := sm.m.NewIntVar(7, 7, "num_resources")
	status, solutions := solve(t, sm)

	require.Equal(t, StatusOptimal, status)
	require.NotEmpty(t, solutions)
	assert.Equal(t, 7, solutions[len(solutions)-1].Value(demand))
}

func TestStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "OPTIMAL", StatusOptimal.String())
	assert.Equal(t, "FEASIBLE", StatusFeasible.String())
	assert.Equal(t, "INFEASIBLE", StatusInfeasible.String())
	assert.Equal(t, "UNKNOWN", StatusUnknown.String())
}
