package solver

import (
	"context"
	"math"
	"time"

	"github.com/vk/ganttsolver/internal/ctxlog"
)

// Status is the terminal state of a solve call.
type Status int

const (
	// StatusUnknown means the time budget ran out before any feasible
	// assignment was found.
	StatusUnknown Status = iota
	// StatusOptimal means the search space was exhausted and the best
	// reported solution is provably optimal.
	StatusOptimal
	// StatusFeasible means the time budget ran out after at least one
	// feasible assignment was found.
	StatusFeasible
	// StatusInfeasible means the search proved that no assignment
	// satisfies all constraints.
	StatusInfeasible
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	default:
		return "UNKNOWN"
	}
}

// DefaultTimeLimit is the search budget used when none is configured.
const DefaultTimeLimit = 30 * time.Second

// Solver runs a time-limited branch-and-bound search over a model.
type Solver struct {
	// TimeLimit is the wall-clock search budget. Zero or negative selects
	// DefaultTimeLimit; the budget is always finite.
	TimeLimit time.Duration
}

// Solve searches the model's feasible region until it is exhausted or the
// time budget elapses. onSolution, when non-nil, is invoked synchronously on
// every feasible assignment found that improves on the incumbent objective;
// it may be invoked zero, one, or many times.
func (s *Solver) Solve(ctx context.Context, m *Model, onSolution func(*Solution)) Status {
	logger := ctxlog.FromContext(ctx)
	limit := s.TimeLimit
	if limit <= 0 {
		limit = DefaultTimeLimit
	}

	sr := newSearch(ctx, m, time.Now().Add(limit), onSolution)
	if !sr.propagate() {
		logger.Debug("Solve: bounds propagation proved infeasibility.")
		return StatusInfeasible
	}
	sr.prepare()

	completed := sr.dive(0, math.MinInt)

	var status Status
	switch {
	case sr.found > 0 && completed:
		status = StatusOptimal
	case sr.found > 0:
		status = StatusFeasible
	case completed:
		status = StatusInfeasible
	default:
		status = StatusUnknown
	}
	logger.Debug("Solve: search finished.",
		"status", status.String(),
		"solutions", sr.found,
		"exhausted", completed,
	)
	return status
}

// placement locates one interval's demand within one cumulative constraint.
type placement struct {
	cum    int
	demand int
}

// search carries all mutable state for a single solve call.
type search struct {
	ctx      context.Context
	m        *Model
	deadline time.Time
	callback func(*Solution)

	// Effective bounds, tightened by propagation.
	lb []int
	ub []int

	values   []int
	assigned []bool

	// usage[c][t] is the demand committed at instant t for cumulative c.
	usage [][]int
	// placements[k] lists the cumulative memberships of interval k.
	placements [][]placement
	// incoming[v] lists precedences whose left-hand side is variable v.
	incoming [][]precedence

	// objMember[v] reports whether v feeds the minimized objective through
	// a max-equality, making it eligible for bound pruning.
	objMember []bool
	// remainLB[i] is the largest lower bound among objective-member end
	// variables of intervals i..n-1.
	remainLB []int

	best      int
	bestFound bool
	found     int
}

func newSearch(ctx context.Context, m *Model, deadline time.Time, callback func(*Solution)) *search {
	n := len(m.vars)
	sr := &search{
		ctx:      ctx,
		m:        m,
		deadline: deadline,
		callback: callback,
		lb:       make([]int, n),
		ub:       make([]int, n),
		values:   make([]int, n),
		assigned: make([]bool, n),
	}
	for i, v := range m.vars {
		sr.lb[i] = v.lb
		sr.ub[i] = v.ub
	}
	return sr
}

// propagate tightens the effective bounds to a fixpoint (with an iteration
// cap) and reports false if any variable's domain empties.
func (sr *search) propagate() bool {
	raise := func(idx, v int, changed *bool) {
		if v > sr.lb[idx] {
			sr.lb[idx] = v
			*changed = true
		}
	}
	lower := func(idx, v int, changed *bool) {
		if v < sr.ub[idx] {
			sr.ub[idx] = v
			*changed = true
		}
	}

	changed := true
	for iter := 0; changed && iter <= 2*len(sr.m.vars)+2; iter++ {
		changed = false
		for _, iv := range sr.m.intervals {
			s, e := iv.start.idx, iv.end.idx
			raise(e, sr.lb[s]+iv.size, &changed)
			lower(e, sr.ub[s]+iv.size, &changed)
			raise(s, sr.lb[e]-iv.size, &changed)
			lower(s, sr.ub[e]-iv.size, &changed)
		}
		for _, p := range sr.m.precedences {
			raise(p.a.idx, sr.lb[p.b.idx]+p.offset, &changed)
			lower(p.b.idx, sr.ub[p.a.idx]-p.offset, &changed)
		}
		for _, eq := range sr.m.maxEqs {
			for _, v := range eq.vars {
				raise(eq.target.idx, sr.lb[v.idx], &changed)
				lower(v.idx, sr.ub[eq.target.idx], &changed)
			}
		}
	}

	for i := range sr.lb {
		if sr.lb[i] > sr.ub[i] {
			return false
		}
	}
	return true
}

// prepare builds the search-time lookup tables from the propagated bounds.
func (sr *search) prepare() {
	n := len(sr.m.vars)

	// Every variable starts at its lower bound; fixed variables are thereby
	// already assigned their only value.
	for i := range sr.values {
		sr.values[i] = sr.lb[i]
		sr.assigned[i] = sr.lb[i] == sr.ub[i]
	}

	sr.incoming = make([][]precedence, n)
	for _, p := range sr.m.precedences {
		sr.incoming[p.a.idx] = append(sr.incoming[p.a.idx], p)
	}

	sr.objMember = make([]bool, n)
	if sr.m.objective != nil {
		for _, eq := range sr.m.maxEqs {
			if eq.target != sr.m.objective {
				continue
			}
			for _, v := range eq.vars {
				sr.objMember[v.idx] = true
			}
		}
	}

	sr.placements = make([][]placement, len(sr.m.intervals))
	sr.usage = make([][]int, len(sr.m.cumulatives))
	for c, cum := range sr.m.cumulatives {
		horizon := 0
		for _, iv := range cum.intervals {
			if sr.ub[iv.end.idx] > horizon {
				horizon = sr.ub[iv.end.idx]
			}
		}
		sr.usage[c] = make([]int, horizon+1)
		for k, iv := range cum.intervals {
			if cum.demands[k] == 0 {
				continue
			}
			for i, model := range sr.m.intervals {
				if model == iv {
					sr.placements[i] = append(sr.placements[i], placement{cum: c, demand: cum.demands[k]})
					break
				}
			}
		}
	}

	sr.remainLB = make([]int, len(sr.m.intervals)+1)
	sr.remainLB[len(sr.m.intervals)] = math.MinInt
	for i := len(sr.m.intervals) - 1; i >= 0; i-- {
		sr.remainLB[i] = sr.remainLB[i+1]
		iv := sr.m.intervals[i]
		if sr.objMember[iv.end.idx] && sr.lb[iv.end.idx] > sr.remainLB[i] {
			sr.remainLB[i] = sr.lb[iv.end.idx]
		}
	}
}

// dive branches on the start time of interval i. curMax is the largest end
// value committed so far among objective members. It returns false only when
// the time budget forces the search to stop.
func (sr *search) dive(i int, curMax int) bool {
	if time.Now().After(sr.deadline) || sr.ctx.Err() != nil {
		return false
	}
	if sr.bestFound && (curMax >= sr.best || sr.remainLB[i] >= sr.best) {
		return true // cannot improve on the incumbent in this subtree
	}
	if i == len(sr.m.intervals) {
		sr.leaf()
		return true
	}

	iv := sr.m.intervals[i]
	sIdx, eIdx := iv.start.idx, iv.end.idx

	lo := sr.lb[sIdx]
	for _, p := range sr.incoming[sIdx] {
		if sr.assigned[p.b.idx] && sr.values[p.b.idx]+p.offset > lo {
			lo = sr.values[p.b.idx] + p.offset
		}
	}

	for st := lo; st <= sr.ub[sIdx]; st++ {
		end := st + iv.size
		if end > sr.ub[eIdx] {
			break
		}
		if sr.bestFound && sr.objMember[eIdx] && end >= sr.best {
			break // later starts only push the makespan further
		}
		if sr.overloads(i, st, end) {
			continue
		}

		sr.place(i, sIdx, eIdx, st, end, 1)
		next := curMax
		if sr.objMember[eIdx] && end > next {
			next = end
		}
		ok := sr.dive(i+1, next)
		sr.place(i, sIdx, eIdx, st, end, -1)
		sr.assigned[sIdx] = sr.lb[sIdx] == sr.ub[sIdx]
		sr.assigned[eIdx] = sr.lb[eIdx] == sr.ub[eIdx]
		if !ok {
			return false
		}
	}
	return true
}

// overloads reports whether placing interval i at [st, end) would exceed any
// cumulative capacity it participates in.
func (sr *search) overloads(i, st, end int) bool {
	for _, pl := range sr.placements[i] {
		capacity := sr.m.cumulatives[pl.cum].capacity
		profile := sr.usage[pl.cum]
		for t := st; t < end; t++ {
			if profile[t]+pl.demand > capacity {
				return true
			}
		}
	}
	return false
}

// place commits (sign=1) or retracts (sign=-1) interval i at [st, end).
func (sr *search) place(i, sIdx, eIdx, st, end, sign int) {
	sr.values[sIdx] = st
	sr.values[eIdx] = end
	sr.assigned[sIdx] = true
	sr.assigned[eIdx] = true
	for _, pl := range sr.placements[i] {
		profile := sr.usage[pl.cum]
		for t := st; t < end; t++ {
			profile[t] += sign * pl.demand
		}
	}
}

// leaf validates a complete assignment and, when it improves the incumbent,
// reports it through the callback.
func (sr *search) leaf() {
	vals := make([]int, len(sr.values))
	copy(vals, sr.values)

	// Resolve max-equality targets from their members.
	for _, eq := range sr.m.maxEqs {
		max := math.MinInt
		for _, v := range eq.vars {
			if vals[v.idx] > max {
				max = vals[v.idx]
			}
		}
		if len(eq.vars) == 0 {
			max = sr.lb[eq.target.idx]
		}
		if max < sr.lb[eq.target.idx] || max > sr.ub[eq.target.idx] {
			return
		}
		vals[eq.target.idx] = max
	}

	// Authoritative precedence check; branching bounds are only a filter.
	for _, p := range sr.m.precedences {
		if vals[p.a.idx] < vals[p.b.idx]+p.offset {
			return
		}
	}

	objective := 0
	if sr.m.objective != nil {
		objective = vals[sr.m.objective.idx]
		if sr.bestFound && objective >= sr.best {
			return
		}
		sr.best = objective
		sr.bestFound = true
	}
	sr.found++
	if sr.callback != nil {
		sr.callback(&Solution{values: vals, objective: objective})
	}
}
