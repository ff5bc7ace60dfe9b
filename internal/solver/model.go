package solver

import "fmt"

// IntVar is a bounded integer decision variable.
type IntVar struct {
	idx  int
	lb   int
	ub   int
	name string
}

// Name returns the variable's name as given at creation time.
func (v *IntVar) Name() string { return v.name }

// Interval couples a start and an end variable with a fixed size, enforcing
// end = start + size. An interval is active over [start, end).
type Interval struct {
	start *IntVar
	end   *IntVar
	size  int
	name  string
}

// Start returns the interval's start variable.
func (iv *Interval) Start() *IntVar { return iv.start }

// End returns the interval's end variable.
func (iv *Interval) End() *IntVar { return iv.end }

// precedence is the linear inequality a >= b + offset.
type precedence struct {
	a      *IntVar
	b      *IntVar
	offset int
}

// cumulative bounds the summed demand of overlapping intervals by a capacity.
type cumulative struct {
	capacity  int
	intervals []*Interval
	demands   []int
}

// maxEquality ties a target variable to the maximum of a set of variables.
type maxEquality struct {
	target *IntVar
	vars   []*IntVar
}

// Model is a collection of variables and constraints to be solved.
// The zero value is not usable; create one with NewModel.
type Model struct {
	vars        []*IntVar
	intervals   []*Interval
	precedences []precedence
	cumulatives []cumulative
	maxEqs      []maxEquality
	objective   *IntVar
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{}
}

// NewIntVar creates an integer variable bounded to [lb, ub].
func (m *Model) NewIntVar(lb, ub int, name string) *IntVar {
	if lb > ub {
		panic(fmt.Sprintf("solver: variable %q has lb %d > ub %d", name, lb, ub))
	}
	v := &IntVar{idx: len(m.vars), lb: lb, ub: ub, name: name}
	m.vars = append(m.vars, v)
	return v
}

// NewInterval creates an interval of the given fixed size over the start and
// end variables, enforcing end = start + size.
func (m *Model) NewInterval(start, end *IntVar, size int, name string) *Interval {
	if size < 0 {
		panic(fmt.Sprintf("solver: interval %q has negative size %d", name, size))
	}
	iv := &Interval{start: start, end: end, size: size, name: name}
	m.intervals = append(m.intervals, iv)
	return iv
}

// AddPrecedence adds the constraint a >= b + offset. A negative offset
// permits a to precede b by up to |offset|.
func (m *Model) AddPrecedence(a, b *IntVar, offset int) {
	m.precedences = append(m.precedences, precedence{a: a, b: b, offset: offset})
}

// AddLessOrEqual constrains v <= bound by tightening its upper bound.
func (m *Model) AddLessOrEqual(v *IntVar, bound int) {
	if bound < v.ub {
		v.ub = bound
	}
}

// AddMaxEquality constrains target to equal the maximum of vars.
func (m *Model) AddMaxEquality(target *IntVar, vars []*IntVar) {
	m.maxEqs = append(m.maxEqs, maxEquality{target: target, vars: vars})
}

// AddCumulative constrains the summed demand of intervals active at any one
// instant to at most capacity. demands[i] is the fixed demand of
// intervals[i] over its whole active span.
func (m *Model) AddCumulative(capacity int, intervals []*Interval, demands []int) {
	if len(intervals) != len(demands) {
		panic(fmt.Sprintf("solver: cumulative with %d intervals but %d demands", len(intervals), len(demands)))
	}
	m.cumulatives = append(m.cumulatives, cumulative{capacity: capacity, intervals: intervals, demands: demands})
}

// Minimize sets the objective to minimizing v.
func (m *Model) Minimize(v *IntVar) {
	m.objective = v
}
