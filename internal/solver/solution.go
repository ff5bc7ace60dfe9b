package solver

// Solution is a complete feasible assignment, captured at the moment the
// callback fires. It is immutable and remains valid after the solve returns.
type Solution struct {
	values    []int
	objective int
}

// Value returns the concrete value assigned to v in this solution.
func (s *Solution) Value(v *IntVar) int {
	return s.values[v.idx]
}

// Objective returns the objective value of this solution. It is zero when
// the model has no objective.
func (s *Solution) Objective() int {
	return s.objective
}
