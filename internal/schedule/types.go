package schedule

// ProjectSchedule is one task's concrete placement within a solution.
type ProjectSchedule struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	NumResources int    `json:"num_resources"`
	Start        int    `json:"start"`
	End          int    `json:"end"`
}

// ScheduleSolution is one complete feasible schedule. It doubles as the
// serializable record written per retained solution: total duration plus
// every task's placement, ordered by task id.
type ScheduleSolution struct {
	TotalDuration int               `json:"total_duration"`
	Tasks         []ProjectSchedule `json:"tasks"`
}

// Bar is one row of a horizontal gantt timeline: a label, the bar's resource
// magnitude, and its offset and length along the time axis.
type Bar struct {
	Label        string
	NumResources int
	Start        int
	Duration     int
}
