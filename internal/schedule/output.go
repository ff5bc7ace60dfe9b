package schedule

import "sort"

// Bars shapes a solution for a horizontal-bar timeline: one bar per task,
// ordered by descending start time for display. Rendering belongs to the
// chart renderer; this only prepares its input.
func Bars(sol *ScheduleSolution) []Bar {
	bars := make([]Bar, 0, len(sol.Tasks))
	for _, task := range sol.Tasks {
		bars = append(bars, Bar{
			Label:        task.Name,
			NumResources: task.NumResources,
			Start:        task.Start,
			Duration:     task.End - task.Start,
		})
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Start > bars[j].Start })
	return bars
}
