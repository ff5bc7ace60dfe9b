package app

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/vk/ganttsolver/internal/schedule"
	"github.com/vk/ganttsolver/internal/solver"
)

// Sprint color functions for building styled strings.
var (
	bold = color.New(color.Bold).SprintFunc()
	dim  = color.New(color.Faint).SprintFunc()
	cyan = color.New(color.FgCyan).SprintFunc()
)

// printSolution writes a terminal-friendly summary of one retained solution.
func (a *App) printSolution(n int, sol *schedule.ScheduleSolution, status solver.Status, recordPath, chartPath string) {
	quality := "feasible"
	if n == 1 && status == solver.StatusOptimal {
		quality = "optimal"
	}
	fmt.Fprintf(a.outW, "%s %s\n",
		bold(fmt.Sprintf("Solution %d:", n)),
		fmt.Sprintf("total duration %d (%s)", sol.TotalDuration, quality))
	for _, task := range sol.Tasks {
		fmt.Fprintf(a.outW, "  %s: %d -> %d %s\n",
			cyan(task.Name), task.Start, task.End,
			dim(fmt.Sprintf("(resources: %d)", task.NumResources)))
	}
	fmt.Fprintf(a.outW, "  %s\n\n", dim(fmt.Sprintf("wrote %s, %s", recordPath, chartPath)))
}
