// Package gantt renders a schedule's bar list into a plain-text horizontal
// timeline, one artifact per retained solution.
package gantt

import (
	"fmt"
	"os"
	"strings"

	"github.com/vk/ganttsolver/internal/schedule"
)

// Render draws one bar row per task over a time axis of totalDuration
// columns. Bars arrive pre-ordered (descending start time); rendering keeps
// that order.
func Render(bars []schedule.Bar, totalDuration int) string {
	labelWidth := 0
	for _, bar := range bars {
		if len(bar.Label) > labelWidth {
			labelWidth = len(bar.Label)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Gantt chart (total duration: %d)\n\n", totalDuration)
	for _, bar := range bars {
		row := strings.Repeat(".", bar.Start) +
			strings.Repeat("#", bar.Duration) +
			strings.Repeat(".", totalDuration-bar.Start-bar.Duration)
		fmt.Fprintf(&b, "%-*s  %s  [%d,%d) resources=%d\n",
			labelWidth, bar.Label, row, bar.Start, bar.Start+bar.Duration, bar.NumResources)
	}
	fmt.Fprintf(&b, "%-*s  %s\n", labelWidth, "", axis(totalDuration))
	return b.String()
}

// axis builds the time scale under the bars: a tick every five units.
func axis(totalDuration int) string {
	ticks := make([]byte, totalDuration)
	for i := range ticks {
		if i%5 == 0 {
			ticks[i] = '|'
		} else {
			ticks[i] = '-'
		}
	}
	return string(ticks)
}

// WriteFile renders the bars and persists the artifact at path.
func WriteFile(path string, bars []schedule.Bar, totalDuration int) error {
	if err := os.WriteFile(path, []byte(Render(bars, totalDuration)), 0o644); err != nil {
		return fmt.Errorf("failed to write gantt chart %s: %w", path, err)
	}
	return nil
}
