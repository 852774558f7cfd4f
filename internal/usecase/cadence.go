package usecase

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/gitgrade/internal/domain"
)

// commitIntervalMedianHours returns the median gap between consecutive dated
// commits, rounded to two decimals. It needs at least two dated commits.
func commitIntervalMedianHours(commits []domain.Commit) (float64, bool) {
	times := make([]time.Time, 0, len(commits))
	for _, c := range commits {
		if !c.AuthoredAt.IsZero() {
			times = append(times, c.AuthoredAt)
		}
	}
	if len(times) < 2 {
		return 0, false
	}
	sort.Slice(times, func(i, j int) bool { return times[i].After(times[j]) })

	intervals := make(stats.Float64Data, 0, len(times)-1)
	for i := 1; i < len(times); i++ {
		intervals = append(intervals, times[i-1].Sub(times[i]).Hours())
	}
	median, err := intervals.Median()
	if err != nil {
		return 0, false
	}
	rounded, err := stats.Round(median, 2)
	if err != nil {
		return 0, false
	}
	return rounded, true
}
