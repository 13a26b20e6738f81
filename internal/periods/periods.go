// Package periods builds the ordered period sets the comparison sitemaps
// enumerate: calendar years and fiscal quarters.
package periods

import (
	"fmt"
	"time"
)

// Years returns calendar-year labels from first through last inclusive,
// oldest first. An inverted range yields an empty set.
func Years(first, last int) []string {
	if last < first {
		return nil
	}

	labels := make([]string, 0, last-first+1)
	for y := first; y <= last; y++ {
		labels = append(labels, fmt.Sprintf("%d", y))
	}
	return labels
}

// Quarters returns fiscal-quarter labels ("2024-Q1") from firstYear Q1
// through lastYear lastQuarter inclusive, oldest first.
func Quarters(firstYear, lastYear, lastQuarter int) []string {
	if lastYear < firstYear {
		return nil
	}
	if lastQuarter < 1 {
		lastQuarter = 1
	}
	if lastQuarter > 4 {
		lastQuarter = 4
	}

	labels := make([]string, 0, (lastYear-firstYear+1)*4)
	for y := firstYear; y <= lastYear; y++ {
		maxQ := 4
		if y == lastYear {
			maxQ = lastQuarter
		}
		for q := 1; q <= maxQ; q++ {
			labels = append(labels, fmt.Sprintf("%d-Q%d", y, q))
		}
	}
	return labels
}

// CurrentQuarter returns the calendar year and quarter containing now.
func CurrentQuarter(now time.Time) (year, quarter int) {
	return now.Year(), (int(now.Month())-1)/3 + 1
}
