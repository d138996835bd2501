// Package analytics derives the display-ready mood series from raw mood
// entries: window filtering, summary statistics, and per-entry chart points.
package analytics

import (
	"time"

	"github.com/mindfulmate/backend/internal/analysis/mood"
	"github.com/mindfulmate/backend/internal/model/chat"
)

// Window selects how far back the mood series reaches.
type Window string

const (
	WindowAll   Window = "all"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// ParseWindow resolves a query-string window value. Empty selects all.
func ParseWindow(raw string) (Window, bool) {
	switch Window(raw) {
	case WindowAll, "":
		return WindowAll, true
	case WindowWeek:
		return WindowWeek, true
	case WindowMonth:
		return WindowMonth, true
	default:
		return "", false
	}
}

func (w Window) days() int {
	switch w {
	case WindowWeek:
		return 7
	case WindowMonth:
		return 30
	default:
		return 0
	}
}

// Filter returns the entries whose age at now is within the window. The
// bound is inclusive: an entry exactly at the cutoff stays in.
func Filter(entries []chat.MoodEntry, window Window, now time.Time) []chat.MoodEntry {
	days := window.days()
	if days == 0 {
		return entries
	}

	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)
	filtered := make([]chat.MoodEntry, 0, len(entries))
	for _, entry := range entries {
		if !entry.Timestamp.Before(cutoff) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// Average is the arithmetic mean of the mood scores. An empty sequence
// averages to 0; empty history is a displayable state, not an error.
func Average(entries []chat.MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}

	var total float64
	for _, entry := range entries {
		total += mood.Score(entry.Mood)
	}
	return total / float64(len(entries))
}

// Point is one chart sample.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Mood  string  `json:"mood"`
}

// chartTimeLayout matches the web client's 'MMM d, HH:mm' axis labels.
const chartTimeLayout = "Jan 2, 15:04"

// ChartPoints maps every entry to its own point in timestamp order. Entries
// on the same day are not binned together.
func ChartPoints(entries []chat.MoodEntry) []Point {
	points := make([]Point, 0, len(entries))
	for _, entry := range entries {
		points = append(points, Point{
			Label: entry.Timestamp.Format(chartTimeLayout),
			Value: mood.Score(entry.Mood),
			Mood:  entry.Mood,
		})
	}
	return points
}

// Summary is the payload of the analytics endpoint.
type Summary struct {
	Window  Window  `json:"window"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Points  []Point `json:"points"`
}

// Summarize filters the entries against now and derives count, average and
// chart points over the filtered subsequence.
func Summarize(entries []chat.MoodEntry, window Window, now time.Time) Summary {
	filtered := Filter(entries, window, now)
	return Summary{
		Window:  window,
		Count:   len(filtered),
		Average: Average(filtered),
		Points:  ChartPoints(filtered),
	}
}
