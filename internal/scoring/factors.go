package scoring

import (
	"math"
	"time"
)

// baseDependencyScore is the flat score for tasks that block nothing,
// and for ad-hoc tasks that carry no id.
const baseDependencyScore = 20.0

// DaysUntil returns the number of whole calendar days from today until
// due. Negative when due is in the past. Time-of-day and timezone are
// ignored; both arguments are treated as calendar dates.
func DaysUntil(due, today time.Time) int {
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(t).Hours() / 24)
}

// UrgencyScore converts a due date into a 0–100 urgency value.
// Overdue tasks climb from 95 toward 100 (saturating after 2.5 overdue
// days); future tasks decay in piecewise bands. The jumps at the band
// edges are intentional — they mark category changes.
func UrgencyScore(due, today time.Time) float64 {
	days := DaysUntil(due, today)
	switch {
	case days < 0:
		return math.Min(100, 95+2*float64(-days))
	case days == 0:
		return 95
	case days <= 7:
		return 90 - 3*float64(days)
	case days <= 30:
		return 65 - 1.2*float64(days-7)
	default:
		return math.Max(10, 35/(1+float64(days-30)/30))
	}
}

// ImportanceScore maps the 1–10 importance rating onto 0–100 with a
// convex curve so the top of the scale is emphasised: 10 → 100, 1 → ~1.6.
func ImportanceScore(importance int) float64 {
	return math.Pow(float64(importance), 1.8) / math.Pow(10, 1.8) * 100
}

// EffortScore favours quick wins. Piecewise-linear down to 16 hours,
// then a logarithmic tail with a floor of 10.
func EffortScore(estimatedHours float64) float64 {
	h := estimatedHours
	switch {
	case h <= 1:
		return 100 - 10*h
	case h <= 4:
		return 90 - 6.67*(h-1)
	case h <= 8:
		return 70 - 5*(h-4)
	case h <= 16:
		return 50 - 2.5*(h-8)
	default:
		return math.Max(10, 30-5*math.Log(h-15))
	}
}

// DependencyScore rewards tasks that block others. The n^1.5 term is
// subtracted before the clamp, so a very large fan-out can score lower
// than a moderate one; that tail is part of the contract and must not
// be smoothed out.
func DependencyScore(taskID int64, all []Task) float64 {
	blocked := 0
	for _, t := range all {
		for _, dep := range t.Dependencies {
			if dep == taskID {
				blocked++
				break
			}
		}
	}
	if blocked == 0 {
		return baseDependencyScore
	}
	n := float64(blocked)
	return math.Min(100, 20+25*n-math.Pow(n, 1.5))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
