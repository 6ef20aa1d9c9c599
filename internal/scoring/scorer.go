package scoring

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

// Task is an immutable scoring input. ID may be nil for ad-hoc scoring
// requests; such tasks take the flat dependency base score.
type Task struct {
	ID             *int64  `json:"task_id,omitempty"`
	Title          string  `json:"title"`
	DueDate        time.Time `json:"due_date"`
	EstimatedHours float64 `json:"estimated_hours"`
	Importance     int     `json:"importance"`
	Dependencies   []int64 `json:"dependencies,omitempty"`
}

// PriorityLevel buckets a priority score for display.
type PriorityLevel string

const (
	LevelHigh   PriorityLevel = "High"
	LevelMedium PriorityLevel = "Medium"
	LevelLow    PriorityLevel = "Low"
)

// ComponentScores breaks the priority score into its four factors,
// each on the 0–100 scale.
type ComponentScores struct {
	Urgency      float64 `json:"urgency"`
	Importance   float64 `json:"importance"`
	Effort       float64 `json:"effort"`
	Dependencies float64 `json:"dependencies"`
}

// Result captures the complete scoring output for a single task.
type Result struct {
	PriorityScore   float64         `json:"priority_score"`
	PriorityLevel   PriorityLevel   `json:"priority_level"`
	ComponentScores ComponentScores `json:"component_scores"`
	Explanation     string          `json:"explanation"`
}

// RankedTask pairs a task with its scoring result.
type RankedTask struct {
	Task   Task   `json:"task"`
	Result Result `json:"result"`
}

// Scorer computes weighted priority scores for batches of tasks using a
// named strategy. It holds no mutable state; a single Scorer is safe to
// share across goroutines.
type Scorer struct {
	strategy string
	weights  WeightSet
	logger   *slog.Logger

	// Now supplies the wall clock for urgency day counts. Tests pin it
	// for determinism.
	Now func() time.Time
}

// NewScorer resolves the strategy name and returns a Scorer. Unknown
// names yield an InvalidStrategyError enumerating the valid choices.
func NewScorer(strategy string, logger *slog.Logger) (*Scorer, error) {
	weights, err := WeightsFor(strategy)
	if err != nil {
		return nil, err
	}
	return &Scorer{
		strategy: strategy,
		weights:  weights,
		logger:   logger,
		Now:      time.Now,
	}, nil
}

// Strategy returns the active strategy name.
func (s *Scorer) Strategy() string { return s.strategy }

// Weights returns the active weight set.
func (s *Scorer) Weights() WeightSet { return s.weights }

// Score computes the priority result for one task against the batch.
// It does not check for cycles: callers that care must gate on
// DetectCycles first.
func (s *Scorer) Score(task Task, all []Task) Result {
	today := s.Now()

	urgency := UrgencyScore(task.DueDate, today)
	importance := ImportanceScore(task.Importance)
	effort := EffortScore(task.EstimatedHours)
	dependency := baseDependencyScore
	if task.ID != nil {
		dependency = DependencyScore(*task.ID, all)
	}

	score := urgency*s.weights.Urgency +
		importance*s.weights.Importance +
		effort*s.weights.Effort +
		dependency*s.weights.Dependencies

	return Result{
		PriorityScore: round2(score),
		PriorityLevel: levelFor(score),
		ComponentScores: ComponentScores{
			Urgency:      round2(urgency),
			Importance:   round2(importance),
			Effort:       round2(effort),
			Dependencies: round2(dependency),
		},
		Explanation: explain(task, today, importance, dependency),
	}
}

// Rank scores every task against the whole batch and sorts descending
// by priority score. The sort is stable, so equal scores keep their
// input order.
func (s *Scorer) Rank(tasks []Task) []RankedTask {
	ranked := make([]RankedTask, len(tasks))
	for i, t := range tasks {
		ranked[i] = RankedTask{Task: t, Result: s.Score(t, tasks)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.PriorityScore > ranked[j].Result.PriorityScore
	})
	return ranked
}

func levelFor(score float64) PriorityLevel {
	switch {
	case score >= 80:
		return LevelHigh
	case score >= 60:
		return LevelMedium
	default:
		return LevelLow
	}
}

// explain builds the human-readable reason string from the rules that
// apply. Rules are keyed off raw inputs plus the importance and
// dependency component scores.
func explain(task Task, today time.Time, importanceScore, dependencyScore float64) string {
	var parts []string

	days := DaysUntil(task.DueDate, today)
	switch {
	case days < 0:
		parts = append(parts, fmt.Sprintf("OVERDUE by %d days", -days))
	case days == 0:
		parts = append(parts, "Due TODAY")
	case days <= 3:
		parts = append(parts, fmt.Sprintf("Due in %d days", days))
	case days <= 7:
		parts = append(parts, "Due this week")
	}

	switch {
	case importanceScore >= 80:
		parts = append(parts, "High importance")
	case importanceScore >= 60:
		parts = append(parts, "Medium importance")
	}

	switch {
	case task.EstimatedHours <= 1:
		parts = append(parts, "Quick win (< 1 hour)")
	case task.EstimatedHours <= 4:
		parts = append(parts, fmt.Sprintf("Short task (%gh)", task.EstimatedHours))
	}

	switch {
	case dependencyScore >= 70:
		parts = append(parts, "Blocks multiple tasks")
	case dependencyScore >= 45:
		parts = append(parts, "Blocks other tasks")
	}

	if len(parts) == 0 {
		return "Standard priority task"
	}
	return strings.Join(parts, " | ")
}
