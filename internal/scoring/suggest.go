package scoring

import (
	"fmt"
	"time"
)

// DefaultSuggestionLimit is the number of suggestions returned when the
// caller does not specify one.
const DefaultSuggestionLimit = 3

// Suggestion is a top-ranked task with imperative next steps.
type Suggestion struct {
	Task        Task     `json:"task"`
	Result      Result   `json:"result"`
	Rank        int      `json:"rank"`
	ActionItems []string `json:"action_items"`
}

// Suggest ranks the batch and returns the top limit entries, each with
// two to four action items derived from rank, effort, due date, and
// dependency fan-out.
func (s *Scorer) Suggest(tasks []Task, limit int) []Suggestion {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	ranked := s.Rank(tasks)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	today := s.Now()
	suggestions := make([]Suggestion, len(ranked))
	for i, rt := range ranked {
		rank := i + 1
		suggestions[i] = Suggestion{
			Task:        rt.Task,
			Result:      rt.Result,
			Rank:        rank,
			ActionItems: actionItems(rt, rank, today),
		}
	}
	return suggestions
}

func actionItems(rt RankedTask, rank int, today time.Time) []string {
	var items []string

	if rank == 1 {
		items = append(items, "Start this task immediately")
	} else {
		items = append(items, fmt.Sprintf("Schedule this as task #%d today", rank))
	}

	switch {
	case rt.Task.EstimatedHours <= 1:
		items = append(items, "Quick win - can complete in one sitting")
	case rt.Task.EstimatedHours <= 4:
		items = append(items, "Block time in your calendar")
	default:
		items = append(items, "Break down into smaller subtasks")
	}

	days := DaysUntil(rt.Task.DueDate, today)
	if days < 0 {
		items = append(items, "Communicate delay or adjust scope")
	} else if days <= 1 {
		items = append(items, "Must complete today")
	}

	if rt.Result.ComponentScores.Dependencies >= 70 {
		items = append(items, "Completing this will unblock other tasks")
	}

	return items
}
