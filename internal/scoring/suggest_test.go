package scoring

import (
	"strings"
	"testing"
)

func suggestFixture() []Task {
	return []Task{
		{ID: int64Ptr(1), Title: "write report", DueDate: dueIn(-2), EstimatedHours: 3, Importance: 8},
		{ID: int64Ptr(2), Title: "fix login bug", DueDate: testToday, EstimatedHours: 0.5, Importance: 9},
		{ID: int64Ptr(3), Title: "refactor billing", DueDate: dueIn(20), EstimatedHours: 12, Importance: 6},
		{ID: int64Ptr(4), Title: "update docs", DueDate: dueIn(10), EstimatedHours: 2, Importance: 3},
		{ID: int64Ptr(5), Title: "plan offsite", DueDate: dueIn(45), EstimatedHours: 6, Importance: 4},
	}
}

func TestSuggestLimit(t *testing.T) {
	s := testScorer(t, StrategySmartBalance)

	suggestions := s.Suggest(suggestFixture(), 3)
	if len(suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(suggestions))
	}
	for i, sg := range suggestions {
		if sg.Rank != i+1 {
			t.Errorf("suggestion %d: expected rank %d, got %d", i, i+1, sg.Rank)
		}
		if len(sg.ActionItems) < 2 || len(sg.ActionItems) > 4 {
			t.Errorf("suggestion %d: expected 2-4 action items, got %d", i, len(sg.ActionItems))
		}
	}
}

func TestSuggestDefaultLimit(t *testing.T) {
	s := testScorer(t, StrategySmartBalance)

	if got := len(s.Suggest(suggestFixture(), 0)); got != DefaultSuggestionLimit {
		t.Errorf("expected default limit %d, got %d", DefaultSuggestionLimit, got)
	}
}

func TestSuggestFewerTasksThanLimit(t *testing.T) {
	s := testScorer(t, StrategySmartBalance)

	tasks := suggestFixture()[:2]
	if got := len(s.Suggest(tasks, 5)); got != 2 {
		t.Errorf("expected 2 suggestions, got %d", got)
	}
}

func TestSuggestActionItems(t *testing.T) {
	s := testScorer(t, StrategySmartBalance)

	suggestions := s.Suggest(suggestFixture(), 3)

	if suggestions[0].ActionItems[0] != "Start this task immediately" {
		t.Errorf("rank 1 should start immediately, got %q", suggestions[0].ActionItems[0])
	}
	if !strings.Contains(suggestions[1].ActionItems[0], "task #2") {
		t.Errorf("rank 2 should be scheduled as #2, got %q", suggestions[1].ActionItems[0])
	}

	for _, sg := range suggestions {
		days := DaysUntil(sg.Task.DueDate, testToday)
		if days < 0 && !containsItem(sg.ActionItems, "Communicate delay or adjust scope") {
			t.Errorf("overdue %q missing delay note: %v", sg.Task.Title, sg.ActionItems)
		}
		if days >= 0 && days <= 1 && !containsItem(sg.ActionItems, "Must complete today") {
			t.Errorf("imminent %q missing urgency note: %v", sg.Task.Title, sg.ActionItems)
		}
	}
}

func TestSuggestUnblockNote(t *testing.T) {
	s := testScorer(t, StrategySmartBalance)

	// Three dependants push the blocker's dependency score past 70.
	tasks := []Task{
		{ID: int64Ptr(1), Title: "blocker", DueDate: dueIn(2), EstimatedHours: 2, Importance: 8},
		depTask(2, 1),
		depTask(3, 1),
		depTask(4, 1),
	}
	for i := 1; i < len(tasks); i++ {
		tasks[i].DueDate = dueIn(25)
		tasks[i].EstimatedHours = 5
		tasks[i].Importance = 4
	}

	suggestions := s.Suggest(tasks, 1)
	if len(suggestions) != 1 || suggestions[0].Task.Title != "blocker" {
		t.Fatalf("expected blocker on top, got %+v", suggestions)
	}
	if !containsItem(suggestions[0].ActionItems, "Completing this will unblock other tasks") {
		t.Errorf("missing unblock note: %v", suggestions[0].ActionItems)
	}
}

func containsItem(items []string, want string) bool {
	for _, it := range items {
		if it == want {
			return true
		}
	}
	return false
}
