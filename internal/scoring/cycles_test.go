package scoring

import (
	"testing"
)

func int64Ptr(v int64) *int64 { return &v }

func depTask(id int64, deps ...int64) Task {
	return Task{ID: int64Ptr(id), Dependencies: deps}
}

func TestDetectCyclesTwoNodeLoop(t *testing.T) {
	tasks := []Task{
		depTask(1, 2),
		depTask(2, 1),
	}

	cycles := DetectCycles(tasks)
	if len(cycles) == 0 {
		t.Fatal("expected at least one cycle")
	}
	for _, c := range cycles {
		if len(c) < 3 {
			t.Errorf("cycle too short: %v", c)
		}
		if c[0] != c[len(c)-1] {
			t.Errorf("cycle not closed: %v", c)
		}
	}
}

func TestDetectCyclesChain(t *testing.T) {
	tasks := []Task{
		depTask(1),
		depTask(2, 1),
		depTask(3, 2),
	}

	if cycles := DetectCycles(tasks); len(cycles) != 0 {
		t.Errorf("chain should have no cycles, got %v", cycles)
	}
}

func TestDetectCyclesSelfLoop(t *testing.T) {
	tasks := []Task{depTask(7, 7)}

	cycles := DetectCycles(tasks)
	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d", len(cycles))
	}
	c := cycles[0]
	if len(c) != 2 || c[0] != 7 || c[1] != 7 {
		t.Errorf("expected [7 7], got %v", c)
	}
}

func TestDetectCyclesDiamondIsAcyclic(t *testing.T) {
	// Two sibling branches converge on a shared node. The shared node
	// must not be misreported as a cycle.
	tasks := []Task{
		depTask(1, 2, 3),
		depTask(2, 4),
		depTask(3, 4),
		depTask(4),
	}

	if cycles := DetectCycles(tasks); len(cycles) != 0 {
		t.Errorf("diamond should have no cycles, got %v", cycles)
	}
}

func TestDetectCyclesDisjoint(t *testing.T) {
	tasks := []Task{
		depTask(1, 2),
		depTask(2, 1),
		depTask(10, 11),
		depTask(11, 10),
	}

	cycles := DetectCycles(tasks)
	if len(cycles) < 2 {
		t.Fatalf("expected both disjoint cycles, got %v", cycles)
	}

	seen := make(map[int64]bool)
	for _, c := range cycles {
		for _, id := range c {
			seen[id] = true
		}
	}
	for _, id := range []int64{1, 2, 10, 11} {
		if !seen[id] {
			t.Errorf("id %d missing from reported cycles", id)
		}
	}
}

func TestDetectCyclesIgnoresUnknownIDs(t *testing.T) {
	// Dependencies on ids outside the batch are not edges.
	tasks := []Task{
		depTask(1, 99),
		depTask(2, 1),
	}

	if cycles := DetectCycles(tasks); len(cycles) != 0 {
		t.Errorf("expected no cycles, got %v", cycles)
	}
}

func TestDetectCyclesSkipsAdHocTasks(t *testing.T) {
	tasks := []Task{
		{Title: "no id", Dependencies: []int64{1}},
		depTask(1),
	}

	if cycles := DetectCycles(tasks); len(cycles) != 0 {
		t.Errorf("expected no cycles, got %v", cycles)
	}
}

func TestDetectCyclesDeterministicStart(t *testing.T) {
	tasks := []Task{
		depTask(3, 1),
		depTask(1, 2),
		depTask(2, 3),
	}

	first := DetectCycles(tasks)
	for i := 0; i < 10; i++ {
		again := DetectCycles(tasks)
		if len(again) != len(first) {
			t.Fatalf("cycle count changed between runs: %v vs %v", first, again)
		}
		for j := range again {
			for k := range again[j] {
				if again[j][k] != first[j][k] {
					t.Fatalf("cycle order changed between runs: %v vs %v", first, again)
				}
			}
		}
	}
}
