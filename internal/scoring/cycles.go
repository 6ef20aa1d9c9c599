package scoring

// Cycle is a closed loop in the dependency graph: the task ids along
// the loop with the entry id repeated at the end. A task that depends
// on itself is reported as [id, id].
type Cycle []int64

// DetectCycles finds circular dependencies with a depth-first search
// over the declared dependency edges. Edges pointing at ids not present
// in the input are ignored. Each recursive branch walks its own copy of
// the path so sibling branches cannot contaminate each other's cycle
// reports. Overlapping cycles may be reported more than once; no
// deduplication is applied. Traversal starts in input order, so output
// is deterministic for a given batch.
func DetectCycles(tasks []Task) []Cycle {
	graph := make(map[int64][]int64, len(tasks))
	present := make(map[int64]bool, len(tasks))
	order := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == nil {
			continue
		}
		id := *t.ID
		if !present[id] {
			present[id] = true
			order = append(order, id)
		}
		graph[id] = append(graph[id], t.Dependencies...)
	}

	var cycles []Cycle
	visited := make(map[int64]bool, len(order))
	onStack := make(map[int64]bool, len(order))

	var walk func(node int64, path []int64)
	walk = func(node int64, path []int64) {
		visited[node] = true
		onStack[node] = true
		path = append(path, node)

		for _, neighbor := range graph[node] {
			if !present[neighbor] {
				continue
			}
			if !visited[neighbor] {
				branch := make([]int64, len(path))
				copy(branch, path)
				walk(neighbor, branch)
			} else if onStack[neighbor] {
				start := 0
				for i, id := range path {
					if id == neighbor {
						start = i
						break
					}
				}
				cycle := make(Cycle, 0, len(path)-start+1)
				cycle = append(cycle, path[start:]...)
				cycle = append(cycle, neighbor)
				cycles = append(cycles, cycle)
			}
		}

		onStack[node] = false
	}

	for _, id := range order {
		if !visited[id] {
			walk(id, nil)
		}
	}
	return cycles
}
