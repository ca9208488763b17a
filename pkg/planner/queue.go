package planner

// noLine marks the search start, where no line has been boarded yet
const noLine = -1

type stateKey struct {
	station string
	line    int
}

type searchState struct {
	station   string
	line      int
	cost      int
	transfers int
	path      []string

	// sequence breaks cost ties in push order so results are deterministic
	sequence int
}

type stateQueue []*searchState

func (q stateQueue) Len() int { return len(q) }

func (q stateQueue) Less(i, j int) bool {
	if q[i].cost == q[j].cost {
		return q[i].sequence < q[j].sequence
	}
	return q[i].cost < q[j].cost
}

func (q stateQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *stateQueue) Push(x any) {
	*q = append(*q, x.(*searchState))
}

func (q *stateQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
