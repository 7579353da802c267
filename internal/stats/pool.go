package stats

import "context"

// QuestionCounter counts catalogue questions satisfying p. An empty p
// counts the whole catalogue.
type QuestionCounter interface {
	CountQuestions(ctx context.Context, p Predicate) (int, error)
}

// Importance splits 100 points across pools in proportion to their size,
// each share rounded half up. All zeros when the pools are empty.
func Importance(pools []int) []int {
	total := 0
	for _, n := range pools {
		if n > 0 {
			total += n
		}
	}
	out := make([]int, len(pools))
	for i, n := range pools {
		if n > 0 {
			out[i] = Percent(n, total)
		}
	}
	return out
}
