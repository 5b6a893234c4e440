package quizparser

// strategy is one named way of extracting a T from a string.
// It reports false when it found nothing.
type strategy[T any] struct {
	name string
	run  func(string) (T, bool)
}

// firstMatch runs strategies in order and returns the first success
// together with the name of the strategy that produced it.
func firstMatch[T any](input string, strategies []strategy[T]) (T, string, bool) {
	for _, s := range strategies {
		if v, ok := s.run(input); ok {
			return v, s.name, true
		}
	}
	var zero T
	return zero, "", false
}
