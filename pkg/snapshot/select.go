package snapshot

// Select picks what a dashboard shows from a newest-first list of pipelines:
// the latest one plus at most limit of the remaining ones that are running.
func Select[T any](newestFirst []T, running func(T) bool, limit int) []T {
	if len(newestFirst) == 0 {
		return nil
	}

	selected := []T{newestFirst[0]}
	for _, item := range newestFirst[1:] {
		if len(selected) > limit {
			break
		}
		if running(item) {
			selected = append(selected, item)
		}
	}
	return selected
}
