package stats

// Result is the explicit outcome of a pipeline load: either rows plus any
// per-row warnings gathered along the way, or a human-readable failure
// reason. Fetch failures surface here as a reason and an empty row-set, so
// no upstream error ever reaches a page render as anything worse than "no
// data" plus a message.
type Result[R any] struct {
	Rows     []R
	Warnings []string
	Reason   string
}

func Ok[R any](rows []R, warnings []string) Result[R] {
	return Result[R]{Rows: rows, Warnings: warnings}
}

func Failed[R any](reason string) Result[R] {
	return Result[R]{Reason: reason}
}

func (r Result[R]) IsFailed() bool {
	return r.Reason != ""
}
