package hydrate

// Result aggregates the outcomes of one hydration run. Each candidate key
// appears in exactly one of the three sets. The run owns the value until it
// completes; callers treat it as immutable afterwards.
type Result struct {
	Transferred      []string
	Skipped          []string
	Failed           []ObjectFailure
	BytesTransferred int64
}

// Outcome is the result of attempting a single candidate key
type Outcome struct {
	Key     string
	Skipped bool
	Size    int64
	Err     error
}

// Record folds one outcome into the aggregate
func (r *Result) Record(o Outcome) {
	switch {
	case o.Err != nil:
		r.Failed = append(r.Failed, ObjectFailure{Key: o.Key, Cause: o.Err})
	case o.Skipped:
		r.Skipped = append(r.Skipped, o.Key)
	default:
		r.Transferred = append(r.Transferred, o.Key)
		r.BytesTransferred += o.Size
	}
}

// FailedKeys returns the keys of all failed outcomes, in record order
func (r *Result) FailedKeys() []string {
	keys := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		keys = append(keys, f.Key)
	}
	return keys
}
