package orchestrator

// Status is the outcome of one binding.
type Status string

const (
	// StatusUpdated means the section was rewritten (or already current).
	StatusUpdated Status = "updated"
	// StatusSkipped means the data file was absent or held no records.
	StatusSkipped Status = "skipped"
	// StatusFailed means loading, rendering or writing failed.
	StatusFailed Status = "failed"
)

// Result records what happened to one binding.
type Result struct {
	Binding Binding
	Status  Status
	Records int
	Err     error
}

// Report collects per-binding results in execution order.
type Report struct {
	Results []Result
}

// Count returns how many results have the given status.
func (r Report) Count(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Failed reports whether any binding failed.
func (r Report) Failed() bool {
	return r.Count(StatusFailed) > 0
}

// Errors returns the errors of failed and skipped bindings, in order.
func (r Report) Errors() []error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errs
}
