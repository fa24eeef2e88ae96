package entities

// Outcome classifies what happened to a single repository during a run.
type Outcome string

const (
	OutcomeLicensed       Outcome = "licensed"
	OutcomeRemediated     Outcome = "remediated"
	OutcomeWouldRemediate Outcome = "would-remediate"
	OutcomeExcluded       Outcome = "excluded"
	OutcomeFailed         Outcome = "failed"
)

// RepositoryResult records the outcome for one repository.
type RepositoryResult struct {
	Repository  string
	Outcome     Outcome
	PullRequest *PullRequest
	Err         error
}

// RunReport collects per-repository results in processing order.
type RunReport struct {
	Results []RepositoryResult
}

func (r *RunReport) Add(result RepositoryResult) {
	r.Results = append(r.Results, result)
}

// Count returns how many repositories ended with the given outcome.
func (r *RunReport) Count(outcome Outcome) int {
	count := 0
	for _, result := range r.Results {
		if result.Outcome == outcome {
			count++
		}
	}
	return count
}

// Failures returns the results whose processing failed.
func (r *RunReport) Failures() []RepositoryResult {
	var failures []RepositoryResult
	for _, result := range r.Results {
		if result.Outcome == OutcomeFailed {
			failures = append(failures, result)
		}
	}
	return failures
}
