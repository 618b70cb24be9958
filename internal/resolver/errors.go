package resolver

import "fmt"

// ResolutionError reports that the language-understanding collaborator
// violated its contract or that every resolution tier was exhausted.
type ResolutionError struct {
	Reason string
	Err    error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolution failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("resolution failed: %s", e.Reason)
}

func (e *ResolutionError) Unwrap() error { return e.Err }
