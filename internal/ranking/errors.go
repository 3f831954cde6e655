package ranking

import "errors"

// Precondition failures reported before any pipeline work begins.
var (
	// ErrEmptyJobDescription is returned when the JD text is empty or blank.
	ErrEmptyJobDescription = errors.New("job description is empty")
	// ErrNoCandidates is returned when the candidate list is empty.
	ErrNoCandidates = errors.New("candidate list is empty")
)
