package election

import "errors"

var (
	// ErrInvalidCandidate is returned for records breaking candidate invariants
	ErrInvalidCandidate = errors.New("invalid candidate")

	// ErrNoCandidates is returned when no eligible candidate can lead
	ErrNoCandidates = errors.New("no eligible candidates")

	// ErrDone is returned when a round is requested after a winner set is known
	ErrDone = errors.New("election is done")

	// ErrUnknownElector is returned for an elector number out of the list
	ErrUnknownElector = errors.New("unknown elector")
)
