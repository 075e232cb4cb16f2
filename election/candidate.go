package election

import "fmt"

// CandidateID addresses a candidate inside the election that owns it
type CandidateID int

// Candidate is a person running in one constituency. Votes accumulate over
// every round; Eligible turns false for good once the candidate is eliminated.
type Candidate struct {
	ID           CandidateID
	Name         string
	LastName     string
	Votes        int
	Constituency string
	Eligible     bool
}

// FullName returns name and last name
func (c Candidate) FullName() string {
	return fmt.Sprintf("%s %s", c.Name, c.LastName)
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s (%s, %d votes)", c.FullName(), c.Constituency, c.Votes)
}

// Elector votes among the candidates of its constituency
type Elector struct {
	Constituency string
	Candidates   []CandidateID
}

func ids(candidates []Candidate) []CandidateID {
	out := make([]CandidateID, len(candidates))
	for i, c := range candidates {
		out[i] = c.ID
	}
	return out
}
