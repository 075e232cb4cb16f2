// Package election holds the constituency runoff: candidates are attached
// to the electors of their constituency, every elector casts one vote per
// round and rounds repeat among the leaders until a single one remains.
//
// An Election is not safe for concurrent use.
package election

import (
	"fmt"
	"sort"

	"github.com/candidatos-info/runoff/records"
	"github.com/google/uuid"
)

// Election owns every candidate and elector of a run. Candidates live in one
// slice and are addressed by CandidateID everywhere else, so a vote or an
// elimination is seen by the constituency map and by every elector list.
type Election struct {
	ID string

	candidates     []Candidate
	constituencies map[string][]CandidateID
	order          []string // constituency codes as first seen
	electors       []Elector
	round          int

	rejectIneligible bool
}

// Option configures an Election
type Option func(*Election)

// WithRejectIneligible makes in range votes for eliminated candidates count
// as abstentions. By default they are added to the candidate's total.
func WithRejectIneligible() Option {
	return func(e *Election) {
		e.rejectIneligible = true
	}
}

// WithID sets the election ID instead of a random one
func WithID(id string) Option {
	return func(e *Election) {
		e.ID = id
	}
}

// New builds an election from loaded records. Electors start with no
// candidates until Associate runs.
func New(candidates []records.CandidateRecord, electors []records.ElectorRecord, opts ...Option) (*Election, error) {
	e := &Election{
		ID:             uuid.New().String(),
		candidates:     make([]Candidate, 0, len(candidates)),
		constituencies: make(map[string][]CandidateID),
		electors:       make([]Elector, 0, len(electors)),
	}
	for _, opt := range opts {
		opt(e)
	}
	for i, r := range candidates {
		if r.Name == "" || r.LastName == "" {
			return nil, fmt.Errorf("%w: candidate %d has an empty name", ErrInvalidCandidate, i+1)
		}
		if r.Votes < 0 {
			return nil, fmt.Errorf("%w: candidate %s %s has %d votes", ErrInvalidCandidate, r.Name, r.LastName, r.Votes)
		}
		id := CandidateID(len(e.candidates))
		e.candidates = append(e.candidates, Candidate{
			ID:           id,
			Name:         r.Name,
			LastName:     r.LastName,
			Votes:        r.Votes,
			Constituency: r.Constituency,
			Eligible:     true,
		})
		if _, ok := e.constituencies[r.Constituency]; !ok {
			e.order = append(e.order, r.Constituency)
		}
		e.constituencies[r.Constituency] = append(e.constituencies[r.Constituency], id)
	}
	for _, r := range electors {
		e.electors = append(e.electors, Elector{Constituency: r.Constituency})
	}
	return e, nil
}

// Associate attaches to every elector each candidate registered in the
// elector's constituency. Elector lists are rebuilt, so calling it again
// gives the same lists.
func (e *Election) Associate() {
	for i := range e.electors {
		elector := &e.electors[i]
		elector.Candidates = nil
		for _, code := range e.order {
			for _, id := range e.constituencies[code] {
				if e.candidates[id].Constituency == elector.Constituency {
					elector.Candidates = append(elector.Candidates, id)
				}
			}
		}
	}
}

// Round returns the number of rounds run so far
func (e *Election) Round() int {
	return e.round
}

// Candidate returns a copy of the candidate with the given id
func (e *Election) Candidate(id CandidateID) (Candidate, bool) {
	if id < 0 || int(id) >= len(e.candidates) {
		return Candidate{}, false
	}
	return e.candidates[id], true
}

// Candidates returns a copy of every candidate in load order
func (e *Election) Candidates() []Candidate {
	out := make([]Candidate, len(e.candidates))
	copy(out, e.candidates)
	return out
}

// Electors returns a copy of the elector list
func (e *Election) Electors() []Elector {
	out := make([]Elector, len(e.electors))
	for i, el := range e.electors {
		out[i] = Elector{
			Constituency: el.Constituency,
			Candidates:   append([]CandidateID(nil), el.Candidates...),
		}
	}
	return out
}

// Constituencies returns the sorted constituency codes having candidates
func (e *Election) Constituencies() []string {
	out := append([]string(nil), e.order...)
	sort.Strings(out)
	return out
}

// Registered returns the candidates registered in a constituency
func (e *Election) Registered(constituency string) []Candidate {
	var out []Candidate
	for _, id := range e.constituencies[constituency] {
		out = append(out, e.candidates[id])
	}
	return out
}
