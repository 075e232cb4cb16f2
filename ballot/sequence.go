package ballot

import (
	"context"

	"github.com/candidatos-info/runoff/election"
)

// Sequence hands out choices in order, one per ballot, and abstains once
// they run out.
type Sequence struct {
	choices []int
	next    int
}

// NewSequence returns a source for the given choices
func NewSequence(choices ...int) *Sequence {
	return &Sequence{choices: choices}
}

// Vote returns the next choice
func (s *Sequence) Vote(ctx context.Context, b election.Ballot) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.next >= len(s.choices) {
		return 0, nil
	}
	c := s.choices[s.next]
	s.next++
	return c, nil
}

// Remaining returns how many choices were not handed out
func (s *Sequence) Remaining() int {
	return len(s.choices) - s.next
}
