package election

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Choice is one line of a ballot. Index is the 1-based position of the candidate in the
// elector's full list; it is not renumbered when candidates are eliminated.
type Choice struct {
	Index     int
	Candidate Candidate
}

// Ballot is what one elector is shown in one round
type Ballot struct {
	Round        int
	Elector      int // 1-based position in the elector list
	Constituency string
	Size         int // length of the elector's full candidate list
	Choices      []Choice
}

// BallotSource supplies the vote of an elector for a ballot. Any integer is
// accepted; values outside [1, Size] are abstentions.
type BallotSource interface {
	Vote(ctx context.Context, b Ballot) (int, error)
}

// ResultSink receives everything an election reports
type ResultSink interface {
	Roster(candidates []Candidate, electors []Elector)
	Ballot(b Ballot)
	RoundClosed(r RoundReport)
	Winners(r Result)
}

// RoundReport summarizes a closed round
type RoundReport struct {
	Round     int
	Cast      int
	Abstained int
	Standings []Candidate
}

// Ballot returns the ballot of the n-th elector (1-based) for the next round
func (e *Election) Ballot(n int) (Ballot, error) {
	if n < 1 || n > len(e.electors) {
		return Ballot{}, fmt.Errorf("%w: %d", ErrUnknownElector, n)
	}
	elector := e.electors[n-1]
	b := Ballot{
		Round:        e.round + 1,
		Elector:      n,
		Constituency: elector.Constituency,
		Size:         len(elector.Candidates),
	}
	for i, id := range elector.Candidates {
		c := e.candidates[id]
		if c.Eligible {
			b.Choices = append(b.Choices, Choice{Index: i + 1, Candidate: c})
		}
	}
	return b, nil
}

// Cast adds the vote of the n-th elector. It reports whether the vote was
// counted; a choice outside the elector's list is silently dropped.
func (e *Election) Cast(n, choice int) bool {
	if n < 1 || n > len(e.electors) {
		return false
	}
	elector := e.electors[n-1]
	if choice < 1 || choice > len(elector.Candidates) {
		return false
	}
	c := &e.candidates[elector.Candidates[choice-1]]
	if !c.Eligible && e.rejectIneligible {
		return false
	}
	c.Votes++
	return true
}

// RunRound polls every elector in list order and tallies the votes. An error
// from the source aborts the round and takes back the votes it had cast, so
// the round can be run again.
func (e *Election) RunRound(ctx context.Context, src BallotSource, sink ResultSink) (RoundReport, error) {
	report := RoundReport{Round: e.round + 1}
	var cast []CandidateID
	abort := func(err error) (RoundReport, error) {
		for _, id := range cast {
			e.candidates[id].Votes--
		}
		return RoundReport{Round: report.Round}, err
	}
	for n := 1; n <= len(e.electors); n++ {
		if err := ctx.Err(); err != nil {
			return abort(err)
		}
		b, err := e.Ballot(n)
		if err != nil {
			return abort(err)
		}
		sink.Ballot(b)
		choice, err := src.Vote(ctx, b)
		if err != nil {
			return abort(fmt.Errorf("failed to get vote of elector %d in round %d: %w", n, report.Round, err))
		}
		if e.Cast(n, choice) {
			cast = append(cast, e.electors[n-1].Candidates[choice-1])
			report.Cast++
		} else {
			report.Abstained++
			log.WithFields(log.Fields{"election": e.ID, "round": report.Round, "elector": n, "choice": choice}).Debug("vote dropped")
		}
	}
	e.round = report.Round
	report.Standings = e.Candidates()
	sink.RoundClosed(report)
	return report, nil
}
