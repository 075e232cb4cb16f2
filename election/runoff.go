package election

import (
	"context"
	"fmt"

	"github.com/candidatos-info/runoff/status"
	log "github.com/sirupsen/logrus"
)

// Result is the outcome of a finished runoff. Decided is false when the
// round limit stopped a tie, in which case Winners holds every tied leader.
type Result struct {
	ElectionID string
	Rounds     int
	Decided    bool
	Winners    []Candidate
	Standings  []Candidate
}

// Runoff drives an election through its states until one leader remains
type Runoff struct {
	election  *Election
	status    status.Status
	maxRounds int
	result    Result
}

// NewRunoff returns a runoff for e. A maxRounds of zero means no limit.
func NewRunoff(e *Election, maxRounds int) *Runoff {
	return &Runoff{
		election:  e,
		status:    status.Idle,
		maxRounds: maxRounds,
	}
}

// Election returns the election being run
func (r *Runoff) Election() *Election {
	return r.election
}

// Status returns the current state
func (r *Runoff) Status() status.Status {
	return r.status
}

// Result returns the outcome once the status is Done
func (r *Runoff) Result() (Result, bool) {
	return r.result, r.status == status.Done
}

// Start associates candidates to electors and reports the roster. It does
// nothing once the runoff left the Idle state.
func (r *Runoff) Start(sink ResultSink) {
	if r.status != status.Idle {
		return
	}
	e := r.election
	e.Associate()
	sink.Roster(e.Candidates(), e.Electors())
	r.status = status.Voting
}

// Step runs one round and the check that follows it, eliminating the non
// leaders on a tie. The first call starts the runoff.
func (r *Runoff) Step(ctx context.Context, src BallotSource, sink ResultSink) (RoundReport, error) {
	if r.status == status.Done {
		return RoundReport{}, ErrDone
	}
	r.Start(sink)
	e := r.election
	report, err := e.RunRound(ctx, src, sink)
	if err != nil {
		return report, err
	}
	r.status = status.Checking
	leaders := e.Leaders()
	logger := log.WithFields(log.Fields{"election": e.ID, "round": report.Round, "leaders": len(leaders)})
	switch {
	case len(leaders) == 0:
		r.finish(sink, nil, false)
		return report, ErrNoCandidates
	case len(leaders) == 1:
		logger.Infof("%s leads alone", leaders[0].FullName())
		r.finish(sink, leaders, true)
	case r.maxRounds > 0 && report.Round >= r.maxRounds:
		logger.Warnf("round limit %d reached with a tie", r.maxRounds)
		r.finish(sink, leaders, false)
	default:
		r.status = status.Eliminating
		n := e.Eliminate(ids(leaders))
		logger.Infof("tie, %d candidates eliminated", n)
		r.status = status.Voting
	}
	return report, nil
}

// Run steps until the runoff is done and returns its result
func (r *Runoff) Run(ctx context.Context, src BallotSource, sink ResultSink) (Result, error) {
	for r.status != status.Done {
		if _, err := r.Step(ctx, src, sink); err != nil {
			return r.result, fmt.Errorf("runoff stopped at round %d: %w", r.election.Round(), err)
		}
	}
	return r.result, nil
}

func (r *Runoff) finish(sink ResultSink, winners []Candidate, decided bool) {
	e := r.election
	r.status = status.Done
	r.result = Result{
		ElectionID: e.ID,
		Rounds:     e.Round(),
		Decided:    decided,
		Winners:    winners,
		Standings:  e.Candidates(),
	}
	sink.Winners(r.result)
}
