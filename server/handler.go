// Package server exposes one election over HTTP. Every request is served
// under the lock of the election instance.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/candidatos-info/runoff/ballot"
	"github.com/candidatos-info/runoff/election"
	"github.com/candidatos-info/runoff/status"
	"github.com/labstack/echo"
	log "github.com/sirupsen/logrus"
)

// Handler is a struct to hold the election being served
type Handler struct {
	mu     sync.Mutex
	runoff *election.Runoff
	sink   election.ResultSink
}

// used on PostRound
type roundRequest struct {
	Votes []int `json:"votes"`
}

type candidateView struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	LastName     string `json:"last_name"`
	Constituency string `json:"constituency"`
	Votes        int    `json:"votes"`
	Eligible     bool   `json:"eligible"`
}

type choiceView struct {
	Index     int    `json:"index"`
	Candidate string `json:"candidate"`
}

type ballotView struct {
	Round        int          `json:"round"`
	Elector      int          `json:"elector"`
	Constituency string       `json:"constituency"`
	Choices      []choiceView `json:"choices"`
}

type resultView struct {
	Rounds  int             `json:"rounds"`
	Decided bool            `json:"decided"`
	Winners []candidateView `json:"winners"`
}

// New returns a handler serving r. The runoff is started right away so
// ballots can be read before the first round.
func New(r *election.Runoff) *Handler {
	h := &Handler{
		runoff: r,
		sink:   ballot.Discard{},
	}
	r.Start(h.sink)
	return h
}

// Register adds the routes of the handler to e
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/election", h.GetElection)
	e.GET("/electors/:n/ballot", h.GetBallot)
	e.POST("/rounds", h.PostRound)
	e.GET("/winners", h.GetWinners)
}

// GetElection returns the state and the standings
func (h *Handler) GetElection(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	e := h.runoff.Election()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":          e.ID,
		"status":      h.runoff.Status(),
		"status_text": status.Text(h.runoff.Status()),
		"round":       e.Round(),
		"electors":    len(e.Electors()),
		"standings":   views(e.Candidates()),
	})
}

// GetBallot returns what the n-th elector is shown in the next round
func (h *Handler) GetBallot(c echo.Context) error {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		return c.String(http.StatusBadRequest, fmt.Sprintf("elector must be a number, got %q", c.Param("n")))
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	b, err := h.runoff.Election().Ballot(n)
	if err != nil {
		return c.String(http.StatusNotFound, err.Error())
	}
	out := ballotView{
		Round:        b.Round,
		Elector:      b.Elector,
		Constituency: b.Constituency,
		Choices:      []choiceView{},
	}
	for _, ch := range b.Choices {
		out.Choices = append(out.Choices, choiceView{Index: ch.Index, Candidate: ch.Candidate.FullName()})
	}
	return c.JSON(http.StatusOK, out)
}

// PostRound runs one round with a vote per elector, in elector order
func (h *Handler) PostRound(c echo.Context) error {
	in := roundRequest{}
	if err := c.Bind(&in); err != nil {
		return c.String(http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.runoff.Status() == status.Done {
		return c.String(http.StatusConflict, election.ErrDone.Error())
	}
	if electors := len(h.runoff.Election().Electors()); len(in.Votes) != electors {
		return c.String(http.StatusBadRequest, fmt.Sprintf("expected %d votes, got %d", electors, len(in.Votes)))
	}
	report, err := h.runoff.Step(c.Request().Context(), ballot.NewSequence(in.Votes...), h.sink)
	if err != nil && !errors.Is(err, election.ErrNoCandidates) {
		log.WithField("election", h.runoff.Election().ID).Errorf("round failed: %v", err)
		return c.String(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"round":     report.Round,
		"cast":      report.Cast,
		"abstained": report.Abstained,
		"status":    h.runoff.Status(),
		"standings": views(report.Standings),
	})
}

// GetWinners returns the winner set once the election is done
func (h *Handler) GetWinners(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	res, done := h.runoff.Result()
	if !done {
		return c.String(http.StatusConflict, "election is not done")
	}
	return c.JSON(http.StatusOK, resultView{
		Rounds:  res.Rounds,
		Decided: res.Decided,
		Winners: views(res.Winners),
	})
}

func views(candidates []election.Candidate) []candidateView {
	out := make([]candidateView, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, candidateView{
			ID:           int(c.ID),
			Name:         c.Name,
			LastName:     c.LastName,
			Constituency: c.Constituency,
			Votes:        c.Votes,
			Eligible:     c.Eligible,
		})
	}
	return out
}
