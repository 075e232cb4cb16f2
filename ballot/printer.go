package ballot

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/candidatos-info/runoff/election"
	"github.com/fatih/color"
)

// Printer renders an election on a terminal
type Printer struct {
	out    io.Writer
	title  *color.Color
	faded  *color.Color
	winner *color.Color
}

// NewPrinter returns a printer writing to out
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:    out,
		title:  color.New(color.FgCyan, color.Bold),
		faded:  color.New(color.FgHiBlack),
		winner: color.New(color.FgGreen, color.Bold),
	}
}

// Roster prints the loaded electors and candidates
func (p *Printer) Roster(candidates []election.Candidate, electors []election.Elector) {
	p.title.Fprintf(p.out, "Electors: %d\n", len(electors))
	perConstituency := map[string]int{}
	var codes []string
	for _, e := range electors {
		if perConstituency[e.Constituency] == 0 {
			codes = append(codes, e.Constituency)
		}
		perConstituency[e.Constituency]++
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Fprintf(p.out, "  %s: %d electors\n", code, perConstituency[code])
	}
	p.title.Fprintf(p.out, "Candidates: %d\n", len(candidates))
	for _, c := range candidates {
		fmt.Fprintf(p.out, "  %s, %s\n", c.FullName(), c.Constituency)
	}
}

// Ballot prints the eligible candidates of one elector
func (p *Printer) Ballot(b election.Ballot) {
	p.title.Fprintf(p.out, "Round %d, elector %d of %s\n", b.Round, b.Elector, b.Constituency)
	if len(b.Choices) == 0 {
		p.faded.Fprintln(p.out, "  no candidates")
		return
	}
	for _, c := range b.Choices {
		fmt.Fprintf(p.out, "  %d. %s\n", c.Index, c.Candidate.FullName())
	}
}

// RoundClosed prints the standings after a round
func (p *Printer) RoundClosed(r election.RoundReport) {
	p.title.Fprintf(p.out, "Round %d closed, %d votes, %d abstentions\n", r.Round, r.Cast, r.Abstained)
	for _, c := range byVotes(r.Standings) {
		line := fmt.Sprintf("  %-30s %-6s %d\n", c.FullName(), c.Constituency, c.Votes)
		if c.Eligible {
			fmt.Fprint(p.out, line)
		} else {
			p.faded.Fprint(p.out, line)
		}
	}
}

// Winners prints the final leader set
func (p *Printer) Winners(r election.Result) {
	names := make([]string, len(r.Winners))
	for i, c := range r.Winners {
		names[i] = c.String()
	}
	switch {
	case len(r.Winners) == 0:
		p.faded.Fprintf(p.out, "No winner after %d rounds\n", r.Rounds)
	case r.Decided:
		p.winner.Fprintf(p.out, "Winner: %s\n", strings.Join(names, ", "))
	default:
		p.winner.Fprintf(p.out, "Winners (tied after %d rounds): %s\n", r.Rounds, strings.Join(names, ", "))
	}
}

// byVotes sorts a copy of candidates by votes, most voted first
func byVotes(candidates []election.Candidate) []election.Candidate {
	out := append([]election.Candidate(nil), candidates...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Votes > out[j].Votes
	})
	return out
}

// Discard is a sink that reports nothing
type Discard struct{}

func (Discard) Roster([]election.Candidate, []election.Elector) {}
func (Discard) Ballot(election.Ballot)                          {}
func (Discard) RoundClosed(election.RoundReport)                {}
func (Discard) Winners(election.Result)                         {}
