package ballot

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/candidatos-info/runoff/election"
	"github.com/candidatos-info/runoff/records"
	"github.com/fatih/color"
	"github.com/matryer/is"
)

func init() {
	color.NoColor = true
}

func TestPrompt(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		retries  int
		abstain  bool
		want     int
		wantErr  bool
		parseErr bool
	}{
		{"plain number", "2\n", 0, false, 2, false, false},
		{"surrounding spaces", "  3 \n", 0, false, 3, false, false},
		{"negative number", "-1\n", 0, false, -1, false, false},
		{"not a number", "abc\n", 0, false, 0, true, true},
		{"retry then number", "abc\n1\n", 2, false, 1, false, false},
		{"retries exhausted", "x\ny\n", 1, false, 0, true, true},
		{"abstain on invalid", "x\n", 0, true, 0, false, false},
		{"end of input", "", 0, false, 0, true, false},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompt(strings.NewReader(tt.in), &out, tt.retries, tt.abstain)
			got, err := p.Vote(context.Background(), election.Ballot{Round: 1, Elector: 4})
			if (err != nil) != tt.wantErr {
				t.Fatalf("want error %v, got %v", tt.wantErr, err)
			}
			var perr *InputParseError
			if errors.As(err, &perr) != tt.parseErr {
				t.Errorf("want parse error %v, got %v", tt.parseErr, err)
			}
			if got != tt.want {
				t.Errorf("want %d, got %d", tt.want, got)
			}
			if !strings.Contains(out.String(), "Elector 4, your choice: ") {
				t.Errorf("expected prompt on output, got %q", out.String())
			}
		})
	}
}

func TestPromptEOFError(t *testing.T) {
	p := NewPrompt(strings.NewReader(""), io.Discard, 0, true)
	_, err := p.Vote(context.Background(), election.Ballot{Elector: 1})
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("want unexpected EOF, got %v", err)
	}
}

func TestLoadSheet(t *testing.T) {
	is := is.New(t)
	in := "round,elector,choice\n1,1,1\n1,2,2\n2, 1, 1\n"
	s, err := LoadSheet(strings.NewReader(in))
	is.NoErr(err)
	is.Equal(s.Rounds(), 2)
	testCases := []struct {
		round, elector, want int
	}{
		{1, 1, 1},
		{1, 2, 2},
		{2, 1, 1},
		{2, 2, 0},
		{3, 1, 0},
	}
	for _, tt := range testCases {
		got, err := s.Vote(context.Background(), election.Ballot{Round: tt.round, Elector: tt.elector})
		is.NoErr(err)
		if got != tt.want {
			t.Errorf("round %d elector %d: want %d, got %d", tt.round, tt.elector, tt.want, got)
		}
	}
}

func TestLoadSheetErrors(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{"duplicated vote", "round,elector,choice\n1,1,1\n1,1,2\n"},
		{"round zero", "round,elector,choice\n0,1,1\n"},
		{"not a number", "round,elector,choice\n1,one,1\n"},
		{"header only", "round,elector,choice\n"},
		{"empty file", ""},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadSheet(strings.NewReader(tt.in)); err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}
}

func TestLoadSheetHeaderOnly(t *testing.T) {
	if _, err := LoadSheet(strings.NewReader("round,elector,choice\n")); !errors.Is(err, ErrEmptySheet) {
		t.Errorf("want empty sheet error, got %v", err)
	}
}

func TestSheetCanceled(t *testing.T) {
	s, err := LoadSheet(strings.NewReader("round,elector,choice\n1,1,1\n"))
	if err != nil {
		t.Fatalf("expected err nil when loading sheet, got %q", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Vote(ctx, election.Ballot{Round: 1, Elector: 1}); !errors.Is(err, context.Canceled) {
		t.Errorf("want context canceled, got %v", err)
	}
}

func TestSequence(t *testing.T) {
	is := is.New(t)
	s := NewSequence(2, 1)
	first, _ := s.Vote(context.Background(), election.Ballot{})
	second, _ := s.Vote(context.Background(), election.Ballot{})
	third, _ := s.Vote(context.Background(), election.Ballot{})
	is.Equal(first, 2)
	is.Equal(second, 1)
	is.Equal(third, 0)
	is.Equal(s.Remaining(), 0)
}

func TestInteractiveElection(t *testing.T) {
	is := is.New(t)
	e, err := election.New([]records.CandidateRecord{
		{Name: "Alice", LastName: "Smith", Constituency: "O1"},
		{Name: "Bob", LastName: "Jones", Constituency: "O1"},
	}, []records.ElectorRecord{{Constituency: "O1"}, {Constituency: "O1"}})
	is.NoErr(err)
	var out bytes.Buffer
	prompt := NewPrompt(strings.NewReader("1\n2\n1\n1\n"), &out, 0, false)
	res, err := election.NewRunoff(e, 0).Run(context.Background(), prompt, NewPrinter(&out))
	is.NoErr(err)
	is.Equal(res.Winners[0].FullName(), "Alice Smith")
	text := out.String()
	for _, want := range []string{
		"Electors: 2",
		"  O1: 2 electors",
		"Candidates: 2",
		"Round 1, elector 1 of O1",
		"  2. Bob Jones",
		"Round 1 closed, 2 votes, 0 abstentions",
		"Round 2 closed",
		"Winner: Alice Smith (O1, 2 votes)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected output to contain %q, got\n%s", want, text)
		}
	}
}

func TestPrinterWinners(t *testing.T) {
	alice := election.Candidate{Name: "Alice", LastName: "Smith", Constituency: "O1", Votes: 3}
	bob := election.Candidate{Name: "Bob", LastName: "Jones", Constituency: "O2", Votes: 3}
	testCases := []struct {
		name   string
		result election.Result
		want   string
	}{
		{"decided", election.Result{Rounds: 1, Decided: true, Winners: []election.Candidate{alice}}, "Winner: Alice Smith (O1, 3 votes)\n"},
		{"tied", election.Result{Rounds: 4, Winners: []election.Candidate{alice, bob}}, "Winners (tied after 4 rounds): Alice Smith (O1, 3 votes), Bob Jones (O2, 3 votes)\n"},
		{"nobody", election.Result{Rounds: 1}, "No winner after 1 rounds\n"},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			NewPrinter(&out).Winners(tt.result)
			if out.String() != tt.want {
				t.Errorf("want %q, got %q", tt.want, out.String())
			}
		})
	}
}

func TestPrinterEmptyBallot(t *testing.T) {
	var out bytes.Buffer
	NewPrinter(&out).Ballot(election.Ballot{Round: 1, Elector: 1, Constituency: "O9"})
	if !strings.Contains(out.String(), "no candidates") {
		t.Errorf("expected empty ballot notice, got %q", out.String())
	}
}
