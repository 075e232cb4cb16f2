package ballot

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/candidatos-info/runoff/election"
	"github.com/gocarina/gocsv"
)

// ErrEmptySheet is returned for a ballot sheet without votes
var ErrEmptySheet = errors.New("ballot sheet has no votes")

// one line of a ballot sheet
type sheetRow struct {
	Round   int `csv:"round"`
	Elector int `csv:"elector"`
	Choice  int `csv:"choice"`
}

type sheetKey struct {
	round   int
	elector int
}

// Sheet replays votes written down in a CSV file with the header
// round,elector,choice. Ballots with no line are abstentions.
type Sheet struct {
	votes  map[sheetKey]int
	rounds int
}

// LoadSheet reads a ballot sheet
func LoadSheet(in io.Reader) (*Sheet, error) {
	r := csv.NewReader(in)
	r.TrimLeadingSpace = true
	var rows []*sheetRow
	if err := gocsv.UnmarshalCSV(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to read ballot sheet, error %w", err)
	}
	s := &Sheet{votes: make(map[sheetKey]int, len(rows))}
	for i, row := range rows {
		if row.Round < 1 || row.Elector < 1 {
			return nil, fmt.Errorf("ballot sheet line %d: round and elector start at 1, got %d and %d", i+2, row.Round, row.Elector)
		}
		k := sheetKey{round: row.Round, elector: row.Elector}
		if _, ok := s.votes[k]; ok {
			return nil, fmt.Errorf("ballot sheet line %d: elector %d already voted in round %d", i+2, row.Elector, row.Round)
		}
		s.votes[k] = row.Choice
		if row.Round > s.rounds {
			s.rounds = row.Round
		}
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}
	return s, nil
}

// Rounds returns the last round the sheet has votes for
func (s *Sheet) Rounds() int {
	return s.rounds
}

// Vote returns the choice written for the ballot
func (s *Sheet) Vote(ctx context.Context, b election.Ballot) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.votes[sheetKey{round: b.Round, elector: b.Elector}], nil
}
