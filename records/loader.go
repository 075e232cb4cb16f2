package records

import (
	"context"
	"fmt"
	"io"
	"regexp"

	log "github.com/sirupsen/logrus"
)

// Loader holds the line gates and charset used to read a pair of record files
type Loader struct {
	CandidatePattern *regexp.Regexp
	ElectorPattern   *regexp.Regexp
	Encoding         Encoding
	Progress         io.Writer // where remote downloads draw progress, may be nil
}

// NewLoader compiles the patterns. Empty patterns fall back to the defaults.
func NewLoader(candidatePattern, electorPattern string, encoding Encoding) (*Loader, error) {
	if candidatePattern == "" {
		candidatePattern = DefaultCandidatePattern
	}
	if electorPattern == "" {
		electorPattern = DefaultElectorPattern
	}
	cp, err := regexp.Compile(candidatePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid candidate pattern %q, error %w", candidatePattern, err)
	}
	ep, err := regexp.Compile(electorPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid elector pattern %q, error %w", electorPattern, err)
	}
	return &Loader{CandidatePattern: cp, ElectorPattern: ep, Encoding: encoding}, nil
}

// Load reads the candidates and electors sources
func (l *Loader) Load(ctx context.Context, candidatesSource, electorsSource string) ([]CandidateRecord, []ElectorRecord, error) {
	cf, err := Open(ctx, candidatesSource, l.Progress)
	if err != nil {
		return nil, nil, err
	}
	defer cf.Close()
	candidates, err := LoadCandidates(l.Encoding.Reader(cf), l.CandidatePattern)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load candidates from %s: %w", candidatesSource, err)
	}
	ef, err := Open(ctx, electorsSource, l.Progress)
	if err != nil {
		return nil, nil, err
	}
	defer ef.Close()
	electors, err := LoadElectors(l.Encoding.Reader(ef), l.ElectorPattern)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load electors from %s: %w", electorsSource, err)
	}
	log.WithFields(log.Fields{"candidates": len(candidates), "electors": len(electors)}).Debug("records loaded")
	return candidates, electors, nil
}
