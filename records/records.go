// Package records reads the candidate and elector record files an
// election is built from. A batch either parses completely or the
// load fails with a *FormatError and no records.
package records

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const (
	// DefaultCandidatePattern is the line gate for candidate files
	DefaultCandidatePattern = `^([A-Z][a-z]+, ){2}0{1}, O\d+$`

	// DefaultElectorPattern is the line gate for elector files
	DefaultElectorPattern = `^O\d+$`
)

// CandidateRecord is one validated line of a candidates file
type CandidateRecord struct {
	Name         string
	LastName     string
	Votes        int
	Constituency string
}

// ElectorRecord is one validated line of an electors file
type ElectorRecord struct {
	Constituency string
}

// LoadCandidates reads every line of r. Each line must match pattern and
// the candidate grammar, otherwise the whole batch is rejected.
func LoadCandidates(r io.Reader, pattern *regexp.Regexp) ([]CandidateRecord, error) {
	var candidates []CandidateRecord
	err := eachLine(r, func(n int, line string) error {
		if !pattern.MatchString(line) {
			return &FormatError{Kind: KindCandidate, Line: n, Text: line, Reason: fmt.Sprintf("does not match %s", pattern)}
		}
		c, err := parseCandidate(line)
		if err != nil {
			return &FormatError{Kind: KindCandidate, Line: n, Text: line, Reason: err.Error()}
		}
		candidates = append(candidates, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// LoadElectors reads every line of r. Commas are dropped from a matching
// line before it is parsed as a constituency code.
func LoadElectors(r io.Reader, pattern *regexp.Regexp) ([]ElectorRecord, error) {
	var electors []ElectorRecord
	err := eachLine(r, func(n int, line string) error {
		if !pattern.MatchString(line) {
			return &FormatError{Kind: KindElector, Line: n, Text: line, Reason: fmt.Sprintf("does not match %s", pattern)}
		}
		e, err := parseElector(strings.ReplaceAll(line, ",", ""))
		if err != nil {
			return &FormatError{Kind: KindElector, Line: n, Text: line, Reason: err.Error()}
		}
		electors = append(electors, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return electors, nil
}

// eachLine calls fn with the 1-based number and the text of every line,
// stopping at the first error.
func eachLine(r io.Reader, fn func(n int, line string) error) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		if err := fn(n, strings.TrimSuffix(scanner.Text(), "\r")); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read line %d, error %w", n+1, err)
	}
	return nil
}
