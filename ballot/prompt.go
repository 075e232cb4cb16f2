// Package ballot has the sources electors vote through and the sinks the
// election reports to.
package ballot

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/candidatos-info/runoff/election"
	"github.com/matryer/try"
	log "github.com/sirupsen/logrus"
)

// InputParseError is returned when an elector types something that is not an integer
type InputParseError struct {
	Elector int
	Input   string
	Err     error
}

func (e *InputParseError) Error() string {
	return fmt.Sprintf("vote of elector %d is not a number: %q", e.Elector, e.Input)
}

func (e *InputParseError) Unwrap() error {
	return e.Err
}

// Prompt reads one integer per ballot from an interactive input
type Prompt struct {
	scanner        *bufio.Scanner
	out            io.Writer
	retries        int
	abstainInvalid bool
}

// NewPrompt returns a prompt reading from in and asking on out. A non numeric
// answer is asked again up to retries times; once attempts run out it fails
// with an *InputParseError, or counts as an abstention when abstainInvalid is set.
func NewPrompt(in io.Reader, out io.Writer, retries int, abstainInvalid bool) *Prompt {
	if retries < 0 {
		retries = 0
	}
	if retries >= try.MaxRetries {
		retries = try.MaxRetries - 1
	}
	return &Prompt{
		scanner:        bufio.NewScanner(in),
		out:            out,
		retries:        retries,
		abstainInvalid: abstainInvalid,
	}
}

// Vote asks for the choice of the elector of b
func (p *Prompt) Vote(ctx context.Context, b election.Ballot) (int, error) {
	var choice int
	err := try.Do(func(attempt int) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		fmt.Fprintf(p.out, "Elector %d, your choice: ", b.Elector)
		if !p.scanner.Scan() {
			err := p.scanner.Err()
			if err == nil {
				err = io.ErrUnexpectedEOF
			}
			return false, fmt.Errorf("failed to read vote of elector %d, error %w", b.Elector, err)
		}
		text := strings.TrimSpace(p.scanner.Text())
		v, err := strconv.Atoi(text)
		if err != nil {
			if attempt <= p.retries {
				fmt.Fprintf(p.out, "%q is not a number, try again\n", text)
			}
			return attempt <= p.retries, &InputParseError{Elector: b.Elector, Input: text, Err: err}
		}
		choice = v
		return false, nil
	})
	if err != nil {
		var perr *InputParseError
		if errors.As(err, &perr) && p.abstainInvalid {
			log.WithFields(log.Fields{"round": b.Round, "elector": b.Elector, "input": perr.Input}).Warn("invalid vote recorded as abstention")
			return 0, nil
		}
		return 0, err
	}
	return choice, nil
}
