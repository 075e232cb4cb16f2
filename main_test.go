package main

import (
	"bytes"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/candidatos-info/runoff/ballot"
	"github.com/candidatos-info/runoff/records"
	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func writeRecords(t *testing.T, candidates, electors string) (string, string) {
	dir := t.TempDir()
	candidatesFile := filepath.Join(dir, "candidates.txt")
	if err := ioutil.WriteFile(candidatesFile, []byte(candidates), 0644); err != nil {
		t.Fatalf("expected err nil when writing candidates, got %q", err)
	}
	electorsFile := filepath.Join(dir, "electors.txt")
	if err := ioutil.WriteFile(electorsFile, []byte(electors), 0644); err != nil {
		t.Fatalf("expected err nil when writing electors, got %q", err)
	}
	return candidatesFile, electorsFile
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunInteractive(t *testing.T) {
	candidates, electors := writeRecords(t, "Alice, Smith, 0, O1\nBob, Jones, 0, O1\n", "O1\nO1\n")
	out, err := execute(t, "1\n2\n1\n1\n", "run", "--candidates", candidates, "--electors", electors)
	if err != nil {
		t.Fatalf("expected err nil when running election, got %q", err)
	}
	if !strings.Contains(out, "Winner: Alice Smith (O1, 2 votes)") {
		t.Errorf("expected Alice to win, got\n%s", out)
	}
}

func TestRunMalformedElectors(t *testing.T) {
	candidates, electors := writeRecords(t, "Alice, Smith, 0, O1\n", "O\n")
	_, err := execute(t, "", "run", "--candidates", candidates, "--electors", electors)
	if !errors.Is(err, records.ErrFormat) {
		t.Errorf("expected format error, got %v", err)
	}
}

func TestRunNonNumericVote(t *testing.T) {
	candidates, electors := writeRecords(t, "Alice, Smith, 0, O1\n", "O1\n")
	if _, err := execute(t, "abc\n", "run", "--candidates", candidates, "--electors", electors); err == nil {
		t.Errorf("expected error for non numeric vote, got nil")
	}
	out, err := execute(t, "abc\n", "run", "--candidates", candidates, "--electors", electors, "--abstain-invalid")
	if err != nil {
		t.Fatalf("expected err nil when abstaining, got %q", err)
	}
	if !strings.Contains(out, "Winner: Alice Smith (O1, 0 votes)") {
		t.Errorf("expected lone candidate to win, got\n%s", out)
	}
}

func TestRunSheetWithReport(t *testing.T) {
	candidates, electors := writeRecords(t, "Alice, Smith, 0, O1\nBob, Jones, 0, O1\n", "O1\nO1\n")
	dir := filepath.Dir(candidates)
	sheet := filepath.Join(dir, "ballots.csv")
	// the tie never breaks, the sheet length bounds the rounds
	content := "round,elector,choice\n1,1,1\n1,2,2\n2,1,1\n2,2,2\n"
	if err := ioutil.WriteFile(sheet, []byte(content), 0644); err != nil {
		t.Fatalf("expected err nil when writing sheet, got %q", err)
	}
	reports := filepath.Join(dir, "reports")
	out, err := execute(t, "", "run", "--candidates", candidates, "--electors", electors, "--ballots", sheet, "--report", reports)
	if err != nil {
		t.Fatalf("expected err nil when running election, got %q", err)
	}
	if !strings.Contains(out, "Winners (tied after 2 rounds)") {
		t.Errorf("expected a tie after 2 rounds, got\n%s", out)
	}
	files, err := ioutil.ReadDir(reports)
	if err != nil {
		t.Fatalf("expected err nil when listing reports, got %q", err)
	}
	if len(files) != 3 {
		t.Errorf("want 3 report files, got %d", len(files))
	}
}

func TestRunHeaderOnlySheet(t *testing.T) {
	candidates, electors := writeRecords(t, "Alice, Smith, 0, O1\nBob, Jones, 0, O1\n", "O1\nO1\n")
	sheet := filepath.Join(filepath.Dir(candidates), "ballots.csv")
	if err := ioutil.WriteFile(sheet, []byte("round,elector,choice\n"), 0644); err != nil {
		t.Fatalf("expected err nil when writing sheet, got %q", err)
	}
	done := make(chan error, 1)
	go func() {
		_, err := execute(t, "", "run", "--candidates", candidates, "--electors", electors, "--ballots", sheet)
		done <- err
	}()
	select {
	case err := <-done:
		if !errors.Is(err, ballot.ErrEmptySheet) {
			t.Errorf("want empty sheet error, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("run with a header only ballot sheet did not return")
	}
}

func TestGetenv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	if got := getenv("SERVER_PORT", "8080"); got != "9999" {
		t.Errorf("want 9999, got %s", got)
	}
	os.Unsetenv("SERVER_PORT")
	if got := getenv("SERVER_PORT", "8080"); got != "8080" {
		t.Errorf("want 8080, got %s", got)
	}
}
