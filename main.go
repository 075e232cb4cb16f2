package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/candidatos-info/runoff/election"
	"github.com/candidatos-info/runoff/records"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// flags shared by every command that builds an election
type electionParams struct {
	candidates       string
	electors         string
	candidatePattern string
	electorPattern   string
	encoding         string
	maxRounds        int
	rejectIneligible bool
	verbose          bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	params := &electionParams{}
	rootCmd := &cobra.Command{
		Use:          "runoff",
		Short:        "Constituency runoff election",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(cmd.ErrOrStderr())
			if params.verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&params.candidates, "candidates", "candidates.txt", "candidates file, a path or a file:// or http(s):// URL")
	flags.StringVar(&params.electors, "electors", "electors.txt", "electors file, a path or a file:// or http(s):// URL")
	flags.StringVar(&params.candidatePattern, "candidate-pattern", records.DefaultCandidatePattern, "pattern every candidate line must match")
	flags.StringVar(&params.electorPattern, "elector-pattern", records.DefaultElectorPattern, "pattern every elector line must match")
	flags.StringVar(&params.encoding, "encoding", string(records.UTF8), "charset of the record files (utf-8 or latin1)")
	flags.IntVar(&params.maxRounds, "max-rounds", 0, "stop after this many rounds even when tied, 0 for no limit")
	flags.BoolVar(&params.rejectIneligible, "reject-ineligible", false, "count votes for eliminated candidates as abstentions")
	flags.BoolVarP(&params.verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(newRunCmd(params), newServeCmd(params))
	return rootCmd
}

// build loads the record files and returns the election they describe
func (p *electionParams) build(ctx context.Context, progress io.Writer) (*election.Election, error) {
	enc, err := records.ParseEncoding(p.encoding)
	if err != nil {
		return nil, err
	}
	loader, err := records.NewLoader(p.candidatePattern, p.electorPattern, enc)
	if err != nil {
		return nil, err
	}
	loader.Progress = progress
	candidates, electors, err := loader.Load(ctx, p.candidates, p.electors)
	if err != nil {
		return nil, err
	}
	var opts []election.Option
	if p.rejectIneligible {
		opts = append(opts, election.WithRejectIneligible())
	}
	e, err := election.New(candidates, electors, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build election, error %w", err)
	}
	log.WithFields(log.Fields{"election": e.ID, "candidates": len(candidates), "electors": len(electors)}).Info("election loaded")
	return e, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
