package main

import (
	"fmt"
	"os"

	"github.com/candidatos-info/runoff/ballot"
	"github.com/candidatos-info/runoff/election"
	"github.com/candidatos-info/runoff/filestorage"
	"github.com/candidatos-info/runoff/records"
	"github.com/candidatos-info/runoff/report"
	"github.com/spf13/cobra"
)

func newRunCmd(params *electionParams) *cobra.Command {
	var (
		ballots        string
		retries        int
		abstainInvalid bool
		reportTarget   string
	)
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run an election, asking every elector for a vote",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := params.build(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			maxRounds := params.maxRounds
			var src election.BallotSource
			if ballots != "" {
				sheet, err := loadSheet(ballots, params.encoding)
				if err != nil {
					return err
				}
				if maxRounds == 0 {
					maxRounds = sheet.Rounds()
				}
				src = sheet
			} else {
				src = ballot.NewPrompt(cmd.InOrStdin(), cmd.OutOrStdout(), retries, abstainInvalid)
			}
			res, err := election.NewRunoff(e, maxRounds).Run(ctx, src, ballot.NewPrinter(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			if reportTarget == "" {
				return nil
			}
			storage, bucket, err := filestorage.Open(reportTarget)
			if err != nil {
				return fmt.Errorf("failed to open report storage %s, error %w", reportTarget, err)
			}
			_, err = report.Export(report.New(res), storage, bucket)
			return err
		},
	}
	flags := runCmd.Flags()
	flags.StringVar(&ballots, "ballots", "", "CSV ballot sheet (round,elector,choice); the prompt is used when empty")
	flags.IntVar(&retries, "retries", 0, "times a non numeric vote is asked again")
	flags.BoolVar(&abstainInvalid, "abstain-invalid", false, "record a non numeric vote as abstention instead of failing")
	flags.StringVar(&reportTarget, "report", "", "where to save the result: a directory, gs://BUCKET, s3://BUCKET or drive://FOLDER_ID")
	return runCmd
}

func loadSheet(path, encoding string) (*ballot.Sheet, error) {
	enc, err := records.ParseEncoding(encoding)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ballot sheet %s, error %w", path, err)
	}
	defer f.Close()
	return ballot.LoadSheet(enc.Reader(f))
}
