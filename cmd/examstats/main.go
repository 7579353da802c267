// Package main provides the operator CLI: seed fixtures, print a user's
// statistics, and inspect how filter values are normalized.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/examprep/backend/internal/domain/filter"
	"github.com/examprep/backend/internal/infrastructure/config"
	"github.com/examprep/backend/internal/seed"
	"github.com/examprep/backend/internal/service"
	"github.com/examprep/backend/internal/stats"
	"github.com/examprep/backend/internal/store"
)

var (
	statsUser    string
	statsSubject string
	statsJSON    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "examstats",
		Short:         "Exam answer statistics tools",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newNormalizeCmd())

	return rootCmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <fixture.toml>",
		Short: "Load subjects, questions and answers from a TOML fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := seed.Load(args[0])
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			counts, err := f.Apply(cmd.Context(), st)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d subjects, %d questions, %d answers\n",
				counts.Subjects, counts.Questions, counts.Answers)
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print a user's statistics per subject and topic",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsUser, "user", "", "user id (required)")
	cmd.Flags().StringVar(&statsSubject, "subject", "", "limit to one subject id")
	cmd.Flags().BoolVar(&statsJSON, "json", false, "print JSON instead of a table")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.LoadStorage()
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	svc := service.NewStatsService(st, logger, cfg.SummaryWorkers, stats.Options{
		MaxConcurrentFetches: cfg.FetchConcurrency,
	})

	var summaries []service.SubjectSummary
	if statsSubject != "" {
		report, err := svc.SubjectReport(ctx, statsSubject, statsUser)
		if err != nil {
			return err
		}
		subj, err := st.GetSubject(ctx, statsSubject)
		if err != nil {
			return err
		}
		summaries = []service.SubjectSummary{{Name: subj.Name, Report: report}}
	} else {
		summaries, err = svc.Summaries(ctx, statsUser)
		if err != nil {
			return err
		}
	}

	if statsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}
	return printSummaries(cmd.OutOrStdout(), summaries)
}

func printSummaries(out io.Writer, summaries []service.SubjectSummary) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SUBJECT\tTOPIC\tATTEMPTS\tCORRECT\tWRONG\tRATE\tIMPORTANCE")
	for _, s := range summaries {
		o := s.Report.Overall
		fmt.Fprintf(tw, "%s\t\t%d\t%d\t%d\t%d%%\t%d%%\n",
			s.Name, o.TotalAttempts, o.CorrectAnswers, o.WrongAnswers, o.SuccessRate, s.Importance)
		for _, t := range s.Report.PerTopic {
			fmt.Fprintf(tw, "\t%s\t%d\t%d\t%d\t%d%%\t\n",
				t.Name, t.TotalAttempts, t.CorrectAnswers, t.WrongAnswers, t.SuccessRate)
		}
		for _, f := range s.Report.Failures {
			fmt.Fprintf(tw, "\t! %s\t\t\t\t\t\n", f.Error())
		}
	}
	return tw.Flush()
}

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <value>...",
		Short: "Show the terms a raw filter value resolves to",
		Long: "Each argument is read as raw text, the way filter columns are stored.\n" +
			"Several arguments are treated as one list.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := filter.String(args[0])
			if len(args) > 1 {
				v = filter.Strings(args...)
			}
			terms := filter.Normalize(v)
			if len(terms) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(not applied)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(terms, "\n"))
			return nil
		},
	}
}

func openStore(ctx context.Context) (store.Store, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.LoadStorage()
	return store.Open(ctx, cfg.DBDriver, cfg.DBDSN)
}
