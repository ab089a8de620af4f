package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/analysis"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/api"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/history"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/poller"
)

func newSubmitCommand(cctx *commandContext) *cobra.Command {
	var flags candidateFlags
	var useEstimate bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a transit candidate and wait for the verdict",
		Long: `Submit records a transit candidate, notifies the submission log, and polls
the analysis service until it reports a verdict or the poll window closes.
The candidate comes from a TOML file (--file), from individual flags, or
from both with flags overriding file values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			candidate, err := resolveCandidate(cmd, &flags)
			if err != nil {
				return err
			}

			runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cctx.ensureLogger()
			if err != nil {
				return err
			}

			return cctx.withStore(func(store *history.Store) error {
				out := cmd.OutOrStdout()
				if !jsonOut {
					fmt.Fprintf(out, "Submitting %s for analysis\n", candidate.ObjectID)
				}

				attempts := 0
				result, err := api.Submit(runCtx, api.SubmitRequest{
					Config:      cfg,
					Logger:      logger,
					Store:       store,
					Candidate:   candidate,
					UseEstimate: useEstimate,
					OnPending: func(status analysis.ServerStatus) {
						attempts++
						if !jsonOut {
							fmt.Fprintf(cmd.ErrOrStderr(), "  still pending (attempt %d)\n", attempts)
						}
					},
					OnError: func(pollErr error) {
						if !jsonOut {
							fmt.Fprintf(cmd.ErrOrStderr(), "  transient poll failure: %v\n", pollErr)
						}
					},
				})
				if err != nil {
					if errors.Is(err, context.Canceled) && result.Entry != nil && !jsonOut {
						fmt.Fprintf(cmd.ErrOrStderr(), "Interrupted; submission recorded as %s\n", result.Entry.Status)
					}
					return describeSubmitFailure(err)
				}

				if jsonOut {
					return writeJSON(cmd, api.FromEntry(result.Entry))
				}
				if result.Estimated {
					fmt.Fprintln(out, "Analysis service did not answer in time; showing a local estimate")
				}
				renderResultBlock(out, result.Result)
				return nil
			})
		},
	}

	registerCandidateFlags(cmd, &flags)
	cmd.Flags().BoolVar(&useEstimate, "estimate", true, "Fall back to a local estimate when polling times out")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the submission record as JSON")
	return cmd
}

func describeSubmitFailure(err error) error {
	var timeout *poller.TimeoutError
	if errors.As(err, &timeout) {
		return fmt.Errorf("%w; retry later with `somscan poll %s`", err, timeout.ObjectID)
	}
	return err
}
