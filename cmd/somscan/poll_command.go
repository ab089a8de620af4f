package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/analysis"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/api"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/history"
)

func newPollCommand(cctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "poll <object-id>",
		Short: "Poll the analysis service again for a recorded candidate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			objectID := strings.TrimSpace(args[0])

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
				attempts := 0
				result, err := api.PollObject(runCtx, api.PollObjectRequest{
					Config:   cfg,
					Logger:   logger,
					Store:    store,
					ObjectID: objectID,
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
					return describeSubmitFailure(err)
				}
				if jsonOut {
					return writeJSON(cmd, api.FromEntry(result.Entry))
				}
				renderResultBlock(cmd.OutOrStdout(), result.Result)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the submission record as JSON")
	return cmd
}
