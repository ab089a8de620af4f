package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/api"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/history"
)

func newEstimateCommand(cctx *commandContext) *cobra.Command {
	var flags candidateFlags
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Score a candidate locally without contacting the service",
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
				result, err := api.EstimateLocal(runCtx, api.EstimateRequest{
					Config:    cfg,
					Logger:    logger,
					Store:     store,
					Candidate: candidate,
				})
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, api.FromEntry(result.Entry))
				}
				renderResultBlock(cmd.OutOrStdout(), result.Result)
				return nil
			})
		},
	}

	registerCandidateFlags(cmd, &flags)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the submission record as JSON")
	return cmd
}
