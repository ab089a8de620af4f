package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/api"
	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/history"
)

func newHistoryCommand(cctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and manage recorded submissions",
	}

	historyCmd.AddCommand(newHistoryListCommand(cctx))
	historyCmd.AddCommand(newHistoryShowCommand(cctx))
	historyCmd.AddCommand(newHistoryStatsCommand(cctx))
	historyCmd.AddCommand(newHistoryClearCommand(cctx))

	return historyCmd
}

func newHistoryListCommand(cctx *commandContext) *cobra.Command {
	var statusFilters []string
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List submissions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := parseStatusFilters(statusFilters)
			if err != nil {
				return err
			}
			return cctx.withStore(func(store *history.Store) error {
				submissions, err := api.ListSubmissions(cmd.Context(), api.HistoryRequest{
					Store:    store,
					Statuses: statuses,
					Limit:    limit,
				})
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, api.SubmissionListResponse{Submissions: submissions})
				}
				if len(submissions) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "History is empty")
					return nil
				}
				table := renderTable(
					[]string{"Object", "Status", "Probability", "Source", "Updated"},
					buildHistoryRows(submissions),
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVarP(&statusFilters, "status", "s", nil, "Filter by submission status (repeatable)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of submissions to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the list as JSON")
	return cmd
}

func newHistoryShowCommand(cctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <object-id>",
		Short: "Show the latest submission for an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withStore(func(store *history.Store) error {
				submission, err := api.DescribeSubmission(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, submission)
				}
				renderSubmission(cmd.OutOrStdout(), submission)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the submission as JSON")
	return cmd
}

func newHistoryStatsCommand(cctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize submissions by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withStore(func(store *history.Store) error {
				stats, err := api.SubmissionStats(cmd.Context(), store)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, stats)
				}
				if stats.Total == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "History is empty")
					return nil
				}
				table := renderTableWithFooter(
					[]string{"Status", "Count"},
					buildStatsRows(stats),
					[]string{"Total", fmt.Sprintf("%d", stats.Total)},
					[]columnAlignment{alignLeft, alignRight},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the stats as JSON")
	return cmd
}

func newHistoryClearCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded submissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cctx.withStore(func(store *history.Store) error {
				count, err := api.ClearSubmissions(cmd.Context(), store)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d submissions\n", count)
				return nil
			})
		},
	}
}

func parseStatusFilters(raw []string) ([]history.Status, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	statuses := make([]history.Status, 0, len(raw))
	for _, value := range raw {
		status, ok := history.ParseStatus(value)
		if !ok {
			return nil, fmt.Errorf("unknown status %q (valid: %s)", value, strings.Join(statusNames(), ", "))
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func statusNames() []string {
	all := history.AllStatuses()
	names := make([]string, 0, len(all))
	for _, status := range all {
		names = append(names, string(status))
	}
	return names
}

func buildHistoryRows(submissions []api.Submission) [][]string {
	rows := make([][]string, 0, len(submissions))
	for _, sub := range submissions {
		probability := "-"
		if sub.Probability != nil {
			probability = fmt.Sprintf("%.3f", *sub.Probability)
		}
		source := sub.Source
		if source == "" {
			source = "-"
		}
		rows = append(rows, []string{
			sub.ObjectID,
			titleStatus(sub.Status),
			probability,
			source,
			sub.UpdatedAt,
		})
	}
	return rows
}

func buildStatsRows(stats api.SubmissionStatsResponse) [][]string {
	rows := make([][]string, 0, len(stats.Counts))
	for _, status := range history.AllStatuses() {
		count, ok := stats.Counts[string(status)]
		if !ok || count == 0 {
			continue
		}
		rows = append(rows, []string{titleStatus(string(status)), fmt.Sprintf("%d", count)})
	}
	return rows
}
