package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rehearse/internal/history"
	"rehearse/internal/ipc"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate practice statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Stats()
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, resp.Stats)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderStatsTable(resp.Stats))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit stats as JSON")
	return cmd
}

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var limit int

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded practice sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Sessions()
				if err != nil {
					return err
				}
				records := resp.Sessions
				if limit > 0 && len(records) > limit {
					records = records[:limit]
				}
				if jsonOutput {
					return writeJSON(cmd, records)
				}
				stdout := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(stdout, "No sessions recorded yet")
					return nil
				}
				fmt.Fprintln(stdout, renderSessionsTable(records))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit sessions as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many sessions (0 shows all)")
	return cmd
}

func renderStatsTable(stats history.Stats) string {
	rows := [][]string{
		{"Sessions", strconv.Itoa(stats.TotalSessions)},
		{"Average score", fmt.Sprintf("%d%%", stats.AvgScore)},
		{"Highest score", fmt.Sprintf("%d%%", stats.HighestScore)},
		{"Time practiced", formatSeconds(stats.TotalDuration)},
	}
	return renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}

func renderSessionsTable(records []history.Record) string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		question := record.Question
		if len(question) > 48 {
			question = question[:45] + "..."
		}
		rows = append(rows, []string{
			record.Timestamp.Local().Format("2006-01-02 15:04"),
			record.Topic,
			question,
			fmt.Sprintf("%d%%", record.Score),
			formatSeconds(record.Duration),
		})
	}
	return renderTable(
		[]string{"When", "Topic", "Question", "Score", "Length"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	)
}
