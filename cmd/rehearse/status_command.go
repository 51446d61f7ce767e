package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"rehearse/internal/interview"
	"rehearse/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and practice-session status",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()

			client, err := ctx.dialClient()
			if err != nil {
				if jsonOutput {
					return writeJSON(cmd, map[string]any{"running": false})
				}
				colorize := shouldColorize(stdout)
				for _, line := range renderSectionHeader("Daemon", colorize) {
					fmt.Fprintln(stdout, line)
				}
				fmt.Fprintln(stdout, renderStatusLine("Rehearsed", statusWarn, "Not running (run `rehearse daemon start`)", colorize))
				return nil
			}
			defer client.Close()

			status, err := client.Status()
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, status)
			}

			colorize := shouldColorize(stdout)
			printStatus(cmd, status, colorize)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit status as JSON")
	return cmd
}

func printStatus(cmd *cobra.Command, status *ipc.StatusResponse, colorize bool) {
	stdout := cmd.OutOrStdout()

	for _, line := range renderSectionHeader("Daemon", colorize) {
		fmt.Fprintln(stdout, line)
	}
	if status.Running {
		fmt.Fprintln(stdout, renderStatusLine("Rehearsed", statusOK, fmt.Sprintf("Running (pid %d)", status.PID), colorize))
	} else {
		fmt.Fprintln(stdout, renderStatusLine("Rehearsed", statusWarn, "Not running", colorize))
	}
	if status.Identity != nil {
		fmt.Fprintln(stdout, renderStatusLine("Signed in", statusOK, fmt.Sprintf("%s <%s>", status.Identity.Name, status.Identity.Email), colorize))
	} else {
		fmt.Fprintln(stdout, renderStatusLine("Signed in", statusInfo, "No (sessions will not be saved)", colorize))
	}
	fmt.Fprintln(stdout)

	for _, line := range renderSectionHeader("Checks", colorize) {
		fmt.Fprintln(stdout, line)
	}
	for _, check := range status.Checks {
		kind := statusOK
		if !check.Passed {
			kind = statusWarn
		}
		fmt.Fprintln(stdout, renderStatusLine(check.Name, kind, check.Detail, colorize))
	}
	fmt.Fprintln(stdout)

	for _, line := range renderSectionHeader("Interview", colorize) {
		fmt.Fprintln(stdout, line)
	}
	printInterview(stdout, status.Interview, colorize)
}

func printInterview(stdout io.Writer, snap interview.Snapshot, colorize bool) {
	fmt.Fprintln(stdout, renderStatusLine("Topic", statusInfo, snap.Topic, colorize))
	fmt.Fprintln(stdout, renderStatusLine("State", interviewStateKind(snap.State), stateDetail(snap), colorize))
	if snap.Question != nil {
		fmt.Fprintln(stdout, renderStatusLine("Question", statusInfo, snap.Question.Text, colorize))
	}
	if snap.Result != nil {
		fmt.Fprintln(stdout, renderStatusLine("Last score", statusOK, fmt.Sprintf("%d%%", snap.Result.Score), colorize))
	}
	if snap.LastError != "" {
		fmt.Fprintln(stdout, renderStatusLine("Last error", statusError, snap.LastError, colorize))
	}
}

func interviewStateKind(state interview.State) statusKind {
	switch state {
	case interview.StateRecording, interview.StateAnalyzing:
		return statusWarn
	case interview.StateScored:
		return statusOK
	default:
		return statusInfo
	}
}

func stateDetail(snap interview.Snapshot) string {
	detail := strings.ReplaceAll(string(snap.State), "_", " ")
	if snap.State == interview.StateRecording {
		elapsed := snap.Elapsed.Round(time.Second)
		detail = fmt.Sprintf("%s on %s (%s elapsed)", detail, snap.Device, elapsed)
	}
	return detail
}
