package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rehearse/internal/analysis"
	"rehearse/internal/config"
	"rehearse/internal/ipc"
)

func newStartCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start recording an answer to the current question",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.StartRecording()
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				fmt.Fprintf(stdout, "Recording on %s\n", resp.Device)
				if resp.Question != "" {
					fmt.Fprintf(stdout, "Question: %s\n", resp.Question)
				}
				fmt.Fprintln(stdout, "Run `rehearse stop` when you are done answering.")
				return nil
			})
		},
	}
}

func newStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the active recording",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				stdout := cmd.OutOrStdout()
				fmt.Fprintln(stdout, "Stopping recording...")
				resp, err := client.StopRecording()
				if err != nil {
					return err
				}
				if resp.Submitted {
					printResult(stdout, resp.Result)
					return nil
				}
				fmt.Fprintln(stdout, "Recording stopped")
				fmt.Fprintln(stdout, "Run `rehearse submit` to send it for analysis.")
				return nil
			})
		},
	}
}

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send the stopped recording for analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filePath
			if path != "" {
				expanded, err := config.ExpandPath(path)
				if err != nil {
					return fmt.Errorf("resolve file path: %w", err)
				}
				path = expanded
			}
			return ctx.withClient(func(client *ipc.Client) error {
				fmt.Fprintln(cmd.OutOrStdout(), "Analyzing recording...")
				resp, err := client.Submit(path)
				if err != nil {
					return err
				}
				printResult(cmd.OutOrStdout(), resp.Result)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Submit a pre-recorded video file instead of the last recording")
	return cmd
}

func newResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard the current recording attempt",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Reset()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Attempt discarded (state: %s)\n", resp.State)
				return nil
			})
		},
	}
}

func printResult(stdout io.Writer, result *analysis.Result) {
	if result == nil {
		fmt.Fprintln(stdout, "No analysis result returned")
		return
	}
	fmt.Fprintf(stdout, "Confidence score: %d%%\n", result.Score)
	fmt.Fprintf(stdout, "  Facial: %d%%\n", result.FacialConfidence)
	fmt.Fprintf(stdout, "  Speech: %d%%\n", result.SpeechConfidence)
	fmt.Fprintf(stdout, "  Body:   %d%%\n", result.BodyConfidence)
	if result.HasDuration() {
		fmt.Fprintf(stdout, "  Length: %s\n", formatSeconds(int(result.VideoDuration.Seconds())))
	}
}
