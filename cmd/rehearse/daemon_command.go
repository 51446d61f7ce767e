package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"rehearse/internal/daemonctl"
	"rehearse/internal/daemonrun"
)

func newDaemonCommand(ctx *commandContext) *cobra.Command {
	daemonCmd := &cobra.Command{
		Use:   "daemon",
		Short: "Manage the rehearsed background process",
	}

	daemonCmd.AddCommand(newDaemonRunCommand(ctx))
	daemonCmd.AddCommand(newDaemonStartCommand(ctx))
	daemonCmd.AddCommand(newDaemonStopCommand(ctx))
	daemonCmd.AddCommand(newDaemonRestartCommand(ctx))

	return daemonCmd
}

func newDaemonRunCommand(ctx *commandContext) *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:    "run",
		Short:  "Run the daemon in the foreground",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return daemonrun.Run(cmd.Context(), cfg, daemonrun.Options{LogLevel: logLevel})
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
	return cmd
}

func newDaemonStartCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Launch the daemon in the background",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			exe, err := daemonExecutable()
			if err != nil {
				return err
			}

			launched, err := daemonctl.EnsureStarted(
				ctx.socketPath(),
				exe,
				daemonctl.LaunchOptions{ConfigPath: ctx.configPath()},
				10*time.Second,
			)
			if err != nil {
				return err
			}
			if launched {
				fmt.Fprintln(stdout, "Daemon started")
			} else {
				fmt.Fprintln(stdout, "Daemon already running")
			}
			return nil
		},
	}
}

func newDaemonStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the daemon process",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			result, err := daemonctl.StopAndTerminate(ctx.configValue(), 5*time.Second)
			if errors.Is(err, daemonctl.ErrDaemonNotRunning) {
				fmt.Fprintln(stdout, "Daemon is not running")
				return nil
			}
			if err != nil {
				return err
			}
			if result.ForcedKill {
				fmt.Fprintf(stdout, "Daemon did not exit gracefully, killed pid %d\n", result.PID)
				return nil
			}
			fmt.Fprintln(stdout, "Daemon stopped")
			return nil
		},
	}
}

func newDaemonRestartCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Restart the daemon process",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			exe, err := daemonExecutable()
			if err != nil {
				return err
			}

			_, stopErr := daemonctl.StopAndTerminate(ctx.configValue(), 5*time.Second)
			if stopErr != nil && !errors.Is(stopErr, daemonctl.ErrDaemonNotRunning) {
				return stopErr
			}

			launched, err := daemonctl.EnsureStarted(
				ctx.socketPath(),
				exe,
				daemonctl.LaunchOptions{ConfigPath: ctx.configPath()},
				10*time.Second,
			)
			if err != nil {
				return err
			}
			if launched {
				fmt.Fprintln(stdout, "Daemon restarted")
			} else {
				fmt.Fprintln(stdout, "Daemon already running")
			}
			return nil
		},
	}
}

func daemonExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	return exe, nil
}
