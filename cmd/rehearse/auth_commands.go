package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rehearse/internal/ipc"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the practice history backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email, err = promptIfEmpty(cmd, "Email: ", email); err != nil {
				return err
			}
			if password, err = promptIfEmpty(cmd, "Password: ", password); err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Login(email, password)
				if err != nil {
					return err
				}
				if resp.Identity == nil {
					return errors.New("login succeeded but no identity was returned")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", resp.Identity.Name, resp.Identity.Email)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	return cmd
}

func newSignupCommand(ctx *commandContext) *cobra.Command {
	var name string
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account on the practice history backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if name, err = promptIfEmpty(cmd, "Name: ", name); err != nil {
				return err
			}
			if email, err = promptIfEmpty(cmd, "Email: ", email); err != nil {
				return err
			}
			if password, err = promptIfEmpty(cmd, "Password: ", password); err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Signup(name, email, password)
				if err != nil {
					return err
				}
				if resp.Identity == nil {
					return errors.New("signup succeeded but no identity was returned")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Account created, signed in as %s <%s>\n", resp.Identity.Name, resp.Identity.Email)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	return cmd
}

func newLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and stop saving sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.Logout(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
				return nil
			})
		},
	}
}

func newWhoAmICommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.WhoAmI()
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if resp.Identity == nil {
					fmt.Fprintln(stdout, "Not signed in")
					return nil
				}
				fmt.Fprintf(stdout, "%s <%s>\n", resp.Identity.Name, resp.Identity.Email)
				return nil
			})
		},
	}
}

func promptIfEmpty(cmd *cobra.Command, prompt, value string) (string, error) {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value), nil
	}
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.New("value must not be empty")
	}
	return line, nil
}
