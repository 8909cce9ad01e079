package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newLoginCmd(st *state) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("password required: pass --password or write it to stdin")
				}
				password = strings.TrimRight(line, "\r\n")
			}
			cred, err := st.app.Session.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s until %s\n",
				cred.Account, cred.ExpiresAt.Local().Format(time.DateTime))
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (read from stdin when omitted)")
	return cmd
}

func newLogoutCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.app.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return err
		},
	}
}

func newStatusCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := st.app.Session.Status(cmd.Context())
			if err != nil {
				return err
			}
			tbl := newTable()
			tbl.AddRow("API", st.app.Config.API.BaseURL)
			if !status.Authenticated {
				tbl.AddRow("Session", "signed out")
				return printTable(cmd.OutOrStdout(), tbl)
			}
			tbl.AddRow("Session", "signed in")
			tbl.AddRow("Account", status.Account)
			if status.ExpiresAt != nil {
				tbl.AddRow("Expires", status.ExpiresAt.Local().Format(time.DateTime))
			}
			return printTable(cmd.OutOrStdout(), tbl)
		},
	}
}
