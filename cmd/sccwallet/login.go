package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and print a session ID",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		if username == "" {
			return fmt.Errorf("--username is required")
		}
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		svc, cleanup, err := openService()
		if err != nil {
			return err
		}
		defer cleanup()

		res, err := svc.Login(username, password)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		fmt.Printf("Session: %s\n", res.SessionID)
		if res.NeedsTotp {
			fmt.Println("TOTP required: run `sccwallet totp submit --session <id> --code <code>`")
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Invalidate a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _ := cmd.Flags().GetString("session")
		if session == "" {
			return fmt.Errorf("--session is required")
		}

		svc, cleanup, err := openService()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := svc.Logout(session); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringP("username", "u", "", "username (required)")
	loginCmd.MarkFlagRequired("username")
	rootCmd.AddCommand(loginCmd)

	logoutCmd.Flags().String("session", "", "session ID (required)")
	logoutCmd.MarkFlagRequired("session")
	rootCmd.AddCommand(logoutCmd)
}
