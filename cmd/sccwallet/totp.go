package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var totpCmd = &cobra.Command{
	Use:   "totp",
	Short: "Manage TOTP two-factor enrolment",
}

var totpSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a TOTP code to confirm a pending login session",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _ := cmd.Flags().GetString("session")
		code, _ := cmd.Flags().GetString("code")

		svc, cleanup, err := openService()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := svc.SubmitTotp(session, code); err != nil {
			return fmt.Errorf("submit totp: %w", err)
		}
		fmt.Println("Session active.")
		return nil
	},
}

var totpEnrollCmd = &cobra.Command{
	Use:   "enroll",
	Short: "Begin TOTP enrolment for the session's user",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _ := cmd.Flags().GetString("session")
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		svc, cleanup, err := openService()
		if err != nil {
			return err
		}
		defer cleanup()

		uri, err := svc.EnableTotp(session, password)
		if err != nil {
			return fmt.Errorf("enable totp: %w", err)
		}
		fmt.Printf("Scan this URI with an authenticator app:\n%s\n", uri)
		return nil
	},
}

var totpConfirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Confirm TOTP enrolment with the current code",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _ := cmd.Flags().GetString("session")
		code, _ := cmd.Flags().GetString("code")

		svc, cleanup, err := openService()
		if err != nil {
			return err
		}
		defer cleanup()

		codes, err := svc.ConfirmTotp(session, code)
		if err != nil {
			return fmt.Errorf("confirm totp: %w", err)
		}
		fmt.Println("TOTP enabled. Backup codes (store these somewhere safe):")
		for _, c := range codes {
			fmt.Println(" ", c)
		}
		return nil
	},
}

func init() {
	totpSubmitCmd.Flags().String("session", "", "session ID (required)")
	totpSubmitCmd.Flags().String("code", "", "6-digit TOTP code (required)")
	totpSubmitCmd.MarkFlagRequired("session")
	totpSubmitCmd.MarkFlagRequired("code")

	totpEnrollCmd.Flags().String("session", "", "session ID (required)")
	totpEnrollCmd.MarkFlagRequired("session")

	totpConfirmCmd.Flags().String("session", "", "session ID (required)")
	totpConfirmCmd.Flags().String("code", "", "6-digit TOTP code (required)")
	totpConfirmCmd.MarkFlagRequired("session")
	totpConfirmCmd.MarkFlagRequired("code")

	totpCmd.AddCommand(totpSubmitCmd, totpEnrollCmd, totpConfirmCmd)
	rootCmd.AddCommand(totpCmd)
}
