package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var revealCmd = &cobra.Command{
	Use:   "reveal-seed",
	Short: "Decrypt and display the session user's seed",
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

		res, err := svc.RevealSeed(session, password)
		if err != nil {
			return fmt.Errorf("reveal seed: %w", err)
		}
		fmt.Println("WARNING: anyone who sees this seed can spend your funds.")
		fmt.Printf("Seed (hex): %s\n", res.SeedHex)
		return nil
	},
}

func init() {
	revealCmd.Flags().String("session", "", "session ID (required)")
	revealCmd.MarkFlagRequired("session")
	rootCmd.AddCommand(revealCmd)
}
