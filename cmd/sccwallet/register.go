package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jasony/sccwallet/internal/scc"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new wallet user and generate a fresh mnemonic",
	Long: `Registers a new user, generates a fresh BIP-39 mnemonic, and seals the
derived seed into the password-and-machine-bound vault. The mnemonic is
shown exactly once — write it down somewhere durable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		long, _ := cmd.Flags().GetBool("long")
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

		strength := scc.DefaultMnemonicStrengthBits
		if long {
			strength = scc.LongMnemonicStrengthBits
		}
		res, err := svc.Register(username, password, strength)
		if err != nil {
			return fmt.Errorf("register: %w", err)
		}

		fmt.Printf("User registered: %s\n\n", res.UserID)
		fmt.Printf("Mnemonic (write this down, it will not be shown again):\n%s\n\n", joinWords(res.Mnemonic))
		fmt.Println("WARNING: anyone with this phrase can spend your funds.")
		return nil
	},
}

func init() {
	registerCmd.Flags().StringP("username", "u", "", "username (required)")
	registerCmd.Flags().Bool("long", false, "generate a 24-word mnemonic instead of 12 words")
	registerCmd.MarkFlagRequired("username")
	rootCmd.AddCommand(registerCmd)
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func joinWords(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}
