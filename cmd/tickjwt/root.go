package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	noColor    bool
	verbose    bool
	envFiles   []string
)

var rootCmd = &cobra.Command{
	Use:   "tickjwt",
	Short: "Decode JWTs and verify RS256 signatures on a tick scheduler",
	Long:  "Decodes compact JSON Web Tokens and verifies RS256 signatures with a Montgomery-form public key, spreading the RSA work across scheduler ticks.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output and debug logging")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Extra .env files to load; later files win")
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
