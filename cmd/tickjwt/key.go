package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/tickjwt/pkg/rsakey"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Public key utilities",
}

var keyPrepareCmd = &cobra.Command{
	Use:   "prepare <pem-file>",
	Short: "Convert a PEM RSA public key to Montgomery form",
	Long:  "Reads an RSA public key (PUBLIC KEY, RSA PUBLIC KEY or CERTIFICATE PEM) and prints the exponent, modulus words, Montgomery inverse and fixed-point length as YAML, or JSON with --json.",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeyPrepare,
}

func init() {
	keyCmd.AddCommand(keyPrepareCmd)
	rootCmd.AddCommand(keyCmd)
}

func runKeyPrepare(cmd *cobra.Command, args []string) error {
	pub, err := rsakey.LoadPublicKeyFile(args[0])
	if err != nil {
		return err
	}
	key, err := rsakey.Prepare(pub)
	if err != nil {
		return fmt.Errorf("preparing key: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, key.Material())
	}

	data, err := rsakey.MarshalMaterialYAML(key.Material())
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
