package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"argot/internal/diagfmt"
	"argot/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize --manifest spec.toml [flags] [-- args...]",
	Short: "Classify an argument vector into tokens",
	Long:  `Tokenize shows how a raw command line splits into option, value, and tail tokens under the manifest's root scope`,
	RunE:  runTokenize,
}

func init() {
	addManifestFlag(tokenizeCmd)
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	sp, err := loadSpecFlag(cmd)
	if err != nil {
		return err
	}

	result := driver.Tokenize(sp, args, maxDiagnostics(cmd))

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
