package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"argot/internal/argv"
	"argot/internal/diagfmt"
	"argot/internal/driver"
	"argot/internal/spec"
)

// addManifestFlag attaches the --manifest flag every pipeline command
// shares.
func addManifestFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("manifest", "m", "", "path to the TOML spec manifest")
	_ = cmd.MarkFlagRequired("manifest")
}

// loadSpecFlag compiles the manifest named by --manifest. Spec
// verification diagnostics go to stderr before the error returns.
func loadSpecFlag(cmd *cobra.Command) (*spec.Spec, error) {
	path, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return nil, fmt.Errorf("failed to get manifest flag: %w", err)
	}

	sp, bag, err := driver.LoadManifest(path, maxDiagnostics(cmd))
	if bag != nil && (bag.HasErrors() || bag.HasWarnings()) {
		diagfmt.Pretty(os.Stderr, bag, argv.New(nil), diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		})
	}
	if err != nil {
		return nil, err
	}
	return sp, nil
}
