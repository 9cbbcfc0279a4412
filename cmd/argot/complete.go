package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"argot/internal/complete"
	"argot/internal/driver"
	"argot/internal/snapcache"
	"argot/internal/snapshot"
)

var completeCmd = &cobra.Command{
	Use:   "complete --manifest spec.toml --shell bash [flags]",
	Short: "Generate a shell completion script",
	Long: `Complete renders the manifest's snapshot into a completion script.
Scripts are pure functions of the snapshot: regenerating against an
unchanged manifest reproduces them byte for byte`,
	RunE: runComplete,
}

func init() {
	addManifestFlag(completeCmd)
	completeCmd.Flags().String("shell", "", "target shell (bash|zsh|fish)")
	completeCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	completeCmd.Flags().Bool("all", false, "generate every shell's script into --out-dir")
	completeCmd.Flags().String("out-dir", ".", "directory for --all output files")
	completeCmd.Flags().Bool("no-cache", false, "bypass the snapshot cache")
}

func runComplete(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return fmt.Errorf("failed to get manifest flag: %w", err)
	}
	shell, _ := cmd.Flags().GetString("shell")
	output, _ := cmd.Flags().GetString("output")
	all, _ := cmd.Flags().GetBool("all")
	outDir, _ := cmd.Flags().GetString("out-dir")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	var cache *snapcache.Cache
	if !noCache {
		if cache, err = snapcache.Open(cacheAppName); err != nil {
			return fmt.Errorf("failed to open snapshot cache: %w", err)
		}
	}

	snap, _, err := driver.SnapshotFor(path, cache, maxDiagnostics(cmd))
	if err != nil {
		return err
	}

	if all {
		return generateAll(snap, outDir)
	}

	if shell == "" {
		return fmt.Errorf("--shell is required unless --all is set")
	}
	script, err := complete.Generate(shell, snap)
	if err != nil {
		return err
	}
	if output == "" {
		_, err = os.Stdout.WriteString(script)
		return err
	}
	return os.WriteFile(output, []byte(script), 0o644)
}

// generateAll writes one script per supported shell. Generators are
// independent and pure, so they run concurrently.
func generateAll(snap *snapshot.Snapshot, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	var g errgroup.Group
	for _, shell := range complete.Shells() {
		shell := shell
		g.Go(func() error {
			script, err := complete.Generate(shell, snap)
			if err != nil {
				return err
			}
			name := fmt.Sprintf("%s.%s", snap.Program, shell)
			return os.WriteFile(filepath.Join(outDir, name), []byte(script), 0o644)
		})
	}
	return g.Wait()
}
