package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"argot/internal/driver"
	"argot/internal/snapcache"
)

const cacheAppName = "argot"

var snapshotCmd = &cobra.Command{
	Use:   "snapshot --manifest spec.toml [flags]",
	Short: "Emit the serializable projection of a spec",
	Long: `Snapshot compiles the manifest and prints the deterministic structure
completion generators and external tooling consume. Results are cached
on disk keyed by the manifest's content hash`,
	RunE: runSnapshot,
}

func init() {
	addManifestFlag(snapshotCmd)
	snapshotCmd.Flags().String("format", "json", "output format (json|msgpack)")
	snapshotCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	snapshotCmd.Flags().Bool("no-cache", false, "bypass the snapshot cache")
	snapshotCmd.Flags().Bool("drop-cache", false, "invalidate the whole snapshot cache first")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return fmt.Errorf("failed to get manifest flag: %w", err)
	}
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	dropCache, _ := cmd.Flags().GetBool("drop-cache")

	var cache *snapcache.Cache
	if !noCache || dropCache {
		cache, err = snapcache.Open(cacheAppName)
		if err != nil {
			return fmt.Errorf("failed to open snapshot cache: %w", err)
		}
	}
	if dropCache {
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to drop snapshot cache: %w", err)
		}
	}
	if noCache {
		cache = nil
	}

	snap, hit, err := driver.SnapshotFor(path, cache, maxDiagnostics(cmd))
	if err != nil {
		return err
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet && hit {
		fmt.Fprintln(os.Stderr, "snapshot served from cache")
	}

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case "msgpack":
		return msgpack.NewEncoder(out).Encode(snap)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
