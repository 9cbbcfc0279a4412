package driver

import (
	"fmt"
	"os"

	"argot/internal/diag"
	"argot/internal/manifest"
	"argot/internal/snapcache"
	"argot/internal/snapshot"
	"argot/internal/spec"
)

// LoadManifest compiles a TOML manifest into a verified spec. The bag
// carries any 3000-range diagnostics produced during verification,
// also on failure.
func LoadManifest(path string, maxDiagnostics int) (*spec.Spec, *diag.Bag, error) {
	bag := diag.NewBag(maxDiagnostics)
	sp, err := manifest.Load(path, diag.BagReporter{Bag: bag})
	if err != nil {
		return nil, bag, err
	}
	return sp, bag, nil
}

// SnapshotFor produces the snapshot of the spec a manifest declares,
// going through the disk cache: the key is the SHA-256 of the manifest
// bytes, so any edit misses and recompiles. cache may be nil to bypass
// caching. The second result reports a cache hit.
func SnapshotFor(path string, cache *snapcache.Cache, maxDiagnostics int) (*snapshot.Snapshot, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	key := snapcache.Key(data)

	if snap, hit, err := cache.Get(key); err == nil && hit {
		return snap, true, nil
	}

	bag := diag.NewBag(maxDiagnostics)
	sp, err := manifest.Parse(string(data), diag.BagReporter{Bag: bag})
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}

	snap := snapshot.FromSpec(sp)
	if err := cache.Put(key, snap); err != nil {
		return nil, false, fmt.Errorf("caching snapshot for %s: %w", path, err)
	}
	return snap, false, nil
}
