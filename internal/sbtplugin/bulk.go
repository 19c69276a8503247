package sbtplugin

import (
	"context"
	"sync"

	"github.com/git-pkgs/sbtplugin/internal/core"
)

// BulkGetReleases resolves several package names in parallel against the same
// registries. Names that fail or have no releases are omitted from the result.
func (d *Datasource) BulkGetReleases(ctx context.Context, packageNames, registryURLs []string) map[string]*core.ReleaseResult {
	return d.BulkGetReleasesWithConcurrency(ctx, packageNames, registryURLs, d.concurrency)
}

// BulkGetReleasesWithConcurrency is BulkGetReleases with a custom limit on
// packages resolved at once.
func (d *Datasource) BulkGetReleasesWithConcurrency(ctx context.Context, packageNames, registryURLs []string, concurrency int) map[string]*core.ReleaseResult {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make(map[string]*core.ReleaseResult)
	var mu sync.Mutex
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, name := range packageNames {
		wg.Add(1)
		go func(n string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			result, err := d.GetReleases(ctx, GetReleasesConfig{PackageName: n, RegistryURLs: registryURLs})
			if err != nil {
				d.logger.Debug("bulk resolution failed", "package", n, "err", err)
				return
			}
			if result != nil {
				mu.Lock()
				results[n] = result
				mu.Unlock()
			}
		}(name)
	}

	wg.Wait()
	return results
}
