// Package sbtplugin resolves released versions of sbt plugins from Maven-style
// repositories whose directory names encode the Scala and sbt versions a plugin
// was built for.
//
// Resolution per registry is two-phase. Phase 1 lists the organization
// directory and the plugin directory and selects, by name alone, every
// directory that should contain version directories. Phase 2 lists only those
// directories, unions their children into one version set and enriches the
// result from the latest version's POM.
package sbtplugin

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/git-pkgs/sbtplugin/client"
	"github.com/git-pkgs/sbtplugin/internal/core"
	"github.com/git-pkgs/sbtplugin/internal/versioning"
)

const (
	// DefaultRegistryURL is searched when the caller supplies no registries.
	DefaultRegistryURL = "https://repo.maven.apache.org/maven2"

	defaultConcurrency = 15
)

// Datasource resolves sbt plugin releases. It is safe for concurrent use.
type Datasource struct {
	client      Getter
	logger      *log.Logger
	concurrency int
	versioning  string
}

// Option configures a Datasource.
type Option func(*Datasource)

// WithClient sets the transport. Defaults to client.DefaultClient().
func WithClient(g Getter) Option {
	return func(d *Datasource) {
		d.client = g
	}
}

// WithLogger sets the logger. Defaults to a logger that discards everything.
func WithLogger(l *log.Logger) Option {
	return func(d *Datasource) {
		d.logger = l
	}
}

// WithConcurrency bounds the number of directory probes in flight per stage.
func WithConcurrency(n int) Option {
	return func(d *Datasource) {
		if n > 0 {
			d.concurrency = n
		}
	}
}

// WithVersioning sets the default versioning scheme id.
func WithVersioning(id string) Option {
	return func(d *Datasource) {
		d.versioning = id
	}
}

// New creates a Datasource.
func New(opts ...Option) *Datasource {
	d := &Datasource{
		concurrency: defaultConcurrency,
		versioning:  versioning.Default,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.client == nil {
		d.client = client.DefaultClient()
	}
	if d.logger == nil {
		d.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return d
}

// GetReleasesConfig is the input of one resolution.
type GetReleasesConfig struct {
	// PackageName is "org:name[_scalaSuffix]" or "pkg:maven/org/name[_scalaSuffix]".
	PackageName string

	// RegistryURLs are tried in order. Empty means DefaultRegistryURL.
	RegistryURLs []string

	// Versioning overrides the datasource's scheme id.
	Versioning string
}

// GetReleases resolves the releases of a plugin. Registries are tried in order
// and the first with at least one release wins.
//
// A nil result with a nil error means no registry had releases, including when
// every registry was unreachable. Errors are returned only for invalid input
// (a *core.ConfigurationError) or when ctx is done.
func (d *Datasource) GetReleases(ctx context.Context, cfg GetReleasesConfig) (*core.ReleaseResult, error) {
	key, purlRegistry, err := core.ParsePackageName(cfg.PackageName)
	if err != nil {
		return nil, err
	}

	schemeID := cfg.Versioning
	if schemeID == "" {
		schemeID = d.versioning
	}
	scheme, err := versioning.Get(schemeID)
	if err != nil {
		return nil, err
	}

	registries, err := registryCandidates(purlRegistry, cfg.RegistryURLs)
	if err != nil {
		return nil, err
	}

	for _, registry := range registries {
		result, err := d.resolveRegistry(ctx, registry, key, scheme)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			d.logger.Warn("skipping unreachable registry", "registry", registry, "package", key.String(), "err", err)
			continue
		}
		if result != nil {
			d.logger.Debug("resolved releases", "registry", registry, "package", key.String(), "count", len(result.Releases))
			return result, nil
		}
		d.logger.Debug("no releases in registry", "registry", registry, "package", key.String())
	}
	return nil, nil
}

// registryCandidates returns the registries to try, without trailing slashes
// or duplicates. A PURL repository_url qualifier is tried first. Entries that
// are not absolute http(s) URLs are rejected rather than probed.
func registryCandidates(purlRegistry string, configured []string) ([]string, error) {
	all := configured
	if purlRegistry != "" {
		all = append([]string{purlRegistry}, configured...)
	}

	var out []string
	seen := make(map[string]bool)
	for _, r := range all {
		r = strings.TrimSuffix(strings.TrimSpace(r), "/")
		if r == "" || seen[r] {
			continue
		}
		if err := validateRegistryURL(r); err != nil {
			return nil, err
		}
		seen[r] = true
		out = append(out, r)
	}
	if len(out) == 0 {
		out = []string{DefaultRegistryURL}
	}
	return out, nil
}

func validateRegistryURL(registry string) error {
	u, err := url.Parse(registry)
	if err != nil {
		return &core.ConfigurationError{Input: registry, Reason: err.Error(), Err: core.ErrInvalidRegistryURL}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &core.ConfigurationError{Input: registry, Reason: "scheme must be http or https", Err: core.ErrInvalidRegistryURL}
	}
	if u.Host == "" {
		return &core.ConfigurationError{Input: registry, Reason: "missing host", Err: core.ErrInvalidRegistryURL}
	}
	return nil
}

// searchRoots returns the organization directories to search in a registry:
// the ivy-style dotted form first, then the maven-style path. Maven Central
// has no ivy-style directories, so only the path is searched there.
func searchRoots(registry string, key core.ArtifactKey) []string {
	slashed := client.JoinURL(registry, key.OrgPath())
	if strings.HasPrefix(registry, DefaultRegistryURL) {
		return []string{slashed}
	}
	dotted := client.JoinURL(registry, key.Organization)
	if dotted == slashed {
		return []string{slashed}
	}
	return []string{dotted, slashed}
}

// errUnreachable marks a registry where every search root failed in transport.
var errUnreachable = errors.New("registry unreachable")

// resolveRegistry runs layout resolution, version collection and enrichment
// against each search root of registry. It returns an error only when no
// search root could be reached at all.
func (d *Datasource) resolveRegistry(ctx context.Context, registry string, key core.ArtifactKey, scheme versioning.Scheme) (*core.ReleaseResult, error) {
	var lastErr error
	reached := false

	for _, root := range searchRoots(registry, key) {
		layout := d.resolveLayout(ctx, root, key)
		if !layout.reachable {
			d.logger.Debug("search root unreachable", "url", root, "err", layout.err)
			lastErr = layout.err
			if errors.Is(layout.err, client.ErrCircuitOpen) {
				break
			}
			continue
		}
		reached = true

		vs := d.collectVersions(ctx, root, layout.candidates, scheme)
		if len(vs.versions) == 0 {
			continue
		}

		desc := d.enrich(ctx, root, key, vs)
		urls := NewURLs(root, key.Organization)
		releases := make([]core.Release, len(vs.versions))
		for i, v := range vs.versions {
			releases[i] = core.Release{Version: v}
		}
		return &core.ReleaseResult{
			DependencyURL: urls.Registry(key.PluginName, ""),
			RegistryURL:   registry,
			Releases:      releases,
			Homepage:      desc.Homepage,
			SourceURL:     desc.SourceURL,
			PURL:          urls.PURL(key.PluginName, ""),
		}, nil
	}

	if !reached {
		return nil, errors.Join(errUnreachable, lastErr)
	}
	return nil, nil
}
