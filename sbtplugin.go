// Package sbtplugin resolves the released versions of sbt plugins published to
// Maven-style repositories.
//
// sbt plugins are published under directory names that encode the Scala and sbt
// versions they were built for, either as cross-built siblings
// (sbt-coursier_2.12_1.0/) or nested below the plugin directory
// (sbt-bintray/scala_2.12/sbt_1.0/). A resolution discovers every such
// directory from repository index pages, unions the versions found in them and
// enriches the result with the homepage and source repository from the latest
// version's POM.
//
// Basic usage:
//
//	ds := sbtplugin.New()
//	result, err := ds.GetReleases(context.Background(), sbtplugin.GetReleasesConfig{
//		PackageName: "org.foundweekends:sbt-bintray",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if result == nil {
//		fmt.Println("no releases")
//		return
//	}
//	fmt.Println(result.Versions(), result.SourceURL)
package sbtplugin

import (
	"context"

	"github.com/git-pkgs/sbtplugin/client"
	"github.com/git-pkgs/sbtplugin/internal/core"
	resolver "github.com/git-pkgs/sbtplugin/internal/sbtplugin"
	"github.com/git-pkgs/sbtplugin/internal/versioning"
)

// Re-export types from internal/core
type (
	// ArtifactKey identifies a plugin as organization, name and optional Scala suffix.
	ArtifactKey = core.ArtifactKey

	// Release is a single published version.
	Release = core.Release

	// ReleaseResult is the outcome of a successful resolution.
	ReleaseResult = core.ReleaseResult

	// ConfigurationError reports input that can never resolve.
	ConfigurationError = core.ConfigurationError
)

// Re-export the datasource
type (
	// Datasource resolves sbt plugin releases.
	Datasource = resolver.Datasource

	// DatasourceOption configures a Datasource.
	DatasourceOption = resolver.Option

	// GetReleasesConfig is the input of one resolution.
	GetReleasesConfig = resolver.GetReleasesConfig

	// Getter is the transport interface a Datasource probes through.
	Getter = resolver.Getter
)

// Re-export types from client
type (
	// Client is an HTTP client with retry logic and per-host circuit breakers.
	Client = client.Client

	// URLBuilder constructs URLs for a plugin.
	URLBuilder = client.URLBuilder
)

// DefaultRegistryURL is searched when no registries are configured.
const DefaultRegistryURL = resolver.DefaultRegistryURL

// Re-export errors
var (
	ErrNotFound           = client.ErrNotFound
	ErrCircuitOpen        = client.ErrCircuitOpen
	ErrInvalidPackageName = core.ErrInvalidPackageName
	ErrUnknownVersioning  = core.ErrUnknownVersioning
	ErrInvalidRegistryURL = core.ErrInvalidRegistryURL
)

// Error types
type (
	HTTPError      = client.HTTPError
	NotFoundError  = client.NotFoundError
	RateLimitError = client.RateLimitError
)

// Datasource options
var (
	WithClient      = resolver.WithClient
	WithLogger      = resolver.WithLogger
	WithConcurrency = resolver.WithConcurrency
	WithVersioning  = resolver.WithVersioning
)

// New creates a Datasource. Without options it uses DefaultClient() and
// discards log output.
func New(opts ...DatasourceOption) *Datasource {
	return resolver.New(opts...)
}

// GetReleases resolves a plugin with a default Datasource.
func GetReleases(ctx context.Context, packageName string, registryURLs ...string) (*ReleaseResult, error) {
	return New().GetReleases(ctx, GetReleasesConfig{PackageName: packageName, RegistryURLs: registryURLs})
}

// ParsePackageName parses "org:name[_scalaSuffix]" or a maven PURL. The second
// return value is the PURL's repository_url qualifier, if any.
func ParsePackageName(input string) (ArtifactKey, string, error) {
	return core.ParsePackageName(input)
}

// DefaultClient returns a client with sensible defaults:
// - 30s timeout
// - 5 retries with exponential backoff
// - Retry on 429 and 5xx responses
func DefaultClient() *Client {
	return client.DefaultClient()
}

// NewClient creates a new client with the given options.
func NewClient(opts ...Option) *Client {
	return client.NewClient(opts...)
}

// Option configures a Client.
type Option = client.Option

// WithTimeout sets the HTTP client timeout.
var WithTimeout = client.WithTimeout

// WithMaxRetries sets the maximum number of retries.
var WithMaxRetries = client.WithMaxRetries

// SupportedVersionings returns the registered versioning scheme ids.
func SupportedVersionings() []string {
	return versioning.Supported()
}

// NewURLs returns the URL builder for the organization directory at root.
func NewURLs(root, organization string) URLBuilder {
	return resolver.NewURLs(root, organization)
}

// BuildURLs returns a map of all non-empty URLs for a plugin.
// Keys are "registry", "descriptor", and "purl".
func BuildURLs(urls URLBuilder, name, version string) map[string]string {
	return client.BuildURLs(urls, name, version)
}
