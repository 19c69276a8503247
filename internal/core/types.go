// Package core provides the shared data model for sbt plugin resolution.
package core

import (
	"strings"
)

// ArtifactKey identifies an sbt plugin as "organization:pluginName[_scalaSuffix]".
// ScalaSuffix is empty unless the identifier carried one explicitly.
type ArtifactKey struct {
	Organization string
	PluginName   string
	ScalaSuffix  string
}

// String returns the identifier in "org:name[_suffix]" form.
func (k ArtifactKey) String() string {
	if k.ScalaSuffix == "" {
		return k.Organization + ":" + k.PluginName
	}
	return k.Organization + ":" + k.PluginName + "_" + k.ScalaSuffix
}

// OrgPath returns the organization as a maven-style path ("org/example").
func (k ArtifactKey) OrgPath() string {
	return strings.ReplaceAll(k.Organization, ".", "/")
}

// Release is a single published version.
type Release struct {
	Version string `json:"version"`
}

// ReleaseResult is the outcome of a successful resolution. A nil *ReleaseResult
// means no registry had any releases.
type ReleaseResult struct {
	DependencyURL string    `json:"dependencyUrl"`
	RegistryURL   string    `json:"registryUrl"`
	Releases      []Release `json:"releases"`
	Homepage      string    `json:"homepage,omitempty"`
	SourceURL     string    `json:"sourceUrl,omitempty"`
	PURL          string    `json:"purl,omitempty"`
}

// Versions returns the release versions in result order.
func (r *ReleaseResult) Versions() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.Releases))
	for i, rel := range r.Releases {
		out[i] = rel.Version
	}
	return out
}

// Descriptor holds the fields mined from a plugin's POM.
type Descriptor struct {
	Homepage  string
	SourceURL string
}
