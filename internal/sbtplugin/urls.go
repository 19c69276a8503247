package sbtplugin

import (
	"github.com/git-pkgs/sbtplugin/client"
	"github.com/git-pkgs/sbtplugin/internal/core"
)

var _ client.URLBuilder = (*URLs)(nil)

// URLs builds URLs for plugins under one organization directory.
type URLs struct {
	root         string
	organization string
}

// NewURLs returns the URL builder for the organization directory at root,
// e.g. "https://repo.maven.apache.org/maven2/org/foundweekends".
func NewURLs(root, organization string) *URLs {
	return &URLs{root: root, organization: organization}
}

// Registry returns the plugin directory, or the version directory of a plain
// layout when version is set.
func (u *URLs) Registry(name, version string) string {
	return client.JoinURL(u.root, name, version)
}

// Descriptor returns the plain-layout POM URL of a version.
func (u *URLs) Descriptor(name, version string) string {
	if version == "" {
		return ""
	}
	return client.JoinURL(u.root, name, version, name+"-"+version+".pom")
}

func (u *URLs) PURL(name, version string) string {
	key := core.ArtifactKey{Organization: u.organization, PluginName: name}
	return key.PURL(version)
}
