package sbtplugin

import (
	"context"
	"encoding/xml"
	"regexp"
	"slices"
	"strings"

	"github.com/git-pkgs/sbtplugin/client"
	"github.com/git-pkgs/sbtplugin/internal/core"
)

// pomProject holds the POM fields used for enrichment. Tags match regardless
// of the POM namespace.
type pomProject struct {
	XMLName xml.Name `xml:"project"`
	URL     string   `xml:"url"`
	SCM     struct {
		URL        string `xml:"url"`
		Connection string `xml:"connection"`
	} `xml:"scm"`
}

func parseDescriptor(data []byte) (core.Descriptor, error) {
	var pom pomProject
	if err := xml.Unmarshal(data, &pom); err != nil {
		return core.Descriptor{}, err
	}

	source := strings.TrimSpace(pom.SCM.URL)
	if source == "" {
		source = strings.TrimSpace(pom.SCM.Connection)
	}
	return core.Descriptor{
		Homepage:  strings.TrimSpace(pom.URL),
		SourceURL: normalizeSourceURL(source),
	}, nil
}

var (
	scmPrefix   = regexp.MustCompile(`^scm:`)
	gitPrefix   = regexp.MustCompile(`^git:(//)?`)
	gitSSH      = regexp.MustCompile(`^git@github\.com:`)
	vcsSuffix   = regexp.MustCompile(`\.git/?$`)
	hasScheme   = regexp.MustCompile(`^[a-z][a-z0-9+.-]*://`)
	trailingDir = regexp.MustCompile(`/+$`)
)

// normalizeSourceURL turns an SCM URL or connection string into a browsable
// repository URL: "scm:git:git@github.com:x/y.git" becomes "https://github.com/x/y".
func normalizeSourceURL(s string) string {
	if s == "" {
		return ""
	}
	s = scmPrefix.ReplaceAllString(s, "")
	if m := gitPrefix.FindStringSubmatch(s); m != nil {
		s = s[len(m[0]):]
		if m[1] != "" {
			s = "https://" + s
		}
	}
	s = gitSSH.ReplaceAllString(s, "https://github.com/")
	s = vcsSuffix.ReplaceAllString(s, "")
	if hasScheme.MatchString(s) {
		s = trailingDir.ReplaceAllString(s, "")
	}
	return s
}

// descriptorURLs returns the POM URLs to try for c at version. A plain
// directory holds only the plugin's own POM; the others are tried under the
// directory's artifact id first, then the plain plugin name.
func descriptorURLs(root string, c candidate, key core.ArtifactKey, version string) []string {
	if c.Layout == LayoutPlain {
		return []string{NewURLs(root, key.Organization).Descriptor(key.PluginName, version)}
	}
	versionDir := client.JoinURL(root, c.Path, version)
	urls := []string{client.JoinURL(versionDir, c.ArtifactID+"-"+version+".pom")}
	if c.ArtifactID != key.PluginName {
		urls = append(urls, client.JoinURL(versionDir, key.PluginName+"-"+version+".pom"))
	}
	return urls
}

// enrich fetches the descriptor of the latest version from the directories
// that hold it, last discovered first. Any failure leaves the descriptor empty.
func (d *Datasource) enrich(ctx context.Context, root string, key core.ArtifactKey, vs versionSet) core.Descriptor {
	version := vs.latest()
	if version == "" {
		return core.Descriptor{}
	}

	for _, c := range vs.contributors(version) {
		tried := descriptorURLs(root, c, key, version)
		desc, found, err := d.tryDescriptors(ctx, tried)
		if err != nil {
			return core.Descriptor{}
		}
		if found {
			return desc
		}

		// No conventional name exists; look for any other POM in the directory.
		versionDir := client.JoinURL(root, c.Path, version)
		listing, err := listEntries(ctx, d.client, versionDir)
		if err != nil {
			d.logger.Debug("listing version directory failed", "url", versionDir, "err", err)
			continue
		}
		var others []string
		for _, entry := range listing.Names() {
			pomURL := client.JoinURL(versionDir, entry)
			if strings.HasSuffix(entry, ".pom") && !slices.Contains(tried, pomURL) {
				others = append(others, pomURL)
			}
		}
		desc, found, err = d.tryDescriptors(ctx, others)
		if err != nil {
			return core.Descriptor{}
		}
		if found {
			return desc
		}
	}
	return core.Descriptor{}
}

// tryDescriptors fetches the POMs in order and parses the first that exists.
// A missing file moves on to the next URL; any other failure is returned.
func (d *Datasource) tryDescriptors(ctx context.Context, pomURLs []string) (core.Descriptor, bool, error) {
	for _, pomURL := range pomURLs {
		body, err := d.client.GetBody(ctx, pomURL)
		if err != nil {
			if isMissing(err) {
				continue
			}
			d.logger.Debug("fetching descriptor failed", "url", pomURL, "err", err)
			return core.Descriptor{}, false, err
		}

		desc, err := parseDescriptor(body)
		if err != nil {
			d.logger.Debug("parsing descriptor failed", "url", pomURL, "err", err)
			return core.Descriptor{}, false, err
		}
		return desc, true, nil
	}
	return core.Descriptor{}, false, nil
}
