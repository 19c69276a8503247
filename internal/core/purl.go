package core

import (
	"regexp"
	"strings"

	packageurl "github.com/package-url/packageurl-go"
)

// scalaVersionPattern is the coarse shape of a Scala binary version token:
// a leading digit, dot-delimited ("2.12", "3", "3.0.0-RC1").
var scalaVersionPattern = regexp.MustCompile(`^[0-9]+(\.[0-9A-Za-z-]+)*$`)

// LooksLikeScalaVersion reports whether s could be a Scala binary version suffix.
func LooksLikeScalaVersion(s string) bool {
	return scalaVersionPattern.MatchString(s)
}

// SplitScalaSuffix splits "name_2.12" into ("name", "2.12"). Only the first
// "_"-delimited token after the name is returned as the suffix; anything after
// it (an encoded sbt version) is dropped. Names without a version-looking
// token after an underscore are returned whole.
func SplitScalaSuffix(artifactID string) (name, suffix string) {
	for i := 0; i < len(artifactID); i++ {
		if artifactID[i] != '_' {
			continue
		}
		rest := artifactID[i+1:]
		token, _, _ := strings.Cut(rest, "_")
		if i > 0 && LooksLikeScalaVersion(token) {
			return artifactID[:i], token
		}
	}
	return artifactID, ""
}

// ParsePackageName parses "org:name[_scalaSuffix]" or "pkg:maven/org/name[_scalaSuffix]".
// The returned repositoryURL is the PURL's repository_url qualifier, if any.
func ParsePackageName(input string) (key ArtifactKey, repositoryURL string, err error) {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "pkg:") {
		return parsePURL(input)
	}

	org, artifactID, ok := strings.Cut(input, ":")
	if !ok {
		return ArtifactKey{}, "", &ConfigurationError{Input: input, Reason: "missing organization separator", Err: ErrInvalidPackageName}
	}
	if strings.Contains(artifactID, ":") {
		return ArtifactKey{}, "", &ConfigurationError{Input: input, Reason: "expected exactly one ':'", Err: ErrInvalidPackageName}
	}
	key, err = newKey(input, org, artifactID)
	return key, "", err
}

func parsePURL(input string) (ArtifactKey, string, error) {
	p, err := packageurl.FromString(input)
	if err != nil {
		return ArtifactKey{}, "", &ConfigurationError{Input: input, Reason: err.Error(), Err: ErrInvalidPackageName}
	}
	if p.Type != packageurl.TypeMaven {
		return ArtifactKey{}, "", &ConfigurationError{Input: input, Reason: "purl type must be maven", Err: ErrInvalidPackageName}
	}
	key, err := newKey(input, p.Namespace, p.Name)
	if err != nil {
		return ArtifactKey{}, "", err
	}
	return key, p.Qualifiers.Map()["repository_url"], nil
}

func newKey(input, org, artifactID string) (ArtifactKey, error) {
	org = strings.TrimSpace(org)
	artifactID = strings.TrimSpace(artifactID)
	if org == "" {
		return ArtifactKey{}, &ConfigurationError{Input: input, Reason: "empty organization", Err: ErrInvalidPackageName}
	}
	if artifactID == "" {
		return ArtifactKey{}, &ConfigurationError{Input: input, Reason: "empty plugin name", Err: ErrInvalidPackageName}
	}
	name, suffix := SplitScalaSuffix(artifactID)
	return ArtifactKey{Organization: org, PluginName: name, ScalaSuffix: suffix}, nil
}

// PURL returns the package URL of the plugin, with version if non-empty.
func (k ArtifactKey) PURL(version string) string {
	return packageurl.NewPackageURL(packageurl.TypeMaven, k.Organization, k.PluginName, version, nil, "").ToString()
}
