package versioning

import (
	"regexp"
	"sort"

	mvnversion "github.com/masahiro331/go-mvn-version"
)

// versionStart rejects listing entries that are not version directories at
// all ("maven-metadata.xml", "latest"); ComparableVersion accepts any string.
var versionStart = regexp.MustCompile(`^[0-9]`)

// mavenScheme orders labels the way Maven's ComparableVersion does:
// "2.0.0-RC9" < "2.0.0-RC10", "1.0-M5" < "1.0" = "1.0.Final" < "1.0.1".
type mavenScheme struct{}

func (mavenScheme) ID() string { return "maven" }

func (mavenScheme) IsValid(label string) bool {
	if !versionStart.MatchString(label) {
		return false
	}
	_, err := mvnversion.NewVersion(label)
	return err == nil
}

func (s mavenScheme) SortAscending(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if s.IsValid(l) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := mvnversion.NewVersion(out[i])
		b, _ := mvnversion.NewVersion(out[j])
		return a.LessThan(b)
	})
	return out
}
