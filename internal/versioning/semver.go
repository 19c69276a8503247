package versioning

import (
	"sort"

	"github.com/Masterminds/semver/v3"
)

// semverScheme accepts semantic versions, tolerating a missing minor or patch.
type semverScheme struct{}

func (semverScheme) ID() string { return "semver" }

func (semverScheme) IsValid(label string) bool {
	_, err := semver.NewVersion(label)
	return err == nil
}

func (semverScheme) SortAscending(labels []string) []string {
	versions := make(semver.Collection, 0, len(labels))
	for _, l := range labels {
		v, err := semver.NewVersion(l)
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	sort.Stable(versions)

	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = v.Original()
	}
	return out
}
