package versioning

import (
	"sort"

	goversion "github.com/hashicorp/go-version"
)

// looseScheme accepts any dotted numeric version with an optional
// pre-release or metadata suffix ("1.2.3.4", "v2.0-beta"). Qualifiers
// compare as plain strings.
type looseScheme struct{}

func (looseScheme) ID() string { return "loose" }

func (looseScheme) IsValid(label string) bool {
	_, err := goversion.NewVersion(label)
	return err == nil
}

func (looseScheme) SortAscending(labels []string) []string {
	versions := make(goversion.Collection, 0, len(labels))
	for _, l := range labels {
		v, err := goversion.NewVersion(l)
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
