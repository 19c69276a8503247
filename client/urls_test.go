package client

import (
	"testing"
)

func TestJoinURL(t *testing.T) {
	tests := []struct {
		base  string
		parts []string
		want  string
	}{
		{"https://repo/maven2", []string{"org", "example"}, "https://repo/maven2/org/example"},
		{"https://repo/maven2/", []string{"/org/", "example/"}, "https://repo/maven2/org/example"},
		{"https://repo/maven2", []string{"plugin", ""}, "https://repo/maven2/plugin"},
		{"https://repo/maven2", nil, "https://repo/maven2"},
	}
	for _, tt := range tests {
		if got := JoinURL(tt.base, tt.parts...); got != tt.want {
			t.Errorf("JoinURL(%q, %q) = %q, want %q", tt.base, tt.parts, got, tt.want)
		}
	}
}

func TestEnsureTrailingSlash(t *testing.T) {
	if got := EnsureTrailingSlash("https://repo/dir"); got != "https://repo/dir/" {
		t.Errorf("got %q", got)
	}
	if got := EnsureTrailingSlash("https://repo/dir/"); got != "https://repo/dir/" {
		t.Errorf("got %q", got)
	}
}

// flatURLs lays plugins out as <root>/<name>/<version> with no descriptors.
type flatURLs struct{ root string }

func (u flatURLs) Registry(name, version string) string { return JoinURL(u.root, name, version) }
func (u flatURLs) Descriptor(name, version string) string { return "" }
func (u flatURLs) PURL(name, version string) string { return "" }

func TestBuildURLs(t *testing.T) {
	got := BuildURLs(flatURLs{root: "https://repo/maven2/org"}, "plugin", "1.0.0")
	if got["registry"] != "https://repo/maven2/org/plugin/1.0.0" {
		t.Errorf("registry = %q", got["registry"])
	}
	if _, ok := got["descriptor"]; ok {
		t.Error("descriptor should be omitted when empty")
	}
	if _, ok := got["purl"]; ok {
		t.Error("purl should be omitted when empty")
	}
}
