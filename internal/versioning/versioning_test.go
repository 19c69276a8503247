package versioning

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/git-pkgs/sbtplugin/internal/core"
)

func TestGet(t *testing.T) {
	tests := []struct {
		id      string
		wantID  string
		wantErr bool
	}{
		{"", "maven", false},
		{"maven", "maven", false},
		{"semver", "semver", false},
		{"loose", "loose", false},
		{"ivy", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s, err := Get(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Get(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, core.ErrUnknownVersioning) {
					t.Errorf("Get(%q) error = %v, want ErrUnknownVersioning", tt.id, err)
				}
				return
			}
			if s.ID() != tt.wantID {
				t.Errorf("ID() = %q, want %q", s.ID(), tt.wantID)
			}
		})
	}
}

func TestSupported(t *testing.T) {
	if diff := cmp.Diff([]string{"loose", "maven", "semver"}, Supported()); diff != "" {
		t.Errorf("Supported() mismatch (-want +got):\n%s", diff)
	}
}

func TestMavenSortAscending(t *testing.T) {
	s, _ := Get("maven")
	got := s.SortAscending([]string{"2.0.0-RC6-6", "2.0.0-RC2", "maven-metadata.xml", "2.0.0-RC6-1", "2.0.0-RC6-2"})
	want := []string{"2.0.0-RC2", "2.0.0-RC6-1", "2.0.0-RC6-2", "2.0.0-RC6-6"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortAscending mismatch (-want +got):\n%s", diff)
	}
}

func TestMavenSortReleaseAfterPrerelease(t *testing.T) {
	s, _ := Get("maven")
	got := s.SortAscending([]string{"1.0.0", "0.13", "1.0.0-M5", "1.2.3.4", "0.5.5"})
	want := []string{"0.5.5", "0.13", "1.0.0-M5", "1.0.0", "1.2.3.4"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortAscending mismatch (-want +got):\n%s", diff)
	}
}

func TestMavenQualifierOrdering(t *testing.T) {
	s, _ := Get("maven")

	tests := []struct {
		name   string
		labels []string
		want   []string
	}{
		{
			name:   "multi-digit release candidates",
			labels: []string{"1.0.0-RC10", "1.0.0-RC9", "1.0.0-RC2"},
			want:   []string{"1.0.0-RC2", "1.0.0-RC9", "1.0.0-RC10"},
		},
		{
			name:   "multi-digit qualifier builds",
			labels: []string{"2.0.0-RC6-10", "2.0.0-RC6-6", "2.0.0-RC6-2"},
			want:   []string{"2.0.0-RC6-2", "2.0.0-RC6-6", "2.0.0-RC6-10"},
		},
		{
			name:   "milestones",
			labels: []string{"1.0-M10", "1.0-M2", "1.0"},
			want:   []string{"1.0-M2", "1.0-M10", "1.0"},
		},
		{
			name:   "final and release qualifiers",
			labels: []string{"2.0.1.Final", "2.0.0-RC6-10", "3.1.0.RELEASE", "2.0.0"},
			want:   []string{"2.0.0-RC6-10", "2.0.0", "2.0.1.Final", "3.1.0.RELEASE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, s.SortAscending(tt.labels)); diff != "" {
				t.Errorf("SortAscending mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if got := Latest(s, []string{"2.0.0-RC6-6", "2.0.0-RC6-10", "2.0.1.Final"}); got != "2.0.1.Final" {
		t.Errorf("Latest = %q, want 2.0.1.Final", got)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		scheme string
		label  string
		want   bool
	}{
		{"maven", "0.5.5", true},
		{"maven", "2.0.0-RC6-1", true},
		{"maven", "1.2.3.4", true},
		{"maven", "..", false},
		{"maven", "maven-metadata.xml", false},
		{"maven", "latest", false},
		{"maven", "1.0.0.Final", true},
		{"maven", "3.1.0.RELEASE", true},
		{"loose", "1.2.3.4", true},
		{"loose", "1.0.0.Final", false},
		{"semver", "1.2.3", true},
		{"semver", "1.2", true},
		{"semver", "1.2.3.4", false},
		{"semver", "latest", false},
	}
	for _, tt := range tests {
		s, err := Get(tt.scheme)
		if err != nil {
			t.Fatalf("Get(%q): %v", tt.scheme, err)
		}
		if got := s.IsValid(tt.label); got != tt.want {
			t.Errorf("%s.IsValid(%q) = %v, want %v", tt.scheme, tt.label, got, tt.want)
		}
	}
}

func TestLatest(t *testing.T) {
	s, _ := Get("semver")
	if got := Latest(s, []string{"1.0.0", "1.10.0", "1.9.0"}); got != "1.10.0" {
		t.Errorf("Latest = %q, want %q", got, "1.10.0")
	}
	if got := Latest(s, []string{"nope"}); got != "" {
		t.Errorf("Latest of invalid labels = %q, want empty", got)
	}
}
