package core

import (
	"errors"
	"testing"
)

func TestParsePackageName(t *testing.T) {
	tests := []struct {
		input      string
		wantOrg    string
		wantName   string
		wantSuffix string
		wantRepo   string
		wantErr    bool
	}{
		{"org.foundweekends:sbt-bintray", "org.foundweekends", "sbt-bintray", "", "", false},
		{"org.foundweekends:sbt-bintray_2.12", "org.foundweekends", "sbt-bintray", "2.12", "", false},
		{"io.get-coursier:sbt-coursier", "io.get-coursier", "sbt-coursier", "", "", false},
		{"io.get-coursier:sbt-coursier_2.12_1.0", "io.get-coursier", "sbt-coursier", "2.12", "", false},
		{"org.scalameta:sbt-scalafmt_3", "org.scalameta", "sbt-scalafmt", "3", "", false},

		// No underscore delimiter: the version-looking tail stays in the name
		{"org.example:plugin2.12", "org.example", "plugin2.12", "", "", false},
		// Underscore followed by something that is not a Scala version
		{"org.example:my_plugin", "org.example", "my_plugin", "", "", false},
		{"org.example:my_plugin_2.13", "org.example", "my_plugin", "2.13", "", false},

		// Package URLs
		{"pkg:maven/org.foundweekends/sbt-bintray", "org.foundweekends", "sbt-bintray", "", "", false},
		{"pkg:maven/org.foundweekends/sbt-bintray_2.12", "org.foundweekends", "sbt-bintray", "2.12", "", false},
		{"pkg:maven/org.example/plugin?repository_url=https://repo.example.com/maven", "org.example", "plugin", "", "https://repo.example.com/maven", false},

		// Errors
		{"sbt-bintray", "", "", "", "", true},
		{":sbt-bintray", "", "", "", "", true},
		{"org.foundweekends:", "", "", "", "", true},
		{"a:b:c", "", "", "", "", true},
		{"pkg:npm/lodash", "", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, repo, err := ParsePackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				var cfgErr *ConfigurationError
				if !errors.As(err, &cfgErr) {
					t.Errorf("error %v is not a *ConfigurationError", err)
				}
				if !errors.Is(err, ErrInvalidPackageName) {
					t.Errorf("error %v does not wrap ErrInvalidPackageName", err)
				}
				return
			}

			if key.Organization != tt.wantOrg {
				t.Errorf("Organization = %q, want %q", key.Organization, tt.wantOrg)
			}
			if key.PluginName != tt.wantName {
				t.Errorf("PluginName = %q, want %q", key.PluginName, tt.wantName)
			}
			if key.ScalaSuffix != tt.wantSuffix {
				t.Errorf("ScalaSuffix = %q, want %q", key.ScalaSuffix, tt.wantSuffix)
			}
			if repo != tt.wantRepo {
				t.Errorf("repositoryURL = %q, want %q", repo, tt.wantRepo)
			}
		})
	}
}

func TestLooksLikeScalaVersion(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2.12", true},
		{"2.10", true},
		{"3", true},
		{"3.0.0-RC1", true},
		{"sjs1", false},
		{"native0.4", false},
		{"", false},
		{"extra", false},
		{"2..12", false},
	}
	for _, tt := range tests {
		if got := LooksLikeScalaVersion(tt.in); got != tt.want {
			t.Errorf("LooksLikeScalaVersion(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestArtifactKey(t *testing.T) {
	key := ArtifactKey{Organization: "org.foundweekends", PluginName: "sbt-bintray", ScalaSuffix: "2.12"}

	if got := key.String(); got != "org.foundweekends:sbt-bintray_2.12" {
		t.Errorf("String() = %q", got)
	}
	if got := key.OrgPath(); got != "org/foundweekends" {
		t.Errorf("OrgPath() = %q", got)
	}
	if got := key.PURL(""); got != "pkg:maven/org.foundweekends/sbt-bintray" {
		t.Errorf("PURL(\"\") = %q", got)
	}
	if got := key.PURL("0.5.5"); got != "pkg:maven/org.foundweekends/sbt-bintray@0.5.5" {
		t.Errorf("PURL(\"0.5.5\") = %q", got)
	}
}
