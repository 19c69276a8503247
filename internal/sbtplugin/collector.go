package sbtplugin

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/git-pkgs/sbtplugin/client"
	"github.com/git-pkgs/sbtplugin/internal/versioning"
)

// versionSet is the union of version labels found under one search root.
type versionSet struct {
	// versions are distinct, valid under the scheme, sorted ascending.
	versions []string

	// candidates are the directories that were searched, in discovery order.
	candidates []candidate
}

// latest returns the greatest version, or "".
func (vs versionSet) latest() string {
	if len(vs.versions) == 0 {
		return ""
	}
	return vs.versions[len(vs.versions)-1]
}

// contributors returns the candidates holding version, last discovered first.
func (vs versionSet) contributors(version string) []candidate {
	var out []candidate
	for i := len(vs.candidates) - 1; i >= 0; i-- {
		for _, label := range vs.candidates[i].labels {
			if label == version {
				out = append(out, vs.candidates[i])
				break
			}
		}
	}
	return out
}

// collectVersions lists every candidate directory not yet listed, concurrently
// and bounded by the datasource's concurrency, then unions the labels. A
// failing probe only loses that directory. Labels the scheme rejects are dropped.
//
// A cross-built directory without an sbt token ("plugin_2.12") may hold
// sbt_<version> subdirectories instead of versions; those are listed in a
// second pass and added as candidates of their own.
func (d *Datasource) collectVersions(ctx context.Context, root string, cands []candidate, scheme versioning.Scheme) versionSet {
	d.listCandidates(ctx, root, cands)

	var sbtDirs []candidate
	for i := range cands {
		c := &cands[i]
		if c.Layout != LayoutCrossBuilt || c.SbtVersion != "" {
			continue
		}
		var rest []string
		for _, label := range c.labels {
			sbt, ok := strings.CutPrefix(label, "sbt_")
			if !ok {
				rest = append(rest, label)
				continue
			}
			sbtDirs = append(sbtDirs, candidate{
				Layout:       LayoutCrossBuilt,
				Path:         c.Path + "/" + label,
				ArtifactID:   c.ArtifactID + "_" + sbt,
				ScalaVersion: c.ScalaVersion,
				SbtVersion:   sbt,
			})
		}
		c.labels = rest
	}
	if len(sbtDirs) > 0 {
		d.listCandidates(ctx, root, sbtDirs)
		cands = append(cands, sbtDirs...)
	}

	seen := make(map[string]bool)
	var labels []string
	for i := range cands {
		var valid []string
		for _, label := range cands[i].labels {
			if !scheme.IsValid(label) {
				continue
			}
			valid = append(valid, label)
			if !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		}
		cands[i].labels = valid
	}

	return versionSet{
		versions:   scheme.SortAscending(labels),
		candidates: cands,
	}
}

// listCandidates fills in the labels of every non-plain candidate.
func (d *Datasource) listCandidates(ctx context.Context, root string, cands []candidate) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for i := range cands {
		if cands[i].Layout == LayoutPlain {
			continue
		}
		i := i
		g.Go(func() error {
			dirURL := client.JoinURL(root, cands[i].Path)
			listing, err := listDir(gctx, d.client, dirURL)
			if err != nil {
				d.logger.Debug("listing version directory failed", "url", dirURL, "err", err)
				return nil
			}
			cands[i].labels = listing.Names()
			return nil
		})
	}
	_ = g.Wait()
}
