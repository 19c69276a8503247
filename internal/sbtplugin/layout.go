package sbtplugin

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/git-pkgs/sbtplugin/client"
	"github.com/git-pkgs/sbtplugin/internal/core"
)

// Layout names how a plugin's version directories are arranged.
type Layout string

const (
	// LayoutPlain is org/plugin/<version>/.
	LayoutPlain Layout = "plain"
	// LayoutCrossBuilt is org/plugin_<scala>_<sbt>/<version>/.
	LayoutCrossBuilt Layout = "cross-built"
	// LayoutNested is org/plugin/scala_<scala>/sbt_<sbt>/<version>/.
	LayoutNested Layout = "nested"
)

// candidate is one directory whose children are version directories.
type candidate struct {
	Layout       Layout
	Path         string // relative to the search root, no slashes at either end
	ArtifactID   string // published artifact id used in descriptor file names
	ScalaVersion string
	SbtVersion   string

	// labels are the child directory names. Plain candidates are listed
	// during discovery; the others are filled in by collectVersions.
	labels []string
}

// matchCrossBuilt reports whether dir is "<plugin>_<scala>[_<sbt>]" with a
// version-looking scala token. Sibling names sharing only a string prefix
// ("plugin-extra", "plugin_sjs1_2.13") never match.
func matchCrossBuilt(dir, plugin string) (scala, sbt string, ok bool) {
	rest, found := strings.CutPrefix(dir, plugin+"_")
	if !found {
		return "", "", false
	}
	scala, sbt, _ = strings.Cut(rest, "_")
	if !core.LooksLikeScalaVersion(scala) {
		return "", "", false
	}
	return scala, sbt, true
}

// selectCrossBuilt picks the cross-built directories of key from a listing of
// the search root, preserving listing order. With an explicit Scala suffix only
// directories built for that Scala version qualify.
func selectCrossBuilt(names []string, key core.ArtifactKey) []candidate {
	var out []candidate
	for _, name := range names {
		scala, sbt, ok := matchCrossBuilt(name, key.PluginName)
		if !ok {
			continue
		}
		if key.ScalaSuffix != "" && scala != key.ScalaSuffix {
			continue
		}
		out = append(out, candidate{
			Layout:       LayoutCrossBuilt,
			Path:         name,
			ArtifactID:   name,
			ScalaVersion: scala,
			SbtVersion:   sbt,
		})
	}
	return out
}

// scalaDirVersion returns "2.12" for "scala_2.12".
func scalaDirVersion(name string) (string, bool) {
	v, ok := strings.CutPrefix(name, "scala_")
	if !ok || !core.LooksLikeScalaVersion(v) {
		return "", false
	}
	return v, true
}

// sbtDirVersion returns "1.0" for "sbt_1.0". Any subdirectory of a scala_
// directory is accepted; the prefix is stripped when present.
func sbtDirVersion(name string) string {
	if v, ok := strings.CutPrefix(name, "sbt_"); ok {
		return v
	}
	return name
}

// splitPluginDir separates the children of <root>/<plugin>/ into nested
// scala_ directories and everything else. With an explicit Scala suffix only
// the matching scala_ directory is kept.
func splitPluginDir(names []string, key core.ArtifactKey) (scalaDirs []string, others []string) {
	for _, name := range names {
		v, ok := scalaDirVersion(name)
		if !ok {
			others = append(others, name)
			continue
		}
		if key.ScalaSuffix != "" && v != key.ScalaSuffix {
			continue
		}
		scalaDirs = append(scalaDirs, name)
	}
	return scalaDirs, others
}

// layoutProbe is the outcome of phase 1 for one search root.
type layoutProbe struct {
	candidates []candidate

	// reachable is false when every top-level probe failed with a transport error.
	reachable bool
	err       error
}

// resolveLayout lists <root>/ and <root>/<plugin>/ concurrently, then expands
// nested scala_ directories into their sbt_ subdirectories. The result holds
// every directory whose children should be version directories.
func (d *Datasource) resolveLayout(ctx context.Context, root string, key core.ArtifactKey) layoutProbe {
	var (
		rootListing, pluginListing *Listing
		rootErr, pluginErr         error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rootListing, rootErr = listDir(gctx, d.client, root)
		return nil
	})
	g.Go(func() error {
		pluginListing, pluginErr = listDir(gctx, d.client, client.JoinURL(root, key.PluginName))
		return nil
	})
	_ = g.Wait()

	res := layoutProbe{reachable: rootErr == nil || pluginErr == nil}
	if !res.reachable {
		res.err = rootErr
		return res
	}
	if rootErr != nil {
		d.logger.Debug("listing search root failed", "url", root, "err", rootErr)
	}
	if pluginErr != nil {
		d.logger.Debug("listing plugin directory failed", "url", client.JoinURL(root, key.PluginName), "err", pluginErr)
	}

	// Nested layout first, then plain, then cross-built.
	scalaDirs, others := splitPluginDir(pluginListing.Names(), key)
	res.candidates = append(res.candidates, d.expandNested(ctx, root, key, scalaDirs)...)
	if key.ScalaSuffix == "" && len(others) > 0 {
		res.candidates = append(res.candidates, candidate{
			Layout:     LayoutPlain,
			Path:       key.PluginName,
			ArtifactID: key.PluginName,
			labels:     others,
		})
	}
	res.candidates = append(res.candidates, selectCrossBuilt(rootListing.Names(), key)...)
	return res
}

// expandNested lists every scala_ directory and turns each of its
// subdirectories into a nested candidate. A failing scala_ directory is skipped.
func (d *Datasource) expandNested(ctx context.Context, root string, key core.ArtifactKey, scalaDirs []string) []candidate {
	perDir := make([][]candidate, len(scalaDirs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for i, scalaDir := range scalaDirs {
		i, scalaDir := i, scalaDir
		g.Go(func() error {
			dirURL := client.JoinURL(root, key.PluginName, scalaDir)
			listing, err := listDir(gctx, d.client, dirURL)
			if err != nil {
				d.logger.Debug("listing scala directory failed", "url", dirURL, "err", err)
				return nil
			}
			scala, _ := scalaDirVersion(scalaDir)
			for _, sbtDir := range listing.Names() {
				perDir[i] = append(perDir[i], candidate{
					Layout:       LayoutNested,
					Path:         key.PluginName + "/" + scalaDir + "/" + sbtDir,
					ArtifactID:   key.PluginName,
					ScalaVersion: scala,
					SbtVersion:   sbtDirVersion(sbtDir),
				})
			}
			return nil
		})
	}
	_ = g.Wait()

	var out []candidate
	for _, cs := range perDir {
		out = append(out, cs...)
	}
	return out
}
