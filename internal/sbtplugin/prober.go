package sbtplugin

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/git-pkgs/sbtplugin/client"
	"github.com/git-pkgs/sbtplugin/internal/htmllinks"
)

// Getter is the transport used for every probe. *client.Client satisfies it.
type Getter interface {
	GetBody(ctx context.Context, url string) ([]byte, error)
}

// Listing is the parsed content of one directory page.
type Listing struct {
	// URL is the absolute URL of the directory, with a trailing slash.
	URL string

	// Links are the child entries in page order. Directories keep their
	// trailing slash.
	Links []string
}

// Names returns the child names without trailing slashes.
func (l *Listing) Names() []string {
	if l == nil {
		return nil
	}
	names := make([]string, 0, len(l.Links))
	for _, link := range l.Links {
		names = append(names, strings.TrimSuffix(link, "/"))
	}
	return names
}

// isMissing reports whether a fetch failed because the path is absent.
// Besides 404 and 410, S3-backed repositories answer 403 for keys that do
// not exist.
func isMissing(err error) bool {
	return client.IsNotFound(err) || client.StatusCode(err) == http.StatusForbidden
}

// listDir fetches a directory page and returns its subdirectories.
//
// A missing directory returns a nil Listing and a nil error; a page without entries returns
// an empty Listing. Other fetch failures are returned as errors.
func listDir(ctx context.Context, g Getter, dirURL string) (*Listing, error) {
	return probe(ctx, g, dirURL, false)
}

// listEntries is listDir but keeps file entries too.
func listEntries(ctx context.Context, g Getter, dirURL string) (*Listing, error) {
	return probe(ctx, g, dirURL, true)
}

func probe(ctx context.Context, g Getter, dirURL string, includeFiles bool) (*Listing, error) {
	dirURL = client.EnsureTrailingSlash(dirURL)
	body, err := g.GetBody(ctx, dirURL)
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, err
	}

	base, err := url.Parse(dirURL)
	if err != nil {
		return nil, err
	}
	links := htmllinks.Extract(string(body), childFilter(base, includeFiles))
	if links == nil {
		links = []string{}
	}
	return &Listing{URL: dirURL, Links: links}, nil
}

// childFilter keeps hrefs that name a direct child of base. Parent navigation
// ("../"), sort links ("?C=N;O=D"), links to other hosts and, unless
// includeFiles is set, anything not ending in "/" are dropped.
func childFilter(base *url.URL, includeFiles bool) htmllinks.Filter {
	return func(href string) (string, bool) {
		if href == "" || strings.HasPrefix(href, ".") || strings.HasPrefix(href, "?") || strings.HasPrefix(href, "#") {
			return "", false
		}
		ref, err := url.Parse(href)
		if err != nil {
			return "", false
		}
		isDir := strings.HasSuffix(ref.Path, "/")
		if !isDir && !includeFiles {
			return "", false
		}

		abs := base.ResolveReference(ref)
		if abs.Host != base.Host {
			return "", false
		}
		rel, ok := strings.CutPrefix(abs.Path, base.Path)
		if !ok {
			return "", false
		}
		name := strings.TrimSuffix(rel, "/")
		if name == "" || strings.Contains(name, "/") {
			return "", false
		}
		if isDir {
			return name + "/", true
		}
		return name, true
	}
}
