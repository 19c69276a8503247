package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/sbtplugin/client"
	"github.com/git-pkgs/sbtplugin/internal/core"
	resolver "github.com/git-pkgs/sbtplugin/internal/sbtplugin"
	"github.com/git-pkgs/sbtplugin/internal/versioning"
)

type lookupOptions struct {
	registries  []string
	versioning  string
	jsonOutput  bool
	concurrency int
	timeout     time.Duration
	retries     int
}

func (c *CLI) lookupCommand() *cobra.Command {
	opts := lookupOptions{}

	cmd := &cobra.Command{
		Use:   "lookup <org:name>...",
		Short: "List the released versions of sbt plugins",
		Long: `Resolve each plugin against the given repositories in order and print the
versions of the first repository that has any.

Plugins are named "org:name", optionally with a Scala suffix
("org.foundweekends:sbt-bintray_2.12"), or as maven package URLs
("pkg:maven/io.get-coursier/sbt-coursier?repository_url=...").`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLookup(cmd, args, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.registries, "registry", "r", nil, "repository URL to search (repeatable, default "+resolver.DefaultRegistryURL+")")
	cmd.Flags().StringVar(&opts.versioning, "versioning", versioning.Default, "versioning scheme: "+strings.Join(versioning.Supported(), ", "))
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "print results as JSON")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", 15, "maximum concurrent repository requests per stage")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "HTTP request timeout")
	cmd.Flags().IntVar(&opts.retries, "retries", 5, "retries on rate limiting and server errors")

	return cmd
}

func (c *CLI) runLookup(cmd *cobra.Command, args []string, opts lookupOptions) error {
	ctx := cmd.Context()

	scheme, err := versioning.Get(opts.versioning)
	if err != nil {
		return err
	}
	for _, arg := range args {
		if _, _, err := core.ParsePackageName(arg); err != nil {
			return err
		}
	}

	httpClient := client.NewClient(
		client.WithTimeout(opts.timeout),
		client.WithMaxRetries(opts.retries),
	)
	if version != "" {
		httpClient = httpClient.WithUserAgent("sbt-plugin-releases/" + version)
	}
	ds := resolver.New(
		resolver.WithClient(httpClient),
		resolver.WithLogger(c.logger),
		resolver.WithConcurrency(opts.concurrency),
		resolver.WithVersioning(opts.versioning),
	)

	prog := newProgress(c.logger)
	var results map[string]*core.ReleaseResult
	if len(args) == 1 {
		result, err := ds.GetReleases(ctx, resolver.GetReleasesConfig{
			PackageName:  args[0],
			RegistryURLs: opts.registries,
		})
		if err != nil {
			return err
		}
		results = map[string]*core.ReleaseResult{}
		if result != nil {
			results[args[0]] = result
		}
	} else {
		results = ds.BulkGetReleases(ctx, args, opts.registries)
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Resolved %d of %d plugins", len(results), len(args)))

	for host, state := range httpClient.BreakerStates() {
		if state == "open" {
			c.logger.Warn("circuit breaker open", "host", host)
		}
	}

	if opts.jsonOutput {
		if err := writeJSON(c.out, args, results); err != nil {
			return err
		}
	} else {
		writeText(c.out, args, results, scheme)
	}

	for _, arg := range args {
		if results[arg] == nil {
			return &client.NotFoundError{Ecosystem: "sbt", Name: arg}
		}
	}
	return nil
}

// writeJSON prints a single result as an object and several as an object
// keyed by package name. Missing plugins are null.
func writeJSON(w io.Writer, args []string, results map[string]*core.ReleaseResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(args) == 1 {
		return enc.Encode(results[args[0]])
	}
	out := make(map[string]*core.ReleaseResult, len(args))
	for _, arg := range args {
		out[arg] = results[arg]
	}
	return enc.Encode(out)
}

func writeText(w io.Writer, args []string, results map[string]*core.ReleaseResult, scheme versioning.Scheme) {
	names := append([]string(nil), args...)
	sort.Strings(names)

	for i, name := range names {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		r := results[name]
		if r == nil {
			_, _ = fmt.Fprintf(w, "%s: no releases found\n", name)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\n", name)
		_, _ = fmt.Fprintf(w, "  registry:   %s\n", r.RegistryURL)
		_, _ = fmt.Fprintf(w, "  dependency: %s\n", r.DependencyURL)
		if r.Homepage != "" {
			_, _ = fmt.Fprintf(w, "  homepage:   %s\n", r.Homepage)
		}
		if r.SourceURL != "" {
			_, _ = fmt.Fprintf(w, "  source:     %s\n", r.SourceURL)
		}
		_, _ = fmt.Fprintf(w, "  latest:     %s\n", versioning.Latest(scheme, r.Versions()))
		_, _ = fmt.Fprintf(w, "  versions:   %s\n", strings.Join(r.Versions(), " "))
	}
}

func (c *CLI) versioningsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "versionings",
		Short: "List the supported versioning schemes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, id := range versioning.Supported() {
				suffix := ""
				if id == versioning.Default {
					suffix = " (default)"
				}
				_, _ = fmt.Fprintf(c.out, "%s%s\n", id, suffix)
			}
		},
	}
}
