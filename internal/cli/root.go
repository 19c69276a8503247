// Package cli implements the sbt-plugin-releases command-line interface.
//
// The lookup command resolves one or more plugins against a list of
// repositories and prints the versions found, with the homepage and source
// repository taken from the latest POM. All commands support --verbose (-v)
// for debug-level logging of every repository probe.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// It is called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds the output streams and logger shared by all commands.
type CLI struct {
	out    io.Writer
	errOut io.Writer
	logger *charmlog.Logger
}

// New creates a CLI writing results to out and logs to errOut.
func New(out, errOut io.Writer) *CLI {
	return &CLI{
		out:    out,
		errOut: errOut,
		logger: newLogger(errOut, charmlog.InfoLevel),
	}
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "sbt-plugin-releases",
		Short:         "Resolve released versions of sbt plugins",
		Long:          `sbt-plugin-releases lists the versions of an sbt plugin published to Maven-style repositories, across cross-built and nested Scala/sbt directory layouts.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.logger.SetLevel(charmlog.DebugLevel)
			}
		},
	}

	root.SetOut(c.out)
	root.SetErr(c.errOut)
	root.SetVersionTemplate(fmt.Sprintf("sbt-plugin-releases %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.lookupCommand())
	root.AddCommand(c.versioningsCommand())

	return root
}

// Execute runs the CLI with os.Args against stdout and stderr.
func Execute(ctx context.Context) error {
	return New(os.Stdout, os.Stderr).RootCommand().ExecuteContext(ctx)
}
