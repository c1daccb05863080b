package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/railsmonk/svnlens/config"
	"github.com/railsmonk/svnlens/internal/output"
	"github.com/railsmonk/svnlens/svn"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "svnlens",
		Usage:   "Read-only introspection for Subversion repositories",
		Version: "1.0.0",
		Commands: []*cli.Command{
			LogCmd(),
			DiffCmd(),
			ExportCmd(),
			InfoCmd(),
			LsCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		},
		Action: defaultAction,
	}
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "username",
			Aliases: []string{"u"},
			Usage:   "Repository username",
		},
		&cli.StringFlag{
			Name:  "password-env",
			Usage: "Environment variable holding the repository password",
		},
	}
}

// parseRevision parses a revision flag: a number (optionally prefixed with
// "r"), "HEAD", or empty for head.
func parseRevision(s string) (svn.Revspec, error) {
	if s == "" || strings.EqualFold(s, "HEAD") {
		return svn.Head(), nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "r"))
	if err != nil || n < 0 {
		return svn.Revspec{}, fmt.Errorf("invalid revision %q (expected a number or HEAD)", s)
	}
	return svn.Rev(n), nil
}

// parseFormatFlag resolves a format name, accepting the common aliases.
func parseFormatFlag(s string) (output.Format, error) {
	switch s {
	case "md":
		s = "markdown"
	case "ndjson":
		s = "ci"
	}
	return output.ParseFormat(s)
}

// loadConfig loads configuration from file or defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply filter overrides from CLI
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}

	return cfg, nil
}

// defaultAction handles bare invocations. A URL argument runs the log
// command; no arguments shows help.
func defaultAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}
	return LogCmd().Action(c)
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
