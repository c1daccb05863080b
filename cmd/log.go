package cmd

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/railsmonk/svnlens/internal/output"
	"github.com/railsmonk/svnlens/svn"
)

// LogCmd returns the log command.
func LogCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:    "revision",
			Aliases: []string{"r"},
			Usage:   "Show a single revision (number or HEAD)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "Maximum number of revisions, counted from the start of history",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns for changed paths to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns for changed paths to exclude (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Show per-path changes",
		},
	)

	return &cli.Command{
		Name:      "log",
		Aliases:   []string{"l"},
		Usage:     "Show normalized revision history",
		ArgsUsage: "[URL]",
		Flags:     flags,
		Action:    logAction,
	}
}

func logAction(c *cli.Context) error {
	cctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	formatName := cctx.Config.Output.Format
	if c.IsSet("format") {
		formatName = c.String("format")
	}
	format, err := parseFormatFlag(formatName)
	if err != nil {
		return err
	}

	limit := cctx.Config.Output.Limit
	if c.IsSet("limit") {
		limit = c.Int("limit")
	}

	latest, err := cctx.Session.LatestRevision(c.Context)
	if err != nil {
		return err
	}

	reader := svn.NewHistoryReader(cctx.Session, svn.HistoryOptions{
		Include: cctx.Config.Filters.Include,
		Exclude: cctx.Config.Filters.Exclude,
		Limit:   limit,
	})

	var records []svn.RevisionRecord
	if c.IsSet("revision") {
		spec, err := parseRevision(c.String("revision"))
		if err != nil {
			return err
		}
		rev, err := concreteRevision(c.Context, cctx.Session, spec)
		if err != nil {
			return err
		}
		rec, err := reader.OneRevision(c.Context, rev)
		if err != nil {
			return err
		}
		records = []svn.RevisionRecord{rec}
	} else {
		records, err = reader.AllRevisions(c.Context)
		if err != nil {
			return err
		}
	}

	report := &output.HistoryReport{
		URL:         cctx.URL,
		Latest:      latest,
		GeneratedAt: time.Now(),
		Revisions:   records,
	}

	writer := output.NewHistoryWriter(format)
	return writer.Write(report, output.Options{
		Format:     format,
		OutputPath: c.String("output"),
		Verbose:    c.Bool("verbose"),
	})
}
