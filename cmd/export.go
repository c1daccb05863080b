package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/railsmonk/svnlens/internal/export"
)

// ExportCmd returns the export command.
func ExportCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:    "dest",
			Aliases: []string{"d"},
			Usage:   "Directory for the new git repository",
		},
		&cli.StringFlag{
			Name:  "author-domain",
			Usage: "Email domain for synthesized commit authors",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "Maximum number of revisions to export",
		},
	)

	return &cli.Command{
		Name:      "export",
		Aliases:   []string{"e"},
		Usage:     "Replay revision history into a local git repository",
		ArgsUsage: "[URL]",
		Flags:     flags,
		Action:    exportAction,
	}
}

func exportAction(c *cli.Context) error {
	cctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	dest := c.String("dest")
	if dest == "" {
		dest = cctx.Config.Export.Dest
	}
	if dest == "" {
		return fmt.Errorf("no destination directory (pass --dest or set export.dest in the config file)")
	}

	domain := cctx.Config.Export.AuthorDomain
	if c.IsSet("author-domain") {
		domain = c.String("author-domain")
	}

	exporter := export.New(cctx.Session, export.Options{
		Dest:         dest,
		AuthorDomain: domain,
		Limit:        c.Int("limit"),
		OnRevision: func(rev int) {
			fmt.Fprintf(os.Stderr, "exported r%d\n", rev)
		},
	})

	committed, err := exporter.Run(c.Context)
	if err != nil {
		return err
	}

	color.Green("Exported %d revisions from %s to %s", committed, cctx.URL, dest)
	return nil
}
