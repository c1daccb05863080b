package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/railsmonk/svnlens/svn"
)

// LsCmd returns the ls command.
func LsCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:    "revision",
			Aliases: []string{"r"},
			Usage:   "Revision to list at (number or HEAD)",
		},
		&cli.BoolFlag{
			Name:    "recursive",
			Aliases: []string{"R"},
			Usage:   "Descend into subdirectories",
		},
	)

	return &cli.Command{
		Name:      "ls",
		Usage:     "List a directory of the repository",
		ArgsUsage: "[URL] [PATH]",
		Flags:     flags,
		Action:    lsAction,
	}
}

func lsAction(c *cli.Context) error {
	cctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	spec, err := parseRevision(c.String("revision"))
	if err != nil {
		return err
	}
	rev, err := concreteRevision(c.Context, cctx.Session, spec)
	if err != nil {
		return err
	}

	entries, err := cctx.Session.List(c.Context, c.Args().Get(1), rev, c.Bool("recursive"))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, ent := range entries {
		name := ent.Path
		size := ""
		if ent.Kind == svn.NodeKindDir {
			name += "/"
		} else {
			size = fmt.Sprintf("%d", ent.Size)
		}
		fmt.Fprintf(tw, "%s\t %s\n", size, name)
	}
	return tw.Flush()
}
