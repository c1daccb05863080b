package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
)

// InfoCmd returns the info command.
func InfoCmd() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Aliases:   []string{"i"},
		Usage:     "Show repository identity",
		ArgsUsage: "[URL]",
		Flags:     commonFlags(),
		Action:    infoAction,
	}
}

func infoAction(c *cli.Context) error {
	cctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	info, err := cctx.Session.Info(c.Context)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "URL:\t%s\n", info.URL)
	fmt.Fprintf(tw, "Repository Root:\t%s\n", info.Root)
	fmt.Fprintf(tw, "Repository UUID:\t%s\n", info.UUID)
	fmt.Fprintf(tw, "Revision:\t%d\n", info.Latest)
	return tw.Flush()
}
