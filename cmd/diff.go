package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/railsmonk/svnlens/svn"
)

// DiffCmd returns the diff command.
func DiffCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:     "revision",
			Aliases:  []string{"r"},
			Usage:    "Revision whose changes to show (number or HEAD)",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "split",
			Usage: "Group the diff into per-path sections",
		},
		&cli.StringFlag{
			Name:    "path",
			Aliases: []string{"p"},
			Usage:   "Diff a single file; unlike the full diff this works on remote repositories",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	)

	return &cli.Command{
		Name:      "diff",
		Aliases:   []string{"d"},
		Usage:     "Show the changes introduced by a revision",
		ArgsUsage: "[URL]",
		Flags:     flags,
		Action:    diffAction,
	}
}

func diffAction(c *cli.Context) error {
	cctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	spec, err := parseRevision(c.String("revision"))
	if err != nil {
		return err
	}

	out, file, err := openOutput(c.String("output"))
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	if p := c.String("path"); p != "" {
		rev, err := concreteRevision(c.Context, cctx.Session, spec)
		if err != nil {
			return err
		}
		text, err := svn.FileDiff(c.Context, cctx.Session, p, rev)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, text)
		return err
	}

	if c.Bool("split") {
		set, err := svn.StructuredDiff(c.Context, cctx.Session, spec)
		if err != nil {
			return err
		}
		for _, p := range set.Paths() {
			fmt.Fprintf(out, "Index: %s\n", p)
			if chunk := set.Files[p]; len(chunk) > 0 {
				if _, err := out.Write(chunk); err != nil {
					return err
				}
			}
			if chunk := set.Properties[p]; len(chunk) > 0 {
				if _, err := out.Write(chunk); err != nil {
					return err
				}
			}
		}
		return nil
	}

	raw, err := svn.RawDiff(c.Context, cctx.Session, spec)
	if err != nil {
		return err
	}
	_, err = out.Write(raw)
	return err
}

func openOutput(path string) (io.Writer, *os.File, error) {
	if path == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}
