package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/railsmonk/svnlens/config"
	"github.com/railsmonk/svnlens/svn"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all commands.
type CommandContext struct {
	Config  *config.Config
	URL     string
	Session *svn.ClientSession
}

// NewCommandContext creates a context from CLI flags.
// It performs configuration loading, URL resolution, and session opening.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	// Load configuration
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	// Resolve the repository URL: argument first, then config
	url := c.Args().First()
	if url == "" {
		url = cfg.URL
	}
	if url == "" {
		return nil, fmt.Errorf("no repository URL (pass one as an argument or set url in the config file)")
	}

	sess, err := svn.Open(c.Context, url, credentials(c, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	return &CommandContext{
		Config:  cfg,
		URL:     url,
		Session: sess,
	}, nil
}

// credentials builds the session credentials from flags and config. The
// password itself only ever travels through an environment variable.
func credentials(c *cli.Context, cfg *config.Config) *svn.Credentials {
	username := c.String("username")
	if username == "" {
		username = cfg.Auth.Username
	}
	envName := c.String("password-env")
	if envName == "" {
		envName = cfg.Auth.PasswordEnv
	}
	if username == "" && envName == "" {
		return nil
	}

	creds := &svn.Credentials{Username: username}
	if envName != "" {
		creds.Password = os.Getenv(envName)
	}
	return creds
}

// concreteRevision resolves a revision selector to a number, asking the
// repository for its head when needed.
func concreteRevision(ctx context.Context, sess svn.Session, spec svn.Revspec) (int, error) {
	if !spec.IsHead() {
		return spec.Number(), nil
	}
	return sess.LatestRevision(ctx)
}
