// Command hl captures, searches, and edits personal highlights from the
// terminal, with an MCP server and a local HTTP API as extra frontends.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/tobyard/hl/internal"
	"github.com/tobyard/hl/internal/hlservice"
	"github.com/tobyard/hl/internal/lock"
	"github.com/tobyard/hl/internal/store"
	pkgconfig "github.com/tobyard/hl/pkg/config"
)

func main() {
	cmd := &cli.Command{
		Name:  "hl",
		Usage: "Capture, search, and edit personal highlights",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Sources: cli.EnvVars("HL_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			addCommand(),
			lsCommand(),
			searchCommand(),
			showCommand(),
			edCommand(),
			rmCommand(),
			serveCommand(),
			mcpCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "hl:", err)
		os.Exit(1)
	}
}

// loadConfig builds the configuration from defaults plus an optional YAML
// file (--config flag, $HL_CONFIG_FILE, or the XDG config location).
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()

	path := cmd.String("config")
	if path == "" {
		base := os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err == nil {
				base = filepath.Join(home, ".config")
			}
		}
		if base != "" {
			path = filepath.Join(base, "hl", "config.yaml")
		}
	}
	if path != "" {
		if err := pkgconfig.LoadIfExists(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	return cfg, nil
}

// openService opens the store under the configured state directory and
// returns the service plus a close func.
func openService(cmd *cli.Command) (*hlservice.Service, func(), *internal.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := os.MkdirAll(cfg.State.Dir, 0o755); err != nil {
		return nil, nil, nil, fmt.Errorf("create state dir: %w", err)
	}
	db, err := store.Open(cfg.State.DBPath())
	if err != nil {
		return nil, nil, nil, err
	}
	svc := hlservice.NewService(db, lock.NewManager(cfg.State.LocksDir()))
	return svc, func() { db.Close() }, cfg, nil
}
