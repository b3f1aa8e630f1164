package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tobyard/hl/internal"
	"github.com/tobyard/hl/internal/hlservice"
	"github.com/tobyard/hl/internal/mcpserver"
	"github.com/tobyard/hl/internal/store"
)

func addCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Save a new highlight",
		ArgsUsage: "[text]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "Where the highlight came from (book, URL, ...)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, closer, cfg, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closer()

			content := strings.Join(cmd.Args().Slice(), " ")
			if strings.TrimSpace(content) == "" {
				content, err = draftInEditor(ctx, cfg)
				if err != nil {
					return err
				}
				if content == "" {
					fmt.Println("Aborted: empty highlight.")
					return nil
				}
			}

			e, err := svc.Add(ctx, content, hlservice.AuthorUser, cmd.String("source"))
			if err != nil {
				return err
			}
			fmt.Printf("Saved highlight #%d\n", e.ID)
			return nil
		},
	}
}

func lsCommand() *cli.Command {
	return &cli.Command{
		Name:  "ls",
		Usage: "List recent highlights",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of entries",
				Value:   store.DefaultLimit,
			},
			&cli.StringFlag{
				Name:    "author",
				Aliases: []string{"a"},
				Usage:   "Only show entries by this author",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, closer, _, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closer()

			entries, err := svc.Recent(ctx, int(cmd.Int("limit")), cmd.String("author"))
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No highlights yet.")
				return nil
			}
			for i := range entries {
				fmt.Println(hlservice.FormatShort(&entries[i]))
			}
			return nil
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Full-text search over highlights",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of results",
				Value:   store.DefaultLimit,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			query := strings.Join(cmd.Args().Slice(), " ")
			if strings.TrimSpace(query) == "" {
				return fmt.Errorf("search needs a query")
			}

			svc, closer, _, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closer()

			entries, err := svc.Search(ctx, query, int(cmd.Int("limit")))
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Printf("No highlights found for: %s\n", query)
				return nil
			}
			for i := range entries {
				fmt.Println(hlservice.FormatShort(&entries[i]))
			}
			return nil
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print one highlight in full",
		ArgsUsage: "<id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := argID(cmd)
			if err != nil {
				return err
			}

			svc, closer, _, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closer()

			e, err := svc.Get(ctx, id)
			if err != nil {
				return err
			}
			if e == nil {
				return fmt.Errorf("no entry with id %d", id)
			}
			fmt.Println(hlservice.FormatFull(e))
			return nil
		},
	}
}

func rmCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Delete a highlight",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Delete without confirmation",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := argID(cmd)
			if err != nil {
				return err
			}

			svc, closer, _, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closer()

			if !cmd.Bool("force") {
				e, err := svc.Get(ctx, id)
				if err != nil {
					return err
				}
				if e == nil {
					return fmt.Errorf("no entry with id %d", id)
				}
				fmt.Println(hlservice.FormatShort(e))
				if !confirm(fmt.Sprintf("Delete entry #%d?", id)) {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			deleted, err := svc.Delete(ctx, id)
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("no entry with id %d", id)
			}
			fmt.Printf("Deleted #%d\n", id)
			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the local HTTP API",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
				return fmt.Errorf("app run error: %w", err)
			}
			return nil
		},
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run the MCP server on stdio",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, closer, _, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closer()

			return mcpserver.New(svc).ServeStdio()
		},
	}
}

// argID parses the single positional id argument.
func argID(cmd *cli.Command) (int64, error) {
	raw := cmd.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("missing entry id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid entry id: %s", raw)
	}
	return id, nil
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
