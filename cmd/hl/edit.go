package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/tobyard/hl/internal"
	"github.com/tobyard/hl/internal/apperr"
	"github.com/tobyard/hl/internal/editor"
	"github.com/tobyard/hl/internal/hlservice"
	"github.com/tobyard/hl/internal/lock"
	"github.com/tobyard/hl/internal/picker"
)

const pickerListSize = 50

func edCommand() *cli.Command {
	return &cli.Command{
		Name:      "ed",
		Usage:     "Open a highlight in your editor",
		ArgsUsage: "[id]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, closer, cfg, err := openService(cmd)
			if err != nil {
				return err
			}
			defer closer()

			var id int64
			if cmd.Args().First() != "" {
				id, err = argID(cmd)
				if err != nil {
					return err
				}
			} else {
				id, err = pickEntry(ctx, svc)
				if err != nil {
					return err
				}
				if id == 0 {
					return nil
				}
			}

			return editEntry(ctx, svc, cfg, id)
		},
	}
}

// pickEntry shows an interactive list of recent entries. A zero id means
// the user cancelled or there was nothing to pick.
func pickEntry(ctx context.Context, svc *hlservice.Service) (int64, error) {
	entries, err := svc.Recent(ctx, pickerListSize, "")
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		fmt.Println("No highlights yet.")
		return 0, nil
	}

	items := make([]string, len(entries))
	for i := range entries {
		items[i] = hlservice.FormatLine(&entries[i])
	}
	idx, err := picker.Pick(items, 10)
	if err != nil {
		return 0, err
	}
	if idx < 0 {
		return 0, nil
	}
	return entries[idx].ID, nil
}

func editEntry(ctx context.Context, svc *hlservice.Service, cfg *internal.Config, id int64) error {
	sess, err := svc.StartEdit(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("no entry with id %d", id)
		}
		var held *lock.HeldError
		if errors.As(err, &held) {
			return fmt.Errorf("%s; close the other editor or wait", held.Error())
		}
		return err
	}
	defer sess.Close()

	onSave := func(draft string) {
		if _, err := sess.NotifySnapshot(ctx, draft); err != nil {
			slog.Warn("failed to save draft", slog.String("error", err.Error()))
		}
	}

	final, err := editor.Open(ctx, editor.Command(cfg.Editor.Command), sess.Entry().Content, onSave)
	if err != nil {
		return err
	}
	if final == "" {
		fmt.Println("No changes.")
		return nil
	}

	changed, err := sess.NotifySnapshot(ctx, final)
	if err != nil {
		return err
	}
	if changed {
		fmt.Printf("Updated #%d\n", id)
	} else {
		fmt.Println("No changes.")
	}
	return nil
}

// draftInEditor opens an empty buffer for composing a new highlight.
func draftInEditor(ctx context.Context, cfg *internal.Config) (string, error) {
	return editor.Open(ctx, editor.Command(cfg.Editor.Command), "", nil)
}
