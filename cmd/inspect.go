package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"lxsort/internal/library"
	"lxsort/internal/orderlist"
	"lxsort/internal/shared"
)

// Playlists lists the playlists found in the container without modifying anything.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	filePath := cmd.String("file")
	if filePath == "" {
		filePath = r.config.Library.Path
	}

	container := library.OpenContainer(filePath, r.config.Library.BackupSuffix)
	doc, err := container.Load()
	if err != nil {
		return err
	}

	summaries := doc.Summaries()
	if cmd.Bool("json") {
		return r.writeJSON(summaries, cmd.Bool("pretty"))
	}

	r.writePlain("%s\n", playlistTable(summaries))
	r.writePlain("%d playlists in %s\n", len(summaries), filePath)
	return nil
}

// Parse shows how an order file parses into song references.
func (r *Runner) Parse(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: order file path", shared.ErrMissingArgument)
	}

	refs, err := orderlist.ParseFile(path)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(refs, true)
	}

	r.writePlain("Parsed %d songs from %s\n\n", len(refs), path)
	for i, ref := range refs {
		if ref.Artist != "" {
			r.writePlain("%3d. %s - %s\n", i+1, ref.Artist, ref.Title)
		} else {
			r.writePlain("%3d. %s\n", i+1, ref.Title)
		}
	}
	return nil
}
