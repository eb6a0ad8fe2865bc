package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"lxsort/internal/repositories"
	"lxsort/internal/shared"
)

// History lists past sort runs recorded in the history database.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openHistory()
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	if db == nil {
		return fmt.Errorf("%w: history database disabled in config", shared.ErrInvalidConfig)
	}
	defer db.Close()

	repo := repositories.NewRunRepository(db)
	runs, err := repo.List(cmd.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(runs, true)
	}

	if len(runs) == 0 {
		r.writePlain("No sort runs recorded yet\n")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		mode := "write"
		if run.DryRun {
			mode = "dry-run"
		}
		rows = append(rows, []string{
			run.CreatedAt.Format("2006-01-02 15:04"),
			run.PlaylistName,
			run.OrderFile,
			strconv.Itoa(run.Matched),
			strconv.Itoa(run.Unmatched),
			strconv.Itoa(run.Duplicates),
			strconv.Itoa(run.Leftover),
			mode,
		})
	}

	table := renderTable(
		[]string{"When", "Playlist", "Order file", "Matched", "Missing", "Dup", "Leftover", "Mode"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
	)
	r.writePlain("%s\n", table)
	return nil
}
