package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"lxsort/internal/library"
	"lxsort/internal/repositories"
	"lxsort/internal/shared"
	"lxsort/internal/tasks"
	"lxsort/internal/ui"
)

// unmatchedSampleLimit caps how many unmatched songs the summary lists.
const unmatchedSampleLimit = 5

// Sort reorders one playlist in the container to match the order file.
func (r *Runner) Sort(ctx context.Context, cmd *cli.Command) error {
	orderPath := cmd.String("order")
	filePath := cmd.String("file")
	if filePath == "" {
		filePath = r.config.Library.Path
	}
	playlistName := cmd.String("playlist")
	dryRun := cmd.Bool("dry-run")

	runLogger := shared.WithLogger(r.logger, "run_id", shared.GenerateID())
	runLogger.Info("starting sort", "order", orderPath, "file", filePath)

	container := library.OpenContainer(filePath, r.config.Library.BackupSuffix)
	doc, err := container.Load()
	if err != nil {
		return err
	}

	if playlistName == "" {
		playlistName = r.resolvePlaylistName(doc)
		if playlistName == "" {
			return fmt.Errorf("%w: no playlist selected", shared.ErrMissingArgument)
		}
	}

	r.writePlain("Sorting playlist '%s' in %s\n", playlistName, filePath)
	r.writePlain("Order file: %s\n\n", orderPath)

	// Progress goroutine drains match-by-match updates for display.
	progressCh := make(chan tasks.ProgressUpdate, 50)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for update := range progressCh {
			switch update.Phase {
			case tasks.ParseOrder:
				r.writePlain("📄 %s\n\n", update.Message)
			case tasks.MatchSongs:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.Run(ctx, progressCh, doc, orderPath, playlistName)
	close(progressCh)
	<-drained

	if err != nil {
		if errors.Is(err, shared.ErrPlaylistNotFound) {
			r.writePlain("No playlist named '%s'. Available playlists:\n\n", playlistName)
			r.writePlain("%s\n", playlistTable(doc.Summaries()))
		}
		return err
	}

	outcome := result.Outcome
	r.writePlain("\n")
	r.writePlainHeader("Sort Summary")
	r.writePlain("Matched:    %d songs\n", outcome.Matched)
	r.writePlain("Not found:  %d songs\n", len(outcome.Unmatched))
	r.writePlain("Duplicates: %d entries\n", len(outcome.Duplicates))
	r.writePlain("Unsorted:   %d songs (appended at the end)\n", outcome.Leftover)
	r.writePlain("Total:      %d songs\n", len(outcome.NewOrder))

	if len(outcome.Unmatched) > 0 {
		r.writePlain("\nSongs not found in the playlist:\n")
		for i, ref := range outcome.Unmatched {
			if i == unmatchedSampleLimit {
				r.writePlain("  ... and %d more\n", len(outcome.Unmatched)-unmatchedSampleLimit)
				break
			}
			r.writePlain("  %d. %s - %s\n", i+1, ref.Title, ref.Artist)
		}
	}

	if dryRun {
		r.writePlain("\nDry run: container not modified\n")
	} else {
		backupPath, err := container.Save(doc)
		if err != nil {
			return err
		}
		r.writePlain("\n✓ Backup created: %s\n", backupPath)
		r.writePlain("✓ Container saved: %s\n", filePath)
	}

	r.recordRun(runLogger, playlistName, orderPath, outcome, dryRun)
	runLogger.Info("sort complete", "outcome", outcome.String())
	return nil
}

// resolvePlaylistName picks a playlist when --playlist was omitted: the
// interactive picker on a terminal, the configured default otherwise.
func (r *Runner) resolvePlaylistName(doc *library.Document) string {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		name, err := ui.Pick(doc.Summaries())
		if err != nil {
			r.logger.Warn("playlist picker aborted", "error", err)
			return ""
		}
		return name
	}
	return r.config.Library.DefaultPlaylist
}

// recordRun persists the outcome to the history database. Best effort: a
// missing or broken database logs a warning, it never fails the sort.
func (r *Runner) recordRun(logger *log.Logger, playlistName, orderPath string, outcome *tasks.Outcome, dryRun bool) {
	db, err := r.openHistory()
	if err != nil {
		logger.Warn("history database unavailable", "error", err)
		return
	}
	if db == nil {
		return
	}
	defer db.Close()

	repo := repositories.NewRunRepository(db)
	run := &repositories.SortRun{
		PlaylistName: playlistName,
		OrderFile:    orderPath,
		Matched:      outcome.Matched,
		Unmatched:    len(outcome.Unmatched),
		Duplicates:   len(outcome.Duplicates),
		Leftover:     outcome.Leftover,
		DryRun:       dryRun,
	}
	if err := repo.Create(run); err != nil {
		logger.Warn("failed to record run", "error", err)
	}
}

// playlistTable renders playlist summaries as a terminal table.
func playlistTable(summaries []library.Summary) string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{s.Name, s.ID, strconv.Itoa(s.Songs)})
	}
	return renderTable(
		[]string{"Name", "ID", "Songs"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight},
	)
}
