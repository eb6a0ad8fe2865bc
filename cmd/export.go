package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"lxsort/internal/library"
	"lxsort/internal/shared"
	"lxsort/internal/tasks"
)

// Export writes playlists from the container to local files.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	filePath := cmd.String("file")
	if filePath == "" {
		filePath = r.config.Library.Path
	}
	playlistName := cmd.String("playlist")
	all := cmd.Bool("all")

	if playlistName == "" && !all {
		return fmt.Errorf("%w: either --playlist or --all must be provided", shared.ErrMissingArgument)
	}
	if playlistName != "" && all {
		return fmt.Errorf("%w: cannot specify both --playlist and --all", shared.ErrInvalidArgument)
	}

	container := library.OpenContainer(filePath, r.config.Library.BackupSuffix)
	doc, err := container.Load()
	if err != nil {
		return err
	}

	var names []string
	if !all {
		names = []string{playlistName}
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for update := range progressCh {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.engine.Export(ctx, progressCh, doc, names, tasks.ExportOpts{
		Format:    cmd.String("format"),
		OutputDir: cmd.String("output"),
	})
	close(progressCh)
	<-drained

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete")
	r.writePlain("Exported: %d/%d playlists\n", result.SuccessfulExports, result.TotalPlaylists)
	r.writePlain("Output directory: %s\n", result.OutputDirectory)

	if result.FailedExports > 0 {
		r.writePlain("\nFailed exports:\n")
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - %s: %v\n", res.PlaylistName, res.Error)
			}
		}
		return fmt.Errorf("%d exports failed", result.FailedExports)
	}

	return nil
}
