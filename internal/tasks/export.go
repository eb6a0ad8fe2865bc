package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lxsort/internal/formatter"
	"lxsort/internal/library"
)

// ExportOpts contains configuration for playlist exports.
type ExportOpts struct {
	Format     string // Export format: json, csv, markdown, txt
	OutputDir  string // Base output directory (default: lxsort_export_{epoch})
	NumWorkers int    // Concurrent workers (default: 4)
}

// PlaylistExportResult records the outcome of exporting a single playlist.
type PlaylistExportResult struct {
	PlaylistName string
	Success      bool
	Files        []string
	Error        error
}

// ExportResult contains all data from an export operation.
type ExportResult struct {
	TotalPlaylists    int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	Results           []PlaylistExportResult
}

// Export writes the named playlists (all of them when names is empty) to disk
// using a bounded worker pool.
//
// Partial failures are collected per playlist rather than aborting the whole
// export. The container document is read-only here.
func (e *SortEngine) Export(ctx context.Context, progress chan<- ProgressUpdate, doc *library.Document, names []string, opts ExportOpts) (*ExportResult, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("lxsort_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}

	playlists := make([]*library.Playlist, 0, len(doc.Data))
	if len(names) == 0 {
		playlists = append(playlists, doc.Data...)
	} else {
		for _, name := range names {
			pl, err := doc.Find(name)
			if err != nil {
				return nil, err
			}
			playlists = append(playlists, pl)
		}
	}

	result := &ExportResult{
		TotalPlaylists:  len(playlists),
		OutputDirectory: opts.OutputDir,
		Results:         make([]PlaylistExportResult, 0, len(playlists)),
	}

	jobs := make(chan *library.Playlist, len(playlists))
	results := make(chan PlaylistExportResult, len(playlists))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		for i, pl := range playlists {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}
			e.sendProgress(progress, exportingUpdate(i+1, len(playlists), pl.Name))
			jobs <- pl
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(progress, exportCompletedUpdate(completed, len(playlists), res.PlaylistName, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(progress, exportFailedUpdate(completed, len(playlists), res.PlaylistName, res.Error))
		}
	}

	return result, nil
}

// exportWorker is a worker goroutine that exports playlists from the jobs channel.
func (e *SortEngine) exportWorker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan *library.Playlist, results chan<- PlaylistExportResult, opts ExportOpts) {
	defer wg.Done()

	for pl := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res := PlaylistExportResult{PlaylistName: pl.Name}
		files, err := formatter.WriteExport(pl, opts.Format, opts.OutputDir)
		if err != nil {
			res.Error = err
		} else {
			res.Files = files
			res.Success = true
		}
		results <- res
	}
}
