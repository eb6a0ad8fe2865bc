package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lxsort/internal/library"
	"lxsort/internal/shared"
)

func exportDoc() *library.Document {
	return &library.Document{
		Data: []*library.Playlist{
			{
				Name: "1",
				ID:   "1001",
				List: []*library.Song{
					library.NewSong("a", "Alone", "Alan Walker"),
					library.NewSong("b", "Faded", "Alan Walker"),
				},
			},
			{Name: "favorites", ID: "1002"},
		},
	}
}

func TestExport(t *testing.T) {
	t.Run("all playlists", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		result, err := testEngine().Export(context.Background(), nil, exportDoc(), nil, ExportOpts{
			Format:    "json",
			OutputDir: dir,
		})
		if err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		if result.TotalPlaylists != 2 || result.SuccessfulExports != 2 || result.FailedExports != 0 {
			t.Errorf("unexpected totals: %+v", result)
		}
		if result.OutputDirectory != dir {
			t.Errorf("OutputDirectory = %q, want %q", result.OutputDirectory, dir)
		}

		for _, name := range []string{"1.json", "favorites.json"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
				t.Errorf("expected export file %s: %v", name, err)
			}
		}
	})

	t.Run("named playlist only", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		result, err := testEngine().Export(context.Background(), nil, exportDoc(), []string{"favorites"}, ExportOpts{
			Format:    "txt",
			OutputDir: dir,
		})
		if err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		if result.TotalPlaylists != 1 || result.SuccessfulExports != 1 {
			t.Errorf("unexpected totals: %+v", result)
		}
		if _, err := os.Stat(filepath.Join(dir, "favorites_songs.txt")); err != nil {
			t.Errorf("expected export file: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "1_songs.txt")); !os.IsNotExist(err) {
			t.Error("unnamed playlist should not be exported")
		}
	})

	t.Run("unknown playlist name", func(t *testing.T) {
		_, err := testEngine().Export(context.Background(), nil, exportDoc(), []string{"nope"}, ExportOpts{
			OutputDir: t.TempDir(),
		})
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("invalid format collects per-playlist failures", func(t *testing.T) {
		result, err := testEngine().Export(context.Background(), nil, exportDoc(), nil, ExportOpts{
			Format:    "yaml",
			OutputDir: t.TempDir(),
		})
		if err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		if result.FailedExports != 2 || result.SuccessfulExports != 0 {
			t.Errorf("unexpected totals: %+v", result)
		}
		for _, res := range result.Results {
			if res.Success {
				t.Errorf("playlist %q should have failed", res.PlaylistName)
			}
			if !errors.Is(res.Error, shared.ErrInvalidFlag) {
				t.Errorf("playlist %q: expected ErrInvalidFlag, got %v", res.PlaylistName, res.Error)
			}
		}
	})

	t.Run("progress updates", func(t *testing.T) {
		progress := make(chan ProgressUpdate, 16)
		_, err := testEngine().Export(context.Background(), progress, exportDoc(), nil, ExportOpts{
			OutputDir: filepath.Join(t.TempDir(), "out"),
		})
		if err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		close(progress)

		count := 0
		for u := range progress {
			if u.Phase != ExportPlaylist {
				t.Errorf("phase = %v, want ExportPlaylist", u.Phase)
			}
			count++
		}
		// One exporting plus one completion update per playlist.
		if count != 4 {
			t.Errorf("expected 4 progress updates, got %d", count)
		}
	})
}
