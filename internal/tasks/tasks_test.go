package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lxsort/internal/library"
	"lxsort/internal/match"
	"lxsort/internal/orderlist"
	"lxsort/internal/shared"
)

func testEngine() *SortEngine {
	return NewSortEngine(match.DefaultWeights())
}

func songIDs(songs []*library.Song) []string {
	ids := make([]string, len(songs))
	for i, s := range songs {
		ids[i] = s.ID
	}
	return ids
}

func equalIDs(got []*library.Song, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i, s := range got {
		if s.ID != want[i] {
			return false
		}
	}
	return true
}

func TestReconcile(t *testing.T) {
	canonical := []*library.Song{
		library.NewSong("a", "Alone", "Alan Walker"),
		library.NewSong("b", "Faded", "Alan Walker"),
		library.NewSong("c", "Sing Me to Sleep", "Alan Walker"),
	}

	tests := []struct {
		name           string
		refs           []orderlist.SongRef
		wantOrder      []string
		wantMatched    int
		wantUnmatched  int
		wantDuplicates int
		wantLeftover   int
	}{
		{
			name: "full reorder",
			refs: []orderlist.SongRef{
				{Title: "Sing Me to Sleep"},
				{Title: "Alone"},
				{Title: "Faded"},
			},
			wantOrder:   []string{"c", "a", "b"},
			wantMatched: 3,
		},
		{
			name: "partial match appends leftovers in original order",
			refs: []orderlist.SongRef{
				{Title: "Sing Me to Sleep"},
			},
			wantOrder:    []string{"c", "a", "b"},
			wantMatched:  1,
			wantLeftover: 2,
		},
		{
			name: "duplicate refs claim a song once",
			refs: []orderlist.SongRef{
				{Title: "Faded"},
				{Title: "Faded (Live)"},
				{Title: "Alone"},
			},
			wantOrder:      []string{"b", "a", "c"},
			wantMatched:    2,
			wantDuplicates: 1,
			wantLeftover:   1,
		},
		{
			name: "unmatched refs are reported, not fatal",
			refs: []orderlist.SongRef{
				{Title: "Never Gonna Give You Up"},
				{Title: "Alone"},
			},
			wantOrder:     []string{"a", "b", "c"},
			wantMatched:   1,
			wantUnmatched: 1,
			wantLeftover:  2,
		},
		{
			name:         "empty order keeps canonical order",
			refs:         nil,
			wantOrder:    []string{"a", "b", "c"},
			wantLeftover: 3,
		},
	}

	engine := testEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := engine.Reconcile(tt.refs, canonical, nil)

			if !equalIDs(outcome.NewOrder, tt.wantOrder) {
				t.Errorf("NewOrder = %v, want %v", songIDs(outcome.NewOrder), tt.wantOrder)
			}
			if outcome.Matched != tt.wantMatched {
				t.Errorf("Matched = %d, want %d", outcome.Matched, tt.wantMatched)
			}
			if len(outcome.Unmatched) != tt.wantUnmatched {
				t.Errorf("Unmatched = %d, want %d", len(outcome.Unmatched), tt.wantUnmatched)
			}
			if len(outcome.Duplicates) != tt.wantDuplicates {
				t.Errorf("Duplicates = %d, want %d", len(outcome.Duplicates), tt.wantDuplicates)
			}
			if outcome.Leftover != tt.wantLeftover {
				t.Errorf("Leftover = %d, want %d", outcome.Leftover, tt.wantLeftover)
			}
		})
	}
}

func TestReconcileIsPermutation(t *testing.T) {
	canonical := []*library.Song{
		library.NewSong("1", "One", ""),
		library.NewSong("2", "Two", ""),
		library.NewSong("3", "Three", ""),
		library.NewSong("4", "Four", ""),
	}
	refs := []orderlist.SongRef{
		{Title: "Three"},
		{Title: "Nowhere Song"},
		{Title: "Three"},
		{Title: "One"},
	}

	outcome := testEngine().Reconcile(refs, canonical, nil)

	if len(outcome.NewOrder) != len(canonical) {
		t.Fatalf("NewOrder has %d songs, want %d", len(outcome.NewOrder), len(canonical))
	}
	seen := make(map[string]bool)
	for _, s := range outcome.NewOrder {
		if seen[s.ID] {
			t.Errorf("song %q appears twice in NewOrder", s.ID)
		}
		seen[s.ID] = true
	}
	for _, s := range canonical {
		if !seen[s.ID] {
			t.Errorf("song %q missing from NewOrder", s.ID)
		}
	}
}

func TestReconcileProgress(t *testing.T) {
	canonical := []*library.Song{
		library.NewSong("a", "Alone", "Alan Walker"),
	}
	refs := []orderlist.SongRef{
		{Title: "Alone"},
		{Title: "Alone"},
		{Title: "Missing"},
	}

	progress := make(chan ProgressUpdate, 16)
	testEngine().Reconcile(refs, canonical, progress)
	close(progress)

	var updates []ProgressUpdate
	for u := range progress {
		updates = append(updates, u)
	}
	if len(updates) != 3 {
		t.Fatalf("expected 3 progress updates, got %d", len(updates))
	}
	for i, u := range updates {
		if u.Phase != MatchSongs {
			t.Errorf("update %d: phase = %v, want MatchSongs", i, u.Phase)
		}
		if u.Step != i+1 || u.Total != 3 {
			t.Errorf("update %d: step/total = %d/%d, want %d/3", i, u.Step, u.Total, i+1)
		}
	}
	if updates[0].Data == nil {
		t.Error("matched update should carry the song")
	}
}

func TestReconcileNilProgressFullChannel(t *testing.T) {
	canonical := []*library.Song{library.NewSong("a", "Alone", "")}
	refs := []orderlist.SongRef{{Title: "Alone"}, {Title: "Faded"}}

	// An unbuffered channel with no reader must not block the engine.
	progress := make(chan ProgressUpdate)
	outcome := testEngine().Reconcile(refs, canonical, progress)
	if outcome.Matched != 1 {
		t.Errorf("Matched = %d, want 1", outcome.Matched)
	}
}

func TestRun(t *testing.T) {
	writeOrderFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "order.txt")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write order file: %v", err)
		}
		return path
	}

	newDoc := func() *library.Document {
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
			},
		}
	}

	t.Run("reorders playlist in place", func(t *testing.T) {
		doc := newDoc()
		path := writeOrderFile(t, "Faded\nAlan Walker\n03:32\n\nAlone\nAlan Walker\n02:41\n")

		result, err := testEngine().Run(context.Background(), nil, doc, path, "1")
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if result.OrderCount != 2 {
			t.Errorf("OrderCount = %d, want 2", result.OrderCount)
		}
		if !equalIDs(doc.Data[0].List, []string{"b", "a"}) {
			t.Errorf("playlist not reordered: %v", songIDs(doc.Data[0].List))
		}
		if result.Playlist != doc.Data[0] {
			t.Error("result should reference the document's playlist")
		}
	})

	t.Run("missing order file", func(t *testing.T) {
		_, err := testEngine().Run(context.Background(), nil, newDoc(), filepath.Join(t.TempDir(), "nope.txt"), "1")
		if !errors.Is(err, shared.ErrMissingInput) {
			t.Errorf("expected ErrMissingInput, got %v", err)
		}
	})

	t.Run("missing playlist", func(t *testing.T) {
		path := writeOrderFile(t, "Alone\n")
		_, err := testEngine().Run(context.Background(), nil, newDoc(), path, "no-such-list")
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})
}

func TestOutcomeString(t *testing.T) {
	o := &Outcome{
		NewOrder:   []*library.Song{library.NewSong("a", "", ""), library.NewSong("b", "", "")},
		Matched:    1,
		Unmatched:  []orderlist.SongRef{{Title: "x"}},
		Duplicates: nil,
		Leftover:   1,
	}
	want := "matched=1 unmatched=1 duplicates=0 leftover=1 total=2"
	if got := o.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
