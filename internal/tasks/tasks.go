// package tasks implements the sort and export operations over a playlist container.
//
// The core abstraction is SortEngine, which reconciles an externally supplied
// song ordering against a playlist's canonical list and rewrites the list in
// place. Operations emit progress updates via channels for non-blocking
// status reporting to the CLI layer.
package tasks

import (
	"context"
	"fmt"

	"lxsort/internal/library"
	"lxsort/internal/match"
	"lxsort/internal/orderlist"
)

// Outcome holds the result of reconciling one ordered ref list against one
// canonical song list.
//
// NewOrder is always a permutation of the canonical list: the matched songs
// in ref order first, then every unmatched canonical song in its original
// relative order.
type Outcome struct {
	NewOrder   []*library.Song     // Reordered canonical list, no id repeated or lost
	Matched    int                 // Distinct canonical songs matched
	Unmatched  []orderlist.SongRef // Refs that matched nothing
	Duplicates []orderlist.SongRef // Refs whose match was already claimed by an earlier ref
	Leftover   int                 // Canonical songs with no matching ref, appended at the end
}

// SortResult contains all data from a full sort run.
type SortResult struct {
	Playlist   *library.Playlist // The playlist that was reordered
	Outcome    *Outcome          // Reconciliation details
	OrderCount int               // Parsed refs in the order file
}

// SortEngine reconciles song orderings and exports playlists.
type SortEngine struct {
	weights match.Weights
}

// NewSortEngine creates a SortEngine with the provided matching weights.
func NewSortEngine(w match.Weights) *SortEngine {
	return &SortEngine{weights: w}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default so progress reporting never stalls execution.
func (e *SortEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Reconcile merges the ordered refs with the canonical list.
//
// A single ordered pass threads a seen-id set: the first ref to match a
// canonical song claims it, later refs matching the same id are recorded as
// duplicates, refs matching nothing are recorded as unmatched. Canonical
// songs nobody claimed are appended in their original relative order.
// Deterministic and total; duplicate and unmatched refs are outcomes, not errors.
func (e *SortEngine) Reconcile(refs []orderlist.SongRef, canonical []*library.Song, progress chan<- ProgressUpdate) *Outcome {
	outcome := &Outcome{
		NewOrder: make([]*library.Song, 0, len(canonical)),
	}
	seen := make(map[string]bool, len(refs))
	total := len(refs)

	for i, ref := range refs {
		song := e.weights.Match(ref, canonical)
		switch {
		case song == nil:
			outcome.Unmatched = append(outcome.Unmatched, ref)
			e.sendProgress(progress, unmatchedUpdate(i+1, total, ref))
		case seen[song.ID]:
			outcome.Duplicates = append(outcome.Duplicates, ref)
			e.sendProgress(progress, duplicateUpdate(i+1, total, ref))
		default:
			seen[song.ID] = true
			outcome.NewOrder = append(outcome.NewOrder, song)
			e.sendProgress(progress, matchedUpdate(i+1, total, ref, song))
		}
	}

	outcome.Matched = len(seen)
	for _, song := range canonical {
		if !seen[song.ID] {
			outcome.NewOrder = append(outcome.NewOrder, song)
			outcome.Leftover++
		}
	}

	return outcome
}

// Run performs a full sort: parse the order file, find the playlist, reconcile
// and replace its song list. The document is mutated in memory; persisting it
// is the caller's concern so a dry run costs nothing.
func (e *SortEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, doc *library.Document, orderPath, playlistName string) (*SortResult, error) {
	refs, err := orderlist.ParseFile(orderPath)
	if err != nil {
		return nil, err
	}
	e.sendProgress(progress, parsedOrderUpdate(len(refs)))

	playlist, err := doc.Find(playlistName)
	if err != nil {
		return nil, err
	}

	outcome := e.Reconcile(refs, playlist.List, progress)
	playlist.List = outcome.NewOrder

	return &SortResult{
		Playlist:   playlist,
		Outcome:    outcome,
		OrderCount: len(refs),
	}, nil
}

func (o *Outcome) String() string {
	return fmt.Sprintf("matched=%d unmatched=%d duplicates=%d leftover=%d total=%d",
		o.Matched, len(o.Unmatched), len(o.Duplicates), o.Leftover, len(o.NewOrder))
}
