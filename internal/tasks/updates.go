package tasks

import (
	"fmt"

	"lxsort/internal/library"
	"lxsort/internal/orderlist"
	"lxsort/internal/shared"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	ParseOrder Phase = iota
	MatchSongs
	ExportPlaylist
)

func (p Phase) String() string {
	switch p {
	case ParseOrder:
		return "parse_order"
	case MatchSongs:
		return "match_songs"
	case ExportPlaylist:
		return "export_playlist"
	default:
		return ""
	}
}

func matchedUpdate(step, total int, ref orderlist.SongRef, song *library.Song) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MatchSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%2d] ✓ %s", step, shared.Truncate(ref.Title, 35)),
		Data:    song,
	}
}

func duplicateUpdate(step, total int, ref orderlist.SongRef) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MatchSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%2d] ⊘ duplicate: %s", step, shared.Truncate(ref.Title, 35)),
	}
}

func unmatchedUpdate(step, total int, ref orderlist.SongRef) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MatchSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%2d] ✗ not found: %s", step, shared.Truncate(ref.Title, 35)),
	}
}

func parsedOrderUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParseOrder,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Read %d songs from order file", count),
	}
}

func exportingUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
