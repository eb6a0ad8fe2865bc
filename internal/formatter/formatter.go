// package formatter exports playlists from the container to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"lxsort/internal/library"
	"lxsort/internal/shared"
)

// ExportToCSV converts a playlist to CSV format with columns: ID, Name, Singer
func ExportToCSV(pl *library.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Singer"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range pl.List {
		record := []string{song.ID, song.Name, song.Singer}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a playlist to Markdown format
func ExportToMarkdown(pl *library.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", pl.Name))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(pl.List)))

	buf.WriteString("## Songs\n\n")
	for i, song := range pl.List {
		if song.Singer != "" {
			buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, song.Singer, song.Name))
		} else {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, song.Name))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a playlist to plain text format
func ExportToText(pl *library.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", pl.Name))
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(pl.List)))

	for i, song := range pl.List {
		if song.Singer != "" {
			buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, song.Singer, song.Name))
		} else {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, song.Name))
		}
	}

	return buf.Bytes(), nil
}

// ExportToJSON emits the playlist's song list with every passthrough field intact.
func ExportToJSON(pl *library.Playlist) ([]byte, error) {
	return shared.MarshalJSON(pl.List, true)
}

// WriteExport exports a playlist to outputDir in the given format and returns
// the files created. Format defaults to json.
func WriteExport(pl *library.Playlist, format, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	base := pl.Name
	if base == "" {
		base = pl.ID
	}

	var data []byte
	var err error
	var path string

	switch format {
	case "csv":
		data, err = ExportToCSV(pl)
		path = filepath.Join(outputDir, base+"_songs.csv")
	case "markdown":
		data, err = ExportToMarkdown(pl)
		path = filepath.Join(outputDir, base+".md")
	case "txt":
		data, err = ExportToText(pl)
		path = filepath.Join(outputDir, base+"_songs.txt")
	case "json", "":
		data, err = ExportToJSON(pl)
		path = filepath.Join(outputDir, base+".json")
	default:
		return nil, fmt.Errorf("%w: unknown export format '%s'", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s export: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write export file: %w", err)
	}

	return []string{path}, nil
}
