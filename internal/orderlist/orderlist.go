// package orderlist parses the desired song ordering from a plain text file.
//
// The format is what players produce when a track list is copy-pasted: blocks
// of title / optional artist / optional duration lines separated by blank
// lines, with inconsistent indentation.
package orderlist

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"lxsort/internal/shared"
)

// SongRef is one entry of the desired ordering, not yet tied to any canonical song.
type SongRef struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// durationPattern matches standalone duration tokens like "03:07" or "3:07".
var durationPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// Parse scans raw text into an ordered sequence of [SongRef].
//
// Blank lines and standalone duration tokens are skipped wherever they lead a
// block. The first remaining line becomes the title; the next non-blank line
// becomes the artist unless it is a duration token, in which case the entry
// has no artist. A duration token directly after the artist is consumed too.
// Malformed content never fails, it just yields fewer or artist-less entries.
func Parse(text string) []SongRef {
	lines := strings.Split(text, "\n")
	var refs []SongRef

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if line == "" || durationPattern.MatchString(line) {
			i++
			continue
		}

		title := line
		artist := ""
		i++

		for i < len(lines) {
			next := strings.TrimSpace(lines[i])
			if next == "" {
				i++
				continue
			}
			if durationPattern.MatchString(next) {
				// Duration directly after the title means no artist line.
				i++
			} else {
				artist = next
				i++
				if i < len(lines) && durationPattern.MatchString(strings.TrimSpace(lines[i])) {
					i++
				}
			}
			break
		}

		refs = append(refs, SongRef{Title: title, Artist: artist})
	}

	return refs
}

// ParseFile reads an order file from disk and parses it.
//
// Returns a wrapped [shared.ErrMissingInput] when the file cannot be read.
func ParseFile(path string) ([]SongRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: order file '%s': %v", shared.ErrMissingInput, path, err)
	}
	return Parse(string(data)), nil
}
