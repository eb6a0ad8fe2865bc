// package library models the compressed playlist container: a gzip envelope
// around a JSON document of shape {"data": [{"name", "id", "list": [...]}]}.
//
// The document carries fields this tool knows nothing about. Every type here
// interprets only the keys it needs and carries the rest through unmodified,
// so a round trip never loses or rewrites foreign data.
package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"lxsort/internal/shared"
)

// Song is one canonical playlist entry. Only id, name and singer are
// interpreted; the original raw JSON is re-emitted verbatim on marshal
// because the core reorders songs but never mutates them.
type Song struct {
	ID     string
	Name   string
	Singer string

	raw json.RawMessage
}

// NewSong builds a Song from scratch. Intended for tests; songs decoded from
// a container keep their original raw bytes instead.
func NewSong(id, name, singer string) *Song {
	return &Song{ID: id, Name: name, Singer: singer}
}

func (s *Song) UnmarshalJSON(data []byte) error {
	var fields struct {
		ID     json.RawMessage `json:"id"`
		Name   string          `json:"name"`
		Singer string          `json:"singer"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	s.ID = idKey(fields.ID)
	s.Name = fields.Name
	s.Singer = fields.Singer
	s.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (s *Song) MarshalJSON() ([]byte, error) {
	if s.raw != nil {
		return s.raw, nil
	}
	return json.Marshal(map[string]string{"id": s.ID, "name": s.Name, "singer": s.Singer})
}

// idKey turns a raw JSON id of any type into a stable string key.
// Numeric ids keep their literal text so large values never lose precision.
func idKey(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(bytes.TrimSpace(raw))
}

// Playlist is one named playlist inside the document. Interprets name, id and
// list; all other keys are preserved.
type Playlist struct {
	Name string
	ID   string
	List []*Song

	extra map[string]json.RawMessage
}

func (p *Playlist) UnmarshalJSON(data []byte) error {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	if raw, ok := all["name"]; ok {
		if err := json.Unmarshal(raw, &p.Name); err != nil {
			// Non-string names are tolerated; the literal text is the lookup key.
			p.Name = idKey(raw)
		}
	}
	p.ID = idKey(all["id"])
	if raw, ok := all["list"]; ok {
		if err := json.Unmarshal(raw, &p.List); err != nil {
			return fmt.Errorf("playlist %q: invalid song list: %w", p.Name, err)
		}
	}
	delete(all, "list")
	p.extra = all
	return nil
}

func (p *Playlist) MarshalJSON() ([]byte, error) {
	list := p.List
	if list == nil {
		list = []*Song{}
	}
	return marshalWithExtras(p.extra, "list", list, map[string]any{
		"name": p.Name,
		"id":   p.ID,
	})
}

// Summary describes a playlist for listings and the not-found report.
type Summary struct {
	Name  string `json:"name"`
	ID    string `json:"id"`
	Songs int    `json:"songs"`
}

// Document is the decoded container. Interprets the data array; all other
// top-level keys are preserved.
type Document struct {
	Data []*Playlist

	extra map[string]json.RawMessage
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	if raw, ok := all["data"]; ok {
		if err := json.Unmarshal(raw, &d.Data); err != nil {
			return fmt.Errorf("invalid data array: %w", err)
		}
	}
	delete(all, "data")
	d.extra = all
	return nil
}

func (d *Document) MarshalJSON() ([]byte, error) {
	data := d.Data
	if data == nil {
		data = []*Playlist{}
	}
	return marshalWithExtras(d.extra, "data", data, nil)
}

// Find returns the playlist whose name equals the given identifier.
//
// Returns a wrapped [shared.ErrPlaylistNotFound] when no playlist matches;
// callers are expected to report the available playlists via [Document.Summaries].
func (d *Document) Find(name string) (*Playlist, error) {
	for _, pl := range d.Data {
		if pl.Name == name {
			return pl, nil
		}
	}
	return nil, fmt.Errorf("%w: no playlist named '%s'", shared.ErrPlaylistNotFound, name)
}

// Summaries returns one [Summary] per playlist in document order.
func (d *Document) Summaries() []Summary {
	summaries := make([]Summary, 0, len(d.Data))
	for _, pl := range d.Data {
		summaries = append(summaries, Summary{Name: pl.Name, ID: pl.ID, Songs: len(pl.List)})
	}
	return summaries
}

// marshalWithExtras emits a JSON object with every preserved key in sorted
// order, the given last key placed at the end. Keys in overrides are emitted
// from their current values when the preserved map has no raw bytes for them
// (entities built in code rather than decoded).
func marshalWithExtras(extra map[string]json.RawMessage, lastKey string, lastVal any, overrides map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	keys := make([]string, 0, len(extra)+len(overrides))
	seen := make(map[string]bool, len(extra)+len(overrides))
	for k := range extra {
		keys = append(keys, k)
		seen[k] = true
	}
	for k := range overrides {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	first := true
	writeKey := func(k string) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteString(strconv.Quote(k))
		buf.WriteByte(':')
	}

	for _, k := range keys {
		writeKey(k)
		if raw, ok := extra[k]; ok {
			buf.Write(raw)
			continue
		}
		val, err := json.Marshal(overrides[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}

	writeKey(lastKey)
	val, err := json.Marshal(lastVal)
	if err != nil {
		return nil, err
	}
	buf.Write(val)

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
