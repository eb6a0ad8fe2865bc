package library

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"lxsort/internal/shared"
)

// Decode reads a gzip-compressed JSON document from r.
//
// Returns a wrapped [shared.ErrDecodeFailure] when the gzip envelope or the
// JSON body is invalid.
func Decode(r io.Reader) (*Document, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid gzip envelope: %v", shared.ErrDecodeFailure, err)
	}
	defer zr.Close()

	var doc Document
	if err := json.NewDecoder(zr).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON body: %v", shared.ErrDecodeFailure, err)
	}
	return &doc, nil
}

// Encode writes doc to w as a gzip-compressed JSON document.
//
// The body is 2-space indented with HTML escaping disabled, matching the
// shape downstream players expect.
func Encode(w io.Writer, doc *Document) error {
	zw := gzip.NewWriter(w)

	enc := json.NewEncoder(zw)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		zw.Close()
		return fmt.Errorf("%w: %v", shared.ErrEncodeFailure, err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrEncodeFailure, err)
	}
	return nil
}

// Container is a path-bound handle to a compressed playlist container file.
type Container struct {
	Path         string
	BackupSuffix string
}

// OpenContainer creates a handle for the container at path. The backup suffix
// defaults to ".backup".
func OpenContainer(path, backupSuffix string) *Container {
	if backupSuffix == "" {
		backupSuffix = ".backup"
	}
	return &Container{Path: path, BackupSuffix: backupSuffix}
}

// BackupPath returns the path the original container is copied to before a save.
func (c *Container) BackupPath() string {
	return c.Path + c.BackupSuffix
}

// Load decodes the container file into a [Document].
func (c *Container) Load() (*Document, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: container '%s': %v", shared.ErrMissingInput, c.Path, err)
	}
	defer f.Close()

	return Decode(f)
}

// Save persists doc back to the container path.
//
// The original file is copied to [Container.BackupPath] first, then the new
// envelope is written to a temporary file in the same directory and renamed
// into place. A failed re-compression therefore never leaves a corrupt
// container as the only copy on disk.
func (c *Container) Save(doc *Document) (string, error) {
	backupPath := c.BackupPath()
	if err := copyFile(c.Path, backupPath); err != nil {
		return "", fmt.Errorf("%w: backup failed: %v", shared.ErrEncodeFailure, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.Path), filepath.Base(c.Path)+".tmp-*")
	if err != nil {
		return backupPath, fmt.Errorf("%w: %v", shared.ErrEncodeFailure, err)
	}
	tmpPath := tmp.Name()

	if err := Encode(tmp, doc); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return backupPath, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return backupPath, fmt.Errorf("%w: %v", shared.ErrEncodeFailure, err)
	}

	if err := os.Rename(tmpPath, c.Path); err != nil {
		os.Remove(tmpPath)
		return backupPath, fmt.Errorf("%w: %v", shared.ErrEncodeFailure, err)
	}
	return backupPath, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
