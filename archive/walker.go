// Package archive walks style sheets stored in zip archives.
package archive

import (
	"archive/zip"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/maruel/natural"
)

// WalkFunc is called for each accepted file. The archive argument is the
// path passed to Walk. Returning an error stops the walk.
type WalkFunc func(archive string, file *zip.File) error

// Walk calls walkFn for every file in archive whose name starts with prefix
// and is accepted by match (nil accepts everything). Files are visited in
// natural name order, so "part2.css" comes before "part10.css". Archives with
// absolute entry names or ".." components are rejected as a whole before
// anything is visited.
func Walk(archive, prefix string, match func(name string) bool, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if r != nil {
		defer r.Close()
	}
	if err != nil {
		return err
	}

	var files []*zip.File
	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if match != nil && !match(name) {
			continue
		}
		files = append(files, f)
	}
	slices.SortStableFunc(files, func(a, b *zip.File) int {
		switch {
		case natural.Less(a.Name, b.Name):
			return -1
		case natural.Less(b.Name, a.Name):
			return 1
		}
		return 0
	})

	for _, f := range files {
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// isSafePath returns false for absolute names and names with ".." parts.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	return !slices.Contains(strings.Split(name, "/"), "..")
}
