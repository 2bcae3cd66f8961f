package workspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Snapshot returns the set of regular files currently under the root, keyed
// by slash-separated path relative to it. Denied subtrees are skipped.
func (w *Workspace) Snapshot() (map[string]struct{}, error) {
	seen := make(map[string]struct{})
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != w.root {
				for _, denied := range deniedDirs {
					if d.Name() == denied {
						return filepath.SkipDir
					}
				}
			}
			return nil
		}
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return err
		}
		seen[filepath.ToSlash(rel)] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seen, nil
}

// NewFilesSince reports files present now but absent from a prior snapshot,
// sorted so artifact listings are deterministic.
func (w *Workspace) NewFilesSince(prior map[string]struct{}) ([]string, error) {
	now, err := w.Snapshot()
	if err != nil {
		return nil, err
	}
	var added []string
	for name := range now {
		if _, ok := prior[name]; !ok {
			added = append(added, name)
		}
	}
	sort.Strings(added)
	return added, nil
}

// CleanStale removes regular files under the root whose modification time is
// older than maxAge, and returns how many were removed. Directories and
// denied subtrees are left alone.
func (w *Workspace) CleanStale(maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != w.root {
				for _, denied := range deniedDirs {
					if d.Name() == denied {
						return filepath.SkipDir
					}
				}
			}
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, err
}
