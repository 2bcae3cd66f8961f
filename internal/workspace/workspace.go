// Package workspace provides the designated directory root for all files
// produced by tools and sandboxed code during a session.
//
// A Workspace is constructed once in main and passed explicitly to tool
// constructors and the sandbox executor; nothing reads the root from ambient
// process state.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Workspace is the root directory for tool and sandbox file access.
// Relative paths handed to tools resolve against it; anything that escapes
// the root is rejected.
type Workspace struct {
	root string
}

// New resolves root into an absolute, symlink-normalised workspace, creating
// the directory when it does not exist. An empty root means the current
// working directory.
func New(root string) (*Workspace, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		root = cwd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("abs(root): %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	// Resolve symlinks up front so later boundary checks are reliable.
	if r, err := filepath.EvalSymlinks(abs); err == nil {
		abs = r
	}
	return &Workspace{root: abs}, nil
}

// Root returns the absolute workspace root.
func (w *Workspace) Root() string { return w.root }

// Resolve resolves relPath against the workspace root and returns an absolute
// path inside it. It rejects absolute inputs, parent traversal, and symlink
// escapes, and denies access under .git/ and .sage/. On violation it returns
// a ToolError.
func (w *Workspace) Resolve(relPath string) (string, error) {
	if filepath.IsAbs(relPath) {
		return "", ToolError{Code: "ERR_PATH_OUTSIDE_WORKSPACE", Message: "absolute paths are not allowed"}
	}

	cleaned := filepath.Clean(relPath)
	if cleaned == "" {
		cleaned = "."
	}

	candidate := filepath.Join(w.root, cleaned)

	// Best-effort symlink resolution: resolve the whole candidate if it
	// exists, otherwise resolve the deepest existing ancestor and rejoin the
	// final segment so escapes via a symlinked parent are still revealed.
	if resolved, err := filepath.EvalSymlinks(candidate); err == nil {
		candidate = resolved
	} else {
		parent := filepath.Dir(candidate)
		if resolvedParent, err2 := filepath.EvalSymlinks(parent); err2 == nil {
			candidate = filepath.Join(resolvedParent, filepath.Base(candidate))
		}
	}

	// Boundary check via filepath.Rel, robust against partial prefix matches.
	rel, err := filepath.Rel(w.root, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", ToolError{Code: "ERR_PATH_OUTSIDE_WORKSPACE", Message: "requested path resolves outside the workspace root"}
	}

	// Deny session bookkeeping and VCS internals.
	relSlash := filepath.ToSlash(rel)
	for _, denied := range deniedDirs {
		if relSlash == denied || strings.HasPrefix(relSlash, denied+"/") {
			return "", ToolError{Code: "ERR_DENIED_PATH", Message: fmt.Sprintf("access under %s/ is not allowed", denied)}
		}
	}

	return candidate, nil
}

// deniedDirs are workspace subtrees tools may never touch.
var deniedDirs = []string{".git", ".sage"}

// ReadFile reads a file addressed by a relative path under the root.
func (w *Workspace) ReadFile(relPath string) (string, error) {
	absPath, err := w.Resolve(relPath)
	if err != nil {
		return "", err
	}

	fi, err := os.Stat(absPath)
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return "", ToolError{Code: "ERR_NOT_A_FILE", Message: "path is a directory"}
	}

	b, err := os.ReadFile(absPath)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteFile writes content to a file addressed by a relative path under the
// root, creating parent directories as needed.
func (w *Workspace) WriteFile(relPath, content string) error {
	absPath, err := w.Resolve(relPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(absPath, []byte(content), 0o644)
}

// ListDir lists non-recursive entries for a relative directory path under the
// root. Directory names are suffixed with "/".
func (w *Workspace) ListDir(relDir string) ([]string, error) {
	if relDir == "" {
		relDir = "."
	}
	absDir, err := w.Resolve(relDir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return names, nil
}
