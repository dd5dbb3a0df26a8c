// Package cfind provides depth-bounded, top-down directory walking for a
// find-like search tool.
//
// A Walker visits the tree below a root path one directory at a time and
// hands every entry inside an in-range directory to the registered callbacks
// as an Entry snapshot. Symbolic links below the root are never followed.
//
// Basic usage:
//
//	callbacks := cfind.Callbacks{
//		OnEntry: func(entry *cfind.Entry) {
//			fmt.Println(entry.Path)
//		},
//	}
//	walker := cfind.NewWalker(".", cfind.Bounds{}, callbacks)
//	if err := walker.Run(); err != nil {
//		// Handle error
//	}
//
// All callbacks are optional. Relative paths use forward slashes (/) as separators
// and are relative to the root path passed to NewWalker.
package cfind

import (
	"fmt"
	"os"
	"strings"
)

// Bounds limits which directories have their entries reported.
//
// The depth of a directory is the number of path separators between the root
// and the directory, so the root itself has depth 0. Entries are reported for
// directories with MinDepth <= depth <= MaxDepth. A nil MaxDepth means no
// upper bound.
type Bounds struct {
	MinDepth int
	MaxDepth *int
}

// Emits reports whether entries of a directory at the given depth are reported.
func (b Bounds) Emits(depth int) bool {
	return depth >= b.MinDepth && b.Reads(depth)
}

// Reads reports whether a directory at the given depth is read at all.
func (b Bounds) Reads(depth int) bool {
	return b.MaxDepth == nil || depth <= *b.MaxDepth
}

// Callbacks define optional handlers that are invoked during the walk.
// All callbacks are optional (zero value means no callback).
//
// For every directory that is read:
//  1. OnReadDir
//  2. for each entry, if the directory is within bounds: OnLstat, then
//     OnEntry when the lstat succeeded
//  3. (subdirectories are walked afterwards)
type Callbacks struct {
	// OnReadDir is called after reading a directory, with the error if the
	// read failed.
	OnReadDir func(relPath string, entries []os.DirEntry, err error)

	// OnLstat is called after every lstat of an entry. entry is nil when err is set.
	OnLstat func(relPath string, entry *Entry, err error)

	// OnEntry is called for each in-range entry whose metadata was captured.
	OnEntry func(entry *Entry)
}

// Walker walks a directory tree depth-first, top-down.
// A Walker is not safe for concurrent use; Run should be called once.
type Walker struct {
	rootPath  string
	bounds    Bounds
	callbacks Callbacks

	// lstat captures entry metadata; replaced in tests.
	lstat func(path string) (*Entry, error)

	stack []*walkBranch
}

// walkBranch is a directory still to be read.
//
// Each branch holds a reference to its parent and its basename, allowing
// efficient computation of relative paths. The root branch has a nil parent.
type walkBranch struct {
	parent   *walkBranch
	basename string
	depth    int
}

// isRoot reports whether this branch is the root of the traversal.
func (cb *walkBranch) isRoot() bool {
	return cb.parent == nil
}

// relPath returns the relative path of this branch from the root, using forward slashes.
func (cb *walkBranch) relPath() string {
	return strings.Join(cb.relPathElems(), "/")
}

func (cb *walkBranch) relPathElems() []string {
	if cb.isRoot() {
		return []string{}
	}
	return append(cb.parent.relPathElems(), cb.basename)
}

// childRelPath returns the relative path of the named entry inside this branch.
func (cb *walkBranch) childRelPath(name string) string {
	if cb.isRoot() {
		return name
	}
	return cb.relPath() + "/" + name
}

// JoinPath appends relPath to root with exactly one separator and without
// cleaning root, so "." yields "./a" and "/" yields "/a".
func JoinPath(root, relPath string) string {
	if relPath == "" {
		return root
	}
	if strings.HasSuffix(root, "/") {
		return root + relPath
	}
	return root + "/" + relPath
}

// push adds a branch to the walk stack.
func (c *Walker) push(item *walkBranch) {
	c.stack = append(c.stack, item)
}

// pop removes and returns the last branch on the walk stack, or nil if it is empty.
func (c *Walker) pop() *walkBranch {
	if len(c.stack) == 0 {
		return nil
	}
	item := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return item
}

// NewWalker creates a new Walker for the given root path.
//
// The root path is kept as given so that reported paths start with exactly
// the text the caller supplied.
func NewWalker(rootPath string, bounds Bounds, callbacks Callbacks) *Walker {
	return &Walker{
		rootPath:  rootPath,
		bounds:    bounds,
		callbacks: callbacks,
		lstat:     Lstat,
	}
}

// Run walks the tree and blocks until it has been fully visited.
//
// It returns an error if the root path cannot be stat'd or read. Failures
// below the root do not stop the walk: unreadable directories are reported
// through OnReadDir and entries whose metadata cannot be captured through
// OnLstat, and both are otherwise skipped. A root that is not a directory
// has no entries.
func (c *Walker) Run() error {
	info, err := os.Stat(c.rootPath)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return nil
	}

	c.push(&walkBranch{})
	for branch := c.pop(); branch != nil; branch = c.pop() {
		if err := c.processBranch(branch); err != nil && branch.isRoot() {
			return err
		}
	}

	return nil
}

// processBranch reads one directory, reports its entries when it is within
// bounds and queues its subdirectories when they are within bounds.
//
// Non-directories are reported before subdirectories. Subdirectories are
// pushed in reverse so that they are popped in lexical order.
func (c *Walker) processBranch(branch *walkBranch) error {
	relPath := branch.relPath()
	absPath := JoinPath(c.rootPath, relPath)

	entries, err := os.ReadDir(absPath)
	if c.callbacks.OnReadDir != nil {
		c.callbacks.OnReadDir(relPath, entries, err)
	}
	if err != nil {
		return fmt.Errorf("readdir failed for '%s': %w", absPath, err)
	}

	var dirs []os.DirEntry
	var others []os.DirEntry
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry)
		} else {
			others = append(others, entry)
		}
	}

	if c.bounds.Emits(branch.depth) {
		for _, entry := range others {
			c.visit(branch, entry.Name())
		}
		for _, entry := range dirs {
			c.visit(branch, entry.Name())
		}
	}

	if !c.bounds.Reads(branch.depth + 1) {
		return nil
	}
	for i := len(dirs) - 1; i >= 0; i-- {
		c.push(&walkBranch{
			parent:   branch,
			basename: dirs[i].Name(),
			depth:    branch.depth + 1,
		})
	}

	return nil
}

// visit captures the metadata of one entry and reports it.
func (c *Walker) visit(branch *walkBranch, name string) {
	childRelPath := branch.childRelPath(name)

	entry, err := c.lstat(JoinPath(c.rootPath, childRelPath))
	if c.callbacks.OnLstat != nil {
		c.callbacks.OnLstat(childRelPath, entry, err)
	}
	if err != nil {
		return
	}

	entry.Depth = branch.depth
	if c.callbacks.OnEntry != nil {
		c.callbacks.OnEntry(entry)
	}
}
