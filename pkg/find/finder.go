// Package find drives a search: it walks each root path, evaluates the
// expression against every in-range entry and applies the action to matches.
//
// Failures are contained to the entry, directory or root they concern. Entries
// whose metadata cannot be captured are skipped silently; unreadable
// directories, unwalkable roots and failed actions are reported and counted,
// and the walk carries on.
package find

import (
	"errors"
	"io/fs"
	"os"

	cfind "github.com/otuschhoff/cfind"
)

// Predicate decides whether an entry matches.
type Predicate interface {
	Match(entry *cfind.Entry) bool
}

// Action is applied to each matching entry.
type Action interface {
	Apply(entry *cfind.Entry) error
}

// Logger receives failure reports and debug traces.
type Logger interface {
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// Summary holds the counters of one run.
type Summary struct {
	Roots         int64                // Root paths processed
	Dirs          int64                // Directories read
	Entries       int64                // Entries whose metadata was captured
	Skipped       int64                // Entries skipped because lstat failed
	Matched       int64                // Entries the expression matched
	MatchedBytes  int64                // Total size of matched entries
	MatchedByKind map[cfind.Kind]int64 // Kind -> matched count
	Failed        int64                // Roots, directories and actions that failed
}

// Finder applies one expression and one action over a list of root paths.
type Finder struct {
	paths     []string     // Root paths, walked in order
	predicate Predicate    // Expression evaluated per entry
	action    Action       // Applied to matches
	bounds    cfind.Bounds // Depth limits shared by all roots
	logger    Logger
	summary   *Summary
}

// NewFinder creates a Finder. An empty path list means the current directory.
// A nil logger discards reports.
func NewFinder(paths []string, predicate Predicate, action Action, bounds cfind.Bounds, logger Logger) *Finder {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &Finder{
		paths:     paths,
		predicate: predicate,
		action:    action,
		bounds:    bounds,
		logger:    logger,
		summary: &Summary{
			MatchedByKind: make(map[cfind.Kind]int64),
		},
	}
}

// Run walks every root path in order and returns the counters of the run.
// Summary.Failed is non-zero when anything had to be reported.
func (f *Finder) Run() *Summary {
	for _, root := range f.paths {
		f.walkPath(root)
	}
	return f.summary
}

// walkPath walks a single root.
func (f *Finder) walkPath(root string) {
	f.summary.Roots++

	callbacks := cfind.Callbacks{
		OnReadDir: func(relPath string, entries []os.DirEntry, err error) {
			if err == nil {
				f.summary.Dirs++
				return
			}
			// The root's own failure comes back from Run.
			if relPath == "" {
				return
			}
			path := cfind.JoinPath(root, relPath)
			// Removed after it was listed, typically by -delete.
			if errors.Is(err, fs.ErrNotExist) {
				f.logger.Debugf("directory vanished: %s", path)
				return
			}
			f.summary.Failed++
			f.logger.Errorf("'%s': %v", path, cause(err))
		},
		OnLstat: func(relPath string, entry *cfind.Entry, err error) {
			if err != nil {
				f.summary.Skipped++
				f.logger.Debugf("skipping %s: %v", cfind.JoinPath(root, relPath), cause(err))
				return
			}
			f.summary.Entries++
		},
		OnEntry: func(entry *cfind.Entry) {
			if !f.predicate.Match(entry) {
				return
			}

			f.summary.Matched++
			f.summary.MatchedBytes += entry.Size
			f.summary.MatchedByKind[entry.Kind]++

			if err := f.action.Apply(entry); err != nil {
				f.summary.Failed++
				f.logger.Errorf("%v", err)
			}
		},
	}

	walker := cfind.NewWalker(root, f.bounds, callbacks)
	if err := walker.Run(); err != nil {
		f.summary.Failed++
		f.logger.Errorf("'%s': %v", root, cause(err))
	}
}

// cause strips path wrappers so messages name the path only once.
func cause(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}

type nopLogger struct{}

func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Debugf(string, ...interface{}) {}
