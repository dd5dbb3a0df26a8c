// Package action implements the side effects applied to entries that match
// the search expression.
//
// Exactly one action is active per run. Every action writes or deletes
// synchronously when it is applied; nothing is buffered between entries.
package action

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	cfind "github.com/otuschhoff/cfind"
)

// Kind selects the action of a run.
type Kind int

const (
	KindPrint  Kind = iota // -print (default)
	KindPrint0             // -print0
	KindDelete             // -delete
	KindList               // -ls
)

func (k Kind) String() string {
	switch k {
	case KindPrint0:
		return "-print0"
	case KindDelete:
		return "-delete"
	case KindList:
		return "-ls"
	default:
		return "-print"
	}
}

// Action is applied to every matched entry.
type Action interface {
	Apply(entry *cfind.Entry) error
}

// Options carry what the actions need from the process.
type Options struct {
	Stdout  io.Writer // Destination of printed paths (default os.Stdout)
	Deleter Deleter   // Filesystem calls for -delete (default OSDeleter)
	Now     time.Time // Reference time for -ls timestamps (default time.Now())
}

// New returns the action for kind.
func New(kind Kind, opts Options) Action {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Deleter == nil {
		opts.Deleter = OSDeleter{}
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	switch kind {
	case KindPrint0:
		return &Print{w: opts.Stdout, terminator: "\x00"}
	case KindDelete:
		return &Delete{deleter: opts.Deleter}
	case KindList:
		return NewList(opts.Stdout, opts.Now)
	default:
		return &Print{w: opts.Stdout, terminator: "\n"}
	}
}

// Print writes the entry path followed by a terminator: a newline for
// -print, a NUL byte for -print0.
type Print struct {
	w          io.Writer
	terminator string
}

func (p *Print) Apply(entry *cfind.Entry) error {
	if _, err := io.WriteString(p.w, entry.Path+p.terminator); err != nil {
		return fmt.Errorf("write %s: %w", entry.Path, err)
	}
	return nil
}

// Delete removes a matched entry. Directories are removed only when empty;
// everything else is unlinked. A failed removal is returned to the caller,
// which reports it and continues.
type Delete struct {
	deleter Deleter
}

func (d *Delete) Apply(entry *cfind.Entry) error {
	var err error
	if entry.Kind == cfind.KindDirectory {
		err = d.deleter.RemoveDir(entry.Path)
	} else {
		err = d.deleter.Remove(entry.Path)
	}
	if err == nil {
		return nil
	}

	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	return fmt.Errorf("cannot delete '%s': %w", entry.Path, err)
}
