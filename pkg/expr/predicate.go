// Package expr builds the boolean expression a search evaluates for every
// entry: the atomic tests, their AND/OR/NOT composition and the parser
// that turns find-style arguments into a predicate tree and an action.
//
// Predicates are pure. A tree is built once before the walk starts and is
// only read afterwards, so it may be shared between goroutines. Every
// argument is validated when its predicate is constructed; Match never
// fails.
package expr

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	cfind "github.com/otuschhoff/cfind"
)

// Predicate is a boolean test over an entry.
type Predicate interface {
	Match(entry *cfind.Entry) bool
	// String renders the predicate in find syntax for debug output.
	String() string
}

// Name matches the entry's base name against a shell glob (-name, -iname).
type Name struct {
	pattern string // as given, lower-cased when folding
	glob    string // pattern in filepath.Match syntax
	fold    bool
}

// NewName validates pattern and returns a Name predicate. With fold set the
// match ignores case.
func NewName(pattern string, fold bool) (*Name, error) {
	if fold {
		pattern = strings.ToLower(pattern)
	}
	glob := shellGlob(pattern)
	if _, err := filepath.Match(glob, ""); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
	}
	return &Name{pattern: pattern, glob: glob, fold: fold}, nil
}

// shellGlob rewrites negated classes from the shell form "[!...]" to the
// "[^...]" form filepath.Match understands. A "]" right after the opening
// bracket is a member of the class.
func shellGlob(pattern string) string {
	var sb strings.Builder
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			sb.WriteByte(c)
			i++
			sb.WriteByte(pattern[i])
			continue
		case !inClass && c == '[':
			inClass = true
			sb.WriteByte(c)
			if i+1 < len(pattern) && pattern[i+1] == '!' {
				sb.WriteByte('^')
				i++
			}
			if i+1 < len(pattern) && pattern[i+1] == ']' {
				sb.WriteString(`\]`)
				i++
			}
			continue
		case inClass && c == ']':
			inClass = false
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func (n *Name) Match(entry *cfind.Entry) bool {
	name := entry.Name
	if n.fold {
		name = strings.ToLower(name)
	}
	matched, _ := filepath.Match(n.glob, name)
	return matched
}

func (n *Name) String() string {
	if n.fold {
		return "-iname " + strconv.Quote(n.pattern)
	}
	return "-name " + strconv.Quote(n.pattern)
}

// TypeIs matches entries of one kind (-type).
type TypeIs struct {
	Kind cfind.Kind
}

// NewTypeIs parses a find type letter.
func NewTypeIs(letter string) (*TypeIs, error) {
	kind, ok := cfind.KindFromLetter(letter)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, letter)
	}
	return &TypeIs{Kind: kind}, nil
}

func (p *TypeIs) Match(entry *cfind.Entry) bool {
	return entry.Kind == p.Kind
}

func (p *TypeIs) String() string {
	return "-type " + p.Kind.Letter()
}

// OwnedByUser matches entries whose owner is UID (-user).
type OwnedByUser struct {
	UID uint32
}

func (p *OwnedByUser) Match(entry *cfind.Entry) bool {
	return entry.UID == p.UID
}

func (p *OwnedByUser) String() string {
	return "-user " + strconv.FormatUint(uint64(p.UID), 10)
}

// OwnedByGroup matches entries whose group is GID (-group).
type OwnedByGroup struct {
	GID uint32
}

func (p *OwnedByGroup) Match(entry *cfind.Entry) bool {
	return entry.GID == p.GID
}

func (p *OwnedByGroup) String() string {
	return "-group " + strconv.FormatUint(uint64(p.GID), 10)
}

// SizeCompares compares the entry size in bytes (-size).
type SizeCompares struct {
	Cmp Comparison
}

func (p *SizeCompares) Match(entry *cfind.Entry) bool {
	return p.Cmp.Compare(entry.Size)
}

func (p *SizeCompares) String() string {
	return "-size " + p.Cmp.String() + "c"
}

// TimeField selects the timestamp an age test reads.
type TimeField int

const (
	Modified      TimeField = iota // -mtime
	Accessed                       // -atime
	StatusChanged                  // -ctime
)

func (f TimeField) flag() string {
	switch f {
	case Accessed:
		return "-atime"
	case StatusChanged:
		return "-ctime"
	default:
		return "-mtime"
	}
}

func (f TimeField) of(entry *cfind.Entry) time.Time {
	switch f {
	case Accessed:
		return entry.AccessTime
	case StatusChanged:
		return entry.ChangeTime
	default:
		return entry.ModTime
	}
}

// AgeCompares compares the age of a timestamp in whole days, rounded down,
// measured from a fixed reference time.
type AgeCompares struct {
	Field TimeField
	Cmp   Comparison
	Now   time.Time
}

func (p *AgeCompares) Match(entry *cfind.Entry) bool {
	return p.Cmp.Compare(ageDays(p.Now, p.Field.of(entry)))
}

func (p *AgeCompares) String() string {
	return p.Field.flag() + " " + p.Cmp.String()
}

// ageDays returns floor((now - ts) / 24h). Future timestamps give negative ages.
func ageDays(now, ts time.Time) int64 {
	return floorDiv(int64(now.Sub(ts)), int64(24*time.Hour))
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Constant always returns its value (-true, -false).
type Constant bool

func (c Constant) Match(*cfind.Entry) bool {
	return bool(c)
}

func (c Constant) String() string {
	if c {
		return "-true"
	}
	return "-false"
}
