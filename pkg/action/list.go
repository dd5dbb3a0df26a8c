package action

import (
	"fmt"
	"io"
	"os/user"
	"strconv"
	"time"

	cfind "github.com/otuschhoff/cfind"
	"github.com/otuschhoff/cfind/pkg/output"
)

// List writes one ls-style line per entry (-ls).
// Owner and group names are looked up once per id and cached.
type List struct {
	w      io.Writer
	now    time.Time
	users  map[uint32]string
	groups map[uint32]string
}

// NewList creates a List writing to w; now decides which timestamps count as recent.
func NewList(w io.Writer, now time.Time) *List {
	return &List{
		w:      w,
		now:    now,
		users:  make(map[uint32]string),
		groups: make(map[uint32]string),
	}
}

func (l *List) Apply(entry *cfind.Entry) error {
	line := output.LsLine(entry, l.username(entry.UID), l.groupname(entry.GID), l.now)
	if _, err := io.WriteString(l.w, line+"\n"); err != nil {
		return fmt.Errorf("write %s: %w", entry.Path, err)
	}
	return nil
}

// username resolves a UID to a login name, falling back to the number.
func (l *List) username(uid uint32) string {
	if name, ok := l.users[uid]; ok {
		return name
	}
	id := strconv.FormatUint(uint64(uid), 10)
	name := id
	if u, err := user.LookupId(id); err == nil {
		name = u.Username
	}
	l.users[uid] = name
	return name
}

// groupname resolves a GID to a group name, falling back to the number.
func (l *List) groupname(gid uint32) string {
	if name, ok := l.groups[gid]; ok {
		return name
	}
	id := strconv.FormatUint(uint64(gid), 10)
	name := id
	if g, err := user.LookupGroupId(id); err == nil {
		name = g.Name
	}
	l.groups[gid] = name
	return name
}
