package cfind

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// Kind is the type discriminant of a filesystem entry, derived from its mode bits.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindRegular
	KindDirectory
	KindSymlink
	KindBlockDevice
	KindCharDevice
	KindFIFO
	KindSocket
)

var kindLetters = map[Kind]string{
	KindRegular:     "f",
	KindDirectory:   "d",
	KindSymlink:     "l",
	KindBlockDevice: "b",
	KindCharDevice:  "c",
	KindFIFO:        "p",
	KindSocket:      "s",
}

// KindFromLetter maps a find-style type letter (f, d, l, b, c, p, s) to a Kind.
func KindFromLetter(letter string) (Kind, bool) {
	for k, l := range kindLetters {
		if l == letter {
			return k, true
		}
	}
	return KindUnknown, false
}

// Letter returns the find-style type letter, or "?" for an unknown kind.
func (k Kind) Letter() string {
	if l, ok := kindLetters[k]; ok {
		return l
	}
	return "?"
}

func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	case KindBlockDevice:
		return "block device"
	case KindCharDevice:
		return "char device"
	case KindFIFO:
		return "fifo"
	case KindSocket:
		return "socket"
	default:
		return "unknown"
	}
}

// kindFromMode classifies raw st_mode bits.
func kindFromMode(mode uint32) Kind {
	switch mode & unix.S_IFMT {
	case unix.S_IFREG:
		return KindRegular
	case unix.S_IFDIR:
		return KindDirectory
	case unix.S_IFLNK:
		return KindSymlink
	case unix.S_IFBLK:
		return KindBlockDevice
	case unix.S_IFCHR:
		return KindCharDevice
	case unix.S_IFIFO:
		return KindFIFO
	case unix.S_IFSOCK:
		return KindSocket
	default:
		return KindUnknown
	}
}

// Entry is a discovered path plus the metadata snapshot taken when it was found.
// The walker fills in Depth before reporting an Entry; after that it is
// never modified.
type Entry struct {
	Path       string      // Root joined with the path relative to it
	Name       string      // Base name
	Depth      int         // Depth of the containing directory below the root
	Kind       Kind        // Type discriminant
	Mode       os.FileMode // Type and permission bits
	Size       int64       // Size in bytes
	Blocks     int64       // Allocated 512-byte blocks
	Inode      uint64      // Inode number
	Links      uint64      // Hard link count
	UID        uint32      // User ID of the owner
	GID        uint32      // Group ID of the owner
	ModTime    time.Time   // Last modification time
	AccessTime time.Time   // Last access time
	ChangeTime time.Time   // Last status change time
}

// Lstat captures the metadata of path without following a trailing symlink.
func Lstat(path string) (*Entry, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return nil, &os.PathError{Op: "lstat", Path: path, Err: err}
	}

	mode := uint32(st.Mode)
	kind := kindFromMode(mode)

	return &Entry{
		Path:       path,
		Name:       baseName(path),
		Kind:       kind,
		Mode:       fileMode(kind, mode),
		Size:       st.Size,
		Blocks:     int64(st.Blocks),
		Inode:      uint64(st.Ino),
		Links:      uint64(st.Nlink),
		UID:        st.Uid,
		GID:        st.Gid,
		ModTime:    time.Unix(st.Mtim.Unix()),
		AccessTime: time.Unix(st.Atim.Unix()),
		ChangeTime: time.Unix(st.Ctim.Unix()),
	}, nil
}

// fileMode converts raw st_mode bits into an os.FileMode.
func fileMode(kind Kind, mode uint32) os.FileMode {
	m := os.FileMode(mode & 0o777)

	switch kind {
	case KindDirectory:
		m |= os.ModeDir
	case KindSymlink:
		m |= os.ModeSymlink
	case KindBlockDevice:
		m |= os.ModeDevice
	case KindCharDevice:
		m |= os.ModeDevice | os.ModeCharDevice
	case KindFIFO:
		m |= os.ModeNamedPipe
	case KindSocket:
		m |= os.ModeSocket
	}

	if mode&unix.S_ISUID != 0 {
		m |= os.ModeSetuid
	}
	if mode&unix.S_ISGID != 0 {
		m |= os.ModeSetgid
	}
	if mode&unix.S_ISVTX != 0 {
		m |= os.ModeSticky
	}
	return m
}

// baseName returns the last element of path, ignoring trailing separators.
func baseName(path string) string {
	end := len(path)
	for end > 1 && os.IsPathSeparator(path[end-1]) {
		end--
	}
	if end == 1 && os.IsPathSeparator(path[0]) {
		return path[:1]
	}
	for i := end - 1; i >= 0; i-- {
		if os.IsPathSeparator(path[i]) {
			return path[i+1 : end]
		}
	}
	return path[:end]
}
