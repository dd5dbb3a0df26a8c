package cfind

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestKindFromLetter(t *testing.T) {
	tests := []struct {
		letter string
		want   Kind
		ok     bool
	}{
		{"f", KindRegular, true},
		{"d", KindDirectory, true},
		{"l", KindSymlink, true},
		{"b", KindBlockDevice, true},
		{"c", KindCharDevice, true},
		{"p", KindFIFO, true},
		{"s", KindSocket, true},
		{"x", KindUnknown, false},
		{"", KindUnknown, false},
		{"ff", KindUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.letter, func(t *testing.T) {
			got, ok := KindFromLetter(tt.letter)
			if got != tt.want || ok != tt.ok {
				t.Errorf("KindFromLetter(%q) = %v, %v; want %v, %v", tt.letter, got, ok, tt.want, tt.ok)
			}
			if ok && got.Letter() != tt.letter {
				t.Errorf("Letter() = %q, want %q", got.Letter(), tt.letter)
			}
		})
	}
}

func TestKindFromMode(t *testing.T) {
	tests := []struct {
		name string
		mode uint32
		want Kind
	}{
		{"regular", unix.S_IFREG | 0o644, KindRegular},
		{"directory", unix.S_IFDIR | 0o755, KindDirectory},
		{"symlink", unix.S_IFLNK | 0o777, KindSymlink},
		{"block", unix.S_IFBLK, KindBlockDevice},
		{"char", unix.S_IFCHR, KindCharDevice},
		{"fifo", unix.S_IFIFO, KindFIFO},
		{"socket", unix.S_IFSOCK, KindSocket},
		{"none", 0o644, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kindFromMode(tt.mode); got != tt.want {
				t.Errorf("kindFromMode(%o) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestFileMode(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		mode uint32
		want os.FileMode
	}{
		{"regular", KindRegular, 0o644, 0o644},
		{"directory", KindDirectory, 0o755, os.ModeDir | 0o755},
		{"symlink", KindSymlink, 0o777, os.ModeSymlink | 0o777},
		{"setuid", KindRegular, unix.S_ISUID | 0o755, os.ModeSetuid | 0o755},
		{"sticky dir", KindDirectory, unix.S_ISVTX | 0o777, os.ModeDir | os.ModeSticky | 0o777},
		{"char device", KindCharDevice, 0o620, os.ModeDevice | os.ModeCharDevice | 0o620},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fileMode(tt.kind, tt.mode); got != tt.want {
				t.Errorf("fileMode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"file.txt", "file.txt"},
		{"./file.txt", "file.txt"},
		{"/a/b/c.log", "c.log"},
		{"dir/", "dir"},
		{"/", "/"},
		{"//", "/"},
		{"/tmp/", "tmp"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := baseName(tt.path); got != tt.want {
				t.Errorf("baseName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLstat(t *testing.T) {
	tmpDir := t.TempDir()

	file := filepath.Join(tmpDir, "file.txt")
	if err := os.WriteFile(file, []byte("hello"), 0o640); err != nil {
		t.Fatalf("write: %v", err)
	}
	dir := filepath.Join(tmpDir, "dir")
	if err := os.Mkdir(dir, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	link := filepath.Join(tmpDir, "dangling")
	if err := os.Symlink(filepath.Join(tmpDir, "missing"), link); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	fifo := filepath.Join(tmpDir, "pipe")
	if err := unix.Mkfifo(fifo, 0o600); err != nil {
		t.Fatalf("mkfifo: %v", err)
	}

	tests := []struct {
		name     string
		path     string
		wantKind Kind
	}{
		{"regular", file, KindRegular},
		{"directory", dir, KindDirectory},
		{"dangling symlink", link, KindSymlink},
		{"fifo", fifo, KindFIFO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := Lstat(tt.path)
			if err != nil {
				t.Fatalf("Lstat(%q): %v", tt.path, err)
			}
			if entry.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", entry.Kind, tt.wantKind)
			}
			if entry.Path != tt.path {
				t.Errorf("path = %q, want %q", entry.Path, tt.path)
			}
			if entry.Name != filepath.Base(tt.path) {
				t.Errorf("name = %q, want %q", entry.Name, filepath.Base(tt.path))
			}
			if entry.UID != uint32(os.Getuid()) {
				t.Errorf("uid = %d, want %d", entry.UID, os.Getuid())
			}
			if entry.Links == 0 {
				t.Error("link count should be at least 1")
			}
		})
	}

	entry, err := Lstat(file)
	if err != nil {
		t.Fatalf("Lstat: %v", err)
	}
	if entry.Size != 5 {
		t.Errorf("size = %d, want 5", entry.Size)
	}
	if entry.Mode.Perm() != 0o640 {
		t.Errorf("perm = %o, want 640", entry.Mode.Perm())
	}
	if time.Since(entry.ModTime) > time.Hour {
		t.Errorf("mtime %v is not recent", entry.ModTime)
	}
}

func TestLstatMissing(t *testing.T) {
	_, err := Lstat(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !os.IsNotExist(err) {
		t.Errorf("error %v should satisfy os.IsNotExist", err)
	}
}
