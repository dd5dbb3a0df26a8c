package output

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	cfind "github.com/otuschhoff/cfind"
	"github.com/otuschhoff/cfind/pkg/find"
)

func testSummary() *find.Summary {
	return &find.Summary{
		Roots:        2,
		Dirs:         7,
		Entries:      40,
		Skipped:      1,
		Matched:      12,
		MatchedBytes: 1536,
		MatchedByKind: map[cfind.Kind]int64{
			cfind.KindRegular:   10,
			cfind.KindDirectory: 2,
		},
		Failed: 3,
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		noHeader bool
	}{
		{"default", "table", false},
		{"json", "json", false},
		{"csv no header", "csv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormatter(tt.format, tt.noHeader)

			if f.format != tt.format {
				t.Errorf("format mismatch: got %s, want %s", f.format, tt.format)
			}
			if f.noHeader != tt.noHeader {
				t.Errorf("noHeader mismatch: got %v, want %v", f.noHeader, tt.noHeader)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{"bytes", 512, "512 B"},
		{"kilobytes", 1024, "1.0 KB"},
		{"megabytes", 1024 * 1024, "1.0 MB"},
		{"gigabytes", 1024 * 1024 * 1024, "1.0 GB"},
		{"zero", 0, "0 B"},
		{"1.5 KB", 1536, "1.5 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatBytes(tt.bytes)
			if result != tt.expected {
				t.Errorf("format mismatch: got %s, want %s", result, tt.expected)
			}
		})
	}
}

func TestFormatSummaryTable(t *testing.T) {
	out := NewFormatter("table", false).Format(testSummary())

	for _, want := range []string{"METRIC", "Roots", "Matched regular", "Matched directory", "Failed", "1.5 KB"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatSummaryTableNoHeader(t *testing.T) {
	out := NewFormatter("table", true).Format(testSummary())

	if strings.Contains(out, "METRIC") {
		t.Errorf("header should be omitted:\n%s", out)
	}
	if !strings.Contains(out, "Entries") {
		t.Errorf("rows should still be rendered:\n%s", out)
	}
}

func TestFormatSummaryJSON(t *testing.T) {
	out := NewFormatter("json", false).Format(testSummary())

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if decoded["matched"] != float64(12) {
		t.Errorf("matched: got %v, want 12", decoded["matched"])
	}
	byKind, ok := decoded["matchedByKind"].(map[string]interface{})
	if !ok {
		t.Fatalf("matchedByKind missing or wrong type: %v", decoded["matchedByKind"])
	}
	if byKind["regular"] != float64(10) {
		t.Errorf("matchedByKind.regular: got %v, want 10", byKind["regular"])
	}
}

func TestFormatSummaryCSV(t *testing.T) {
	out := NewFormatter("csv", false).Format(testSummary())
	lines := strings.Split(strings.TrimSpace(out), "\n")

	if lines[0] != "Metric,Value" {
		t.Errorf("header: got %q", lines[0])
	}
	if lines[1] != "Roots,2" {
		t.Errorf("first row: got %q", lines[1])
	}
	if lines[len(lines)-1] != "Failed,3" {
		t.Errorf("last row: got %q", lines[len(lines)-1])
	}

	out = NewFormatter("csv", true).Format(testSummary())
	if strings.HasPrefix(out, "Metric") {
		t.Errorf("csv header should be omitted:\n%s", out)
	}
}

func TestUsage(t *testing.T) {
	out := Usage("cfind")

	if !strings.HasPrefix(out, "Usage: cfind [PATH...] [EXPRESSION]") {
		t.Errorf("unexpected first line:\n%s", out)
	}
	for _, want := range []string{"-name PATTERN", "-iname", "-type", "-size", "-mtime", "-print0", "-delete", "-ls", "-maxdepth N", "--version"} {
		if !strings.Contains(out, want) {
			t.Errorf("usage missing %q", want)
		}
	}
}

func TestPermString(t *testing.T) {
	tests := []struct {
		name     string
		kind     cfind.Kind
		mode     os.FileMode
		expected string
	}{
		{"regular 644", cfind.KindRegular, 0o644, "-rw-r--r--"},
		{"dir 755", cfind.KindDirectory, os.ModeDir | 0o755, "drwxr-xr-x"},
		{"symlink", cfind.KindSymlink, os.ModeSymlink | 0o777, "lrwxrwxrwx"},
		{"fifo", cfind.KindFIFO, os.ModeNamedPipe | 0o600, "prw-------"},
		{"setuid exec", cfind.KindRegular, os.ModeSetuid | 0o755, "-rwsr-xr-x"},
		{"setuid no exec", cfind.KindRegular, os.ModeSetuid | 0o644, "-rwSr--r--"},
		{"setgid", cfind.KindDirectory, os.ModeDir | os.ModeSetgid | 0o775, "drwxrwsr-x"},
		{"sticky", cfind.KindDirectory, os.ModeDir | os.ModeSticky | 0o777, "drwxrwxrwt"},
		{"sticky no exec", cfind.KindDirectory, os.ModeDir | os.ModeSticky | 0o776, "drwxrwxrwT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := permString(&cfind.Entry{Kind: tt.kind, Mode: tt.mode})
			if got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestLsTime(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)

	recent := time.Date(2024, time.June, 3, 9, 5, 0, 0, time.Local)
	if got := lsTime(recent, now); got != "Jun  3 09:05" {
		t.Errorf("recent: got %q", got)
	}

	old := time.Date(2023, time.January, 20, 9, 5, 0, 0, time.Local)
	if got := lsTime(old, now); got != "Jan 20  2023" {
		t.Errorf("old: got %q", got)
	}

	future := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.Local)
	if got := lsTime(future, now); got != "Jul  1  2024" {
		t.Errorf("future: got %q", got)
	}
}

func TestLsLine(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)
	entry := &cfind.Entry{
		Path:    "./dir1/file2.log",
		Kind:    cfind.KindRegular,
		Mode:    0o644,
		Size:    5,
		Blocks:  8,
		Inode:   1234,
		Links:   1,
		ModTime: time.Date(2024, time.June, 3, 9, 5, 0, 0, time.Local),
	}

	got := LsLine(entry, "alice", "staff", now)
	want := "  1234    4 -rw-r--r--   1 alice    staff           5 Jun  3 09:05 ./dir1/file2.log"
	if got != want {
		t.Errorf("ls line mismatch:\n got %q\nwant %q", got, want)
	}
}
