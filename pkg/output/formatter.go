// Package output renders what cfind shows besides plain paths: the usage
// table for --help, the ls-style lines of -ls and the run summary.
//
// The summary supports three formats: "table" (go-pretty), "json" and "csv".
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	cfind "github.com/otuschhoff/cfind"
	"github.com/otuschhoff/cfind/pkg/find"
)

// Formats lists the accepted summary formats.
var Formats = []string{"table", "json", "csv"}

// Formatter renders a run summary.
type Formatter struct {
	format   string // "table", "json", "csv"
	noHeader bool   // Omit header row in table and csv output
}

// NewFormatter creates a new Formatter. Unknown formats render as a table.
func NewFormatter(format string, noHeader bool) *Formatter {
	return &Formatter{
		format:   format,
		noHeader: noHeader,
	}
}

// Format converts a summary to the Formatter's format.
func (f *Formatter) Format(sum *find.Summary) string {
	switch f.format {
	case "json":
		return f.toJSON(summaryJSON(sum)) + "\n"
	case "csv":
		return f.toCSV([]string{"Metric", "Value"}, summaryRows(sum))
	default:
		return f.summaryTable(sum)
	}
}

// summaryRows lists the summary metrics in display order.
func summaryRows(sum *find.Summary) []map[string]interface{} {
	rows := []map[string]interface{}{
		{"Metric": "Roots", "Value": sum.Roots},
		{"Metric": "Dirs", "Value": sum.Dirs},
		{"Metric": "Entries", "Value": sum.Entries},
		{"Metric": "Skipped", "Value": sum.Skipped},
		{"Metric": "Matched", "Value": sum.Matched},
		{"Metric": "Matched Size", "Value": formatBytes(sum.MatchedBytes)},
	}
	for _, kind := range sortedKinds(sum.MatchedByKind) {
		rows = append(rows, map[string]interface{}{
			"Metric": "Matched " + kind.String(),
			"Value":  sum.MatchedByKind[kind],
		})
	}
	rows = append(rows, map[string]interface{}{"Metric": "Failed", "Value": sum.Failed})
	return rows
}

func summaryJSON(sum *find.Summary) map[string]interface{} {
	byKind := make(map[string]int64, len(sum.MatchedByKind))
	for kind, n := range sum.MatchedByKind {
		byKind[kind.String()] = n
	}
	return map[string]interface{}{
		"roots":         sum.Roots,
		"dirs":          sum.Dirs,
		"entries":       sum.Entries,
		"skipped":       sum.Skipped,
		"matched":       sum.Matched,
		"matchedBytes":  sum.MatchedBytes,
		"matchedByKind": byKind,
		"failed":        sum.Failed,
	}
}

func sortedKinds(m map[cfind.Kind]int64) []cfind.Kind {
	kinds := make([]cfind.Kind, 0, len(m))
	for kind := range m {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// summaryTable creates a formatted summary table
func (f *Formatter) summaryTable(sum *find.Summary) string {
	t := table.NewWriter()

	if !f.noHeader {
		t.AppendHeader(table.Row{"Metric", "Value"})
	}
	for _, row := range summaryRows(sum) {
		t.AppendRow(table.Row{row["Metric"], row["Value"]})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})

	t.SetStyle(table.StyleColoredDark)
	return fmt.Sprintf("%s\n", t.Render())
}

// toJSON converts data to a JSON string using indented formatting.
func (f *Formatter) toJSON(data interface{}) string {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error: %v\n", err)
	}
	return string(b)
}

// toCSV converts tabular data to CSV format.
// Headers are written first unless noHeader is set, followed by rows with
// values in header column order.
func (f *Formatter) toCSV(headers []string, data []map[string]interface{}) string {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if !f.noHeader {
		writer.Write(headers)
	}

	for _, row := range data {
		var values []string
		for _, header := range headers {
			values = append(values, fmt.Sprintf("%v", row[header]))
		}
		writer.Write(values)
	}

	writer.Flush()
	return buf.String()
}

// formatBytes formats bytes to a human-readable string with binary unit suffixes.
// Examples: "512 B", "1.5 KB", "2.3 MB"
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

// usageSections groups the primaries shown by --help.
var usageSections = []struct {
	title string
	rows  [][2]string
}{
	{"Tests", [][2]string{
		{"-name PATTERN", "base name matches shell glob PATTERN"},
		{"-iname PATTERN", "like -name, ignoring case"},
		{"-type {f|d|l|b|c|p|s}", "entry is of the given type"},
		{"-user NAME_OR_UID", "entry is owned by the user"},
		{"-group NAME_OR_GID", "entry belongs to the group"},
		{"-size [+-]N[bcwkMG]", "size is more than (+), less than (-) or exactly N units"},
		{"-mtime [+-]N", "modified N days ago"},
		{"-atime [+-]N", "accessed N days ago"},
		{"-ctime [+-]N", "status changed N days ago"},
		{"-true, -false", "always / never match"},
	}},
	{"Operators", [][2]string{
		{"! EXPR, -not EXPR", "negate the next term"},
		{"EXPR -a EXPR, EXPR -and EXPR", "both match (implicit between adjacent terms)"},
		{"EXPR -o EXPR, EXPR -or EXPR", "either matches; binds looser than -a"},
		{"( )", "accepted and ignored"},
	}},
	{"Actions", [][2]string{
		{"-print", "print the path followed by a newline (default)"},
		{"-print0", "print the path followed by a NUL byte"},
		{"-ls", "list the entry in ls -dils format"},
		{"-delete", "remove files and empty directories"},
	}},
	{"Options", [][2]string{
		{"-mindepth N", "skip entries of directories shallower than N"},
		{"-maxdepth N", "do not descend below depth N"},
		{"--help", "show this help"},
		{"--version", "show the version"},
	}},
}

// Usage renders the --help text for program.
func Usage(program string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Usage: %s [PATH...] [EXPRESSION]\n\n", program)
	sb.WriteString("Search the directory trees below each PATH (default \".\") for entries\n")
	sb.WriteString("matching EXPRESSION and apply the action to every match.\n\n")

	t := table.NewWriter()
	for i, section := range usageSections {
		if i > 0 {
			t.AppendSeparator()
		}
		t.AppendRow(table.Row{section.title + ":", ""})
		for _, row := range section.rows {
			t.AppendRow(table.Row{"  " + row[0], row[1]})
		}
	}
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	sb.WriteString(t.Render())
	sb.WriteString("\n\nEnvironment: CFIND_DEBUG, CFIND_STATS, CFIND_STATS_FORMAT (table|json|csv)\n")
	return sb.String()
}

// LsLine renders entry in the layout of `ls -dils`:
// inode, 1K blocks, mode, links, owner, group, size, mtime, path.
// Timestamps within six months of now show the time of day, older or
// future ones show the year. Symlinks are not resolved.
func LsLine(e *cfind.Entry, owner, group string, now time.Time) string {
	fields := []string{
		text.AlignRight.Apply(strconv.FormatUint(e.Inode, 10), 6),
		text.AlignRight.Apply(strconv.FormatInt((e.Blocks+1)/2, 10), 4),
		permString(e),
		text.AlignRight.Apply(strconv.FormatUint(e.Links, 10), 3),
		text.AlignLeft.Apply(owner, 8),
		text.AlignLeft.Apply(group, 8),
		text.AlignRight.Apply(strconv.FormatInt(e.Size, 10), 8),
		lsTime(e.ModTime, now),
		e.Path,
	}
	return strings.Join(fields, " ")
}

// lsTime formats a timestamp the way ls does.
func lsTime(ts, now time.Time) string {
	const halfYear = 182 * 24 * time.Hour
	if ts.After(now) || now.Sub(ts) > halfYear {
		return ts.Format("Jan _2  2006")
	}
	return ts.Format("Jan _2 15:04")
}

// permString renders the type letter and the nine permission characters,
// with setuid, setgid and sticky folded into the execute positions.
func permString(e *cfind.Entry) string {
	b := []byte("----------")
	if e.Kind != cfind.KindRegular {
		b[0] = e.Kind.Letter()[0]
		if b[0] == 'f' || b[0] == '?' {
			b[0] = '-'
		}
	}

	const rwx = "rwxrwxrwx"
	perm := e.Mode.Perm()
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			b[i+1] = rwx[i]
		}
	}

	special := func(pos int, set bool, lower, upper byte) {
		if !set {
			return
		}
		if b[pos] == 'x' {
			b[pos] = lower
		} else {
			b[pos] = upper
		}
	}
	special(3, e.Mode&os.ModeSetuid != 0, 's', 'S')
	special(6, e.Mode&os.ModeSetgid != 0, 's', 'S')
	special(9, e.Mode&os.ModeSticky != 0, 't', 'T')

	return string(b)
}
