package format

import (
	"fmt"
	"strings"
)

// DiffOptions controls diff generation.
type DiffOptions struct {
	Context int // Number of context lines around each change
}

// DefaultDiffOptions returns default diff options.
func DefaultDiffOptions() DiffOptions {
	return DiffOptions{Context: 3}
}

// DiffResult represents the result of a diff operation.
type DiffResult struct {
	Hunks []Hunk
	Stats DiffStat
}

// HasChanges reports whether the inputs differ.
func (r *DiffResult) HasChanges() bool {
	return len(r.Hunks) > 0
}

// Hunk represents a contiguous block of changes with its context.
type Hunk struct {
	Lines         []Line
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
}

// Header returns the unified diff range line of the hunk.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// Line represents a single line in a diff.
type Line struct {
	Content string
	Type    LineType
}

// LineType represents the type of a diff line.
type LineType int

const (
	LineTypeContext LineType = iota // Unchanged context line
	LineTypeAdded                   // Added line (+)
	LineTypeRemoved                 // Removed line (-)
)

func (t LineType) prefix() string {
	switch t {
	case LineTypeAdded:
		return "+"
	case LineTypeRemoved:
		return "-"
	default:
		return " "
	}
}

// DiffStat contains statistics about changes.
type DiffStat struct {
	LinesAdded   int
	LinesRemoved int
}

// Diff compares original and modified line by line using a longest common
// subsequence and groups the edits into hunks.
func Diff(original, modified string, opts DiffOptions) *DiffResult {
	edits := lineEdits(splitLines(original), splitLines(modified))
	result := &DiffResult{Hunks: groupHunks(edits, opts.Context)}
	for _, e := range edits {
		switch e.Type {
		case LineTypeAdded:
			result.Stats.LinesAdded++
		case LineTypeRemoved:
			result.Stats.LinesRemoved++
		}
	}
	return result
}

// Unified renders r as a unified diff between two versions of filename.
func (r *DiffResult) Unified(filename string) string {
	if !r.HasChanges() {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\t(original)\n", filename)
	fmt.Fprintf(&sb, "+++ %s\t(formatted)\n", filename)
	for _, h := range r.Hunks {
		sb.WriteString(h.Header())
		sb.WriteByte('\n')
		for _, ln := range h.Lines {
			sb.WriteString(ln.Type.prefix())
			sb.WriteString(ln.Content)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// edit is one line of the edit script with its 1-based line numbers.
type edit struct {
	Line
	orig, mod int
}

func lineEdits(a, b []string) []edit {
	// lcs[i][j] is the length of the longest common subsequence of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	var edits []edit
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			edits = append(edits, edit{Line{a[i], LineTypeContext}, i + 1, j + 1})
			i++
			j++
		case i < len(a) && (j == len(b) || lcs[i+1][j] >= lcs[i][j+1]):
			edits = append(edits, edit{Line{a[i], LineTypeRemoved}, i + 1, j + 1})
			i++
		default:
			edits = append(edits, edit{Line{b[j], LineTypeAdded}, i + 1, j + 1})
			j++
		}
	}
	return edits
}

// groupHunks cuts the edit script into hunks, keeping up to context
// unchanged lines around each change and merging hunks whose context overlaps.
func groupHunks(edits []edit, context int) []Hunk {
	var changed []int
	for i, e := range edits {
		if e.Type != LineTypeContext {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	var hunks []Hunk
	start := max(0, changed[0]-context)
	end := min(len(edits), changed[0]+context+1)
	for _, c := range changed[1:] {
		if c-context <= end {
			end = min(len(edits), c+context+1)
			continue
		}
		hunks = append(hunks, makeHunk(edits[start:end]))
		start, end = c-context, min(len(edits), c+context+1)
	}
	return append(hunks, makeHunk(edits[start:end]))
}

func makeHunk(edits []edit) Hunk {
	h := Hunk{OriginalStart: edits[0].orig, ModifiedStart: edits[0].mod}
	for _, e := range edits {
		h.Lines = append(h.Lines, e.Line)
		if e.Type != LineTypeAdded {
			h.OriginalCount++
		}
		if e.Type != LineTypeRemoved {
			h.ModifiedCount++
		}
	}
	return h
}

// SourceWithDiff formats src and returns the formatted text together with a
// unified diff against the input, empty when nothing changed.
func SourceWithDiff(filename, src string, opts Options, diffOpts DiffOptions) (formatted, diff string, err error) {
	formatted, err = Source(filename, src, opts)
	if err != nil {
		return "", "", err
	}
	return formatted, unifiedDiff(filename, src, formatted, diffOpts), nil
}

// TextWithDiff is SourceWithDiff for source that does not parse: only the
// whitespace cleanup of FormatText is applied.
func TextWithDiff(filename, src string, opts Options, diffOpts DiffOptions) (formatted, diff string) {
	formatted = FormatText(src, opts)
	return formatted, unifiedDiff(filename, src, formatted, diffOpts)
}

func unifiedDiff(filename, original, formatted string, opts DiffOptions) string {
	if formatted == original {
		return ""
	}
	return Diff(original, formatted, opts).Unified(filename)
}
