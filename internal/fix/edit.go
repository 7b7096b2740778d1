// Package fix builds and applies text edits proposed by style rules.
package fix

import (
	"sort"
	"strings"

	"github.com/stylekit/jsstyle/internal/jsast"
)

// Edit replaces the half-open byte range Range of the original source with Text.
// An empty range inserts, an empty Text removes.
type Edit struct {
	Range jsast.Range
	Text  string
}

// Replace replaces the source of x with text.
func Replace(x jsast.Located, text string) Edit {
	return Edit{Range: x.Range(), Text: text}
}

// ReplaceRange replaces bytes [start, end) with text.
func ReplaceRange(start, end int, text string) Edit {
	return Edit{Range: jsast.Range{Start: start, End: end}, Text: text}
}

// InsertBefore inserts text right before x.
func InsertBefore(x jsast.Located, text string) Edit {
	start := x.Range().Start
	return ReplaceRange(start, start, text)
}

// InsertAfter inserts text right after x.
func InsertAfter(x jsast.Located, text string) Edit {
	end := x.Range().End
	return ReplaceRange(end, end, text)
}

// Remove deletes the source of x.
func Remove(x jsast.Located) Edit {
	return Replace(x, "")
}

// ReplaceBetween replaces the text strictly between a and b, typically a run
// of whitespace between two tokens.
func ReplaceBetween(a, b jsast.Located, text string) Edit {
	return ReplaceRange(a.Range().End, b.Range().Start, text)
}

// LineBreak returns a newline followed by column spaces.
func LineBreak(column int) string {
	if column < 0 {
		column = 0
	}
	return "\n" + strings.Repeat(" ", column)
}

// Swap exchanges the text of a and b, which must not overlap and a must come
// first. Whatever lies between them, delimiters and comments included, stays
// in place.
func Swap(src string, a, b jsast.Located) Edit {
	ra, rb := a.Range(), b.Range()
	var sb strings.Builder
	sb.WriteString(src[rb.Start:rb.End])
	sb.WriteString(src[ra.End:rb.Start])
	sb.WriteString(src[ra.Start:ra.End])
	return Edit{Range: jsast.Range{Start: ra.Start, End: rb.End}, Text: sb.String()}
}

// Merge combines non-overlapping edits into one edit covering all of them,
// keeping the original text between them.
func Merge(src string, edits ...Edit) Edit {
	if len(edits) == 1 {
		return edits[0]
	}
	sorted := append([]Edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Range.Start < sorted[j].Range.Start })

	start, end := sorted[0].Range.Start, sorted[0].Range.End
	var sb strings.Builder
	for i, e := range sorted {
		if i > 0 {
			sb.WriteString(src[end:e.Range.Start])
		}
		sb.WriteString(e.Text)
		end = e.Range.End
	}
	return Edit{Range: jsast.Range{Start: start, End: end}, Text: sb.String()}
}

// Overlaps reports whether two edits touch the same bytes. Two insertions at
// the same offset also overlap since their order would be ambiguous.
func Overlaps(a, b Edit) bool {
	if a.Range.Start == b.Range.Start {
		return true
	}
	return a.Range.Start < b.Range.End && b.Range.Start < a.Range.End
}

// Guard remembers the edits a rule has already emitted in a pass and refuses
// new ones that would overlap them.
type Guard struct {
	claimed []Edit
}

// Claim records e and returns true when it overlaps nothing claimed before.
func (g *Guard) Claim(e Edit) bool {
	for _, c := range g.claimed {
		if Overlaps(c, e) {
			return false
		}
	}
	g.claimed = append(g.claimed, e)
	return true
}

// Apply applies edits to src in offset order. Edits overlapping an earlier
// one are skipped. It returns the new text and the edits actually applied.
func Apply(src string, edits []Edit) (string, []Edit) {
	sorted := append([]Edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Range.Start != sorted[j].Range.Start {
			return sorted[i].Range.Start < sorted[j].Range.Start
		}
		return sorted[i].Range.End < sorted[j].Range.End
	})

	var (
		sb      strings.Builder
		applied []Edit
		cursor  int
		last    *Edit
	)
	for i := range sorted {
		e := sorted[i]
		if e.Range.Start < cursor || e.Range.End > len(src) || e.Range.Start > e.Range.End {
			continue
		}
		if last != nil && Overlaps(*last, e) {
			continue
		}
		sb.WriteString(src[cursor:e.Range.Start])
		sb.WriteString(e.Text)
		cursor = e.Range.End
		applied = append(applied, e)
		last = &sorted[i]
	}
	sb.WriteString(src[cursor:])
	return sb.String(), applied
}
