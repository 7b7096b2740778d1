package jsast

// FirstTokenOnLine walks backward from x while the previous token starts on
// the same line as x and returns the earliest such token. At the start of the
// file x itself is the first token.
func (sc *SourceCode) FirstTokenOnLine(x Located) Located {
	line := x.Loc().Start.Line
	first := x
	for {
		prev := sc.TokenBefore(first)
		if prev == nil || prev.Loc().Start.Line != line {
			return first
		}
		first = prev
	}
}

// LeadingWhitespaceColumn returns the column of the first token on x's line,
// i.e. the indentation of that line.
func (sc *SourceCode) LeadingWhitespaceColumn(x Located) int {
	return sc.FirstTokenOnLine(x).Loc().Start.Column
}

// TextBetween returns the raw source strictly between the end of a and the
// start of b, or "" when b does not follow a.
func (sc *SourceCode) TextBetween(a, b Located) string {
	start, end := a.Range().End, b.Range().Start
	if end < start {
		return ""
	}
	return sc.Text[start:end]
}

// IsFirstOnLine reports whether no token or comment precedes x on its line.
func (sc *SourceCode) IsFirstOnLine(x Located) bool {
	prev := sc.TokenBefore(x, IncludeComments())
	return prev == nil || prev.Loc().End.Line != x.Loc().Start.Line
}

// SameLine reports whether a ends on the line b starts on.
func SameLine(a, b Located) bool {
	return a.Loc().End.Line == b.Loc().Start.Line
}
