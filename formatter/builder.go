package formatter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"text/template"
	"unicode"

	"github.com/fatih/color"

	tt "github.com/stylekit/jsstyle/internal/types"
)

const tabWidth = 8

// Rules with a dedicated template.
const (
	PropsDestructuring = "props-destructuring"
)

var (
	errorStyle      = color.New(color.FgRed, color.Bold)
	warningStyle    = color.New(color.FgHiYellow, color.Bold)
	infoStyle       = color.New(color.FgHiCyan, color.Bold)
	ruleStyle       = color.New(color.FgYellow, color.Bold)
	fileStyle       = color.New(color.FgCyan, color.Bold)
	lineStyle       = color.New(color.FgHiBlue, color.Bold)
	messageStyle    = color.New(color.FgRed, color.Bold)
	suggestionStyle = color.New(color.FgGreen, color.Bold)
)

// issueFormatter provides the text/template used to render issues of a rule.
type issueFormatter interface {
	IssueTemplate() string
}

func getIssueFormatter(rule string) issueFormatter {
	switch rule {
	case PropsDestructuring:
		return &PropsDestructuringFormatter{}
	default:
		return &GeneralIssueFormatter{}
	}
}

var templateFuncs = template.FuncMap{
	"header":              header,
	"snippet":             codeSnippet,
	"underlineAndMessage": underlineAndMessage,
	"suggestion":          suggestion,
	"note":                note,
	"hint":                hint,
}

var (
	templatesMu sync.Mutex
	templates   = make(map[string]*template.Template)
)

// issueTemplate returns the parsed template of rule, parsing it on first use.
func issueTemplate(rule string) *template.Template {
	templatesMu.Lock()
	defer templatesMu.Unlock()
	if t, ok := templates[rule]; ok {
		return t
	}
	t := template.Must(template.New(rule).Funcs(templateFuncs).Parse(getIssueFormatter(rule).IssueTemplate()))
	templates[rule] = t
	return t
}

// GenerateFormattedIssue formats issues of one file into a human-readable
// string. lines is the file content split on newlines.
func GenerateFormattedIssue(issues []tt.Issue, lines []string) string {
	var out strings.Builder
	for _, issue := range issues {
		var buf bytes.Buffer
		if err := issueTemplate(issue.Rule).Execute(&buf, newIssueData(issue, lines)); err != nil {
			fmt.Fprintf(&out, "Error formatting issue: %v", err)
			continue
		}
		out.Write(buf.Bytes())
	}
	return out.String()
}

// IssueData is what issue templates render.
type IssueData struct {
	Severity        string
	Rule            string
	Filename        string
	Padding         string
	StartLine       int
	StartColumn     int
	EndLine         int
	EndColumn       int
	MaxLineNumWidth int
	Message         string
	Suggestion      string
	SuggestionLine  int
	Note            string
	SnippetLines    []string
	CommonIndent    string
}

func newIssueData(issue tt.Issue, lines []string) IssueData {
	data := IssueData{
		Severity:       issue.Severity.String(),
		Rule:           issue.Rule,
		Filename:       issue.Filename,
		StartLine:      issue.Start.Line,
		StartColumn:    issue.Start.Column,
		EndLine:        issue.End.Line,
		EndColumn:      issue.End.Column,
		Message:        issue.Message,
		Suggestion:     issue.Suggestion,
		SuggestionLine: issue.Start.Line,
		Note:           issue.Note,
		SnippetLines:   lines,
	}
	if issue.Fix != nil {
		data.SuggestionLine = lineOfOffset(lines, issue.Fix.Range.Start)
	}

	// the gutter must fit the last printed line number, suggestion included
	last := data.EndLine
	if issue.Suggestion != "" {
		last = max(last, data.SuggestionLine+strings.Count(issue.Suggestion, "\n"))
	}
	data.MaxLineNumWidth = len(strconv.Itoa(last))
	data.Padding = strings.Repeat(" ", data.MaxLineNumWidth+1)

	if validLines(data.StartLine, data.EndLine, lines) {
		data.CommonIndent = findCommonIndent(lines[data.StartLine-1 : data.EndLine])
	}
	return data
}

func severityLabel(severity string) string {
	switch severity {
	case "ERROR":
		return errorStyle.Sprint("error: ")
	case "WARNING":
		return warningStyle.Sprint("warning: ")
	case "INFO":
		return infoStyle.Sprint("info: ")
	}
	return ""
}

func header(rule, severity string, width int, filename string, line, column int) string {
	var b strings.Builder
	b.WriteString(severityLabel(severity))
	b.WriteString(ruleStyle.Sprintf("%s\n", rule))
	b.WriteString(lineStyle.Sprintf("%s--> ", strings.Repeat(" ", width)))
	b.WriteString(fileStyle.Sprintf("%s:%d:%d", filename, line, column))
	return b.String()
}

// bar is an empty gutter line.
func bar(padding string) string {
	return lineStyle.Sprintf("%s|\n", padding)
}

// numbered renders text behind line number n.
func numbered(width, n int, text string) string {
	return lineStyle.Sprintf("%*d | ", width, n) + text + "\n"
}

func codeSnippet(lines []string, start, end, width int, indent, padding string) string {
	var b strings.Builder
	b.WriteString(bar(padding))
	for n := max(start, 1); n <= end && n <= len(lines); n++ {
		b.WriteString(numbered(width, n, strings.TrimPrefix(lines[n-1], indent)))
	}
	return b.String()
}

// underlineAndMessage marks the reported range on its first line. Ranges that
// continue on later lines are underlined to the end of the first line.
func underlineAndMessage(message, padding string, startLine, endLine, startColumn, endColumn int, lines []string, indent string) string {
	var b strings.Builder
	b.WriteString(lineStyle.Sprintf("%s| ", padding))
	if !validLines(startLine, endLine, lines) {
		b.WriteString(messageStyle.Sprintf("%s\n", message))
		return b.String()
	}

	line := lines[startLine-1]
	if endLine != startLine {
		endColumn = len(line) + 1
	}
	shift := calculateVisualColumn(indent, len(indent)+1)
	from := max(calculateVisualColumn(line, startColumn)-shift, 0)
	to := calculateVisualColumn(line, endColumn) - shift

	b.WriteString(strings.Repeat(" ", from))
	b.WriteString(messageStyle.Sprintf("%s\n", strings.Repeat("~", max(to-from, 1))))
	b.WriteString(lineStyle.Sprintf("%s= ", padding))
	b.WriteString(messageStyle.Sprintf("%s\n", message))
	return b.String()
}

// suggestion prints the fixed text of the affected lines, numbered from
// startLine.
func suggestion(text, padding string, width, startLine int, indent string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(suggestionStyle.Sprint("Suggestion:\n"))
	b.WriteString(bar(padding))
	for i, line := range strings.Split(text, "\n") {
		b.WriteString(numbered(width, startLine+i, strings.TrimPrefix(line, indent)))
	}
	b.WriteString(bar(padding))
	return b.String()
}

func note(text string) string {
	if text == "" {
		return ""
	}
	return suggestionStyle.Sprint("Note: ") + lineStyle.Sprintf("%s\n", text)
}

func validLines(start, end int, lines []string) bool {
	return start > 0 && start <= end && end <= len(lines)
}

// lineOfOffset returns the 1-based line holding byte offset.
func lineOfOffset(lines []string, offset int) int {
	pos := 0
	for i, line := range lines {
		pos += len(line) + 1
		if offset < pos {
			return i + 1
		}
	}
	return len(lines)
}

// calculateVisualColumn returns the display width of line before the 1-based
// column, with tabs expanded to tabWidth.
func calculateVisualColumn(line string, column int) int {
	width := 0
	for i, ch := range line {
		if i+1 >= column {
			break
		}
		if ch == '\t' {
			width += tabWidth - width%tabWidth
		} else {
			width++
		}
	}
	return width
}

// findCommonIndent returns the leading whitespace shared by every non-blank
// line.
func findCommonIndent(lines []string) string {
	indent, seen := "", false
	for _, line := range lines {
		body := strings.TrimLeftFunc(line, unicode.IsSpace)
		if body == "" {
			continue
		}
		lead := line[:len(line)-len(body)]
		if !seen {
			indent, seen = lead, true
			continue
		}
		for !strings.HasPrefix(lead, indent) {
			indent = indent[:len(indent)-1]
		}
		if indent == "" {
			break
		}
	}
	return indent
}
