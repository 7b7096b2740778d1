package formatter

// PropsDestructuringFormatter adds a help line pointing at props access, since
// the rule never fixes code itself.
type PropsDestructuringFormatter struct{}

func (f *PropsDestructuringFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent -}}
{{hint .Padding}}
{{- if .Note }}
{{note .Note}}
{{- end }}
`
}

func hint(padding string) string {
	return lineStyle.Sprintf("%s= ", padding) +
		suggestionStyle.Sprint("help: ") +
		"read the value from props where it is used, e.g. `props.title`\n"
}
