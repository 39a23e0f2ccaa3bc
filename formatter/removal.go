package formatter

// RemovalFormatter reports code that was deleted outright.
type RemovalFormatter struct{}

func (f *RemovalFormatter) ChangeTemplate() string {
	return `{{header .Rule .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent}}
`
}
