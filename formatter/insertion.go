package formatter

// InsertionFormatter reports code added at a point.
type InsertionFormatter struct{}

func (f *InsertionFormatter) ChangeTemplate() string {
	return `{{header .Rule .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .StartLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{caretAndMessage .Message .Padding .StartLine .StartColumn .SnippetLines .CommonIndent -}}
{{suggestion "Inserted" .After .Padding .MaxLineNumWidth .StartLine}}
`
}
