package formatter

// GeneralChangeFormatter reports a replacement: the original region, then
// the text that replaces it.
type GeneralChangeFormatter struct{}

func (f *GeneralChangeFormatter) ChangeTemplate() string {
	return `{{header .Rule .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent -}}
{{suggestion "Refactored" .After .Padding .MaxLineNumWidth .StartLine}}
`
}
