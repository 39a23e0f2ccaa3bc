package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/autorefactor/autorefactor/internal"
	tt "github.com/autorefactor/autorefactor/internal/types"
)

const tabWidth = 8

var (
	refactorStyle   = color.New(color.FgHiYellow, color.Bold)
	ruleStyle       = color.New(color.FgYellow, color.Bold)
	fileStyle       = color.New(color.FgCyan, color.Bold)
	lineStyle       = color.New(color.FgHiBlue, color.Bold)
	messageStyle    = color.New(color.FgRed, color.Bold)
	suggestionStyle = color.New(color.FgGreen, color.Bold)
)

// changeFormatter supplies the report template for one kind of change.
type changeFormatter interface {
	ChangeTemplate() string
}

// getChangeFormatter picks the template by the shape of the change: a
// removal has no replacement text and an insertion has no original text.
func getChangeFormatter(c tt.Change) changeFormatter {
	switch {
	case c.Before == "" && c.After != "":
		return &InsertionFormatter{}
	case c.After == "":
		return &RemovalFormatter{}
	default:
		return &GeneralChangeFormatter{}
	}
}

// GenerateFormattedChanges renders changes against the source they were
// found in.
func GenerateFormattedChanges(changes []tt.Change, source *internal.SourceCode) string {
	var builder strings.Builder
	for _, c := range changes {
		builder.WriteString(buildChange(c, source, getChangeFormatter(c)))
	}
	return builder.String()
}

/***** Change Formatter Builder *****/

type ChangeData struct {
	Rule            string
	Filename        string
	Padding         string
	StartLine       int
	StartColumn     int
	EndLine         int
	EndColumn       int
	MaxLineNumWidth int
	Message         string
	Before          string
	After           string
	SnippetLines    []string
	CommonIndent    string
}

func buildChange(c tt.Change, source *internal.SourceCode, formatter changeFormatter) string {
	startLine := c.Start.Line
	endLine := max(c.End.Line, startLine)
	afterLines := strings.Count(c.After, "\n") + 1
	maxLineNumWidth := calculateMaxLineNumWidth(max(endLine, startLine+afterLines-1))
	padding := strings.Repeat(" ", maxLineNumWidth+1)

	var commonIndent string
	if isValidLineRange(startLine, endLine, source.Lines) {
		commonIndent = findCommonIndent(source.Lines[startLine-1 : endLine])
	}

	data := ChangeData{
		Rule:            c.Rule,
		Filename:        c.Filename,
		StartLine:       startLine,
		StartColumn:     c.Start.Column,
		EndLine:         endLine,
		EndColumn:       c.End.Column,
		Message:         c.Message,
		Before:          c.Before,
		After:           c.After,
		MaxLineNumWidth: maxLineNumWidth,
		Padding:         padding,
		CommonIndent:    commonIndent,
		SnippetLines:    source.Lines,
	}

	funcMap := template.FuncMap{
		"header":              header,
		"snippet":             codeSnippet,
		"underlineAndMessage": underlineAndMessage,
		"caretAndMessage":     caretAndMessage,
		"suggestion":          suggestion,
	}

	tmpl := template.Must(template.New("change").Funcs(funcMap).Parse(formatter.ChangeTemplate()))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting change: %v", err)
	}
	return buf.String()
}

// utils functions used in the text templates

func header(rule string, maxLineNumWidth int, filename string, startLine int, startColumn int) string {
	s := refactorStyle.Sprint("refactor: ")
	s += ruleStyle.Sprintf("%s\n", rule)
	s += lineStyle.Sprintf("%s--> ", strings.Repeat(" ", maxLineNumWidth))
	s += fileStyle.Sprintf("%s:%d:%d\n", filename, startLine, startColumn)
	return s
}

func codeSnippet(snippetLines []string, startLine int, endLine int, maxLineNumWidth int, commonIndent string, padding string) string {
	s := lineStyle.Sprintf("%s|\n", padding)
	for i := startLine; i <= endLine; i++ {
		if i-1 < 0 || i-1 >= len(snippetLines) {
			continue
		}
		line := strings.TrimPrefix(snippetLines[i-1], commonIndent)
		s += lineStyle.Sprintf("%*d | ", maxLineNumWidth, i)
		s += expandTabs(line) + "\n"
	}
	return s
}

// underlineAndMessage marks [startColumn, endColumn) with tildes. A range
// over several lines is marked up to the end of its widest line.
func underlineAndMessage(message string, padding string, startLine int, endLine int, startColumn int, endColumn int, snippetLines []string, commonIndent string) string {
	s := lineStyle.Sprintf("%s| ", padding)
	if !isValidLineRange(startLine, endLine, snippetLines) {
		return s + messageStyle.Sprintf("%s\n", message)
	}

	indentWidth := visualWidth(commonIndent)
	underlineStart := max(calculateVisualColumn(snippetLines[startLine-1], startColumn)-indentWidth, 0)

	var underlineEnd int
	if startLine == endLine {
		underlineEnd = calculateVisualColumn(snippetLines[endLine-1], endColumn) - indentWidth
	} else {
		for _, line := range snippetLines[startLine-1 : endLine] {
			underlineEnd = max(underlineEnd, visualWidth(line)-indentWidth)
		}
	}
	underlineLength := max(underlineEnd-underlineStart, 1)

	s += strings.Repeat(" ", underlineStart)
	s += messageStyle.Sprintf("%s\n", strings.Repeat("~", underlineLength))
	s += lineStyle.Sprintf("%s= ", padding)
	s += messageStyle.Sprintf("%s\n", message)
	return s
}

// caretAndMessage points at an insertion point.
func caretAndMessage(message string, padding string, startLine int, startColumn int, snippetLines []string, commonIndent string) string {
	s := lineStyle.Sprintf("%s| ", padding)
	if startLine <= 0 || startLine > len(snippetLines) {
		return s + messageStyle.Sprintf("%s\n", message)
	}
	col := max(calculateVisualColumn(snippetLines[startLine-1], startColumn)-visualWidth(commonIndent), 0)
	s += strings.Repeat(" ", col)
	s += messageStyle.Sprintf("^ %s\n", message)
	return s
}

func suggestion(title string, text string, padding string, maxLineNumWidth int, startLine int) string {
	if text == "" {
		return ""
	}
	s := suggestionStyle.Sprintf("%s:\n", title)
	s += lineStyle.Sprintf("%s|\n", padding)
	lines := strings.Split(text, "\n")
	indent := findCommonIndent(lines[1:])
	for i, line := range lines {
		if i > 0 {
			line = strings.TrimPrefix(line, indent)
		}
		s += lineStyle.Sprintf("%*d | ", maxLineNumWidth, startLine+i)
		s += expandTabs(line) + "\n"
	}
	s += lineStyle.Sprintf("%s|\n", padding)
	return s
}

func isValidLineRange(startLine int, endLine int, snippetLines []string) bool {
	return startLine > 0 &&
		endLine > 0 &&
		startLine <= endLine &&
		startLine <= len(snippetLines) &&
		endLine <= len(snippetLines)
}

func calculateMaxLineNumWidth(endLine int) int {
	return len(fmt.Sprintf("%d", endLine))
}

// calculateVisualColumn returns the display width of line before the
// 1-based byte column, counting tab stops and wide runes.
func calculateVisualColumn(line string, column int) int {
	if column <= 0 {
		return 0
	}
	visualColumn := 0
	for i, ch := range line {
		if i+1 >= column {
			break
		}
		visualColumn = advance(visualColumn, ch)
	}
	return visualColumn
}

func visualWidth(s string) int {
	w := 0
	for _, ch := range s {
		w = advance(w, ch)
	}
	return w
}

func advance(col int, ch rune) int {
	if ch == '\t' {
		return col + tabWidth - col%tabWidth
	}
	return col + runewidth.RuneWidth(ch)
}

func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var b strings.Builder
	col := 0
	for _, ch := range line {
		next := advance(col, ch)
		if ch == '\t' {
			b.WriteString(strings.Repeat(" ", next-col))
		} else {
			b.WriteRune(ch)
		}
		col = next
	}
	return b.String()
}

// findCommonIndent finds the indent shared by all non-blank lines.
func findCommonIndent(lines []string) string {
	var common []rune
	found := false
	for _, line := range lines {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if trimmed == "" {
			continue
		}
		indent := []rune(line[:len(line)-len(trimmed)])
		if !found {
			common, found = indent, true
			continue
		}
		common = commonPrefix(common, indent)
		if len(common) == 0 {
			break
		}
	}
	return string(common)
}

// commonPrefix finds the common prefix of two strings.
func commonPrefix(a, b []rune) []rune {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
