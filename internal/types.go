package internal

import "strings"

// SourceCode stores the content of a source file as lines, without their
// terminators.
type SourceCode struct {
	Lines []string
}

// NewSourceCode splits src into lines. A final newline does not start an
// extra line.
func NewSourceCode(src []byte) *SourceCode {
	text := strings.TrimSuffix(string(src), "\n")
	if text == "" {
		return &SourceCode{}
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return &SourceCode{Lines: lines}
}
