// Package nolint finds "autorefactor:ignore" comments and answers whether an
// edit at some line is suppressed.
package nolint

import (
	"fmt"
	"strings"

	"github.com/autorefactor/autorefactor/internal/jast"
)

const ignorePrefix = "autorefactor:ignore"

// Manager holds the suppression scopes of one unit.
type Manager struct {
	scopes []ignoreScope
}

// ignoreScope is an inclusive line range where some or all rules are off.
type ignoreScope struct {
	rules      map[string]struct{} // empty applies to all rules
	start, end int
}

// ParseComments collects the suppression comments of u.
func ParseComments(u *jast.Unit) *Manager {
	m := &Manager{}
	if u == nil || u.File == nil {
		return m
	}
	stmtMap := indexStatementsByLine(u)
	firstDecl := firstDeclLine(u)
	for _, c := range u.Comments {
		s, err := parseComment(u, c, stmtMap, firstDecl)
		if err != nil {
			// not a suppression comment
			continue
		}
		m.scopes = append(m.scopes, s)
	}
	return m
}

// parseComment parses one comment and determines its scope.
func parseComment(u *jast.Unit, c *jast.Comment, stmtMap map[int]jast.Stmt, firstDecl int) (ignoreScope, error) {
	var s ignoreScope
	text, ok := commentBody(c.Text)
	if !ok || !strings.HasPrefix(text, ignorePrefix) {
		return s, fmt.Errorf("not an ignore comment")
	}
	rest := text[len(ignorePrefix):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != ':' {
		return s, fmt.Errorf("invalid ignore comment format")
	}
	rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	s.rules = parseIgnoreRuleNames(rest)

	pos := u.Position(c.From)

	// above the first declaration: the whole file
	if pos.Line < firstDecl {
		s.start, s.end = 1, u.Position(u.File.End()).Line
		return s, nil
	}

	// after code on the same line: that statement
	if stmt, exists := stmtMap[pos.Line]; exists && stmt.Pos() < c.From {
		s.start, s.end = pos.Line, u.Position(stmt.End()).Line
		return s, nil
	}

	// on its own line: the statement or method that follows
	if stmt, exists := stmtMap[pos.Line+1]; exists {
		s.start, s.end = pos.Line, u.Position(stmt.End()).Line
		return s, nil
	}
	if m := methodAtLine(u, pos.Line+1); m != nil {
		s.start, s.end = pos.Line, u.Position(m.End()).Line
		return s, nil
	}

	s.start, s.end = pos.Line, pos.Line
	return s, nil
}

// commentBody strips the comment markers.
func commentBody(text string) (string, bool) {
	switch {
	case strings.HasPrefix(text, "//"):
		return strings.TrimSpace(text[2:]), true
	case strings.HasPrefix(text, "/*") && strings.HasSuffix(text, "*/") && len(text) >= 4:
		return strings.TrimSpace(text[2 : len(text)-2]), true
	}
	return "", false
}

// parseIgnoreRuleNames parses a comma separated rule list.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	if text == "" {
		return rulesMap
	}
	for _, rule := range strings.Split(text, ",") {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rulesMap[rule] = struct{}{}
		}
	}
	return rulesMap
}

// indexStatementsByLine maps each line to the first statement starting on it.
func indexStatementsByLine(u *jast.Unit) map[int]jast.Stmt {
	stmtMap := make(map[int]jast.Stmt)
	jast.Inspect(u.File, func(n jast.Node) bool {
		if stmt, ok := n.(jast.Stmt); ok && stmt.Pos().IsValid() {
			line := u.Position(stmt.Pos()).Line
			if _, exists := stmtMap[line]; !exists {
				stmtMap[line] = stmt
			}
		}
		return true
	})
	return stmtMap
}

func firstDeclLine(u *jast.Unit) int {
	if len(u.File.Types) == 0 {
		return 0
	}
	return u.Position(u.File.Types[0].Pos()).Line
}

func methodAtLine(u *jast.Unit, line int) *jast.MethodDecl {
	var found *jast.MethodDecl
	jast.Inspect(u.File, func(n jast.Node) bool {
		if found != nil {
			return false
		}
		if m, ok := n.(*jast.MethodDecl); ok && u.Position(m.Pos()).Line == line {
			found = m
			return false
		}
		return true
	})
	return found
}

// IsIgnored reports whether edits of rule at line are suppressed.
func (m *Manager) IsIgnored(line int, ruleName string) bool {
	if m == nil {
		return false
	}
	for _, s := range m.scopes {
		if line < s.start || line > s.end {
			continue
		}
		if len(s.rules) == 0 {
			return true
		}
		if _, exists := s.rules[ruleName]; exists {
			return true
		}
	}
	return false
}
