package nolint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autorefactor/autorefactor/internal/frontend"
)

func TestParseIgnoreRuleNames(t *testing.T) {
	t.Parallel()
	result := parseIgnoreRuleNames("rule1, rule2,rule3,")
	assert.Len(t, result, 3)
	for _, rule := range []string{"rule1", "rule2", "rule3"} {
		assert.Contains(t, result, rule)
	}
	assert.Empty(t, parseIgnoreRuleNames(""))
}

func TestCommentBody(t *testing.T) {
	t.Parallel()
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"// autorefactor:ignore", "autorefactor:ignore", true},
		{"//autorefactor:ignore a", "autorefactor:ignore a", true},
		{"/* autorefactor:ignore */", "autorefactor:ignore", true},
		{"/**/", "", true},
		{"# nope", "", false},
	}
	for _, tt := range tests {
		got, ok := commentBody(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestIsIgnored(t *testing.T) {
	t.Parallel()
	src := `class T {
    void m(int a) {
        // autorefactor:ignore
        a++;
        a--;
        a += 2; // autorefactor:ignore double-negation
        // autorefactor:ignore string, invert-equals
        if (a > 0) {
            a = 0;
        }
        // autorefactor:ignorex
        a = 1;
    }

    // autorefactor:ignore: remove-empty-statement
    void n() {
        ;
    }
}
`
	u, err := frontend.New(nil).Parse("T.java", []byte(src))
	require.NoError(t, err)
	m := ParseComments(u)

	tests := []struct {
		name string
		line int
		rule string
		want bool
	}{
		{"NextStatementAnyRule", 4, "anything", true},
		{"StatementAfter", 5, "anything", false},
		{"InlineListed", 6, "double-negation", true},
		{"InlineUnlisted", 6, "string", false},
		{"BlockStatementListed", 9, "invert-equals", true},
		{"BlockStatementEnd", 10, "string", true},
		{"MalformedPrefix", 12, "anything", false},
		{"Method", 17, "remove-empty-statement", true},
		{"MethodOtherRule", 17, "string", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, m.IsIgnored(tt.line, tt.rule))
		})
	}
}

func TestIsIgnoredWholeFile(t *testing.T) {
	t.Parallel()
	src := "// autorefactor:ignore string\npackage p;\n\nclass T {\n    void m() {}\n}\n"
	u, err := frontend.New(nil).Parse("T.java", []byte(src))
	require.NoError(t, err)
	m := ParseComments(u)
	assert.True(t, m.IsIgnored(5, "string"))
	assert.False(t, m.IsIgnored(5, "double-negation"))

	var nilManager *Manager
	assert.False(t, nilManager.IsIgnored(1, "string"))
}
