package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autorefactor/autorefactor/internal"
	"github.com/autorefactor/autorefactor/internal/jast"
	tt "github.com/autorefactor/autorefactor/internal/types"
)

func pos(line, column int) jast.Position {
	return jast.Position{Filename: "T.java", Line: line, Column: column}
}

func TestGenerateFormattedChanges(t *testing.T) {
	t.Parallel()
	source := internal.NewSourceCode([]byte(`class T {
    boolean m(boolean a, String s) {
        ;
        return !!a;
    }
}
`))

	tests := []struct {
		name     string
		change   tt.Change
		expected string
	}{
		{
			name: "Replacement",
			change: tt.Change{
				Rule:     "double-negation",
				Filename: "T.java",
				Message:  "Removed a double negation",
				Start:    pos(4, 16),
				End:      pos(4, 19),
				Before:   "!!a",
				After:    "a",
			},
			expected: `refactor: double-negation
 --> T.java:4:16
  |
4 | return !!a;
  |        ~~~
  = Removed a double negation
Refactored:
  |
4 | a
  |

`,
		},
		{
			name: "Removal",
			change: tt.Change{
				Rule:     "remove-empty-statement",
				Filename: "T.java",
				Message:  "Removed empty statement",
				Start:    pos(3, 9),
				End:      pos(3, 10),
				Before:   ";",
			},
			expected: `refactor: remove-empty-statement
 --> T.java:3:9
  |
3 | ;
  | ~
  = Removed empty statement

`,
		},
		{
			name: "Insertion",
			change: tt.Change{
				Rule:     "break-rather-than-passive-iterations",
				Filename: "T.java",
				Message:  "Added a break",
				Start:    pos(4, 9),
				End:      pos(4, 9),
				After:    "break;",
			},
			expected: `refactor: break-rather-than-passive-iterations
 --> T.java:4:9
  |
4 | return !!a;
  | ^ Added a break
Inserted:
  |
4 | break;
  |

`,
		},
		{
			name: "MultiLine",
			change: tt.Change{
				Rule:     "remove-useless-try",
				Filename: "T.java",
				Message:  "Removed a useless try",
				Start:    pos(3, 9),
				End:      pos(4, 20),
				Before:   ";\n        return !!a;",
				After:    "return !!a;",
			},
			expected: `refactor: remove-useless-try
 --> T.java:3:9
  |
3 | ;
4 | return !!a;
  | ~~~~~~~~~~~
  = Removed a useless try
Refactored:
  |
3 | return !!a;
  |

`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := GenerateFormattedChanges([]tt.Change{tc.change}, source)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestGenerateFormattedChangesOutOfRange(t *testing.T) {
	t.Parallel()
	source := internal.NewSourceCode([]byte("class T {}\n"))
	c := tt.Change{
		Rule:     "string",
		Filename: "T.java",
		Message:  "Simplified a string operation",
		Start:    pos(10, 1),
		End:      pos(10, 5),
		Before:   "x",
		After:    "y",
	}
	expected := `refactor: string
  --> T.java:10:1
   |
   | Simplified a string operation
Refactored:
   |
10 | y
   |

`
	assert.Equal(t, expected, GenerateFormattedChanges([]tt.Change{c}, source))
}

func TestMultipleDigitLineNumbers(t *testing.T) {
	t.Parallel()
	lines := make([]byte, 0, 64)
	for range 9 {
		lines = append(lines, "\n"...)
	}
	lines = append(lines, "    x = !!a;\n"...)
	c := tt.Change{
		Rule:     "double-negation",
		Filename: "T.java",
		Message:  "Removed a double negation",
		Start:    pos(10, 9),
		End:      pos(10, 12),
		Before:   "!!a",
		After:    "a",
	}
	expected := `refactor: double-negation
  --> T.java:10:9
   |
10 | x = !!a;
   |     ~~~
   = Removed a double negation
Refactored:
   |
10 | a
   |

`
	assert.Equal(t, expected, GenerateFormattedChanges([]tt.Change{c}, internal.NewSourceCode(lines)))
}

func TestCalculateVisualColumn(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		line   string
		column int
		want   int
	}{
		{"Spaces", "    x", 5, 4},
		{"Tab", "\tx", 2, 8},
		{"TabAfterText", "ab\tx", 4, 8},
		{"WideRunes", "\"世界\" + x", 10, 7},
		{"Zero", "abc", 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, calculateVisualColumn(tc.line, tc.column))
		})
	}
}

func TestExpandTabs(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "        x", expandTabs("\tx"))
	assert.Equal(t, "ab      x", expandTabs("ab\tx"))
	assert.Equal(t, "no tabs", expandTabs("no tabs"))
}

func TestFindCommonIndent(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "    ", findCommonIndent([]string{"        a", "", "    b"}))
	assert.Equal(t, "", findCommonIndent([]string{"a", "    b"}))
	assert.Equal(t, "", findCommonIndent(nil))
}
