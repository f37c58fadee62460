package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenario is one pattern/text case with its expected leftmost match (or
// nil for no match).
type scenario struct {
	name     string
	pattern  string
	text     string
	wantText string
	wantOff  int
	noMatch  bool
}

func TestEndToEndScenarios(t *testing.T) {
	scenarios := []scenario{
		{name: "digit then literal", pattern: `\d apples`, text: "sally has 3 apples", wantText: "3 apples", wantOff: 10},
		{name: "negated class no match", pattern: `[^anb]`, text: "banana", noMatch: true},
		{name: "start anchor no match", pattern: `^ban`, text: "rayban", noMatch: true},
		{name: "end anchor match", pattern: `ban$`, text: "rayban", wantText: "ban", wantOff: 3},
		{name: "non-greedy via follow", pattern: `ca+at`, text: "caaats", wantText: "caaat", wantOff: 0},
		{name: "wildcard plus", pattern: `g.+gol`, text: "goøö0Ogol", wantText: "goøö0Ogol", wantOff: 0},
		{name: "exact quantifier match", pattern: `ro{2}m`, text: "room", wantText: "room", wantOff: 0},
		{name: "exact quantifier no match", pattern: `ro{2}m`, text: "vroooom", noMatch: true},
		{name: "zero or more", pattern: `go*gle`, text: "ggler", wantText: "ggle", wantOff: 0},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			node, err := New(sc.pattern).Parse()
			require.NoError(t, err)

			m := node.FindFirstMatch(sc.text)
			if sc.noMatch {
				assert.Nil(t, m)
				return
			}
			require.NotNil(t, m)
			assert.Equal(t, sc.wantText, m.MatchedText)
			assert.Equal(t, sc.wantOff, m.Offset)
		})
	}
}

func TestAlternationWithNestedGroupCaptures(t *testing.T) {
	node, err := New(`(pad|r(a|ö))deln`).Parse()
	require.NoError(t, err)

	m := node.FindFirstMatch("rödeln")
	require.NotNil(t, m)
	assert.Equal(t, "rödeln", m.MatchedText)
	assert.Equal(t, 0, m.Offset)
	assert.Equal(t, "rö", m.SubMatches[1].MatchedText)
	assert.Equal(t, "ö", m.SubMatches[2].MatchedText)

	assert.Nil(t, node.FindFirstMatch("rodeln"))
}

func TestBackreference(t *testing.T) {
	node, err := New(`(\w+) and \1`).Parse()
	require.NoError(t, err)

	m := node.FindFirstMatch("cat and cat")
	require.NotNil(t, m)
	assert.Equal(t, "cat and cat", m.MatchedText)

	assert.Nil(t, node.FindFirstMatch("cat and dog"))
}

func TestNestedBackreferences(t *testing.T) {
	pattern := `(([abc]+)-([def]+)) is \1, not ([^xyz]+), \2, or \3`
	node, err := New(pattern).Parse()
	require.NoError(t, err)

	text := "abc-def is abc-def, not efg, abc, or def"
	m := node.FindFirstMatch(text)
	require.NotNil(t, m)
	assert.Equal(t, text, m.MatchedText)
	assert.Equal(t, 0, m.Offset)
}

func TestGroupIndicesAreDenseAndSourceOrdered(t *testing.T) {
	node, err := New(`((a)(b)(c))\1`).Parse()
	require.NoError(t, err)

	m := node.FindFirstMatch("abcabc")
	require.NotNil(t, m)
	assert.Equal(t, "abc", m.SubMatches[1].MatchedText)
	assert.Equal(t, "a", m.SubMatches[2].MatchedText)
	assert.Equal(t, "b", m.SubMatches[3].MatchedText)
	assert.Equal(t, "c", m.SubMatches[4].MatchedText)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name    string
		pattern string
		kind    ErrorKind
	}{
		{"quantifier without atom", "*", ErrQuantifierWithoutAtom},
		{"unbalanced paren", "(abc", ErrUnbalancedParen},
		{"unbalanced bracket", "[abc", ErrUnbalancedBracket},
		{"forward backref", `\1(a)`, ErrInvalidBackref},
		{"invalid escape", `\z`, ErrInvalidEscape},
		{"empty pattern", "", ErrUnexpectedEnd},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.pattern).Parse()
			require.Error(t, err)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tc.kind, pe.Kind)
		})
	}
}

func TestBackreferenceToUnsetGroupIsParseErrorNotRuntimeFalse(t *testing.T) {
	_, err := New(`\1(a)`).Parse()
	require.Error(t, err)
}

func TestLiteralRoundTrip(t *testing.T) {
	node, err := New("hello").Parse()
	require.NoError(t, err)

	matches := node.FindAllMatches("hello")
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].Offset)
	assert.Equal(t, "hello", matches[0].MatchedText)
}

func TestDotStarMatchesEmptyString(t *testing.T) {
	node, err := New(".*").Parse()
	require.NoError(t, err)

	m := node.FindFirstMatch("")
	require.NotNil(t, m)
	assert.Equal(t, "", m.MatchedText)
}
