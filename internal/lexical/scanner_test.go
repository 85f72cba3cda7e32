package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Scan(t *testing.T) {
	matchers := []Matcher{
		NewMatcher("space", NewRepeat(" ", 1)),
		NewMatcher("word", NewRepeat(ExpandAsRegex('a', 'z'), 1)),
		NewMatcher("digit", NewRepeat(ExpandAsRegex('0', '9'), 1)),
	}

	nodes, err := Scan([]string{"ab 12", "cd"}, matchers)
	require.NoError(t, err)
	require.Len(t, nodes, 4)

	assert.Equal(t, "word", nodes[0].Key())
	tok, ok := nodes[0].Token()
	require.True(t, ok)
	assert.Equal(t, "ab", tok.Value)
	assert.Equal(t, 0, tok.Line)
	assert.Equal(t, 0, tok.Column)

	assert.Equal(t, "space", nodes[1].Key())
	assert.Equal(t, "digit", nodes[2].Key())

	tok, _ = nodes[3].Token()
	assert.Equal(t, 1, tok.Line)
	assert.Equal(t, 0, tok.Column)
	assert.Equal(t, "cd", tok.Value)
}

func Test_Scan_UnexpectedToken(t *testing.T) {
	matchers := []Matcher{
		NewMatcher("word", NewRepeat(ExpandAsRegex('a', 'z'), 1)),
	}

	_, err := Scan([]string{"ab1"}, matchers)
	require.Error(t, err)

	var scanErr *ScannerError
	require.ErrorAs(t, err, &scanErr)
	assert.Equal(t, 0, scanErr.Line)
	assert.Equal(t, 2, scanErr.Column)
	assert.Equal(t, '1', scanErr.Char)
}

func Test_Scan_EmptyLines(t *testing.T) {
	matchers := []Matcher{
		NewMatcher("word", NewRepeat(ExpandAsRegex('a', 'z'), 1)),
	}

	nodes, err := Scan([]string{"", "ab", ""}, matchers)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	tok, ok := nodes[0].Token()
	require.True(t, ok)
	assert.Equal(t, 1, tok.Line)
}
