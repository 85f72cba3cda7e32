package langmatchers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelparse/cmaj/internal/lexical"
)

func Test_Matchers_ScansExpression(t *testing.T) {
	nodes, err := lexical.Scan([]string{"f(y) -> Result"}, Matchers())
	require.NoError(t, err)

	var keys []string
	for _, n := range nodes {
		if n.Key() == "space" {
			continue
		}
		keys = append(keys, n.Key())
	}
	assert.Equal(t, []string{"identifier", "(", "identifier", ")", "->", "type"}, keys)
}

func Test_Matchers_PreferLongerSymbols(t *testing.T) {
	nodes, err := lexical.Scan([]string{"a <= b"}, Matchers())
	require.NoError(t, err)

	var keys []string
	for _, n := range nodes {
		if n.Key() == "space" {
			continue
		}
		keys = append(keys, n.Key())
	}
	assert.Equal(t, []string{"identifier", "<=", "identifier"}, keys)
}
