package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelparse/cmaj/internal/grammar"
)

func Test_PutGet_RoundTrips(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	g := grammar.New(
		grammar.NewRule("A", []string{"a"}),
	)

	require.NoError(t, s.Put("simple", "A = \"a\"\n", g))

	rec, err := s.Get("simple")
	require.NoError(t, err)
	assert.Equal(t, "simple", rec.Name)
	assert.Equal(t, 1, rec.Compiled.Len())
	assert.Equal(t, "a", rec.Compiled.RuleAt(0).Symbols[0])
}

func Test_Get_MissingReturnsErrNotFound(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func Test_Put_Overwrites(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	g1 := grammar.New(grammar.NewRule("A", []string{"a"}))
	g2 := grammar.New(grammar.NewRule("A", []string{"b"}))

	require.NoError(t, s.Put("g", "A = \"a\"\n", g1))
	require.NoError(t, s.Put("g", "A = \"b\"\n", g2))

	rec, err := s.Get("g")
	require.NoError(t, err)
	assert.Equal(t, "b", rec.Compiled.RuleAt(0).Symbols[0])

	names, err := s.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"g"}, names)
}
