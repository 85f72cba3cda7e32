package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Eq(t *testing.T) {
	testCases := []struct {
		name      string
		matcher   string
		input     string
		wantMatch string
		wantOK    bool
	}{
		{name: "exact match", matcher: "return", input: "return x", wantMatch: "return", wantOK: true},
		{name: "no match", matcher: "return", input: "retina", wantOK: false},
		{name: "input shorter than matcher", matcher: "return", input: "ret", wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Eq(tc.matcher).Match(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantMatch, got)
			}
		})
	}
}

func Test_Maybe_NeverFails(t *testing.T) {
	m := NewMaybe("x")

	got, ok := m.Match("xyz")
	assert.True(t, ok)
	assert.Equal(t, "x", got)

	got, ok = m.Match("abc")
	assert.True(t, ok)
	assert.Equal(t, "", got)
}

func Test_Repeat(t *testing.T) {
	testCases := []struct {
		name    string
		atLeast int
		input   string
		wantOK  bool
		want    string
	}{
		{name: "zero matches allowed", atLeast: 0, input: "zzz", wantOK: true, want: ""},
		{name: "greedy match", atLeast: 0, input: "aaab", wantOK: true, want: "aaa"},
		{name: "at least one, none found", atLeast: 1, input: "zzz", wantOK: false},
		{name: "at least one, satisfied", atLeast: 1, input: "ab", wantOK: true, want: "a"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRepeat("a", tc.atLeast)
			got, ok := r.Match(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func Test_FirstOf_OrderMatters(t *testing.T) {
	f := NewFirstOf("ab", "a")

	got, ok := f.Match("abc")
	assert.True(t, ok)
	assert.Equal(t, "ab", got, "first alternative should win even though both match")

	f2 := NewFirstOf("a", "ab")
	got, ok = f2.Match("abc")
	assert.True(t, ok)
	assert.Equal(t, "a", got, "order, not length, decides the winner")
}

func Test_Seq(t *testing.T) {
	s := NewSeq("#", NewRepeat(ExpandAsRegex(' ', '~'), 1))

	got, ok := s.Match("# a comment")
	assert.True(t, ok)
	assert.Equal(t, "# a comment", got)

	_, ok = s.Match("#")
	assert.False(t, ok, "repeat requires at least one character after '#'")
}

func Test_Expand(t *testing.T) {
	got := Expand('a', 'c')
	assert.Equal(t, []string{"a", "b", "c"}, got)

	got = Expand('c', 'a')
	assert.Equal(t, []string{"a", "b", "c"}, got, "reversed bounds are corrected")

	got = Expand('a', 'c', 'b')
	assert.Equal(t, []string{"a", "c"}, got)
}
