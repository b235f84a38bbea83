package skills

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSplit tests the behavior of Split.
//
// It verifies:
//   - Comma and semicolon both separate tokens
//   - Whitespace around tokens is trimmed
//   - Separator-only and blank cells yield no tokens
//   - Duplicates are preserved in order
func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want []string
	}{
		{"single", "1", []string{"1"}},
		{"comma", "1,2", []string{"1", "2"}},
		{"comma space", "10, 21", []string{"10", "21"}},
		{"semicolon", "1;2; 3", []string{"1", "2", "3"}},
		{"mixed", " a ,b;  c ", []string{"a", "b", "c"}},
		{"trailing separator", "1,", []string{"1"}},
		{"separators only", ",;, ;", nil},
		{"blank", "   ", nil},
		{"empty", "", nil},
		{"duplicates", "1,1,2", []string{"1", "1", "2"}},
		{"inner spaces kept", "Data Entry, QA", []string{"Data Entry", "QA"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.cell))
		})
	}
}

// TestNormalizeAndParseList tests Normalize and ParseList.
//
// It verifies:
//   - Blank entries are dropped
//   - First occurrence wins on duplicates
//   - Case is significant
func TestNormalizeAndParseList(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "A"}, Normalize([]string{" b", "", "a", "b ", "A"}))
	assert.Empty(t, Normalize(nil))
	assert.Equal(t, []string{"1", "2", "3"}, ParseList("1, 2;3,1"))
	assert.Empty(t, ParseList(" , "))
}

// TestVocabulary tests the behavior of Vocabulary.
//
// It verifies:
//   - Tokens from all cells are merged and de-duplicated
//   - Output is sorted byte-wise
//   - Blank cells contribute nothing
//   - No cells yields an empty, non-nil slice
func TestVocabulary(t *testing.T) {
	cells := []string{"3, 1", "", "2;1", "10", ", ;", "b", "B"}
	assert.Equal(t, []string{"1", "10", "2", "3", "B", "b"}, Vocabulary(cells))

	empty := Vocabulary(nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

// TestMatcherWordBoundaryLaw tests that both modes reject partial tokens.
//
// It verifies:
//   - "1" does not match "10, 21"
//   - "1" matches "1", "1,2", "10, 1" and "1, 10"
//   - Missing cells never match
func TestMatcherWordBoundaryLaw(t *testing.T) {
	for _, mode := range []string{"token", "word_boundary"} {
		t.Run(mode, func(t *testing.T) {
			m, err := NewMatcher(mode, []string{"1"})
			require.NoError(t, err)

			assert.False(t, m.Match("10, 21"))
			assert.False(t, m.Match("10"))
			assert.False(t, m.Match("21"))
			assert.True(t, m.Match("1"))
			assert.True(t, m.Match("1,2"))
			assert.True(t, m.Match("10, 1"))
			assert.True(t, m.Match("1, 10"))
			assert.False(t, m.Match(""))
			assert.False(t, m.Match("  "))
		})
	}
}

// TestMatcherOR tests that selected tokens are combined with OR.
func TestMatcherOR(t *testing.T) {
	for _, mode := range []string{"token", "word_boundary"} {
		t.Run(mode, func(t *testing.T) {
			m, err := NewMatcher(mode, []string{"1", "2"})
			require.NoError(t, err)

			assert.True(t, m.Match("1"))
			assert.True(t, m.Match("2"))
			assert.True(t, m.Match("3; 2"))
			assert.False(t, m.Match("3"))
		})
	}
}

// TestMatcherModeDifferences tests where the two modes diverge.
//
// It verifies:
//   - Tokens ending in punctuation only match in token mode
//   - Multi-word tokens match a phrase inside a longer token only in word_boundary mode
//   - Regex metacharacters are escaped in word_boundary mode
func TestMatcherModeDifferences(t *testing.T) {
	tok, err := NewMatcher("token", []string{"C#", "Data"})
	require.NoError(t, err)
	wb, err := NewMatcher("word_boundary", []string{"C#", "Data"})
	require.NoError(t, err)

	assert.True(t, tok.Match("C#, Go"))
	assert.False(t, wb.Match("C#, Go"))

	assert.False(t, tok.Match("Data Entry"))
	assert.True(t, wb.Match("Data Entry"))

	dot, err := NewMatcher("word_boundary", []string{"1.5"})
	require.NoError(t, err)
	assert.True(t, dot.Match("1.5, 2"))
	assert.False(t, dot.Match("105"))
}

// TestMatcherWordBoundaryUnicode tests word_boundary mode on non-ASCII text.
//
// It verifies:
//   - Thai and accented tokens match when delimited by separators
//   - A token never matches inside a longer non-ASCII word
//   - Accented letters count as word characters next to ASCII tokens
//   - Tokens with punctuation at the edges keep their boundary rules
func TestMatcherWordBoundaryUnicode(t *testing.T) {
	thai, err := NewMatcher("word_boundary", []string{"ก"})
	require.NoError(t, err)
	assert.True(t, thai.Match("ก, ข"))
	assert.True(t, thai.Match("ข; ก"))
	assert.False(t, thai.Match("กข"))
	assert.False(t, thai.Match("ขก"))

	accent, err := NewMatcher("word_boundary", []string{"é"})
	require.NoError(t, err)
	assert.True(t, accent.Match("é;x"))
	assert.False(t, accent.Match("éa"))

	caf, err := NewMatcher("word_boundary", []string{"caf"})
	require.NoError(t, err)
	assert.False(t, caf.Match("café"))
	assert.True(t, caf.Match("caf, café"))

	sharp, err := NewMatcher("word_boundary", []string{"C#"})
	require.NoError(t, err)
	assert.False(t, sharp.Match("C#, Go"))
	assert.True(t, sharp.Match("C#x"))
	assert.False(t, sharp.Match("ObjC#x"))
}

// TestBoundaryPattern tests the generated word_boundary patterns.
func TestBoundaryPattern(t *testing.T) {
	assert.Equal(t, `(?:^|[^`+wordClass+`])1\.5(?:[^`+wordClass+`]|$)`, boundaryPattern("1.5"))
	assert.Equal(t, `(?:^|[^`+wordClass+`])C#[`+wordClass+`]`, boundaryPattern("C#"))
	assert.Equal(t, `[`+wordClass+`]\+x(?:[^`+wordClass+`]|$)`, boundaryPattern("+x"))
}

// TestNewMatcher tests construction details.
//
// It verifies:
//   - Empty mode defaults to token
//   - Unknown modes are rejected
//   - Selected tokens are normalized and copied
//   - An empty selection matches nothing
func TestNewMatcher(t *testing.T) {
	m, err := NewMatcher("", []string{" 2", "1", "2", ""})
	require.NoError(t, err)
	assert.Equal(t, "token", m.Mode())
	assert.Equal(t, []string{"2", "1"}, m.Selected())
	assert.False(t, m.Empty())

	sel := m.Selected()
	sel[0] = "changed"
	assert.Equal(t, []string{"2", "1"}, m.Selected())

	_, err = NewMatcher("fuzzy", []string{"1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown matching mode")

	none, err := NewMatcher("token", nil)
	require.NoError(t, err)
	assert.True(t, none.Empty())
	assert.False(t, none.Match("1"))
}

// TestMatcherConcurrentUse tests that a matcher can be shared across goroutines.
func TestMatcherConcurrentUse(t *testing.T) {
	m, err := NewMatcher("word_boundary", []string{"7"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.True(t, m.Match("7, 8"))
				assert.False(t, m.Match("77"))
			}
		}()
	}
	wg.Wait()
}
