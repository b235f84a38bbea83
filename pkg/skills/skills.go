// Package skills extracts and matches skill tokens stored in a delimited,
// multi-value table cell such as "1, 10; 21".
//
// Tokens are separated by ',' or ';' with optional whitespace. Every
// function here is pure and independent of how the table was loaded or how
// results are displayed.
package skills

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ajxudir/skillsearch/pkg/constants"
	"github.com/ajxudir/skillsearch/pkg/utils"
)

// wordClass is the set of runes counted as word characters on either side of
// a word_boundary match. RE2's \b only knows ASCII word characters, so the
// boundary is spelled out with Unicode classes instead.
const wordClass = `\p{L}\p{M}\p{N}_`

// isWordRune reports whether r belongs to wordClass.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsNumber(r)
}

// boundary returns the pattern asserting a word boundary next to edge, the
// first or last rune of a token. A word rune needs a non-word neighbour or
// the end of the text; a non-word rune needs a word neighbour.
func boundary(edge rune, before bool) string {
	if !isWordRune(edge) {
		return `[` + wordClass + `]`
	}
	if before {
		return `(?:^|[^` + wordClass + `])`
	}
	return `(?:[^` + wordClass + `]|$)`
}

// boundaryPattern builds the word_boundary regex for one token.
func boundaryPattern(token string) string {
	first, _ := utf8.DecodeRuneInString(token)
	last, _ := utf8.DecodeLastRuneInString(token)
	return boundary(first, true) + regexp.QuoteMeta(token) + boundary(last, false)
}

// isSeparator reports whether r delimits two tokens in a skill cell.
func isSeparator(r rune) bool {
	return r == ',' || r == ';'
}

// Split breaks a skill cell into its tokens.
//
// It performs the following operations:
//   - Splits on ',' and ';'
//   - Trims surrounding whitespace from each piece
//   - Drops empty pieces, so separator-only cells yield nothing
//
// Duplicates are kept in cell order; use Normalize to remove them.
//
// Parameters:
//   - cell: Raw skill cell text
//
// Returns:
//   - []string: Tokens in the order they appear; nil for blank cells
//
// Example:
//
//	skills.Split("1, 10;21 ,") // ["1", "10", "21"]
func Split(cell string) []string {
	var tokens []string
	for _, piece := range strings.FieldsFunc(cell, isSeparator) {
		if token := strings.TrimSpace(piece); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// Normalize trims, drops empty and de-duplicates tokens, keeping first occurrences.
//
// Parameters:
//   - raw: Tokens as entered or selected by the user
//
// Returns:
//   - []string: Distinct, trimmed, non-empty tokens in input order
func Normalize(raw []string) []string {
	trimmed := make([]string, 0, len(raw))
	for _, token := range raw {
		if token = strings.TrimSpace(token); token != "" {
			trimmed = append(trimmed, token)
		}
	}
	return utils.Unique(trimmed)
}

// ParseList parses a user-entered list such as "1,2; 3" into normalized tokens.
//
// Parameters:
//   - input: Delimited list using the same separators as skill cells
//
// Returns:
//   - []string: Distinct tokens in input order
func ParseList(input string) []string {
	return Normalize(Split(input))
}

// Vocabulary returns every distinct token found in the given cells, sorted.
//
// Comparison and ordering are case-sensitive and byte-wise, so "B" sorts
// before "a" and "10" before "9".
//
// Parameters:
//   - cells: Skill cells; blank cells contribute nothing
//
// Returns:
//   - []string: Sorted distinct tokens; empty (non-nil) when no tokens exist
func Vocabulary(cells []string) []string {
	seen := make(map[string]struct{})
	for _, cell := range cells {
		for _, token := range Split(cell) {
			seen[token] = struct{}{}
		}
	}

	vocab := make([]string, 0, len(seen))
	for token := range seen {
		vocab = append(vocab, token)
	}
	sort.Strings(vocab)
	return vocab
}

// Matcher decides whether a skill cell contains any of the selected tokens.
//
// A Matcher is immutable after construction and safe for concurrent use.
type Matcher struct {
	mode     string
	selected []string
	set      map[string]struct{}
	patterns []*regexp.Regexp
}

// NewMatcher builds a matcher for the selected tokens.
//
// Modes:
//   - "token" (or ""): the cell is split with Split and a row matches when any
//     cell token equals a selected token exactly
//   - "word_boundary": each selected token is searched for in the raw cell
//     text between word boundaries, where letters, marks, digits and '_' in
//     any script count as word characters
//
// Both modes reject partial numbers: "1" never matches a cell holding only
// "10" or "21". They differ for tokens with punctuation at the edges, e.g.
// "C#" matches "C#, Go" only in token mode.
//
// Parameters:
//   - mode: Matching mode name
//   - selected: Selected tokens; normalized before use
//
// Returns:
//   - *Matcher: Ready matcher
//   - error: Non-nil for unknown modes
func NewMatcher(mode string, selected []string) (*Matcher, error) {
	m := &Matcher{mode: mode, selected: Normalize(selected)}
	switch mode {
	case "", constants.MatchModeToken:
		m.mode = constants.MatchModeToken
		m.set = make(map[string]struct{}, len(m.selected))
		for _, token := range m.selected {
			m.set[token] = struct{}{}
		}
	case constants.MatchModeWordBoundary:
		m.patterns = make([]*regexp.Regexp, 0, len(m.selected))
		for _, token := range m.selected {
			re, err := utils.CompileCached(boundaryPattern(token))
			if err != nil {
				return nil, fmt.Errorf("compile pattern for skill %q: %w", token, err)
			}
			m.patterns = append(m.patterns, re)
		}
	default:
		return nil, fmt.Errorf("unknown matching mode %q (valid: %s, %s)",
			mode, constants.MatchModeToken, constants.MatchModeWordBoundary)
	}
	return m, nil
}

// Mode returns the effective matching mode.
func (m *Matcher) Mode() string {
	return m.mode
}

// Selected returns the normalized selected tokens.
func (m *Matcher) Selected() []string {
	return append([]string(nil), m.selected...)
}

// Empty reports whether no tokens are selected.
func (m *Matcher) Empty() bool {
	return len(m.selected) == 0
}

// Match reports whether cell contains at least one selected token.
//
// Blank cells never match, and a matcher with no selected tokens matches
// nothing; callers treat an empty selection as "no skill filter" before
// reaching Match.
//
// Parameters:
//   - cell: Raw skill cell text
//
// Returns:
//   - bool: true if any selected token is present as a whole token
func (m *Matcher) Match(cell string) bool {
	if strings.TrimSpace(cell) == "" {
		return false
	}

	if m.mode == constants.MatchModeWordBoundary {
		for _, re := range m.patterns {
			if re.MatchString(cell) {
				return true
			}
		}
		return false
	}

	for _, token := range Split(cell) {
		if _, ok := m.set[token]; ok {
			return true
		}
	}
	return false
}
