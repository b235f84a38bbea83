package utils

import (
	"regexp"
	"strings"
	"sync"
)

// regexCache stores compiled regex patterns to avoid recompilation.
// Word-boundary skill matching builds one pattern per selected token and
// evaluates it against every row, so patterns are compiled once per process.
var regexCache sync.Map

// CompileCached retrieves a compiled regex from cache or compiles and caches it.
//
// It performs the following operations:
//   - Step 1: Checks if pattern exists in cache with type-safe assertion
//   - Step 2: Returns cached regex if found and valid
//   - Step 3: Compiles new regex if not cached or cache entry is invalid
//   - Step 4: Stores compiled regex in cache for future use
//
// Parameters:
//   - pattern: The regex pattern string to compile
//
// Returns:
//   - *regexp.Regexp: The compiled regular expression
//   - error: Returns nil on success; returns compilation error if pattern is invalid
func CompileCached(pattern string) (*regexp.Regexp, error) {
	if cached, ok := regexCache.Load(pattern); ok {
		if re, typeOK := cached.(*regexp.Regexp); typeOK {
			return re, nil
		}
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	regexCache.Store(pattern, re)
	return re, nil
}

// Unique returns the input with duplicates removed, keeping first occurrences.
//
// Comparison is case-sensitive. The input slice is not modified.
//
// Parameters:
//   - values: Strings to de-duplicate
//
// Returns:
//   - []string: New slice with distinct values in original order
func Unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Contains checks if a string slice contains an item.
//
// Performs case-sensitive exact match comparison.
//
// Parameters:
//   - slice: The slice of strings to search
//   - item: The string to search for
//
// Returns:
//   - bool: true if item is found in slice, false otherwise
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// IndexFold returns the index of the first element equal to item ignoring
// case and surrounding whitespace, or -1.
//
// Parameters:
//   - slice: The slice of strings to search
//   - item: The string to search for
//
// Returns:
//   - int: Index of the match, or -1 if none
func IndexFold(slice []string, item string) int {
	item = strings.TrimSpace(item)
	for i, s := range slice {
		if strings.EqualFold(strings.TrimSpace(s), item) {
			return i
		}
	}
	return -1
}
