// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Span is a half-open rune range [Start, End) inside a matched label.
// The zero Span means no match.
type Span struct {
	Start int
	End   int
}

// Empty reports whether the span covers nothing.
func (span Span) Empty() bool { return span.End <= span.Start }

// matcher holds a lowered query and a reusable fzf slab. A matcher is
// used by one Filter call at a time.
type matcher struct {
	pattern []rune
	slab    *util.Slab
}

func newMatcher(query string) *matcher {
	return &matcher{
		pattern: []rune(strings.ToLower(query)),
		slab:    util.MakeSlab(100*1024, 2048),
	}
}

// match runs fzf's exact matcher in case-insensitive mode. fzf lowers
// the text itself; the pattern must already be lowercase.
func (m *matcher) match(text string) (Span, bool) {
	if len(m.pattern) == 0 {
		return Span{}, false
	}
	chars := util.ToChars([]byte(text))
	result, _ := algo.ExactMatchNaive(false, false, true, &chars, m.pattern, false, m.slab)
	if result.Start < 0 {
		return Span{}, false
	}
	return Span{Start: result.Start, End: result.End}, true
}
