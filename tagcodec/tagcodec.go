// Package tagcodec replaces inline tag tokens with single placeholder runes
// and maps offsets in the placeholder text back to the original text.
//
// Rules that work on character classes run on the stripped text, so a tag
// body of any length counts as exactly one character. Highlights they produce
// are translated back with MapToOriginal before being reported.
package tagcodec

import (
	"regexp"
	"unicode/utf8"
)

// Placeholder stands in for one inline tag. It is a control character:
// not a letter, digit, space or punctuation mark for any rule.
const Placeholder = '\x1a'

// placeholderWidth is the UTF-8 width of Placeholder.
const placeholderWidth = 1

// tokenRe matches placeholder tokens: {1} opens, {/1} closes, {1/} is self-closing.
var tokenRe = regexp.MustCompile(`\{/?[0-9]+/?\}`)

// Kind of a tag token.
type Kind int

const (
	KindInvalid Kind = iota
	KindOpen
	KindClose
	KindSelf
)

// Classify returns the kind of a tag token.
func Classify(token string) Kind {
	if !tokenRe.MatchString(token) || tokenRe.FindString(token) != token {
		return KindInvalid
	}
	switch {
	case token[1] == '/':
		return KindClose
	case token[len(token)-2] == '/':
		return KindSelf
	default:
		return KindOpen
	}
}

// Tokens returns every tag token in text order.
func Tokens(text string) []string {
	return tokenRe.FindAllString(text, -1)
}

// TokenIndexes returns the byte ranges of every tag token.
func TokenIndexes(text string) [][]int {
	return tokenRe.FindAllStringIndex(text, -1)
}

// Strip replaces each tag token with one Placeholder, preserving order and count.
func Strip(text string) string {
	return tokenRe.ReplaceAllLiteralString(text, string(Placeholder))
}

// StripRemove deletes tag tokens entirely.
func StripRemove(text string) string {
	return tokenRe.ReplaceAllLiteralString(text, "")
}

// MapToOriginal converts the stripped range [strippedIndex, strippedIndex+strippedLen)
// into a byte range of original. Tag positions are re-derived from original on
// every call. Indices at or past the stripped end clamp to len(original).
func MapToOriginal(strippedIndex, strippedLen int, original string) (start, end int) {
	if strippedIndex < 0 {
		strippedIndex = 0
	}
	if strippedLen < 0 {
		strippedLen = 0
	}
	wantStart := strippedIndex
	wantEnd := strippedIndex + strippedLen

	tags := tokenRe.FindAllStringIndex(original, -1)
	next := 0

	start, end = -1, -1
	stripped, pos := 0, 0
	for pos < len(original) {
		if start < 0 && stripped >= wantStart {
			start = pos
		}
		if stripped >= wantEnd {
			end = pos
			break
		}
		if next < len(tags) && tags[next][0] == pos {
			stripped += placeholderWidth
			pos = tags[next][1]
			next++
			continue
		}
		_, size := utf8.DecodeRuneInString(original[pos:])
		stripped += size
		pos += size
	}
	if start < 0 {
		start = len(original)
	}
	if end < 0 {
		end = len(original)
	}
	if end < start {
		end = start
	}
	return start, end
}
