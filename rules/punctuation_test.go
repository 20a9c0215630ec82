package rules

import (
	"strings"
	"testing"

	"github.com/minios-linux/qakit/qa"
)

func bracketIssues(issues []qa.Issue) int {
	return countCode(issues, qa.CodeBracketUnmatchedClosing) +
		countCode(issues, qa.CodeBracketMismatchedPair) +
		countCode(issues, qa.CodeBracketUnclosed)
}

func TestBrackets(t *testing.T) {
	s := settingsFor("en", "en")

	cases := []struct {
		name string
		src  string
		tgt  string
		code qa.Code
		want int
	}{
		{name: "well nested", src: "(a [b] {c})", tgt: "(a [b] {c})"},
		{name: "unmatched closer", src: "a b", tgt: "a) b", code: qa.CodeBracketUnmatchedClosing, want: 1},
		{name: "mismatched pair", src: "a", tgt: "(a]", code: qa.CodeBracketMismatchedPair, want: 1},
		{name: "unclosed", src: "a", tgt: "(a", code: qa.CodeBracketUnclosed, want: 1},
		{name: "unbalanced source disables check", src: "a)", tgt: "b)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			issues := Punctuation(seg(tc.src), seg(tc.tgt), s)
			if got := bracketIssues(issues); got != tc.want {
				t.Fatalf("bracket issues for %q = %d, want %d (%v)", tc.tgt, got, tc.want, codesOf(issues))
			}
			if tc.want > 0 && countCode(issues, tc.code) != tc.want {
				t.Fatalf("issues = %v, want %d %s", codesOf(issues), tc.want, tc.code)
			}
		})
	}
}

func TestEndPunctuation(t *testing.T) {
	fr := settingsFor("en", "fr")
	ignore := fr.Punctuation.EndIgnore

	t.Run("missing mark highlights target end", func(t *testing.T) {
		iss, ok := EndPunctuation(seg("Save."), seg("Enregistrer"), ignore)
		if !ok {
			t.Fatal("expected an end punctuation issue")
		}
		if len(iss.TargetHighlights) != 1 || iss.TargetHighlights[0] != (qa.Highlight{Start: 10, End: 11}) {
			t.Fatalf("target highlights = %+v, want [{10 11}]", iss.TargetHighlights)
		}
	})

	t.Run("empty target highlights source end", func(t *testing.T) {
		iss, ok := EndPunctuation(seg("Save."), seg(""), ignore)
		if !ok {
			t.Fatal("expected an end punctuation issue")
		}
		if len(iss.TargetHighlights) != 0 {
			t.Fatalf("target highlights = %+v, want none", iss.TargetHighlights)
		}
		if len(iss.SourceHighlights) != 1 || iss.SourceHighlights[0] != (qa.Highlight{Start: 4, End: 5}) {
			t.Fatalf("source highlights = %+v, want [{4 5}]", iss.SourceHighlights)
		}
	})

	t.Run("full width period", func(t *testing.T) {
		if _, ok := EndPunctuation(seg("Done."), seg("完了。"), ignore); ok {
			t.Fatal("full-width period should match a period")
		}
	})

	t.Run("closing quotes are skipped", func(t *testing.T) {
		if _, ok := EndPunctuation(seg(`Say "hi."`), seg("Dis « salut.\u00a0»"), ignore); ok {
			t.Fatal("trailing quotes should be ignored")
		}
	})

	t.Run("tags are skipped", func(t *testing.T) {
		if _, ok := EndPunctuation(seg("Save.{1/}"), seg("Enregistrer.{1/}"), ignore); ok {
			t.Fatal("trailing tags should be ignored")
		}
	})
}

func TestSpacingAndRepeats(t *testing.T) {
	en := settingsFor("en", "en")
	fr := settingsFor("en", "fr")

	cases := []struct {
		name string
		s    *qa.Settings
		src  string
		tgt  string
		code qa.Code
		want int
	}{
		{name: "multiple spaces", s: en, src: "Hello world", tgt: "Hello  world", code: qa.CodeMultipleSpaces, want: 1},
		{name: "multiple spaces as in source", s: en, src: "Hello  world", tgt: "Hello  world", code: qa.CodeMultipleSpaces},
		{name: "double question mark", s: en, src: "Really?", tgt: "Really??", code: qa.CodeDoublePunctuation, want: 1},
		{name: "ellipsis", s: en, src: "Wait...", tgt: "Wait...", code: qa.CodeDoublePunctuation},
		{name: "space before comma", s: en, src: "Hello, world", tgt: "Hello , world", code: qa.CodeNoSpaceBefore, want: 1},
		{name: "decimal comma", s: en, src: "1,5", tgt: "1,5", code: qa.CodeSpaceAfter},
		{name: "french colon without nbsp", s: fr, src: "Warning: danger", tgt: "Attention: danger", code: qa.CodeNBSPBefore, want: 1},
		{name: "french colon with nbsp", s: fr, src: "Warning: danger", tgt: "Attention\u00a0: danger", code: qa.CodeNBSPBefore},
		{name: "french colon in url", s: fr, src: "http://x.org", tgt: "http://x.org", code: qa.CodeNBSPBefore},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			issues := Punctuation(seg(tc.src), seg(tc.tgt), tc.s)
			if got := countCode(issues, tc.code); got != tc.want {
				t.Fatalf("%s issues for %q = %d, want %d (%v)", tc.code, tc.tgt, got, tc.want, codesOf(issues))
			}
		})
	}
}

func TestQuotes(t *testing.T) {
	fr := settingsFor("en", "fr")
	en := settingsFor("en", "en")

	t.Run("unclosed guillemet", func(t *testing.T) {
		onlyCode(t, Quotes(seg(`He said "hello"`), seg("Il a dit « bonjour"), fr), qa.CodeQuoteUnclosed)
	})

	t.Run("mismatched pair", func(t *testing.T) {
		iss := onlyCode(t, Quotes(seg(`He said "hello"`), seg("Il a dit « bonjour ”"), fr), qa.CodeQuoteMismatched)
		if len(iss.TargetHighlights) != 2 {
			t.Fatalf("target highlights = %+v, want opener and closer", iss.TargetHighlights)
		}
	})

	t.Run("balanced guillemets", func(t *testing.T) {
		if got := Quotes(seg(`He said "hello"`), seg("Il a dit «\u00a0bonjour\u00a0»"), fr); len(got) != 0 {
			t.Fatalf("issues = %v, want none", codesOf(got))
		}
	})

	t.Run("backtick apostrophe", func(t *testing.T) {
		onlyCode(t, Quotes(seg("the plane"), seg("l`avion"), fr), qa.CodeApostropheNotAllowed)
	})

	t.Run("typographic apostrophe", func(t *testing.T) {
		if got := Quotes(seg("the plane"), seg("l’avion"), fr); len(got) != 0 {
			t.Fatalf("issues = %v, want none", codesOf(got))
		}
	})

	t.Run("trailing possessive apostrophe", func(t *testing.T) {
		if got := Quotes(seg("the students’ books"), seg("the students’ books"), en); len(got) != 0 {
			t.Fatalf("issues = %v, want none", codesOf(got))
		}
	})
}

func TestTags(t *testing.T) {
	s := settingsFor("en", "fr")

	t.Run("count mismatch", func(t *testing.T) {
		iss := onlyCode(t, Tags(seg("Click {1}here{/1}"), seg("Cliquez ici"), s), qa.CodeTagCountMismatch)
		if len(iss.SourceHighlights) != 2 {
			t.Fatalf("source highlights = %+v, want both tags", iss.SourceHighlights)
		}
	})

	t.Run("different tag", func(t *testing.T) {
		iss := onlyCode(t, Tags(seg("{1}a"), seg("{2}a"), s), qa.CodeTagMismatch)
		if iss.SourceHighlights[0] != (qa.Highlight{Start: 0, End: 3}) {
			t.Fatalf("source highlight = %+v, want {0 3}", iss.SourceHighlights[0])
		}
	})

	t.Run("order", func(t *testing.T) {
		issues := Tags(seg("{1}a{/1} {2}b{/2}"), seg("{2}b{/2} {1}a{/1}"), s)
		if countCode(issues, qa.CodeTagOrder) != 1 {
			t.Fatalf("issues = %v, want one %s", codesOf(issues), qa.CodeTagOrder)
		}
		if countCode(issues, qa.CodeTagMismatch)+countCode(issues, qa.CodeTagCountMismatch) != 0 {
			t.Fatalf("issues = %v, want no identity issues", codesOf(issues))
		}
	})

	t.Run("spacing", func(t *testing.T) {
		onlyCode(t, Tags(seg("Click {1}here"), seg("Cliquez{1}ici"), s), qa.CodeTagSpacing)
	})

	t.Run("crossed pairs", func(t *testing.T) {
		issues := Tags(seg("{1}a{2}b{/2}{/1}"), seg("{1}a{2}b{/1}{/2}"), s)
		if countCode(issues, qa.CodeTagPairing) != 1 {
			t.Fatalf("issues = %v, want one %s", codesOf(issues), qa.CodeTagPairing)
		}
		for _, iss := range issues {
			if iss.Code == qa.CodeTagPairing && len(iss.TargetHighlights) != 2 {
				t.Fatalf("target highlights = %+v, want {1} and {/1}", iss.TargetHighlights)
			}
		}
	})

	t.Run("pairing off", func(t *testing.T) {
		off := settingsFor("en", "fr")
		off.Tags.Pairing = false
		if issues := Tags(seg("{1}a{2}b{/2}{/1}"), seg("{1}a{2}b{/1}{/2}"), off); countCode(issues, qa.CodeTagPairing) != 0 {
			t.Fatalf("issues = %v, want no %s", codesOf(issues), qa.CodeTagPairing)
		}
	})

	t.Run("raw markup in messages", func(t *testing.T) {
		src := qa.Segment{Text: "{1}a", Tags: []qa.Tag{{ID: "{1}", Kind: qa.TagOpen, RawContent: "<b>"}}}
		iss := onlyCode(t, Tags(src, seg("{2}a"), s), qa.CodeTagMismatch)
		if !strings.Contains(iss.Message, "<b>") {
			t.Fatalf("message = %q, want the raw markup", iss.Message)
		}
	})

	t.Run("entities", func(t *testing.T) {
		issues := Tags(seg("A &amp; B"), seg("A & B &bogus;"), s)
		if countCode(issues, qa.CodeEntityMalformed) != 1 || countCode(issues, qa.CodeEntityMissing) != 1 || len(issues) != 2 {
			t.Fatalf("issues = %v, want one malformed and one missing entity", codesOf(issues))
		}
	})
}
