package rules

import (
	"strings"
	"testing"

	"github.com/minios-linux/qakit/qa"
)

func TestTerminology(t *testing.T) {
	s := settingsFor("en", "fr")
	tb := NewTermbase([]qa.GlossaryTerm{
		{Source: "hello", Target: "bonjour"},
		{Source: "Hello", Target: "salut"},
		{Source: "computer", Target: "computeur", Forbidden: true},
		{Source: "", Target: "ignored"},
	})
	if tb.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tb.Len())
	}

	t.Run("any rendering is accepted", func(t *testing.T) {
		if got := Terminology(seg("hello"), seg("salut"), tb, s); len(got) != 0 {
			t.Fatalf("issues = %v, want none", codesOf(got))
		}
	})

	t.Run("violation names the term", func(t *testing.T) {
		iss := onlyCode(t, Terminology(seg("hello"), seg("coucou"), tb, s), qa.CodeTerminologyViolation)
		if !strings.Contains(iss.Message, `"hello"`) {
			t.Fatalf("message %q does not name the term", iss.Message)
		}
		if iss.Severity != qa.SeverityError {
			t.Fatalf("severity = %s, want error", iss.Severity)
		}
	})

	t.Run("fewer renderings than occurrences", func(t *testing.T) {
		onlyCode(t, Terminology(seg("hello, hello"), seg("salut tout le monde"), tb, s), qa.CodeTerminologyCountMismatch)
	})

	t.Run("forbidden rendering", func(t *testing.T) {
		onlyCode(t, Terminology(seg("The cat"), seg("Le computeur"), tb, s), qa.CodeForbiddenTerm)
	})

	t.Run("nil termbase", func(t *testing.T) {
		if got := Terminology(seg("hello"), seg("coucou"), nil, s); got != nil {
			t.Fatalf("issues = %v, want nil", codesOf(got))
		}
	})
}

func TestUntranslatables(t *testing.T) {
	s := settingsFor("en", "fr")
	s.Untranslatables.Terms = []string{"API", "Google Play"}

	t.Run("count mismatch only", func(t *testing.T) {
		onlyCode(t, Untranslatables(seg("Use the API"), seg("Utilisez l'API et API"), s), qa.CodeUntranslatableCountMismatch)
	})

	t.Run("missing", func(t *testing.T) {
		onlyCode(t, Untranslatables(seg("Use the API"), seg("Utilisez l'interface"), s), qa.CodeUntranslatableMissing)
	})

	t.Run("unexpected", func(t *testing.T) {
		onlyCode(t, Untranslatables(seg("Hello"), seg("Bonjour API"), s), qa.CodeUntranslatableUnexpected)
	})

	t.Run("no-break space inside a term", func(t *testing.T) {
		if got := Untranslatables(seg("Open Google Play"), seg("Ouvrez Google\u00a0Play"), s); len(got) != 0 {
			t.Fatalf("issues = %v, want none", codesOf(got))
		}
	})

	t.Run("target scope ignores missing terms", func(t *testing.T) {
		scoped := *s
		scoped.Untranslatables.Scope = qa.ScopeTarget
		if got := Untranslatables(seg("Use the API"), seg("Utilisez l'interface"), &scoped); len(got) != 0 {
			t.Fatalf("issues = %v, want none", codesOf(got))
		}
	})
}

func TestDiscoverUntranslatables(t *testing.T) {
	sources := []string{
		"Open the config-file",
		"Use JavaScript and USB",
		"Open the config-file again",
	}
	got := DiscoverUntranslatables(sources, []string{"usb"})
	want := []Candidate{{Term: "config-file", Count: 2}, {Term: "JavaScript", Count: 1}}
	if len(got) != len(want) {
		t.Fatalf("DiscoverUntranslatables() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("DiscoverUntranslatables()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	t.Run("reads only the first segments", func(t *testing.T) {
		many := make([]string, DiscoveryLimit+1)
		many[DiscoveryLimit] = "Only NASA here"
		if got := DiscoverUntranslatables(many, nil); len(got) != 0 {
			t.Fatalf("DiscoverUntranslatables() = %+v, want none", got)
		}
	})
}

func TestForbiddenWords(t *testing.T) {
	words, errs := CompileForbiddenWords([]string{"click here", "(bad", `^Note`, " "})
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want one compile error", errs)
	}
	if len(words) != 2 {
		t.Fatalf("compiled %d expressions, want 2", len(words))
	}

	if got := ForbiddenWords(seg("Tap"), seg("Please click here"), words, true); len(got) != 1 {
		t.Fatalf("issues = %v, want one", codesOf(got))
	}
	if got := ForbiddenWords(seg("click here"), seg("Please click here"), words, true); len(got) != 0 {
		t.Fatalf("issues = %v, want none when the source has it", codesOf(got))
	}
	if got := ForbiddenWords(seg("Tap"), seg("Please clicking here"), words, true); len(got) != 0 {
		t.Fatalf("issues = %v, want none for a partial word", codesOf(got))
	}
	if got := ForbiddenWords(seg("Tip"), seg("Note: x"), words, true); len(got) != 1 {
		t.Fatalf("issues = %v, want the anchored expression to match", codesOf(got))
	}

	t.Run("expressions are independent", func(t *testing.T) {
		words, _ := CompileForbiddenWords([]string{"foo", "foo bar"})
		issues := ForbiddenWords(seg("foo"), seg("foo bar"), words, true)
		iss := onlyCode(t, issues, qa.CodeForbiddenWord)
		if !strings.Contains(iss.Message, "foo bar") {
			t.Fatalf("message = %q, want the longer expression", iss.Message)
		}
	})
}

func TestCustomRules(t *testing.T) {
	rules, errs := CompileCustomRules([]qa.CustomRule{
		{ID: "click", Name: "Keep click", SourcePattern: "click", TargetPattern: "cliquez", WholeWord: true, Condition: qa.ConditionSourceOnly},
		{ID: "broken", Name: "Broken", SourcePattern: "(", Regex: true, Condition: qa.ConditionBothPresent},
		{ID: "odd", Name: "Odd", SourcePattern: "x", Condition: "sometimes"},
		{ID: "empty", Name: "Empty"},
		{ID: "off", Name: "Off", SourcePattern: "x", Disabled: true},
		{ID: "caps", Name: "Caps", TargetPattern: "OK", CaseSensitive: true, Condition: qa.ConditionTargetOnly, Severity: qa.SeverityError},
	})
	if len(errs) != 3 {
		t.Fatalf("errs = %v, want 3", errs)
	}
	if len(rules) != 2 {
		t.Fatalf("compiled %d rules, want 2", len(rules))
	}

	t.Run("source only", func(t *testing.T) {
		iss := onlyCode(t, CustomRules(seg("click it"), seg("appuyez"), rules), qa.CodeCustomRule)
		if iss.RuleID != "click" {
			t.Fatalf("RuleID = %q, want %q", iss.RuleID, "click")
		}
		if iss.Severity != qa.SeverityWarning {
			t.Fatalf("severity = %s, want default warning", iss.Severity)
		}
	})

	t.Run("condition not met", func(t *testing.T) {
		if got := CustomRules(seg("click it"), seg("cliquez"), rules); len(got) != 0 {
			t.Fatalf("issues = %v, want none", codesOf(got))
		}
	})

	t.Run("case sensitive target only", func(t *testing.T) {
		iss := onlyCode(t, CustomRules(seg("fine"), seg("OK"), rules), qa.CodeCustomRule)
		if iss.Severity != qa.SeverityError {
			t.Fatalf("severity = %s, want error", iss.Severity)
		}
		if got := CustomRules(seg("fine"), seg("ok"), rules); len(got) != 0 {
			t.Fatalf("issues = %v, want none for different case", codesOf(got))
		}
	})
}
