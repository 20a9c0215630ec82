package pattern

import (
	"errors"
	"testing"
)

func TestCompileLiteralWholeWord(t *testing.T) {
	p, err := Compile("API", Options{WholeWord: true})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	cases := []struct {
		in   string
		want int
	}{
		{in: "The API and the api", want: 2},
		{in: "APIs are not counted", want: 0},
		{in: "RAPID", want: 0},
		{in: "l'API", want: 1},
		{in: "Über-API", want: 1},
		{in: "ÉAPI", want: 0},
	}

	for _, tc := range cases {
		if got := p.Count(tc.in); got != tc.want {
			t.Fatalf("Count(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestCompileRetriesAfterRejectedMatch(t *testing.T) {
	p, err := Compile("ab", Options{WholeWord: true})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	got := p.FindAll("xab ab")
	if len(got) != 1 || got[0][0] != 4 {
		t.Fatalf("FindAll = %v, want [[4 6]]", got)
	}
}

func TestCompileCaseSensitive(t *testing.T) {
	p, err := Compile("Save", Options{CaseSensitive: true})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if p.Match("save") {
		t.Fatal("case-sensitive pattern matched lowercase text")
	}
	if !p.Match("Save") {
		t.Fatal("case-sensitive pattern did not match exact text")
	}
}

func TestCompileErrors(t *testing.T) {
	if _, err := Compile("  ", Options{}); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Compile(blank) error = %v, want ErrEmpty", err)
	}
	if _, err := Compile("(unclosed", Options{Regex: true}); err == nil {
		t.Fatal("Compile(invalid regex) returned nil error")
	}
	if _, err := Compile("(literal", Options{}); err != nil {
		t.Fatalf("Compile(literal with paren) error = %v", err)
	}
}

func TestAlternationLongestFirstAndNBSP(t *testing.T) {
	p, err := Alternation([]string{"Google", "Google Play", ""}, Options{WholeWord: true})
	if err != nil {
		t.Fatalf("Alternation: %v", err)
	}
	in := "Open Google\u00a0Play now"
	got := p.FindAll(in)
	if len(got) != 1 {
		t.Fatalf("FindAll(%q) = %v, want one match", in, got)
	}
	if m := in[got[0][0]:got[0][1]]; m != "Google\u00a0Play" {
		t.Fatalf("match = %q, want %q", m, "Google\u00a0Play")
	}
}

func TestAtWordBoundary(t *testing.T) {
	s := "C++ rocks"
	if !AtWordBoundary(s, 0, 3) {
		t.Fatal("C++ should sit on a boundary")
	}
	if AtWordBoundary("abc", 1, 2) {
		t.Fatal("inner letter should not sit on a boundary")
	}
}
