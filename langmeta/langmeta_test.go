package langmeta

import "testing"

func TestFlagFromRegion(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "us", want: "\U0001F1FA\U0001F1F8"},
		{in: "BR", want: "\U0001F1E7\U0001F1F7"},
		{in: "USA", want: ""},
		{in: "1A", want: ""},
		{in: "", want: ""},
	}

	for _, tc := range cases {
		if got := FlagFromRegion(tc.in); got != tc.want {
			t.Fatalf("FlagFromRegion(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Run("native name", func(t *testing.T) {
		got := Resolve("de")
		if got.Name != "Deutsch" || got.Flag != "\U0001F1E9\U0001F1EA" {
			t.Fatalf("unexpected result: %#v", got)
		}
	})

	t.Run("normalized region", func(t *testing.T) {
		got := Resolve("pt_br")
		if got.Tag != "pt-BR" || got.Flag != "\U0001F1E7\U0001F1F7" {
			t.Fatalf("unexpected result: %#v", got)
		}
	})

	t.Run("explicit region wins", func(t *testing.T) {
		got := Resolve("fr-LU")
		if got.Flag != "\U0001F1F1\U0001F1FA" {
			t.Fatalf("unexpected flag: %#v", got)
		}
	})

	t.Run("unknown passthrough", func(t *testing.T) {
		got := Resolve("not a tag")
		if got.Name != "not a tag" || got.Flag != "" {
			t.Fatalf("unexpected unknown result: %#v", got)
		}
	})
}

func TestLabel(t *testing.T) {
	if got := Label("fr"); got != "français (fr)" {
		t.Fatalf("Label(fr) = %q, want %q", got, "français (fr)")
	}
	if got := Label(""); got != "" {
		t.Fatalf("Label(empty) = %q, want empty", got)
	}
}
