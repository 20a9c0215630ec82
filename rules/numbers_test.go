package rules

import (
	"regexp"
	"testing"

	"github.com/minios-linux/qakit/qa"
)

func TestNumbersLocaleSeparators(t *testing.T) {
	s := settingsFor("en", "es")
	if got := Numbers(seg("1,000 items"), seg("1.000 artículos"), s); len(got) != 0 {
		t.Fatalf("issues = %v, want none", codesOf(got))
	}

	s.Numbers.Target.Decimal = "."
	s.Numbers.Target.Thousands = ","
	got := Numbers(seg("1,000 items"), seg("1.000 artículos"), s)
	if countCode(got, qa.CodeNumberThousandSeparator) != 1 {
		t.Fatalf("issues = %v, want a thousands separator issue", codesOf(got))
	}
}

func TestNumbers(t *testing.T) {
	en := settingsFor("en", "en")
	fr := settingsFor("en", "fr")
	de := settingsFor("en", "de")
	spelled := settingsFor("en", "fr")
	spelled.Numbers.SpelledOut = true

	cases := []struct {
		name string
		s    *qa.Settings
		src  string
		tgt  string
		want []qa.Code
	}{
		{name: "changed number", s: fr, src: "Delete 3 files", tgt: "Supprimer 4 fichiers", want: []qa.Code{qa.CodeNumberMismatch}},
		{name: "minus signs", s: fr, src: "Temperature -5", tgt: "Température −5"},
		{name: "hyphen is not a sign", s: fr, src: "COVID-19 info", tgt: "Infos COVID-19"},
		{name: "imperial aside dropped", s: fr, src: "Height 2 m (6 ft)", tgt: "Hauteur 2 m"},
		{name: "wrong range symbol", s: en, src: "Pages 1–5", tgt: "Pages 1-5", want: []qa.Code{qa.CodeRangeSymbol}},
		{name: "spaced range", s: en, src: "Pages 1–5", tgt: "Pages 1 – 5", want: []qa.Code{qa.CodeRangeSpacing}},
		{name: "dates are not ranges", s: en, src: "Date 2024-01-05", tgt: "Date 2024-01-05"},
		{name: "spelled out number", s: spelled, src: "three files", tgt: "3 fichiers"},
		{name: "version numbers", s: de, src: "Version 1.2.3", tgt: "Version 1.2.3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := codesOf(Numbers(seg(tc.src), seg(tc.tgt), tc.s))
			if len(got) != len(tc.want) {
				t.Fatalf("Numbers(%q, %q) = %v, want %v", tc.src, tc.tgt, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("Numbers(%q, %q) = %v, want %v", tc.src, tc.tgt, got, tc.want)
				}
			}
		})
	}

	t.Run("mismatch highlights", func(t *testing.T) {
		iss := onlyCode(t, Numbers(seg("Delete 3 files"), seg("Supprimer 4 fichiers"), fr), qa.CodeNumberMismatch)
		if iss.SourceHighlights[0] != (qa.Highlight{Start: 7, End: 8}) {
			t.Fatalf("source highlight = %+v, want {7 8}", iss.SourceHighlights[0])
		}
		if iss.TargetHighlights[0] != (qa.Highlight{Start: 10, End: 11}) {
			t.Fatalf("target highlight = %+v, want {10 11}", iss.TargetHighlights[0])
		}
	})

	t.Run("wrong decimal separator", func(t *testing.T) {
		got := Numbers(seg("2.5 kg"), seg("2.5 kg"), de)
		if countCode(got, qa.CodeNumberDecimalSeparator) != 1 {
			t.Fatalf("issues = %v, want a decimal separator issue", codesOf(got))
		}
	})
}

func TestNumbersHyphenInFormat(t *testing.T) {
	t.Run("hyphen among minus signs", func(t *testing.T) {
		s := settingsFor("en", "fr")
		s.Numbers.Target.MinusSigns = "\u2010-\u2212"
		if got := Numbers(seg("Price: €5"), seg("Prix : €5"), s); countCode(got, qa.CodeNumberMismatch) != 0 {
			t.Fatalf("issues = %v, want no number mismatch", codesOf(got))
		}
		if got := Numbers(seg("Temperature -5"), seg("Température \u22125"), s); countCode(got, qa.CodeNumberMismatch) != 0 {
			t.Fatalf("issues = %v, want minus signs still read", codesOf(got))
		}
	})

	t.Run("hyphen among separators", func(t *testing.T) {
		s := settingsFor("en", "fr")
		s.Numbers.Target.Decimal = "-"
		s.Numbers.Target.Thousands = "."
		got := Numbers(seg("Delete 3 files"), seg("Supprimer 4 fichiers"), s)
		if countCode(got, qa.CodeNumberMismatch) != 1 {
			t.Fatalf("issues = %v, want the mismatch still found", codesOf(got))
		}
	})
}

func TestCharClass(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "\u2010-\u2212", want: "\u2010\\-\u2212"},
		{in: `a]^\`, want: `a\]\^\\`},
		{in: "..,", want: ".,"},
		{in: "", want: ""},
	}
	for _, tc := range cases {
		if got := charClass(tc.in); got != tc.want {
			t.Fatalf("charClass(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if _, err := regexp.Compile("[" + charClass(tc.in) + "x]"); err != nil {
			t.Fatalf("charClass(%q) does not compile: %v", tc.in, err)
		}
	}
}

func TestParseNumber(t *testing.T) {
	en := settingsFor("en", "en").Numbers.Target

	cases := []struct {
		in   string
		want float64
	}{
		{in: "1,000", want: 1000},
		{in: "1,000.5", want: 1000.5},
		{in: "1.000,5", want: 1000.5},
		{in: "3.14", want: 3.14},
		{in: "1\u00a0000", want: 1000},
		{in: "42", want: 42},
	}
	for _, tc := range cases {
		got, ok := parseNumber(tc.in, en)
		if !ok || !sameValue(got, tc.want) {
			t.Fatalf("parseNumber(%q) = %v, %v, want %v", tc.in, got, ok, tc.want)
		}
	}
}

func TestMeasurements(t *testing.T) {
	fr := settingsFor("en", "fr")

	cases := []struct {
		name string
		src  string
		tgt  string
		want []qa.Code
	}{
		{name: "plain space where nbsp expected", src: "Weighs 5 kg", tgt: "Pèse 5 kg", want: []qa.Code{qa.CodeMeasurementSpacing}},
		{name: "nbsp", src: "Weighs 5 kg", tgt: "Pèse 5\u00a0kg"},
		{name: "unit changed", src: "5 kg", tgt: "5\u00a0g", want: []qa.Code{qa.CodeMeasurementMismatch}},
		{name: "unit prefix of a word", src: "Wait 5 minutes", tgt: "Attendez 5 minutes"},
		{name: "temperature changed", src: "Heat to 20 °C", tgt: "Chauffer à 20\u00a0°F", want: []qa.Code{qa.CodeTemperatureMismatch}},
		{name: "temperature without nbsp", src: "Heat to 20°C", tgt: "Chauffer à 20°C", want: []qa.Code{qa.CodeTemperatureSpacing}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := codesOf(Measurements(seg(tc.src), seg(tc.tgt), fr))
			if len(got) != len(tc.want) {
				t.Fatalf("Measurements(%q, %q) = %v, want %v", tc.src, tc.tgt, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("Measurements(%q, %q) = %v, want %v", tc.src, tc.tgt, got, tc.want)
				}
			}
		})
	}
}
