package preset

import "github.com/minios-linux/qakit/qa"

// ---------------------------------------------------------------------------
// Punctuation
// ---------------------------------------------------------------------------

// PunctuationPreset is the spacing grid and end-punctuation ignore set of a locale.
type PunctuationPreset struct {
	Grid      qa.SpacingGrid `yaml:"grid"`
	EndIgnore string         `yaml:"end_ignore"`
}

const baseEndIgnore = "\"'”’»«“‘)]} \t\n\u00a0\u202f"

var latinGrid = qa.SpacingGrid{
	NoSpaceBefore: ".,;:!?)]}",
	NoSpaceAfter:  "([{",
	SpaceAfter:    ",;",
}

// Punctuation is keyed by locale tag.
var Punctuation = map[string]PunctuationPreset{
	"en": {Grid: latinGrid, EndIgnore: baseEndIgnore},
	"de": {Grid: latinGrid, EndIgnore: baseEndIgnore + "„‚"},
	"it": {Grid: latinGrid, EndIgnore: baseEndIgnore},
	"pt": {Grid: latinGrid, EndIgnore: baseEndIgnore},
	"nl": {Grid: latinGrid, EndIgnore: baseEndIgnore},
	"pl": {Grid: latinGrid, EndIgnore: baseEndIgnore + "„"},
	"ru": {Grid: latinGrid, EndIgnore: baseEndIgnore + "„"},
	"uk": {Grid: latinGrid, EndIgnore: baseEndIgnore + "„"},
	"es": {
		Grid: qa.SpacingGrid{
			NoSpaceBefore: ".,;:!?)]}",
			NoSpaceAfter:  "¿¡([{",
			SpaceAfter:    ",;",
		},
		EndIgnore: baseEndIgnore,
	},
	"fr": {
		Grid: qa.SpacingGrid{
			NoSpaceBefore: ".,)]}",
			NoSpaceAfter:  "([{",
			SpaceAfter:    ",",
			NBSPBefore:    ";:!?»",
			NBSPAfter:     "«",
		},
		EndIgnore: baseEndIgnore,
	},
	"fr-CA": {
		Grid: qa.SpacingGrid{
			NoSpaceBefore: ".,;!?)]}",
			NoSpaceAfter:  "([{",
			SpaceAfter:    ",",
			NBSPBefore:    ":»",
			NBSPAfter:     "«",
		},
		EndIgnore: baseEndIgnore,
	},
	"ja": {
		Grid: qa.SpacingGrid{
			NoSpaceBefore: "。、，！？）」』",
			NoSpaceAfter:  "。、，（「『",
		},
		EndIgnore: baseEndIgnore + "」』）",
	},
	"zh": {
		Grid: qa.SpacingGrid{
			NoSpaceBefore: "。，、；：！？）」』",
			NoSpaceAfter:  "。，、；：（「『",
		},
		EndIgnore: baseEndIgnore + "」』）",
	},
}

// ---------------------------------------------------------------------------
// Quotes
// ---------------------------------------------------------------------------

// QuotePreset lists the quote pairs and apostrophe glyphs of a locale.
type QuotePreset struct {
	Pairs       []qa.Pair `yaml:"pairs"`
	Apostrophes string    `yaml:"apostrophes"`
}

var straightDouble = qa.Pair{Open: "\"", Close: "\""}

// Quotes is keyed by locale tag.
var Quotes = map[string]QuotePreset{
	"en": {
		Pairs:       []qa.Pair{{Open: "“", Close: "”"}, {Open: "‘", Close: "’"}, straightDouble},
		Apostrophes: "'’",
	},
	"fr": {
		Pairs:       []qa.Pair{{Open: "«", Close: "»"}, {Open: "“", Close: "”"}, straightDouble},
		Apostrophes: "'’",
	},
	"de": {
		Pairs:       []qa.Pair{{Open: "„", Close: "“"}, {Open: "‚", Close: "‘"}, {Open: "»", Close: "«"}, straightDouble},
		Apostrophes: "'’",
	},
	"de-CH": {
		Pairs:       []qa.Pair{{Open: "«", Close: "»"}, {Open: "‹", Close: "›"}, straightDouble},
		Apostrophes: "'’",
	},
	"es": {
		Pairs:       []qa.Pair{{Open: "«", Close: "»"}, {Open: "“", Close: "”"}, straightDouble},
		Apostrophes: "'’",
	},
	"it": {
		Pairs:       []qa.Pair{{Open: "«", Close: "»"}, {Open: "“", Close: "”"}, straightDouble},
		Apostrophes: "'’",
	},
	"pt": {
		Pairs:       []qa.Pair{{Open: "“", Close: "”"}, {Open: "«", Close: "»"}, straightDouble},
		Apostrophes: "'’",
	},
	"pl": {
		Pairs:       []qa.Pair{{Open: "„", Close: "”"}, {Open: "«", Close: "»"}, straightDouble},
		Apostrophes: "'’",
	},
	"ru": {
		Pairs:       []qa.Pair{{Open: "«", Close: "»"}, {Open: "„", Close: "“"}, straightDouble},
		Apostrophes: "'’",
	},
	"uk": {
		Pairs:       []qa.Pair{{Open: "«", Close: "»"}, {Open: "„", Close: "“"}, straightDouble},
		Apostrophes: "'’ʼ",
	},
	"sv": {
		Pairs:       []qa.Pair{{Open: "”", Close: "”"}, {Open: "’", Close: "’"}, straightDouble},
		Apostrophes: "'’",
	},
	"ja": {
		Pairs:       []qa.Pair{{Open: "「", Close: "」"}, {Open: "『", Close: "』"}, straightDouble},
		Apostrophes: "'’",
	},
	"zh": {
		Pairs:       []qa.Pair{{Open: "“", Close: "”"}, {Open: "‘", Close: "’"}, {Open: "「", Close: "」"}, straightDouble},
		Apostrophes: "'’",
	},
}

// ---------------------------------------------------------------------------
// Numbers
// ---------------------------------------------------------------------------

var englishWords = map[string]float64{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

// Numbers is keyed by locale tag. Words omit forms that double as articles.
var Numbers = map[string]qa.NumberFormat{
	"en": {
		Decimal: ".", Thousands: ",", ThousandsPolicy: qa.ThousandsOptional,
		MinusSigns: "-−", RangeSymbol: "–", RangeSpacing: qa.SpacingNone,
		Words: englishWords,
	},
	"de": {
		Decimal: ",", Thousands: ".", ThousandsPolicy: qa.ThousandsOptional,
		MinusSigns: "-−", RangeSymbol: "–", RangeSpacing: qa.SpacingNone,
		Words: map[string]float64{
			"zwei": 2, "drei": 3, "vier": 4, "fünf": 5, "sechs": 6, "sieben": 7,
			"acht": 8, "neun": 9, "zehn": 10, "elf": 11, "zwölf": 12,
		},
	},
	"de-CH": {
		Decimal: ".", Thousands: "’", ThousandsPolicy: qa.ThousandsOptional,
		MinusSigns: "-−", RangeSymbol: "–", RangeSpacing: qa.SpacingNone,
	},
	"fr": {
		Decimal: ",", Thousands: "\u202f", ThousandsPolicy: qa.ThousandsOptional,
		MinusSigns: "-−", RangeSymbol: "–", RangeSpacing: qa.SpacingNone,
		Words: map[string]float64{
			"deux": 2, "trois": 3, "quatre": 4, "cinq": 5, "six": 6, "sept": 7,
			"huit": 8, "neuf": 9, "dix": 10, "onze": 11, "douze": 12,
		},
	},
	"es": {
		Decimal: ",", Thousands: ".", ThousandsPolicy: qa.ThousandsOptional,
		MinusSigns: "-−", RangeSymbol: "-", RangeSpacing: qa.SpacingNone,
		Words: map[string]float64{
			"dos": 2, "tres": 3, "cuatro": 4, "cinco": 5, "seis": 6, "siete": 7,
			"ocho": 8, "nueve": 9, "diez": 10, "once": 11, "doce": 12,
		},
	},
	"it": {
		Decimal: ",", Thousands: ".", ThousandsPolicy: qa.ThousandsOptional,
		MinusSigns: "-−", RangeSymbol: "-", RangeSpacing: qa.SpacingNone,
	},
	"pt": {
		Decimal: ",", Thousands: ".", ThousandsPolicy: qa.ThousandsOptional,
		MinusSigns: "-−", RangeSymbol: "-", RangeSpacing: qa.SpacingNone,
	},
	"pt-BR": {
		Decimal: ",", Thousands: ".", ThousandsPolicy: qa.ThousandsOptional,
		MinusSigns: "-−", RangeSymbol: "-", RangeSpacing: qa.SpacingNone,
	},
	"nl": {
		Decimal: ",", Thousands: ".", ThousandsPolicy: qa.ThousandsOptional,
		MinusSigns: "-−", RangeSymbol: "-", RangeSpacing: qa.SpacingNone,
	},
	"pl": {
		Decimal: ",", Thousands: "\u00a0", ThousandsPolicy: qa.ThousandsOptional,
		MinusSigns: "-−", RangeSymbol: "–", RangeSpacing: qa.SpacingNone,
	},
	"ru": {
		Decimal: ",", Thousands: "\u00a0", ThousandsPolicy: qa.ThousandsOptional,
		MinusSigns: "-−", RangeSymbol: "–", RangeSpacing: qa.SpacingNone,
		Words: map[string]float64{
			"два": 2, "три": 3, "четыре": 4, "пять": 5, "шесть": 6, "семь": 7,
			"восемь": 8, "девять": 9, "десять": 10,
		},
	},
	"ja": {
		Decimal: ".", Thousands: ",", ThousandsPolicy: qa.ThousandsOptional,
		MinusSigns: "-−", RangeSymbol: "〜", RangeSpacing: qa.SpacingNone,
	},
	"zh": {
		Decimal: ".", Thousands: ",", ThousandsPolicy: qa.ThousandsOptional,
		MinusSigns: "-−", RangeSymbol: "-", RangeSpacing: qa.SpacingNone,
	},
}

// ---------------------------------------------------------------------------
// Measurement units
// ---------------------------------------------------------------------------

// UnitPreset lists unit symbols and the expected number/unit separator.
type UnitPreset struct {
	Units              []string         `yaml:"units"`
	Spacing            qa.SpacingPolicy `yaml:"spacing"`
	TemperatureUnits   []string         `yaml:"temperature_units"`
	TemperatureSpacing qa.SpacingPolicy `yaml:"temperature_spacing"`
}

// Unit symbols are international; locales differ in spacing only.
var (
	baseUnits = []string{
		"mm", "cm", "m", "km", "mg", "g", "kg", "ml", "l", "L",
		"ms", "s", "min", "h", "Hz", "kHz", "MHz", "GHz",
		"B", "kB", "KB", "MB", "GB", "TB", "W", "kW", "V", "mAh",
		"ft", "yd", "mi", "oz", "lb", "mph", "gal", "%",
	}
	baseTemperatureUnits = []string{"°C", "°F", "℃", "℉", "°"}
)

// Units is keyed by locale tag.
var Units = map[string]UnitPreset{
	"en": {Units: baseUnits, Spacing: qa.SpacingAny, TemperatureUnits: baseTemperatureUnits, TemperatureSpacing: qa.SpacingAny},
	"de": {Units: baseUnits, Spacing: qa.SpacingAny, TemperatureUnits: baseTemperatureUnits, TemperatureSpacing: qa.SpacingAny},
	"fr": {Units: baseUnits, Spacing: qa.SpacingNBSP, TemperatureUnits: baseTemperatureUnits, TemperatureSpacing: qa.SpacingNBSP},
	"ja": {Units: baseUnits, Spacing: qa.SpacingAny, TemperatureUnits: baseTemperatureUnits, TemperatureSpacing: qa.SpacingNone},
	"zh": {Units: baseUnits, Spacing: qa.SpacingAny, TemperatureUnits: baseTemperatureUnits, TemperatureSpacing: qa.SpacingNone},
}
