package areas

import (
	"regexp"
	"strconv"
	"strings"
)

// emptyMarkers are placeholder values e-Stat uses for "no value": a lone
// dash in its several glyph variants, plus the NaN marker that survives
// spreadsheet round trips. A field equal to one of these is empty.
var emptyMarkers = map[string]bool{
	"-":   true,
	"—":   true,
	"ｰ":   true,
	"－":   true,
	"NaN": true,
}

// sanitize trims a raw CSV field and maps placeholder glyphs to "".
func sanitize(v string) string {
	v = strings.TrimSpace(v)
	if emptyMarkers[v] {
		return ""
	}
	return v
}

// parseInt reads a numeric field tolerantly: thousands separators are
// dropped ("33,520"), decimals truncate toward zero, and anything
// unparseable resolves to 0. Zero falls through to the population<=0
// discard rule, so malformed values never need their own error path.
func parseInt(v string) int {
	v = sanitize(v)
	if v == "" {
		return 0
	}
	v = strings.ReplaceAll(v, ",", "")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

var spaceRuns = regexp.MustCompile(`\s+`)

// DisplayName joins the ōaza/machi and aza/chōme fragments into the
// human-facing area name, e.g. 岩神町 + 1丁目 → "岩神町 1丁目". With
// stripPrefix, a leading 大字 or 字 is removed from the first fragment and
// a leading 字 from the second, each at most once (大字的場 → 的場).
// Returns "" when both fragments are empty, which upstream treats as an
// invalid row.
func DisplayName(oazaMachi, azaChome string, stripPrefix bool) string {
	a := sanitize(oazaMachi)
	b := sanitize(azaChome)
	if a == "" && b == "" {
		return ""
	}

	if stripPrefix {
		if rest, ok := strings.CutPrefix(a, "大字"); ok {
			a = strings.TrimSpace(rest)
		}
		if rest, ok := strings.CutPrefix(a, "字"); ok {
			a = strings.TrimSpace(rest)
		}
		if rest, ok := strings.CutPrefix(b, "字"); ok {
			b = strings.TrimSpace(rest)
		}
	}

	var name string
	switch {
	case a != "" && b != "":
		name = a + " " + b
	case a != "":
		name = a
	default:
		name = b
	}
	return strings.TrimSpace(spaceRuns.ReplaceAllString(name, " "))
}
