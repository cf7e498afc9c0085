package areas

import (
	"regexp"
	"strings"
)

// Row is one CSV record's fields of interest, column-mapped but otherwise
// raw. Rows are ephemeral: each is classified and folded into the
// aggregation immediately.
type Row struct {
	Pref      string // 都道府県名
	City      string // 市区町村名
	OazaMachi string // 大字・町名
	AzaChome  string // 字・丁目名
	PopTotal  string // 総数
	Level     string // 地域階層レベル
	AreaCode  string // 町丁字コード
}

// AggKey is the aggregation identity for one sub-area. Rows sharing a key
// have their populations summed.
type AggKey struct {
	Pref string
	City string
	Name string
}

// Discard reasons tallied by the classifier and reported in the run summary.
const (
	DropLevelCoarse  = "level<=2"
	DropLevelFine    = "level>=4_removed"
	DropNoAreaCode   = "cho_code_empty"
	DropSummaryRow   = "aggregate_like"
	DropZeroPop      = "pop<=0"
	DropMissingField = "missing_pref_city_name"
)

// SummaryRule is a named predicate marking an area name as a summary or
// aggregate row rather than a real sub-area. Rules are evaluated in order;
// any match discards the row. Keeping them as data lets locale-specific
// markers be added without touching the aggregation logic.
type SummaryRule struct {
	Name  string
	Match func(name string) bool
}

var (
	reTrailingTotal = regexp.MustCompile(`(の計|計)$`)
	reBadMarker     = regexp.MustCompile(`総数|不詳`)
)

// DefaultSummaryRules returns the rule set for e-Stat chōme/aza extracts.
// The 町丁字コード containment check also covers the 町丁字コード\d+の計
// marker rows e-Stat emits per area-code group.
func DefaultSummaryRules() []SummaryRule {
	return []SummaryRule{
		{Name: "cho_code_marker", Match: func(n string) bool { return strings.Contains(n, "町丁字コード") }},
		{Name: "grand_total_or_unknown", Match: reBadMarker.MatchString},
		{Name: "trailing_total", Match: reTrailingTotal.MatchString},
	}
}

// matchesSummary reports whether a name trips any summary-row pattern.
// Empty names never match here: a missing finer fragment is normal for
// level-3 rows, and an empty combined display name is handled separately.
func matchesSummary(name string, rules []SummaryRule) bool {
	name = sanitize(name)
	if name == "" {
		return false
	}
	for _, r := range rules {
		if r.Match(name) {
			return true
		}
	}
	return false
}

// Classifier decides whether a row is a genuine sub-area to keep or an
// aggregate/summary row to discard, tallying discards by reason. Absence
// of data is always a discard, never an error.
type Classifier struct {
	KeepFiner   bool          // retain region hierarchy level >= 4 rows
	StripPrefix bool          // strip 大字/字 prefixes from display names
	Summary     []SummaryRule // ordered summary-row patterns
	Drops       map[string]int
}

// NewClassifier returns a classifier with the given options. A nil rules
// slice selects DefaultSummaryRules.
func NewClassifier(keepFiner, stripPrefix bool, rules []SummaryRule) *Classifier {
	if rules == nil {
		rules = DefaultSummaryRules()
	}
	return &Classifier{
		KeepFiner:   keepFiner,
		StripPrefix: stripPrefix,
		Summary:     rules,
		Drops:       make(map[string]int),
	}
}

func (c *Classifier) drop(reason string) {
	c.Drops[reason]++
}

// Classify returns the aggregation key and population for a kept row.
// ok is false when the row was discarded; the rules run in order and each
// is independently sufficient to discard.
func (c *Classifier) Classify(r Row) (key AggKey, pop int, ok bool) {
	lvl := parseInt(r.Level)
	if lvl <= 2 {
		c.drop(DropLevelCoarse)
		return
	}
	if !c.KeepFiner && lvl >= 4 {
		c.drop(DropLevelFine)
		return
	}

	// An empty area code is a strong signal of a summary row.
	if sanitize(r.AreaCode) == "" {
		c.drop(DropNoAreaCode)
		return
	}

	// Patterns are checked against the display name and both raw
	// fragments; an empty display name means neither fragment carried a
	// real sub-area and is discarded here too.
	name := DisplayName(r.OazaMachi, r.AzaChome, c.StripPrefix)
	if name == "" ||
		matchesSummary(name, c.Summary) ||
		matchesSummary(r.OazaMachi, c.Summary) ||
		matchesSummary(r.AzaChome, c.Summary) {
		c.drop(DropSummaryRow)
		return
	}

	pop = parseInt(r.PopTotal)
	if pop <= 0 {
		c.drop(DropZeroPop)
		return
	}

	pref := sanitize(r.Pref)
	city := sanitize(r.City)
	if pref == "" || city == "" || name == "" {
		c.drop(DropMissingField)
		return
	}

	return AggKey{Pref: pref, City: city, Name: name}, pop, true
}
