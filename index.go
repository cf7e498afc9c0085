package areas

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// MaxSuggestions caps how many candidate names a fallback search returns.
const MaxSuggestions = 20

// Index answers municipality-name lookups over a built document. It is
// rebuilt from the document on every run and is read-only afterwards.
type Index struct {
	doc   Document
	names map[string][]string // municipality name -> composite keys sharing it
	order []string            // distinct municipality names, insertion order
}

// NewIndex builds the name index. Document keys are visited in sorted
// order so that a name shared across prefectures always resolves to the
// same entry regardless of map iteration order.
func NewIndex(doc Document) *Index {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	idx := &Index{doc: doc, names: make(map[string][]string, len(doc))}
	for _, k := range keys {
		city := doc[k].City
		if city == "" {
			continue
		}
		if _, seen := idx.names[city]; !seen {
			idx.order = append(idx.order, city)
		}
		idx.names[city] = append(idx.names[city], k)
	}
	return idx
}

// Lookup returns the entry for an exact municipality name. When the name
// collides across prefectures, the first key in sorted-document order wins.
func (x *Index) Lookup(city string) (Entry, bool) {
	keys, ok := x.names[city]
	if !ok || len(keys) == 0 {
		return Entry{}, false
	}
	return x.doc[keys[0]], true
}

// Suggest returns up to limit municipality names containing q as a
// substring, ranked closest to q by edit distance. A limit <= 0 selects
// MaxSuggestions.
func (x *Index) Suggest(q string, limit int) []string {
	if limit <= 0 {
		limit = MaxSuggestions
	}
	var out []string
	for _, name := range x.order {
		if strings.Contains(name, q) {
			out = append(out, name)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return levenshtein.ComputeDistance(q, out[i]) < levenshtein.ComputeDistance(q, out[j])
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SampleAreas picks up to k of the entry's areas uniformly at random
// without replacement. The rand source is injected so tests can be
// deterministic.
func SampleAreas(e Entry, k int, rng *rand.Rand) []Area {
	n := len(e.Areas)
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	picks := make([]Area, 0, k)
	for _, i := range rng.Perm(n)[:k] {
		picks = append(picks, e.Areas[i])
	}
	return picks
}
