// Package areas builds and queries a compact JSON lookup of the most
// populous sub-areas (chōme/aza) per Japanese municipality, derived from
// e-Stat census CSV extracts.
//
// The pipeline is a one-shot batch: resolve input files, classify and
// normalize rows, sum populations per (prefecture, municipality, area name),
// keep the top N areas per municipality, and write an indented JSON document
// keyed by "prefecture::municipality". The Index type answers interactive
// lookups over a document produced by Build.
package areas

import (
	"encoding/json"
	"fmt"
	"os"
)

// KeySeparator joins prefecture and municipality in the document's
// top-level keys.
const KeySeparator = "::"

// Key identifies a municipality. It is kept as a two-field record
// internally and only flattened to the composite string form at
// serialization, so a separator appearing inside either field cannot
// be confused with the delimiter during processing.
type Key struct {
	Pref string
	City string
}

// String returns the composite "pref::city" form used in the document.
func (k Key) String() string { return k.Pref + KeySeparator + k.City }

// Area is one named sub-area with its aggregated population.
type Area struct {
	Name string `json:"name"`
	Pop  int    `json:"pop"`
}

// Entry is the per-municipality record in the output document. Areas holds
// at most the configured top-N, sorted by population descending.
type Entry struct {
	Pref  string `json:"pref"`
	City  string `json:"city"`
	Areas []Area `json:"areas"`
}

// Document maps composite "pref::city" keys to municipality entries.
type Document map[string]Entry

// LoadDocument reads a document previously written by Build. The raw open
// error is returned unwrapped so callers can test it with os.IsNotExist.
func LoadDocument(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}
