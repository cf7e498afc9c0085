package areas

import (
	"math/rand"
	"reflect"
	"testing"
)

func testDocument() Document {
	return Document{
		"北海道::札幌市": {Pref: "北海道", City: "札幌市", Areas: []Area{
			{Name: "北二十四条西", Pop: 9000},
			{Name: "南四条東", Pop: 7000},
			{Name: "平岸", Pop: 5000},
			{Name: "澄川", Pop: 3000},
		}},
		"埼玉県::熊谷市": {Pref: "埼玉県", City: "熊谷市", Areas: []Area{
			{Name: "的場", Pop: 1500},
		}},
		"東京都::府中市": {Pref: "東京都", City: "府中市", Areas: []Area{
			{Name: "宮町", Pop: 4000},
		}},
		"広島県::府中市": {Pref: "広島県", City: "府中市", Areas: []Area{
			{Name: "府川町", Pop: 2000},
		}},
	}
}

func TestIndexLookup(t *testing.T) {
	idx := NewIndex(testDocument())

	e, ok := idx.Lookup("札幌市")
	if !ok {
		t.Fatal("札幌市 not found")
	}
	if e.Pref != "北海道" || len(e.Areas) != 4 {
		t.Errorf("entry = %+v", e)
	}

	if _, ok := idx.Lookup("存在しない市"); ok {
		t.Error("lookup of unknown name succeeded")
	}
}

// A municipality name shared across prefectures resolves to the first
// composite key in sorted-document order, deterministically.
func TestIndexLookupNameCollision(t *testing.T) {
	idx := NewIndex(testDocument())
	e, ok := idx.Lookup("府中市")
	if !ok {
		t.Fatal("府中市 not found")
	}
	// 広島県 sorts before 東京都.
	if e.Pref != "広島県" {
		t.Errorf("pref = %q, want 広島県", e.Pref)
	}
}

func TestIndexSuggest(t *testing.T) {
	idx := NewIndex(testDocument())

	// Single substring match returns exactly that one candidate.
	if got := idx.Suggest("熊谷", 0); !reflect.DeepEqual(got, []string{"熊谷市"}) {
		t.Errorf("Suggest(熊谷) = %v, want [熊谷市]", got)
	}

	// 府中市 appears twice in the document but is one candidate name.
	if got := idx.Suggest("府中", 0); !reflect.DeepEqual(got, []string{"府中市"}) {
		t.Errorf("Suggest(府中) = %v, want [府中市]", got)
	}

	if got := idx.Suggest("どこにもない", 0); got != nil {
		t.Errorf("Suggest(どこにもない) = %v, want none", got)
	}
}

func TestIndexSuggestRankingAndLimit(t *testing.T) {
	doc := Document{
		"山形県::山形市":    {Pref: "山形県", City: "山形市", Areas: []Area{{Name: "香澄町", Pop: 100}}},
		"山口県::山陽小野田市": {Pref: "山口県", City: "山陽小野田市", Areas: []Area{{Name: "日の出", Pop: 100}}},
		"富山県::富山市":    {Pref: "富山県", City: "富山市", Areas: []Area{{Name: "桜町", Pop: 100}}},
	}
	idx := NewIndex(doc)

	// Shorter names are fewer edits away from the query and rank first.
	got := idx.Suggest("山", 0)
	want := []string{"山形市", "富山市", "山陽小野田市"}
	if len(got) != 3 || got[2] != "山陽小野田市" {
		t.Errorf("Suggest(山) = %v, want %v last", got, want[2])
	}

	if got := idx.Suggest("山", 2); len(got) != 2 {
		t.Errorf("Suggest(山, 2) = %v, want 2 candidates", got)
	}
}

func TestSampleAreas(t *testing.T) {
	e := testDocument()["北海道::札幌市"]
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		picks := SampleAreas(e, 3, rng)
		if len(picks) != 3 {
			t.Fatalf("len(picks) = %d, want 3", len(picks))
		}
		seen := make(map[string]bool, len(picks))
		for _, a := range picks {
			if seen[a.Name] {
				t.Fatalf("duplicate pick %q in %v", a.Name, picks)
			}
			seen[a.Name] = true
		}
	}
}

func TestSampleAreasFewerThanRequested(t *testing.T) {
	e := testDocument()["埼玉県::熊谷市"]
	rng := rand.New(rand.NewSource(1))
	picks := SampleAreas(e, 3, rng)
	if len(picks) != 1 || picks[0].Name != "的場" {
		t.Errorf("picks = %v, want the single 的場 area", picks)
	}
}

func TestSampleAreasEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if picks := SampleAreas(Entry{}, 3, rng); picks != nil {
		t.Errorf("picks = %v, want nil", picks)
	}
}
