package search

import (
	"testing"

	"github.com/evidencemed/atlas/internal/models"
)

func item(title, desc string, tags ...string) models.SearchItem {
	return models.SearchItem{Title: title, Description: desc, Tags: tags}
}

func TestMatch_Ranks(t *testing.T) {
	tests := []struct {
		name  string
		query string
		item  models.SearchItem
		want  int
	}{
		{"exact title", "curcumin", item("Curcumin", "Research on inflammatory biomarkers"), RankExact},
		{"exact is case-insensitive", "CURCUMIN", item("Curcumin", ""), RankExact},
		{"title prefix", "curc", item("Curcumin", ""), RankPrefix},
		{"title substring", "cumin", item("Curcumin", ""), RankSubstring},
		{"description substring", "turmeric", item("Curcumin", "Extracted from turmeric root"), RankSubstring},
		{"tag substring", "inflam", item("Curcumin", "", "anti-inflammatory"), RankSubstring},
		{"token AND non-contiguous", "ashwagandha stress",
			item("Ashwagandha Root Extract in Reducing Stress and Anxiety", ""), RankTokens},
		{"tokens across fields", "curcumin inflammation",
			item("Curcumin", "", "inflammation"), RankTokens},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.query, tt.item)
			if !got.IsMatch {
				t.Fatalf("Match(%q) = no match, want rank %d", tt.query, tt.want)
			}
			if got.Rank != tt.want {
				t.Errorf("Match(%q) rank = %d, want %d", tt.query, got.Rank, tt.want)
			}
		})
	}
}

func TestMatch_NoMatch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		item  models.SearchItem
	}{
		{"unrelated", "berberine", item("Curcumin", "inflammatory biomarkers")},
		{"one token missing", "curcumin sleep", item("Curcumin", "inflammatory biomarkers")},
		{"empty query", "", item("Curcumin", "")},
		{"whitespace query", "   \t", item("Curcumin", "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.query, tt.item)
			if got.IsMatch || got.Rank != RankNone {
				t.Errorf("Match(%q) = %+v, want no match", tt.query, got)
			}
		})
	}
}

func TestRank_OrderingAndStability(t *testing.T) {
	items := []models.SearchItem{
		item("Turmeric Extract", "contains curcumin"),           // substring via description
		item("Curcumin Bioavailability Studies", ""),            // prefix
		item("Curcumin", ""),                                    // exact
		item("Golden Spice Research", "curcumin and turmeric"),  // substring via description
		item("Unrelated", "nothing here"),                       // no match
	}
	got := Rank("curcumin", items)
	if len(got) != 4 {
		t.Fatalf("got %d results, want 4", len(got))
	}
	wantTitles := []string{
		"Curcumin",
		"Curcumin Bioavailability Studies",
		"Turmeric Extract",
		"Golden Spice Research",
	}
	for i, want := range wantTitles {
		if got[i].Title != want {
			t.Errorf("result[%d] = %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestRank_Idempotent(t *testing.T) {
	items := []models.SearchItem{
		item("Curcumin", ""),
		item("Turmeric", "curcumin source"),
		item("Curcuma Longa", ""),
	}
	first := Rank("curcum", items)
	second := Rank("curcum", items)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Title != second[i].Title {
			t.Errorf("result[%d] differs: %q vs %q", i, first[i].Title, second[i].Title)
		}
	}
}

func TestRank_NonDecreasingRanks(t *testing.T) {
	items := []models.SearchItem{
		item("Deep Dive", "mentions berberine twice", "berberine"),
		item("Berberine", ""),
		item("Metabolic Review", "berberine and ampk"),
		item("Berberine and Gut Health", ""),
	}
	got := Rank("berberine", items)
	prev := RankExact
	for i, res := range got {
		r := Match("berberine", res).Rank
		if r < prev {
			t.Errorf("result[%d] rank %d after rank %d", i, r, prev)
		}
		prev = r
	}
}

func TestRank_EmptyQueryReturnsNothing(t *testing.T) {
	items := []models.SearchItem{item("Curcumin", "")}
	if got := Rank("", items); len(got) != 0 {
		t.Errorf("empty query returned %d results", len(got))
	}
	if got := Rank("   ", items); len(got) != 0 {
		t.Errorf("whitespace query returned %d results", len(got))
	}
}
