package models

import "testing"

func TestParseStudyType(t *testing.T) {
	for _, raw := range []string{"in-vitro", "animal", "observational", "rct", "meta-analysis"} {
		if _, err := ParseStudyType(raw); err != nil {
			t.Errorf("ParseStudyType(%q): %v", raw, err)
		}
	}
	if _, err := ParseStudyType("case-report"); err == nil {
		t.Error("expected error for unknown study type")
	}
	if _, err := ParseStudyType(""); err == nil {
		t.Error("expected error for empty study type")
	}
}

func TestParseEvidenceLevel(t *testing.T) {
	for _, raw := range []string{"high", "moderate", "preliminary"} {
		if _, err := ParseEvidenceLevel(raw); err != nil {
			t.Errorf("ParseEvidenceLevel(%q): %v", raw, err)
		}
	}
	if _, err := ParseEvidenceLevel("anecdotal"); err == nil {
		t.Error("expected error for unknown evidence level")
	}
}

func TestEvidenceTier_Totality(t *testing.T) {
	seen := map[string]bool{}
	for _, l := range EvidenceLevels {
		tier := l.Tier()
		if tier.Label == "" || tier.Weight == 0 || tier.ClassKey == "" {
			t.Errorf("Tier(%s) incomplete: %+v", l, tier)
		}
		if seen[tier.ClassKey] {
			t.Errorf("duplicate class key %q", tier.ClassKey)
		}
		seen[tier.ClassKey] = true
	}
}

func TestEvidenceTier_Ordering(t *testing.T) {
	high := EvidenceHigh.Tier()
	mod := EvidenceModerate.Tier()
	prelim := EvidencePreliminary.Tier()
	if !(high.Weight > mod.Weight && mod.Weight > prelim.Weight) {
		t.Errorf("tier weights not ordered: high=%d moderate=%d preliminary=%d",
			high.Weight, mod.Weight, prelim.Weight)
	}
}

func TestArticleSearchItem(t *testing.T) {
	a := Article{
		Title:      "Curcumin and inflammatory markers",
		Authors:    []string{"Sharma R", "Lopez M"},
		Journal:    "Phytotherapy Research",
		Year:       "2022",
		Identifier: "34567890",
		Abstract:   "A randomized trial of curcumin supplementation.",
	}
	item := a.SearchItem()
	if item.Category != CategoryResearch {
		t.Errorf("category = %q, want research", item.Category)
	}
	if item.ID != "34567890" {
		t.Errorf("id = %q", item.ID)
	}
	if item.Link == "" {
		t.Error("expected a link")
	}
}
