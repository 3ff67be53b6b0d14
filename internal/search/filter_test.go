package search

import (
	"testing"

	"github.com/evidencemed/atlas/internal/models"
)

func studyFixture() []models.Study {
	mk := func(id string, typ models.StudyType, ev models.EvidenceLevel, compounds ...string) models.Study {
		return models.Study{ID: id, Title: id, Type: typ, Evidence: ev, Year: 2020, Compounds: compounds}
	}
	out := []models.Study{
		mk("s1", models.StudyRCT, models.EvidenceHigh, "Berberine"),
		mk("s2", models.StudyRCT, models.EvidenceModerate, "Berberine", "Curcumin"),
		mk("s3", models.StudyObservational, models.EvidenceModerate, "Curcumin"),
		mk("s4", models.StudyInVitro, models.EvidencePreliminary, "Lion's Mane"),
		mk("s5", models.StudyMetaAnalysis, models.EvidenceHigh, "Curcumin"),
		mk("s6", models.StudyRCT, models.EvidenceHigh, "Ashwagandha"),
	}
	// Pad to a larger base set with non-matching studies.
	for i := 0; i < 14; i++ {
		out = append(out, mk("pad", models.StudyAnimal, models.EvidencePreliminary, "Resveratrol"))
	}
	return out
}

func ids(studies []models.Study) []string {
	out := make([]string, len(studies))
	for i, s := range studies {
		out[i] = s.ID
	}
	return out
}

func TestApplyFacets_Passthrough(t *testing.T) {
	base := studyFixture()
	got := ApplyFacets(base, Facets{})
	if len(got) != len(base) {
		t.Errorf("zero facets should pass through: got %d, want %d", len(got), len(base))
	}
}

func TestApplyFacets_SingleFacet(t *testing.T) {
	base := studyFixture()
	got := ApplyFacets(base, Facets{Type: models.StudyRCT})
	if len(got) != 3 {
		t.Errorf("rct filter: got %v", ids(got))
	}
	got = ApplyFacets(base, Facets{Evidence: models.EvidenceHigh})
	if len(got) != 3 {
		t.Errorf("high evidence filter: got %v", ids(got))
	}
}

func TestApplyFacets_Conjunction(t *testing.T) {
	base := studyFixture()
	got := ApplyFacets(base, Facets{Type: models.StudyRCT, Compound: "Berberine"})
	if len(got) != 2 {
		t.Fatalf("rct+berberine: got %v, want [s1 s2]", ids(got))
	}
	if got[0].ID != "s1" || got[1].ID != "s2" {
		t.Errorf("order not preserved: %v", ids(got))
	}
}

func TestApplyFacets_CompoundCaseInsensitive(t *testing.T) {
	base := studyFixture()
	got := ApplyFacets(base, Facets{Compound: "berberine"})
	if len(got) != 2 {
		t.Errorf("lowercase compound facet: got %v", ids(got))
	}
	got = ApplyFacets(base, Facets{Compound: "LION'S MANE"})
	if len(got) != 1 {
		t.Errorf("uppercase compound facet: got %v", ids(got))
	}
}

func TestApplyFacets_MonotonicNarrowing(t *testing.T) {
	base := studyFixture()
	loose := ApplyFacets(base, Facets{Type: models.StudyRCT})
	tight := ApplyFacets(base, Facets{Type: models.StudyRCT, Evidence: models.EvidenceHigh})
	if len(tight) > len(loose) {
		t.Fatalf("tighter facets grew the result: %d > %d", len(tight), len(loose))
	}
	inLoose := make(map[string]bool)
	for _, s := range loose {
		inLoose[s.ID] = true
	}
	for _, s := range tight {
		if !inLoose[s.ID] {
			t.Errorf("study %s in tight result but not loose", s.ID)
		}
	}
}

func TestApplyFacets_NoMatches(t *testing.T) {
	base := studyFixture()
	got := ApplyFacets(base, Facets{Type: models.StudyMetaAnalysis, Compound: "Berberine"})
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", ids(got))
	}
}
