package search

import (
	"testing"

	"github.com/evidencemed/atlas/internal/models"
)

func cond(id, title, desc string, tags ...string) models.Condition {
	return models.Condition{ID: id, Title: title, Description: desc, Tags: tags}
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}

func TestCategorize_KeywordMatch(t *testing.T) {
	c := cond("ra", "Rheumatoid Arthritis", "", "autoimmune", "joint")
	cl := NewClassifier(Categories, []models.Condition{c})
	got := cl.Categorize(c)
	if !contains(got, "autoimmune") {
		t.Errorf("Categorize = %v, want autoimmune included", got)
	}
}

func TestCategorize_MultipleCategories(t *testing.T) {
	c := cond("metabolic", "Metabolic Disorders",
		"Diabetes, obesity, and metabolic syndrome research",
		"diabetes", "obesity", "blood sugar", "insulin")
	cl := NewClassifier(Categories, nil)
	got := cl.Categorize(c)
	if !contains(got, "metabolic") || !contains(got, "hormonal") {
		t.Errorf("Categorize = %v, want both metabolic and hormonal", got)
	}
}

func TestCategorize_SubstringAcrossFieldBoundary(t *testing.T) {
	// "heart" appears only in the description, not the tags.
	c := cond("x", "Circulatory Research", "Studies of heart function")
	cl := NewClassifier(Categories, nil)
	if !contains(cl.Categorize(c), "cardiovascular") {
		t.Error("description keywords should count")
	}
}

func TestCategorize_FallbackOther(t *testing.T) {
	c := cond("misc", "General Wellness", "Broad lifestyle research")
	cl := NewClassifier(Categories, nil)
	got := cl.Categorize(c)
	if len(got) != 1 || got[0] != CategoryOther {
		t.Errorf("Categorize = %v, want [other]", got)
	}
}

func TestCategorize_NeverEmpty(t *testing.T) {
	conds := []models.Condition{
		cond("a", "", ""),
		cond("b", "Zzz", "Qqq"),
		cond("c", "Cancer Research", "oncology studies", "cancer"),
	}
	cl := NewClassifier(Categories, conds)
	for _, c := range conds {
		if len(cl.Categorize(c)) == 0 {
			t.Errorf("condition %q got an empty category set", c.ID)
		}
	}
}

func TestCategorize_MemoizedResultStable(t *testing.T) {
	c := cond("ra", "Rheumatoid Arthritis", "", "autoimmune")
	cl := NewClassifier(Categories, []models.Condition{c})
	first := cl.Categorize(c)
	second := cl.Categorize(c)
	if len(first) != len(second) {
		t.Fatalf("memoized result changed: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("memoized result changed at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestCounts(t *testing.T) {
	conds := []models.Condition{
		cond("a", "Cancer Research", "", "cancer"),
		cond("b", "Cardiovascular Health", "", "heart"),
		cond("c", "General Wellness", ""),
	}
	cl := NewClassifier(Categories, conds)
	counts := cl.Counts(conds)
	if counts[CategoryAll] != 3 {
		t.Errorf("all = %d, want 3", counts[CategoryAll])
	}
	if counts["cancer"] != 1 {
		t.Errorf("cancer = %d, want 1", counts["cancer"])
	}
	if counts["cardiovascular"] != 1 {
		t.Errorf("cardiovascular = %d, want 1", counts["cardiovascular"])
	}
	if counts[CategoryOther] != 1 {
		t.Errorf("other = %d, want 1", counts[CategoryOther])
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryLabel("mental-health"); got != "Mental Health" {
		t.Errorf("label = %q", got)
	}
	if got := CategoryLabel(CategoryOther); got != "Other" {
		t.Errorf("other label = %q", got)
	}
	if got := CategoryLabel("mystery"); got != "mystery" {
		t.Errorf("unknown id should echo: %q", got)
	}
}
