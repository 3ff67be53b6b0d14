// Package models defines the domain types for Atlas.
package models

import "fmt"

// StudyType classifies the methodology of a curated study.
type StudyType string

// Study types, roughly ordered by position on the evidence pyramid.
const (
	StudyInVitro       StudyType = "in-vitro"
	StudyAnimal        StudyType = "animal"
	StudyObservational StudyType = "observational"
	StudyRCT           StudyType = "rct"
	StudyMetaAnalysis  StudyType = "meta-analysis"
)

// StudyTypes lists every valid study type.
var StudyTypes = []StudyType{
	StudyInVitro,
	StudyAnimal,
	StudyObservational,
	StudyRCT,
	StudyMetaAnalysis,
}

// ParseStudyType validates a raw string against the closed study type set.
func ParseStudyType(s string) (StudyType, error) {
	for _, t := range StudyTypes {
		if StudyType(s) == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown study type: %q", s)
}

// Label returns the human-readable name used in filter dropdowns and badges.
func (t StudyType) Label() string {
	switch t {
	case StudyInVitro:
		return "In Vitro"
	case StudyAnimal:
		return "Animal Model"
	case StudyObservational:
		return "Observational"
	case StudyRCT:
		return "Controlled Trial"
	case StudyMetaAnalysis:
		return "Meta-Analysis"
	}
	return string(t)
}

// EvidenceLevel is the ordered classification of a study's evidentiary strength.
type EvidenceLevel string

const (
	EvidenceHigh        EvidenceLevel = "high"
	EvidenceModerate    EvidenceLevel = "moderate"
	EvidencePreliminary EvidenceLevel = "preliminary"
)

// EvidenceLevels lists every valid evidence level, strongest first.
var EvidenceLevels = []EvidenceLevel{
	EvidenceHigh,
	EvidenceModerate,
	EvidencePreliminary,
}

// ParseEvidenceLevel validates a raw string against the closed evidence set.
func ParseEvidenceLevel(s string) (EvidenceLevel, error) {
	for _, l := range EvidenceLevels {
		if EvidenceLevel(s) == l {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown evidence level: %q", s)
}

// ItemCategory tags a SearchItem with the record type it was projected from.
type ItemCategory string

const (
	CategoryCondition ItemCategory = "condition"
	CategoryCompound  ItemCategory = "compound"
	CategoryTherapy   ItemCategory = "therapy"
	CategoryResearch  ItemCategory = "research"
)

// Compound is a researched natural compound.
type Compound struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	LatinName    string   `json:"latin_name,omitempty" yaml:"latin_name"`
	Category     string   `json:"category" yaml:"category"`
	Studies      int      `json:"studies" yaml:"studies"`
	Description  string   `json:"description" yaml:"description"`
	Tags         []string `json:"tags" yaml:"tags"`
	KeyBenefits  []string `json:"key_benefits" yaml:"key_benefits"`
	Mechanisms   []string `json:"mechanisms" yaml:"mechanisms"`
	Related      []string `json:"related" yaml:"related"`
	Link         string   `json:"link" yaml:"link"`
}

// Condition is a health condition entry in the research library.
// Category membership is derived by the classifier, never stored.
type Condition struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags" yaml:"tags"`
	Studies     int      `json:"studies" yaml:"studies"`
	Link        string   `json:"link" yaml:"link"`
}

// Therapy is an integrative therapy entry.
type Therapy struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags" yaml:"tags"`
	Studies     int      `json:"studies" yaml:"studies"`
	Link        string   `json:"link" yaml:"link"`
}

// Study is a curated research study. Compound and condition associations
// are denormalized names resolved against the corpus name tables at load.
type Study struct {
	ID          string        `json:"id" yaml:"id"`
	Title       string        `json:"title" yaml:"title"`
	Abstract    string        `json:"abstract" yaml:"abstract"`
	Type        StudyType     `json:"type" yaml:"type"`
	Evidence    EvidenceLevel `json:"evidence" yaml:"evidence"`
	Year        int           `json:"year" yaml:"year"`
	Journal     string        `json:"journal" yaml:"journal"`
	Institution string        `json:"institution" yaml:"institution"`
	SampleSize  int           `json:"sample_size,omitempty" yaml:"sample_size"`
	PMID        string        `json:"pmid,omitempty" yaml:"pmid"`
	DOI         string        `json:"doi,omitempty" yaml:"doi"`
	Compounds   []string      `json:"compounds" yaml:"compounds"`
	Conditions  []string      `json:"conditions" yaml:"conditions"`
	SafetyNote  string        `json:"safety_note,omitempty" yaml:"safety_note"`
}

// SearchItem is the normalized projection every record type is adapted to
// before text matching. All surfaces render search hits from this shape.
type SearchItem struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    ItemCategory `json:"category"`
	Tags        []string     `json:"tags"`
	Studies     int          `json:"studies,omitempty"`
	Link        string       `json:"link"`
}

// Article is one record returned by the external literature collaborator.
// Atlas never fetches these itself; the type exists so fetched articles can
// flow through the same SearchItem rendering as corpus records.
type Article struct {
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	Journal    string   `json:"journal"`
	Year       string   `json:"year"`
	Identifier string   `json:"identifier"`
	Abstract   string   `json:"abstract"`
}

// SearchItem projects an article into the shared search-hit shape.
func (a Article) SearchItem() SearchItem {
	return SearchItem{
		ID:          a.Identifier,
		Title:       a.Title,
		Description: a.Abstract,
		Category:    CategoryResearch,
		Tags:        a.Authors,
		Link:        "https://pubmed.ncbi.nlm.nih.gov/" + a.Identifier + "/",
	}
}
