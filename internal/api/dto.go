package api

import (
	"github.com/evidencemed/atlas/internal/models"
)

// SearchResponse wraps cross-type search results.
type SearchResponse struct {
	Results []models.SearchItem `json:"results" validate:"required"`
	Total   int                 `json:"total" example:"12" validate:"required"`
}

// StudyDTO is a study enriched with its derived evidence tier.
type StudyDTO struct {
	models.Study
	TypeLabel    string              `json:"type_label" example:"Randomized Controlled Trial"`
	EvidenceTier models.EvidenceTier `json:"evidence_tier"`
}

func studyDTO(st models.Study) StudyDTO {
	return StudyDTO{
		Study:        st,
		TypeLabel:    st.Type.Label(),
		EvidenceTier: st.Evidence.Tier(),
	}
}

func studyDTOs(studies []models.Study) []StudyDTO {
	out := make([]StudyDTO, len(studies))
	for i, st := range studies {
		out[i] = studyDTO(st)
	}
	return out
}

// StudyListResponse wraps one paginated page of studies.
type StudyListResponse struct {
	Studies    []StudyDTO `json:"studies" validate:"required"`
	TotalItems int        `json:"total_items" example:"42" validate:"required"`
	TotalPages int        `json:"total_pages" example:"5" validate:"required"`
	Page       int        `json:"page" example:"1" validate:"required"`
}

// StudyDetailResponse is a study with its name references resolved.
type StudyDetailResponse struct {
	Study      StudyDTO           `json:"study" validate:"required"`
	Compounds  []models.Compound  `json:"compounds" validate:"required"`
	Conditions []models.Condition `json:"conditions" validate:"required"`
}

// StudyFiltersResponse describes the facet vocabularies for the study browser.
type StudyFiltersResponse struct {
	Types          []FilterOption `json:"types" validate:"required"`
	EvidenceLevels []FilterOption `json:"evidence_levels" validate:"required"`
	Compounds      []string       `json:"compounds" validate:"required"`
}

// FilterOption pairs a machine value with its display label.
type FilterOption struct {
	Value string `json:"value" example:"rct" validate:"required"`
	Label string `json:"label" example:"Randomized Controlled Trial" validate:"required"`
}

// ConditionDTO is a condition with its derived categories.
type ConditionDTO struct {
	models.Condition
	Categories []string `json:"categories" validate:"required"`
}

// ConditionListResponse wraps condition listings.
type ConditionListResponse struct {
	Conditions []ConditionDTO `json:"conditions" validate:"required"`
	Total      int            `json:"total" example:"7" validate:"required"`
}

// CategoryCount is one entry in the category breakdown.
type CategoryCount struct {
	ID    string `json:"id" example:"autoimmune" validate:"required"`
	Label string `json:"label" example:"Autoimmune" validate:"required"`
	Count int    `json:"count" example:"3" validate:"required"`
}

// ConditionDetailResponse is a condition with categories and its studies.
type ConditionDetailResponse struct {
	Condition  models.Condition `json:"condition" validate:"required"`
	Categories []string         `json:"categories" validate:"required"`
	Studies    []StudyDTO       `json:"studies" validate:"required"`
}

// CompoundDetailResponse is a compound with resolved relations and studies.
type CompoundDetailResponse struct {
	Compound          models.Compound   `json:"compound" validate:"required"`
	Related           []models.Compound `json:"related" validate:"required"`
	UnresolvedRelated []string          `json:"unresolved_related,omitempty"`
	Studies           []StudyDTO        `json:"studies" validate:"required"`
}

// CorpusInfoResponse summarizes the loaded corpus snapshot.
type CorpusInfoResponse struct {
	Version    string `json:"version" example:"2026.08" validate:"required"`
	Source     string `json:"source" example:"embedded" validate:"required"`
	Checksum   string `json:"checksum" example:"abc123..." validate:"required"`
	Stale      bool   `json:"stale" example:"false"`
	Conditions int    `json:"conditions" example:"7" validate:"required"`
	Compounds  int    `json:"compounds" example:"8" validate:"required"`
	Therapies  int    `json:"therapies" example:"8" validate:"required"`
	Studies    int    `json:"studies" example:"14" validate:"required"`
}
