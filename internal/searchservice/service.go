// Package searchservice composes the corpus and the search engine into the
// query operations the transport layers expose. Every operation is a pure
// function of its arguments and the immutable corpus snapshot; callers own
// query, filter, and page state.
package searchservice

import (
	"context"
	"sort"
	"strings"

	"github.com/evidencemed/atlas/internal/apperr"
	"github.com/evidencemed/atlas/internal/corpus"
	"github.com/evidencemed/atlas/internal/models"
	"github.com/evidencemed/atlas/internal/search"
)

// DefaultPageSize matches the research page's items-per-page.
const DefaultPageSize = 10

// Condition sort modes.
const (
	SortAlphabetical     = "alphabetical"
	SortAlphabeticalDesc = "alphabetical-desc"
	SortStudiesHigh      = "studies-high"
	SortStudiesLow       = "studies-low"
)

// Service answers queries over a loaded corpus.
type Service struct {
	corpus     *corpus.Corpus
	classifier *search.Classifier
}

// NewService builds a service over the given corpus and precomputes
// condition categories.
func NewService(c *corpus.Corpus) *Service {
	return &Service{
		corpus:     c,
		classifier: search.NewClassifier(search.Categories, c.Conditions()),
	}
}

// Search matches query across every record type and returns hits ordered
// by rank ascending, ties in stable corpus order. An empty query returns
// no results.
func (s *Service) Search(_ context.Context, query string) []models.SearchItem {
	return search.Rank(query, s.corpus.SearchItems())
}

// StudyQuery carries the combined study-browsing inputs: free text, the
// three facets, and pagination.
type StudyQuery struct {
	Query    string
	Type     models.StudyType
	Evidence models.EvidenceLevel
	Compound string
	Page     int
	PageSize int
}

// StudyPage is one page of filtered studies.
type StudyPage struct {
	Studies    []models.Study
	TotalItems int
	TotalPages int
	Page       int
}

// ListStudies runs the research-page pipeline: free-text search, then
// facets, then pagination. An empty Query skips the text stage (browsing
// shows the full set; only the cross-type Search treats empty as "nothing").
func (s *Service) ListStudies(_ context.Context, q StudyQuery) StudyPage {
	base := s.corpus.Studies()

	if q.Query != "" {
		base = s.searchStudies(base, q.Query)
	}

	base = search.ApplyFacets(base, search.Facets{
		Type:     q.Type,
		Evidence: q.Evidence,
		Compound: q.Compound,
	})

	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	p := search.Paginate(base, page, size)
	return StudyPage{
		Studies:    p.Items,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
		Page:       p.Page,
	}
}

// searchStudies keeps the studies whose projection matches query, ordered
// by rank then input order, mirroring the cross-type search.
func (s *Service) searchStudies(studies []models.Study, query string) []models.Study {
	items := make([]models.SearchItem, len(studies))
	byID := make(map[string]models.Study, len(studies))
	for i, st := range studies {
		tags := make([]string, 0, len(st.Compounds)+len(st.Conditions))
		tags = append(tags, st.Compounds...)
		tags = append(tags, st.Conditions...)
		items[i] = models.SearchItem{
			ID:          st.ID,
			Title:       st.Title,
			Description: st.Abstract,
			Category:    models.CategoryResearch,
			Tags:        tags,
		}
		byID[st.ID] = st
	}
	ranked := search.Rank(query, items)
	out := make([]models.Study, 0, len(ranked))
	for _, item := range ranked {
		out = append(out, byID[item.ID])
	}
	return out
}

// FilterStudies applies facets to an explicit base set without search or
// pagination.
func (s *Service) FilterStudies(_ context.Context, base []models.Study, f search.Facets) []models.Study {
	return search.ApplyFacets(base, f)
}

// ConditionQuery carries the conditions-page inputs.
type ConditionQuery struct {
	Query    string
	Category string
	Sort     string
}

// ListConditions filters conditions by substring text match and category
// membership, then sorts. The text rule is a plain contiguous substring
// over title, description, and tags; multi-word queries must appear
// verbatim in one field, with none of the token splitting the cross-type
// search applies. Unknown sort values keep corpus order; an unset or
// "all" category imposes no constraint. Unlike the cross-type search, an
// empty Query here means "show all" because this is a browsing surface.
func (s *Service) ListConditions(_ context.Context, q ConditionQuery) []models.Condition {
	needle := strings.ToLower(strings.TrimSpace(q.Query))
	out := make([]models.Condition, 0, len(s.corpus.Conditions()))
	for _, c := range s.corpus.Conditions() {
		if needle != "" && !conditionTextMatch(c, needle) {
			continue
		}
		if q.Category != "" && q.Category != search.CategoryAll {
			if !contains(s.classifier.Categorize(c), q.Category) {
				continue
			}
		}
		out = append(out, c)
	}

	switch q.Sort {
	case SortAlphabetical:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	case SortAlphabeticalDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Title > out[j].Title })
	case SortStudiesHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Studies > out[j].Studies })
	case SortStudiesLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Studies < out[j].Studies })
	}
	return out
}

// Categorize returns the category ids for one condition.
func (s *Service) Categorize(_ context.Context, cond models.Condition) []string {
	return s.classifier.Categorize(cond)
}

// CategoryCounts aggregates condition counts per category, including the
// "all" pseudo-category at the total condition count.
func (s *Service) CategoryCounts(_ context.Context) map[string]int {
	return s.classifier.Counts(s.corpus.Conditions())
}

// CompoundDetail is a compound with its soft references resolved.
type CompoundDetail struct {
	Compound          models.Compound
	Related           []models.Compound
	UnresolvedRelated []string
	Studies           []models.Study
}

// GetCompound returns a compound by id with related compounds resolved and
// associated studies attached. Unresolved related names are reported, not
// dropped; they render as plain text.
func (s *Service) GetCompound(_ context.Context, id string) (*CompoundDetail, error) {
	comp := s.corpus.CompoundByID(id)
	if comp == nil {
		return nil, apperr.ErrNotFound
	}
	related, unresolved := s.corpus.RelatedCompounds(comp)
	var studies []models.Study
	for _, st := range s.corpus.StudiesForCompound(comp.Name) {
		studies = append(studies, *st)
	}
	return &CompoundDetail{
		Compound:          *comp,
		Related:           related,
		UnresolvedRelated: unresolved,
		Studies:           studies,
	}, nil
}

// ConditionDetail is a condition with derived categories and its studies.
type ConditionDetail struct {
	Condition  models.Condition
	Categories []string
	Studies    []models.Study
}

// GetCondition returns a condition by id with derived categories and
// associated studies.
func (s *Service) GetCondition(_ context.Context, id string) (*ConditionDetail, error) {
	cond := s.corpus.ConditionByID(id)
	if cond == nil {
		return nil, apperr.ErrNotFound
	}
	var studies []models.Study
	for _, st := range s.corpus.StudiesForCondition(cond.Title) {
		studies = append(studies, *st)
	}
	return &ConditionDetail{
		Condition:  *cond,
		Categories: s.classifier.Categorize(*cond),
		Studies:    studies,
	}, nil
}

// StudyDetail is a study with its soft references resolved to records.
type StudyDetail struct {
	Study      models.Study
	Compounds  []models.Compound
	Conditions []models.Condition
}

// GetStudy returns a study by id with its compound and condition name
// references resolved through the case-insensitive name tables. Names
// with no matching record stay visible in the raw Study lists and simply
// produce no resolved entry.
func (s *Service) GetStudy(_ context.Context, id string) (*StudyDetail, error) {
	st := s.corpus.StudyByID(id)
	if st == nil {
		return nil, apperr.ErrNotFound
	}
	detail := &StudyDetail{Study: *st}
	for _, name := range st.Compounds {
		if comp := s.corpus.CompoundByName(name); comp != nil {
			detail.Compounds = append(detail.Compounds, *comp)
		}
	}
	for _, title := range st.Conditions {
		if cond := s.corpus.ConditionByTitle(title); cond != nil {
			detail.Conditions = append(detail.Conditions, *cond)
		}
	}
	return detail, nil
}

// GetTherapy returns a therapy by id.
func (s *Service) GetTherapy(_ context.Context, id string) (*models.Therapy, error) {
	th := s.corpus.TherapyByID(id)
	if th == nil {
		return nil, apperr.ErrNotFound
	}
	return th, nil
}

// Compounds returns all compound records.
func (s *Service) Compounds(_ context.Context) []models.Compound {
	return s.corpus.Compounds()
}

// Therapies returns all therapy records.
func (s *Service) Therapies(_ context.Context) []models.Therapy {
	return s.corpus.Therapies()
}

// StudyFilters describes the facet dimensions a study browser can offer.
type StudyFilters struct {
	Types          []models.StudyType
	EvidenceLevels []models.EvidenceLevel
	Compounds      []string
}

// Filters returns the closed facet vocabularies plus the distinct compound
// names referenced by studies.
func (s *Service) Filters(_ context.Context) StudyFilters {
	return StudyFilters{
		Types:          models.StudyTypes,
		EvidenceLevels: models.EvidenceLevels,
		Compounds:      s.corpus.StudyCompoundNames(),
	}
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}

func conditionTextMatch(c models.Condition, needle string) bool {
	if strings.Contains(strings.ToLower(c.Title), needle) ||
		strings.Contains(strings.ToLower(c.Description), needle) {
		return true
	}
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
