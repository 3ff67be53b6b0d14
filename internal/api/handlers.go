package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/evidencemed/atlas/internal/apperr"
	"github.com/evidencemed/atlas/internal/corpus"
	"github.com/evidencemed/atlas/internal/models"
	"github.com/evidencemed/atlas/internal/search"
	"github.com/evidencemed/atlas/internal/searchservice"
)

// MaxPageSize caps the page_size query parameter.
const MaxPageSize = 100

// Handler holds API route handlers.
type Handler struct {
	svc    *searchservice.Service
	corpus *corpus.Corpus
}

// NewHandler creates a new Handler.
func NewHandler(svc *searchservice.Service, c *corpus.Corpus) *Handler {
	return &Handler{svc: svc, corpus: c}
}

// Search handles GET /api/search.
//
//	@Summary		Search across conditions, compounds, therapies, and studies
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	false	"Search query (empty matches nothing)"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results := h.svc.Search(r.Context(), q)
	if results == nil {
		results = []models.SearchItem{}
	}
	total := len(results)
	if limit, _ := strconv.Atoi(r.URL.Query().Get("limit")); limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results, Total: total})
}

// ListStudies handles GET /api/studies.
//
//	@Summary		List studies with search, facet filters, and pagination
//	@Tags			studies
//	@Produce		json
//	@Param			q			query		string	false	"Free-text query"
//	@Param			type		query		string	false	"Study type facet"	Enums(in-vitro, animal, observational, rct, meta-analysis)
//	@Param			evidence	query		string	false	"Evidence level facet"	Enums(high, moderate, preliminary)
//	@Param			compound	query		string	false	"Compound name facet"
//	@Param			page		query		int		false	"Page number (1-based)"
//	@Param			page_size	query		int		false	"Items per page"
//	@Success		200			{object}	StudyListResponse
//	@Security		BearerAuth
//	@Router			/studies [get]
func (h *Handler) ListStudies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("page_size"))
	if size > MaxPageSize {
		size = MaxPageSize
	}

	query := searchservice.StudyQuery{
		Query:    q.Get("q"),
		Compound: q.Get("compound"),
		Page:     page,
		PageSize: size,
	}
	// Unknown facet values behave as unset rather than erroring, so stale
	// links keep working when the vocabulary changes.
	if t, err := models.ParseStudyType(q.Get("type")); err == nil {
		query.Type = t
	}
	if lvl, err := models.ParseEvidenceLevel(q.Get("evidence")); err == nil {
		query.Evidence = lvl
	}

	p := h.svc.ListStudies(r.Context(), query)
	writeJSON(w, http.StatusOK, StudyListResponse{
		Studies:    studyDTOs(p.Studies),
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
		Page:       p.Page,
	})
}

// StudyFilters handles GET /api/studies/filters.
//
//	@Summary		Facet vocabularies for the study browser
//	@Tags			studies
//	@Produce		json
//	@Success		200	{object}	StudyFiltersResponse
//	@Security		BearerAuth
//	@Router			/studies/filters [get]
func (h *Handler) StudyFilters(w http.ResponseWriter, r *http.Request) {
	f := h.svc.Filters(r.Context())
	resp := StudyFiltersResponse{Compounds: f.Compounds}
	for _, t := range f.Types {
		resp.Types = append(resp.Types, FilterOption{Value: string(t), Label: t.Label()})
	}
	for _, lvl := range f.EvidenceLevels {
		resp.EvidenceLevels = append(resp.EvidenceLevels, FilterOption{Value: string(lvl), Label: lvl.Tier().Label})
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetStudy handles GET /api/studies/{id}.
//
//	@Summary		Get a study with compound and condition references resolved
//	@Tags			studies
//	@Produce		json
//	@Param			id	path		string	true	"Study id"
//	@Success		200	{object}	StudyDetailResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/studies/{id} [get]
func (h *Handler) GetStudy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	detail, err := h.svc.GetStudy(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
		} else {
			slog.Error("get study failed", slog.String("id", id), slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	compounds := detail.Compounds
	if compounds == nil {
		compounds = []models.Compound{}
	}
	conditions := detail.Conditions
	if conditions == nil {
		conditions = []models.Condition{}
	}
	writeJSON(w, http.StatusOK, StudyDetailResponse{
		Study:      studyDTO(detail.Study),
		Compounds:  compounds,
		Conditions: conditions,
	})
}

// ListConditions handles GET /api/conditions.
//
//	@Summary		List conditions with text, category, and sort controls
//	@Tags			conditions
//	@Produce		json
//	@Param			q			query		string	false	"Free-text query"
//	@Param			category	query		string	false	"Category id ('all' or empty means no constraint)"
//	@Param			sort		query		string	false	"Sort order"	Enums(alphabetical, alphabetical-desc, studies-high, studies-low)
//	@Success		200			{object}	ConditionListResponse
//	@Security		BearerAuth
//	@Router			/conditions [get]
func (h *Handler) ListConditions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	conds := h.svc.ListConditions(r.Context(), searchservice.ConditionQuery{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
	})
	out := make([]ConditionDTO, len(conds))
	for i, c := range conds {
		out[i] = ConditionDTO{Condition: c, Categories: h.svc.Categorize(r.Context(), c)}
	}
	writeJSON(w, http.StatusOK, ConditionListResponse{Conditions: out, Total: len(out)})
}

// ConditionCategories handles GET /api/conditions/categories.
//
//	@Summary		Category breakdown with per-category condition counts
//	@Tags			conditions
//	@Produce		json
//	@Success		200	{object}	map[string][]CategoryCount
//	@Security		BearerAuth
//	@Router			/conditions/categories [get]
func (h *Handler) ConditionCategories(w http.ResponseWriter, r *http.Request) {
	counts := h.svc.CategoryCounts(r.Context())
	out := make([]CategoryCount, 0, len(search.Categories))
	for _, cat := range search.Categories {
		out = append(out, CategoryCount{ID: cat.ID, Label: cat.Label, Count: counts[cat.ID]})
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

// GetCondition handles GET /api/conditions/{id}.
//
//	@Summary		Get a condition with categories and associated studies
//	@Tags			conditions
//	@Produce		json
//	@Param			id	path		string	true	"Condition id"
//	@Success		200	{object}	ConditionDetailResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/conditions/{id} [get]
func (h *Handler) GetCondition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	detail, err := h.svc.GetCondition(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
		} else {
			slog.Error("get condition failed", slog.String("id", id), slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, ConditionDetailResponse{
		Condition:  detail.Condition,
		Categories: detail.Categories,
		Studies:    studyDTOs(detail.Studies),
	})
}

// ListCompounds handles GET /api/compounds.
//
//	@Summary		List all compounds
//	@Tags			compounds
//	@Produce		json
//	@Success		200	{object}	map[string][]models.Compound
//	@Security		BearerAuth
//	@Router			/compounds [get]
func (h *Handler) ListCompounds(w http.ResponseWriter, r *http.Request) {
	comps := h.svc.Compounds(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"compounds": comps, "total": len(comps)})
}

// GetCompound handles GET /api/compounds/{id}.
//
//	@Summary		Get a compound with related compounds and studies resolved
//	@Tags			compounds
//	@Produce		json
//	@Param			id	path		string	true	"Compound id"
//	@Success		200	{object}	CompoundDetailResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/compounds/{id} [get]
func (h *Handler) GetCompound(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	detail, err := h.svc.GetCompound(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
		} else {
			slog.Error("get compound failed", slog.String("id", id), slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	related := detail.Related
	if related == nil {
		related = []models.Compound{}
	}
	writeJSON(w, http.StatusOK, CompoundDetailResponse{
		Compound:          detail.Compound,
		Related:           related,
		UnresolvedRelated: detail.UnresolvedRelated,
		Studies:           studyDTOs(detail.Studies),
	})
}

// ListTherapies handles GET /api/therapies.
//
//	@Summary		List all therapies
//	@Tags			therapies
//	@Produce		json
//	@Success		200	{object}	map[string][]models.Therapy
//	@Security		BearerAuth
//	@Router			/therapies [get]
func (h *Handler) ListTherapies(w http.ResponseWriter, r *http.Request) {
	ths := h.svc.Therapies(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"therapies": ths, "total": len(ths)})
}

// GetTherapy handles GET /api/therapies/{id}.
//
//	@Summary		Get a single therapy by id
//	@Tags			therapies
//	@Produce		json
//	@Param			id	path		string	true	"Therapy id"
//	@Success		200	{object}	models.Therapy
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/therapies/{id} [get]
func (h *Handler) GetTherapy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	th, err := h.svc.GetTherapy(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
		} else {
			slog.Error("get therapy failed", slog.String("id", id), slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, th)
}

// CorpusInfo handles GET /api/corpus.
//
//	@Summary		Summary of the loaded corpus snapshot
//	@Tags			corpus
//	@Produce		json
//	@Success		200	{object}	CorpusInfoResponse
//	@Security		BearerAuth
//	@Router			/corpus [get]
func (h *Handler) CorpusInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CorpusInfoResponse{
		Version:    h.corpus.Version(),
		Source:     h.corpus.Source(),
		Checksum:   h.corpus.Checksum(),
		Stale:      h.corpus.Stale(),
		Conditions: len(h.corpus.Conditions()),
		Compounds:  len(h.corpus.Compounds()),
		Therapies:  len(h.corpus.Therapies()),
		Studies:    len(h.corpus.Studies()),
	})
}
