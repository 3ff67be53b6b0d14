package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/evidencemed/atlas/internal/corpus"
	"github.com/evidencemed/atlas/internal/searchservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *searchservice.Service, c *corpus.Corpus, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, c)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Cross-type search.
	r.Get("/search", h.Search)

	// Studies.
	r.Get("/studies", h.ListStudies)
	r.Get("/studies/filters", h.StudyFilters)
	r.Get("/studies/{id}", h.GetStudy)

	// Conditions.
	r.Get("/conditions", h.ListConditions)
	r.Get("/conditions/categories", h.ConditionCategories)
	r.Get("/conditions/{id}", h.GetCondition)

	// Compounds and therapies.
	r.Get("/compounds", h.ListCompounds)
	r.Get("/compounds/{id}", h.GetCompound)
	r.Get("/therapies", h.ListTherapies)
	r.Get("/therapies/{id}", h.GetTherapy)

	// Corpus snapshot info.
	r.Get("/corpus", h.CorpusInfo)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
