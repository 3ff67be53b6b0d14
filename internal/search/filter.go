package search

import (
	"strings"

	"github.com/evidencemed/atlas/internal/models"
)

// Facets are the independently togglable study filter dimensions. A zero
// value on any dimension imposes no constraint.
type Facets struct {
	Type     models.StudyType
	Evidence models.EvidenceLevel
	Compound string
}

// IsZero reports whether no facet is set.
func (f Facets) IsZero() bool {
	return f.Type == "" && f.Evidence == "" && f.Compound == ""
}

// ApplyFacets narrows studies to those satisfying every set facet.
// Predicates are evaluated per study and short-circuit on the first
// failure; the result equals the intersection of the individually
// filtered sets.
func ApplyFacets(studies []models.Study, f Facets) []models.Study {
	if f.IsZero() {
		return studies
	}
	out := make([]models.Study, 0, len(studies))
	for _, s := range studies {
		if f.Type != "" && s.Type != f.Type {
			continue
		}
		if f.Evidence != "" && s.Evidence != f.Evidence {
			continue
		}
		if f.Compound != "" && !mentionsCompound(s, f.Compound) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func mentionsCompound(s models.Study, name string) bool {
	for _, c := range s.Compounds {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}
