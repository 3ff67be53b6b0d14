// Package corpus loads the static research corpus and builds the derived
// indices the query layer reads. The loaded snapshot is immutable: every
// accessor is a read over data constructed once in Load.
package corpus

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync/atomic"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/evidencemed/atlas/internal/checksum"
	"github.com/evidencemed/atlas/internal/models"
)

//go:embed corpus.yaml
var embedded []byte

// SourceEmbedded is the Source reported when the corpus was loaded from the
// data file compiled into the binary.
const SourceEmbedded = "embedded"

// file is the on-disk shape of the corpus document.
type file struct {
	Version    string             `yaml:"version"`
	Conditions []models.Condition `yaml:"conditions"`
	Compounds  []models.Compound  `yaml:"compounds"`
	Therapies  []models.Therapy   `yaml:"therapies"`
	Studies    []models.Study     `yaml:"studies"`
}

// Corpus is the immutable in-memory snapshot plus its derived indices.
type Corpus struct {
	version  string
	source   string
	checksum string

	conditions []models.Condition
	compounds  []models.Compound
	therapies  []models.Therapy
	studies    []models.Study

	conditionByID map[string]*models.Condition
	compoundByID  map[string]*models.Compound
	therapyByID   map[string]*models.Therapy
	studyByID     map[string]*models.Study

	// Soft references (study associations, related compounds) resolve
	// through these case-insensitive name tables.
	compoundByName  map[string]*models.Compound
	conditionByName map[string]*models.Condition

	studiesByCompound  map[string][]*models.Study
	studiesByCondition map[string][]*models.Study

	items []models.SearchItem

	stale atomic.Bool
}

// Load reads and validates the corpus. An empty path loads the embedded
// data file. Any validation failure (duplicate id, value outside a closed
// enum, missing required field) is returned as an error the caller must
// treat as fatal: it means the data source itself is corrupted.
func Load(path string) (*Corpus, error) {
	if path == "" {
		return Parse(embedded, SourceEmbedded)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse builds a corpus from a raw document. Load wraps it; tests use it
// directly with fixture documents.
func Parse(data []byte, source string) (*Corpus, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("corpus: parse %s: %w", source, err)
	}

	c := &Corpus{
		version:    f.Version,
		source:     source,
		checksum:   checksum.Sum(data),
		conditions: f.Conditions,
		compounds:  f.Compounds,
		therapies:  f.Therapies,
		studies:    f.Studies,
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	c.buildIndices()
	c.buildItems()
	return c, nil
}

func (c *Corpus) validate() error {
	seen := make(map[string]struct{})
	unique := func(kind, id string) error {
		if id == "" {
			return nil // caught by the per-record rules above
		}
		key := kind + "/" + id
		if _, ok := seen[key]; ok {
			return fmt.Errorf("corpus: duplicate %s id %q", kind, id)
		}
		seen[key] = struct{}{}
		return nil
	}

	for i := range c.conditions {
		rec := &c.conditions[i]
		if err := validation.ValidateStruct(rec,
			validation.Field(&rec.ID, validation.Required),
			validation.Field(&rec.Title, validation.Required),
			validation.Field(&rec.Description, validation.Required),
		); err != nil {
			return fmt.Errorf("corpus: condition %q: %w", rec.ID, err)
		}
		if err := unique("condition", rec.ID); err != nil {
			return err
		}
	}

	for i := range c.compounds {
		rec := &c.compounds[i]
		if err := validation.ValidateStruct(rec,
			validation.Field(&rec.ID, validation.Required),
			validation.Field(&rec.Name, validation.Required),
			validation.Field(&rec.Description, validation.Required),
		); err != nil {
			return fmt.Errorf("corpus: compound %q: %w", rec.ID, err)
		}
		if err := unique("compound", rec.ID); err != nil {
			return err
		}
	}

	for i := range c.therapies {
		rec := &c.therapies[i]
		if err := validation.ValidateStruct(rec,
			validation.Field(&rec.ID, validation.Required),
			validation.Field(&rec.Title, validation.Required),
		); err != nil {
			return fmt.Errorf("corpus: therapy %q: %w", rec.ID, err)
		}
		if err := unique("therapy", rec.ID); err != nil {
			return err
		}
	}

	for i := range c.studies {
		rec := &c.studies[i]
		if err := validation.ValidateStruct(rec,
			validation.Field(&rec.ID, validation.Required),
			validation.Field(&rec.Title, validation.Required),
			validation.Field(&rec.Year, validation.Required, validation.Min(1000), validation.Max(9999)),
		); err != nil {
			return fmt.Errorf("corpus: study %q: %w", rec.ID, err)
		}
		if _, err := models.ParseStudyType(string(rec.Type)); err != nil {
			return fmt.Errorf("corpus: study %q: %w", rec.ID, err)
		}
		if _, err := models.ParseEvidenceLevel(string(rec.Evidence)); err != nil {
			return fmt.Errorf("corpus: study %q: %w", rec.ID, err)
		}
		if err := unique("study", rec.ID); err != nil {
			return err
		}
	}

	return nil
}

func (c *Corpus) buildIndices() {
	c.conditionByID = make(map[string]*models.Condition, len(c.conditions))
	c.conditionByName = make(map[string]*models.Condition, len(c.conditions))
	for i := range c.conditions {
		rec := &c.conditions[i]
		c.conditionByID[rec.ID] = rec
		c.conditionByName[strings.ToLower(rec.Title)] = rec
	}

	c.compoundByID = make(map[string]*models.Compound, len(c.compounds))
	c.compoundByName = make(map[string]*models.Compound, len(c.compounds))
	for i := range c.compounds {
		rec := &c.compounds[i]
		c.compoundByID[rec.ID] = rec
		c.compoundByName[strings.ToLower(rec.Name)] = rec
	}

	c.therapyByID = make(map[string]*models.Therapy, len(c.therapies))
	for i := range c.therapies {
		c.therapyByID[c.therapies[i].ID] = &c.therapies[i]
	}

	c.studyByID = make(map[string]*models.Study, len(c.studies))
	c.studiesByCompound = make(map[string][]*models.Study)
	c.studiesByCondition = make(map[string][]*models.Study)
	for i := range c.studies {
		rec := &c.studies[i]
		c.studyByID[rec.ID] = rec
		for _, name := range rec.Compounds {
			key := strings.ToLower(name)
			c.studiesByCompound[key] = append(c.studiesByCompound[key], rec)
		}
		for _, name := range rec.Conditions {
			key := strings.ToLower(name)
			c.studiesByCondition[key] = append(c.studiesByCondition[key], rec)
		}
	}
}

// buildItems projects every record into the SearchItem shape once, in a
// stable order (conditions, compounds, therapies, studies). Search results
// preserve this order within a rank bucket.
func (c *Corpus) buildItems() {
	c.items = make([]models.SearchItem, 0,
		len(c.conditions)+len(c.compounds)+len(c.therapies)+len(c.studies))

	for _, rec := range c.conditions {
		c.items = append(c.items, models.SearchItem{
			ID:          rec.ID,
			Title:       rec.Title,
			Description: rec.Description,
			Category:    models.CategoryCondition,
			Tags:        rec.Tags,
			Studies:     rec.Studies,
			Link:        rec.Link,
		})
	}
	for _, rec := range c.compounds {
		tags := rec.Tags
		if rec.LatinName != "" {
			tags = append(append([]string{}, rec.Tags...), strings.ToLower(rec.LatinName))
		}
		c.items = append(c.items, models.SearchItem{
			ID:          rec.ID,
			Title:       rec.Name,
			Description: rec.Description,
			Category:    models.CategoryCompound,
			Tags:        tags,
			Studies:     rec.Studies,
			Link:        rec.Link,
		})
	}
	for _, rec := range c.therapies {
		c.items = append(c.items, models.SearchItem{
			ID:          rec.ID,
			Title:       rec.Title,
			Description: rec.Description,
			Category:    models.CategoryTherapy,
			Tags:        rec.Tags,
			Studies:     rec.Studies,
			Link:        rec.Link,
		})
	}
	for _, rec := range c.studies {
		tags := make([]string, 0, len(rec.Compounds)+len(rec.Conditions))
		tags = append(tags, rec.Compounds...)
		tags = append(tags, rec.Conditions...)
		c.items = append(c.items, models.SearchItem{
			ID:          rec.ID,
			Title:       rec.Title,
			Description: rec.Abstract,
			Category:    models.CategoryResearch,
			Tags:        tags,
			Link:        "/research/" + rec.ID,
		})
	}
}

// Version returns the corpus document version string.
func (c *Corpus) Version() string { return c.version }

// Source returns where the corpus was loaded from.
func (c *Corpus) Source() string { return c.source }

// Checksum returns the hex SHA-256 of the raw corpus document.
func (c *Corpus) Checksum() string { return c.checksum }

// Conditions returns all condition records. Callers must not mutate.
func (c *Corpus) Conditions() []models.Condition { return c.conditions }

// Compounds returns all compound records. Callers must not mutate.
func (c *Corpus) Compounds() []models.Compound { return c.compounds }

// Therapies returns all therapy records. Callers must not mutate.
func (c *Corpus) Therapies() []models.Therapy { return c.therapies }

// Studies returns all study records. Callers must not mutate.
func (c *Corpus) Studies() []models.Study { return c.studies }

// SearchItems returns the precomputed projection of every record.
func (c *Corpus) SearchItems() []models.SearchItem { return c.items }

// ConditionByID returns the condition with the given id, or nil.
func (c *Corpus) ConditionByID(id string) *models.Condition { return c.conditionByID[id] }

// CompoundByID returns the compound with the given id, or nil.
func (c *Corpus) CompoundByID(id string) *models.Compound { return c.compoundByID[id] }

// TherapyByID returns the therapy with the given id, or nil.
func (c *Corpus) TherapyByID(id string) *models.Therapy { return c.therapyByID[id] }

// StudyByID returns the study with the given id, or nil.
func (c *Corpus) StudyByID(id string) *models.Study { return c.studyByID[id] }

// CompoundByName resolves a denormalized compound name, case-insensitively.
// A nil result is a tolerated soft-reference miss, not an error.
func (c *Corpus) CompoundByName(name string) *models.Compound {
	return c.compoundByName[strings.ToLower(name)]
}

// ConditionByTitle resolves a denormalized condition title, case-insensitively.
func (c *Corpus) ConditionByTitle(title string) *models.Condition {
	return c.conditionByName[strings.ToLower(title)]
}

// StudiesForCompound returns the studies associated with a compound name.
func (c *Corpus) StudiesForCompound(name string) []*models.Study {
	return c.studiesByCompound[strings.ToLower(name)]
}

// StudiesForCondition returns the studies associated with a condition title.
func (c *Corpus) StudiesForCondition(title string) []*models.Study {
	return c.studiesByCondition[strings.ToLower(title)]
}

// RelatedCompounds resolves a compound's related-compound names. Names with
// no matching record come back in unresolved; they still render as text.
func (c *Corpus) RelatedCompounds(comp *models.Compound) (resolved []models.Compound, unresolved []string) {
	for _, name := range comp.Related {
		if rec := c.CompoundByName(name); rec != nil {
			resolved = append(resolved, *rec)
		} else {
			unresolved = append(unresolved, name)
		}
	}
	return resolved, unresolved
}

// StudyCompoundNames returns the distinct compound names referenced by
// studies, sorted. This feeds the compound facet dropdown.
func (c *Corpus) StudyCompoundNames() []string {
	set := make(map[string]struct{})
	for _, s := range c.studies {
		for _, name := range s.Compounds {
			set[name] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// MarkStale records that the backing data file changed on disk. The loaded
// snapshot never changes; restarting the process picks up the new file.
func (c *Corpus) MarkStale() { c.stale.Store(true) }

// Stale reports whether the backing data file changed since load.
func (c *Corpus) Stale() bool { return c.stale.Load() }
