package search

import (
	"strings"

	"github.com/evidencemed/atlas/internal/models"
)

// Category ids with special meaning to the classifier.
const (
	CategoryAll   = "all"   // pseudo-category: every condition
	CategoryOther = "other" // fallback when no keyword matches
)

// Category is one entry of the controlled topical vocabulary. Keywords are
// lowercase substrings tested against a condition's combined text.
type Category struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Keywords []string `json:"-"`
}

// Categories is the hand-authored controlled vocabulary. The "all" entry is
// a pseudo-category the classifier skips; "other" has no keywords and is
// only ever assigned as a fallback. Keyword edits shift the category counts
// shown on the conditions page, so change them deliberately.
var Categories = []Category{
	{ID: CategoryAll, Label: "All Categories"},
	{ID: "autoimmune", Label: "Autoimmune", Keywords: []string{"autoimmune", "lupus", "sle", "rheumatoid", "scleroderma", "sjogrens", "myasthenia"}},
	{ID: "cancer", Label: "Cancer & Oncology", Keywords: []string{"cancer", "oncology", "tumor"}},
	{ID: "cardiovascular", Label: "Cardiovascular", Keywords: []string{"heart", "cardiovascular", "blood pressure", "hypertension", "circulation", "cardiac"}},
	{ID: "digestive", Label: "Digestive & Gut", Keywords: []string{"digestive", "gut", "bowel", "ibs", "ibd", "crohns", "colitis", "stomach", "liver", "intestine", "gastro"}},
	{ID: "hormonal", Label: "Hormonal & Endocrine", Keywords: []string{"hormonal", "thyroid", "diabetes", "pcos", "menopause", "testosterone", "adrenal", "insulin", "endocrine"}},
	{ID: "infections", Label: "Infections", Keywords: []string{"infection", "virus", "viral", "bacterial", "fungal", "lyme", "covid", "herpes", "ebv"}},
	{ID: "longevity", Label: "Longevity & Aging", Keywords: []string{"aging", "longevity", "senescence", "telomere", "mitochondrial", "oxidative", "cognitive decline", "sarcopenia"}},
	{ID: "mental-health", Label: "Mental Health", Keywords: []string{"mental health", "anxiety", "depression", "ptsd", "ocd", "bipolar", "adhd", "autism", "stress", "mood"}},
	{ID: "metabolic", Label: "Metabolic", Keywords: []string{"metabolic", "obesity", "weight", "blood sugar", "insulin resistance"}},
	{ID: "neurological", Label: "Neurological", Keywords: []string{"neurological", "brain", "dementia", "alzheimers", "parkinsons", "cognitive", "memory", "neurodegenerative"}},
	{ID: "pain", Label: "Pain & Fatigue", Keywords: []string{"pain", "fatigue", "fibromyalgia", "chronic fatigue", "migraine", "headache", "neuropathy"}},
	{ID: "respiratory", Label: "Respiratory", Keywords: []string{"respiratory", "lungs", "asthma", "copd", "breathing", "bronchitis", "pulmonary"}},
	{ID: "skin", Label: "Skin & Dermatology", Keywords: []string{"skin", "dermatology", "psoriasis", "eczema", "acne", "rosacea", "vitiligo"}},
	{ID: "urinary", Label: "Urinary & Kidney", Keywords: []string{"kidney", "renal", "urinary", "bladder", "prostate", "uti"}},
	{ID: "womens-health", Label: "Women's Health", Keywords: []string{"women", "fertility", "endometriosis", "ovary", "uterus", "menstrual", "pregnancy", "perimenopause"}},
	{ID: "mens-health", Label: "Men's Health", Keywords: []string{"men", "testosterone", "prostate", "erectile", "libido"}},
	{ID: "eye", Label: "Eye & Vision", Keywords: []string{"eye", "vision", "retina", "macular", "glaucoma", "cataracts"}},
}

// CategoryLabel returns the display label for a category id. The fallback
// bucket has no table entry and gets a fixed label.
func CategoryLabel(id string) string {
	if id == CategoryOther {
		return "Other"
	}
	for _, cat := range Categories {
		if cat.ID == id {
			return cat.Label
		}
	}
	return id
}

// Classifier assigns topical categories to conditions by keyword matching
// against the controlled vocabulary. Classification is pure and
// input-stable, so it is computed once per condition at construction and
// the memo is read-only afterwards.
type Classifier struct {
	table []Category
	memo  map[string][]string // condition id -> category ids
}

// NewClassifier builds a classifier over table and precomputes categories
// for every given condition.
func NewClassifier(table []Category, conditions []models.Condition) *Classifier {
	cl := &Classifier{
		table: table,
		memo:  make(map[string][]string, len(conditions)),
	}
	for _, cond := range conditions {
		cl.memo[cond.ID] = cl.classify(cond)
	}
	return cl
}

// Categorize returns the category ids for a condition, never empty: a
// condition matching nothing lands in the "other" bucket. Conditions seen
// at construction are answered from the memo.
func (cl *Classifier) Categorize(cond models.Condition) []string {
	if cats, ok := cl.memo[cond.ID]; ok {
		return cats
	}
	return cl.classify(cond)
}

// classify tests each category's keywords as substrings of the lowercased
// title+description+tags concatenation. Substring-over-concatenation is
// deliberately permissive; switching to whole-word matching would shift the
// published category counts.
func (cl *Classifier) classify(cond models.Condition) []string {
	var b strings.Builder
	for _, tag := range cond.Tags {
		b.WriteString(strings.ToLower(tag))
		b.WriteByte(' ')
	}
	b.WriteString(strings.ToLower(cond.Title))
	b.WriteByte(' ')
	b.WriteString(strings.ToLower(cond.Description))
	combined := b.String()

	var matched []string
	for _, cat := range cl.table {
		if cat.ID == CategoryAll {
			continue
		}
		for _, kw := range cat.Keywords {
			if strings.Contains(combined, strings.ToLower(kw)) {
				matched = append(matched, cat.ID)
				break
			}
		}
	}
	if len(matched) == 0 {
		return []string{CategoryOther}
	}
	return matched
}

// Counts aggregates category membership across conditions. The "all"
// pseudo-category always equals the total condition count.
func (cl *Classifier) Counts(conditions []models.Condition) map[string]int {
	counts := map[string]int{CategoryAll: len(conditions)}
	for _, cond := range conditions {
		for _, cat := range cl.Categorize(cond) {
			counts[cat]++
		}
	}
	return counts
}
