// Package testutil provides a shared fixture corpus for tests.
package testutil

import (
	"testing"

	"github.com/evidencemed/atlas/internal/corpus"
)

// fixtureDoc is a small corpus exercising every record type, all study
// types and evidence levels, and an unresolved related-compound reference.
const fixtureDoc = `
version: "fixture"
conditions:
  - id: metabolic
    title: Metabolic Disorders
    description: Diabetes, obesity, and metabolic syndrome research
    tags: [diabetes, obesity, metabolic, blood sugar]
    studies: 1200
    link: /condition/metabolic
  - id: autoimmune
    title: Autoimmune Conditions
    description: Lupus, rheumatoid arthritis, and immune system disorders
    tags: [autoimmune, lupus, arthritis, rheumatoid, immune]
    studies: 900
    link: /condition/autoimmune
  - id: neurological
    title: Neurological Conditions
    description: Dementia and cognitive health research
    tags: [brain, dementia, cognitive, memory]
    studies: 1800
    link: /condition/neurological
compounds:
  - id: curcumin
    name: Curcumin
    latin_name: Curcuma longa
    category: Herbal Compound
    studies: 890
    description: Research on inflammatory biomarkers and antioxidant properties
    tags: [curcumin, turmeric, anti-inflammatory, inflammation]
    related: [Berberine, Quercetin]
    link: /compound/curcumin
  - id: berberine
    name: Berberine
    latin_name: Berberis vulgaris
    category: Alkaloid
    studies: 420
    description: Studies on metabolic pathways and AMPK activation
    tags: [berberine, metabolic, blood sugar, ampk]
    related: [Curcumin]
    link: /compound/berberine
  - id: ashwagandha
    name: Ashwagandha
    latin_name: Withania somnifera
    category: Adaptogen
    studies: 510
    description: Research on stress biomarkers and cortisol associations
    tags: [ashwagandha, adaptogen, stress, cortisol, sleep]
    related: [Rhodiola]
    link: /compound/ashwagandha
therapies:
  - id: acupuncture
    title: Acupuncture
    description: Ancient Chinese medicine using ultra-fine needles
    tags: [acupuncture, tcm, pain]
    studies: 450
    link: /integrative-therapies
studies:
  - id: st-ash-stress
    title: Ashwagandha Root Extract in Reducing Stress and Anxiety
    abstract: Randomized trial on serum cortisol and stress scores.
    type: rct
    evidence: high
    year: 2019
    journal: Medicine
    institution: Asha Hospital
    sample_size: 60
    compounds: [Ashwagandha]
    conditions: [Neurological Conditions]
  - id: st-berb-t2d
    title: Berberine and Glycemic Control in Type 2 Diabetes
    abstract: RCT tracking HbA1c and fasting glucose.
    type: rct
    evidence: high
    year: 2021
    journal: Metabolism
    institution: Shanghai Jiao Tong University
    sample_size: 116
    compounds: [Berberine]
    conditions: [Metabolic Disorders]
  - id: st-berb-lipids
    title: Berberine Supplementation and Lipid Profiles
    abstract: Controlled trial of berberine in dyslipidemia.
    type: rct
    evidence: moderate
    year: 2020
    journal: Phytomedicine
    institution: University of Pavia
    compounds: [Berberine]
    conditions: [Metabolic Disorders]
  - id: st-curc-ra
    title: Curcumin as Adjunct Therapy in Rheumatoid Arthritis
    abstract: Observational cohort alongside conventional therapy.
    type: observational
    evidence: moderate
    year: 2018
    journal: Clinical Rheumatology
    institution: Nirmala Medical Centre
    compounds: [Curcumin]
    conditions: [Autoimmune Conditions]
  - id: st-curc-meta
    title: Meta-Analysis of Curcumin for Inflammatory Biomarkers
    abstract: Systematic review of 32 randomized trials.
    type: meta-analysis
    evidence: high
    year: 2022
    journal: Nutrients
    institution: Tehran University of Medical Sciences
    compounds: [Curcumin]
    conditions: [Autoimmune Conditions]
  - id: st-curc-invitro
    title: Curcumin Fractions in Cell Culture Inflammation Models
    abstract: In vitro cytokine response study.
    type: in-vitro
    evidence: preliminary
    year: 2015
    journal: Journal of Inflammation
    institution: Test University
    compounds: [Curcumin]
    conditions: [Autoimmune Conditions]
  - id: st-ash-animal
    title: Withanolides and Stress Resilience in Murine Models
    abstract: Animal study of withanolide fractions.
    type: animal
    evidence: preliminary
    year: 2016
    journal: Phytotherapy Research
    institution: Test University
    compounds: [Ashwagandha]
    conditions: [Neurological Conditions]
`

// Corpus parses the shared fixture corpus.
func Corpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	c, err := corpus.Parse([]byte(fixtureDoc), "fixture")
	if err != nil {
		t.Fatalf("fixture corpus: %v", err)
	}
	return c
}
