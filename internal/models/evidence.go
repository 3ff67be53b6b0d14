package models

// EvidenceTier is the display classification derived from an evidence level.
// Weight orders tiers (higher is stronger); ClassKey is the stable key the
// frontend maps to badge styling.
type EvidenceTier struct {
	Label    string `json:"label"`
	Weight   int    `json:"weight"`
	ClassKey string `json:"class_key"`
}

// Tier maps an evidence level to its display tier. The enum is closed, so
// every valid level has a defined tier; an unrecognized value here means the
// corpus validation in load was bypassed, and the zero tier makes that
// visible rather than hiding it.
func (l EvidenceLevel) Tier() EvidenceTier {
	switch l {
	case EvidenceHigh:
		return EvidenceTier{Label: "Strong Evidence", Weight: 3, ClassKey: "evidence-high"}
	case EvidenceModerate:
		return EvidenceTier{Label: "Moderate Evidence", Weight: 2, ClassKey: "evidence-moderate"}
	case EvidencePreliminary:
		return EvidenceTier{Label: "Preliminary Evidence", Weight: 1, ClassKey: "evidence-preliminary"}
	}
	return EvidenceTier{}
}
