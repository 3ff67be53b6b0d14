package mcpserver

import (
	"fmt"
	"strings"

	"github.com/evidencemed/atlas/internal/corpus"
	"github.com/evidencemed/atlas/internal/models"
)

// CorpusSummary renders a Markdown overview of the loaded corpus for the
// atlas://corpus-summary resource.
func CorpusSummary(c *corpus.Corpus) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Atlas Research Corpus\n\n")
	fmt.Fprintf(&b, "Version: %s (source: %s)\n\n", c.Version(), c.Source())
	fmt.Fprintf(&b, "## Records\n\n")
	fmt.Fprintf(&b, "- Conditions: %d\n", len(c.Conditions()))
	fmt.Fprintf(&b, "- Compounds: %d\n", len(c.Compounds()))
	fmt.Fprintf(&b, "- Therapies: %d\n", len(c.Therapies()))
	fmt.Fprintf(&b, "- Studies: %d\n\n", len(c.Studies()))

	fmt.Fprintf(&b, "## Study types\n\n")
	for _, t := range models.StudyTypes {
		fmt.Fprintf(&b, "- `%s`: %s\n", t, t.Label())
	}

	fmt.Fprintf(&b, "\n## Evidence levels\n\n")
	for _, lvl := range models.EvidenceLevels {
		tier := lvl.Tier()
		fmt.Fprintf(&b, "- `%s`: %s (weight %d)\n", lvl, tier.Label, tier.Weight)
	}

	names := c.StudyCompoundNames()
	if len(names) > 0 {
		fmt.Fprintf(&b, "\n## Compounds referenced by studies\n\n")
		for _, name := range names {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}

	return b.String()
}
