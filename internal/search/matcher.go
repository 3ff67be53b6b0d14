// Package search implements the query engine core: ranked text matching,
// conjunctive facet filtering, keyword categorization, and pagination. All
// functions are pure over their arguments.
package search

import (
	"strings"

	"github.com/evidencemed/atlas/internal/models"
)

// Match ranks, best first. Lower is better; RankNone means no match.
const (
	RankExact     = 0 // query equals the title
	RankPrefix    = 1 // title starts with the query
	RankSubstring = 2 // query occurs in title, description, or a tag
	RankTokens    = 3 // every query token occurs somewhere in the record
	RankNone      = -1
)

// MatchResult is the outcome of matching one item against a query.
type MatchResult struct {
	IsMatch bool
	Rank    int
}

// Match decides whether item matches the free-text query and assigns the
// coarse relevance rank. Ranks are evaluated best-first and the first
// satisfied one wins. An empty or whitespace-only query matches nothing:
// the product shows an empty result set until the user types.
func Match(query string, item models.SearchItem) MatchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return MatchResult{IsMatch: false, Rank: RankNone}
	}

	title := strings.ToLower(item.Title)
	if title == q {
		return MatchResult{IsMatch: true, Rank: RankExact}
	}
	if strings.HasPrefix(title, q) {
		return MatchResult{IsMatch: true, Rank: RankPrefix}
	}

	desc := strings.ToLower(item.Description)
	if strings.Contains(title, q) || strings.Contains(desc, q) || tagContains(item.Tags, q) {
		return MatchResult{IsMatch: true, Rank: RankSubstring}
	}

	// Token-AND: a multi-word query matches when every token occurs
	// somewhere in the concatenated fields, contiguous or not.
	combined := combinedText(title, desc, item.Tags)
	tokens := strings.Fields(q)
	for _, tok := range tokens {
		if !strings.Contains(combined, tok) {
			return MatchResult{IsMatch: false, Rank: RankNone}
		}
	}
	return MatchResult{IsMatch: true, Rank: RankTokens}
}

func tagContains(tags []string, q string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func combinedText(title, desc string, tags []string) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteByte(' ')
	b.WriteString(desc)
	for _, tag := range tags {
		b.WriteByte(' ')
		b.WriteString(strings.ToLower(tag))
	}
	return b.String()
}

// Rank matches items against query and returns the hits ordered by rank
// ascending. Ties keep the input order, so results are reproducible for a
// given corpus.
func Rank(query string, items []models.SearchItem) []models.SearchItem {
	var buckets [RankTokens + 1][]models.SearchItem
	for _, item := range items {
		res := Match(query, item)
		if !res.IsMatch {
			continue
		}
		buckets[res.Rank] = append(buckets[res.Rank], item)
	}

	var out []models.SearchItem
	for _, bucket := range buckets {
		out = append(out, bucket...)
	}
	return out
}
