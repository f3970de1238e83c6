package services

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	"github.com/agnivade/levenshtein"
)

// HeaderMatchThreshold is the minimum similarity (0-100) for a header to map to a field.
const HeaderMatchThreshold = 60

// fieldSynonyms is resolved in order; a header claimed by an earlier field is not offered to later ones.
var fieldSynonyms = []struct {
	field    domain.CanonicalField
	synonyms []string
}{
	{domain.FieldEarningAmount, []string{
		"earning_amount", "earning amount", "earnings", "amount", "revenue", "net revenue",
		"royalty", "royalties", "total", "payable", "income",
	}},
	{domain.FieldCatalogNo, []string{
		"catalog_no", "catalog no", "catalog number", "catalogue number", "catalog #",
		"cat no", "cat. no", "cat#", "catno",
	}},
	{domain.FieldReleaseTitle, []string{
		"release_title", "release title", "release name", "release", "title", "album", "product title",
	}},
}

// similarity is 100 * (1 - distance / longest), computed on lower-cased, trimmed strings.
func similarity(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * (1 - float64(d)/float64(longest))))
}

// MapHeaders picks, for each canonical field, the best-scoring header at or above the threshold.
// Fields with no such header are absent from the result.
func MapHeaders(headers []string) map[domain.CanonicalField]*domain.ColumnMatch {
	mapping := make(map[domain.CanonicalField]*domain.ColumnMatch, len(fieldSynonyms))
	claimed := make(map[int]bool, len(headers))

	for _, fs := range fieldSynonyms {
		best, bestScore := -1, 0
		for i, h := range headers {
			if claimed[i] || strings.TrimSpace(h) == "" {
				continue
			}
			for _, syn := range fs.synonyms {
				if score := similarity(h, syn); score > bestScore {
					best, bestScore = i, score
				}
			}
		}
		if best >= 0 && bestScore >= HeaderMatchThreshold {
			claimed[best] = true
			mapping[fs.field] = &domain.ColumnMatch{
				Header: strings.TrimSpace(headers[best]),
				Index:  best,
				Score:  bestScore,
			}
		}
	}
	return mapping
}
