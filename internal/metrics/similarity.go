package metrics

import (
	"strings"

	"github.com/agext/levenshtein"
)

// Similarity scores two texts in [0, 1]. Both inputs are case-folded and
// whitespace-normalized first. The score is the better of a token-overlap
// (Dice) coefficient and an edit-distance ratio; both components are
// symmetric, so the blend is too. Fuzzy matching is deliberate: the same
// piece of work rarely repeats verbatim between the task and requirement
// documents.
func Similarity(a, b string) float64 {
	na, nb := normalize(a), normalize(b)
	if na == "" || nb == "" {
		if na == nb {
			return 1
		}
		return 0
	}
	if na == nb {
		return 1
	}
	dice := tokenOverlap(na, nb)
	edit := levenshtein.Similarity(na, nb, nil)
	if dice > edit {
		return dice
	}
	return edit
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// tokenOverlap computes 2*|A∩B| / (|A|+|B|) over unique tokens.
func tokenOverlap(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	common := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			common++
		}
	}
	return 2 * float64(common) / float64(len(ta)+len(tb))
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		tok = strings.Trim(tok, ".,;:!?()[]\"'")
		if tok == "" {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}
