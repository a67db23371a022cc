package filters

import "strings"

// MatchTerm returns the first term that is a case-insensitive substring of any
// of the ingredients. Blank terms never match.
func MatchTerm(ingredients []string, terms []string) (string, bool) {
	for _, term := range terms {
		needle := strings.ToLower(strings.TrimSpace(term))
		if needle == "" {
			continue
		}
		for _, ing := range ingredients {
			if strings.Contains(strings.ToLower(ing), needle) {
				return term, true
			}
		}
	}
	return "", false
}

// MatchAllTerms returns every term that matches at least one ingredient, in
// term order.
func MatchAllTerms(ingredients []string, terms []string) []string {
	var matched []string
	for _, term := range terms {
		if _, ok := MatchTerm(ingredients, []string{term}); ok {
			matched = append(matched, term)
		}
	}
	return matched
}

// ContainsFold reports whether list holds s, ignoring case and surrounding
// whitespace.
func ContainsFold(list []string, s string) bool {
	s = strings.TrimSpace(s)
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), s) {
			return true
		}
	}
	return false
}
