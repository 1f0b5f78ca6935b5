package runtime

import (
	"strings"

	"github.com/aretw0/argtree/pkg/domain"
)

// matchFilters tries filters in declaration order and returns the matched prefix of the
// first one that accepts token. Literals compare by prefix when prefix is set, and by
// equality otherwise. Patterns return the text of their first match (possibly empty).
func matchFilters(token string, filters []domain.Filter, prefix bool) (string, bool) {
	for _, f := range filters {
		switch f := f.(type) {
		case domain.Literal:
			lit := string(f)
			if prefix && strings.HasPrefix(token, lit) {
				return lit, true
			}
			if !prefix && token == lit {
				return lit, true
			}
		case domain.Pattern:
			if f.Regexp == nil {
				continue
			}
			if loc := f.Regexp.FindStringIndex(token); loc != nil {
				return token[loc[0]:loc[1]], true
			}
		case domain.Predicate:
			if f == nil {
				continue
			}
			if matched, ok := f(token); ok {
				return matched, true
			}
		}
	}
	return "", false
}

// stripPrefix removes len(prefix) bytes from the front of token.
// The matched prefix of a Pattern or Predicate need not be a true prefix; only its
// length is used.
func stripPrefix(token, prefix string) string {
	if len(prefix) >= len(token) {
		return ""
	}
	return token[len(prefix):]
}
