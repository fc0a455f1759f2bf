package match

import (
	"strings"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
)

// Scan applies a compiled pattern to an ordered list of text fragments
// and returns one localization per whole-token match, carrying the
// given element reference. Results are deterministic and stable:
// fragment order first, then left-to-right within each fragment.
// Offsets are byte offsets into the case-folded fragment and span
// exactly the token, excluding the separating whitespace.
func Scan(p *Pattern, element domain.ElementReference, fragments []string) []domain.Localization {
	var result []domain.Localization

	for position, fragment := range fragments {
		folded := strings.ToLower(fragment)
		for _, m := range p.re.FindAllStringSubmatchIndex(folded, -1) {
			start, end, ok := p.tokenOffsets(m)
			if !ok {
				continue
			}
			result = append(result, domain.Localization{
				Element:  element,
				Position: position,
				Start:    start,
				End:      end,
			})
		}
	}

	return result
}

// tokenOffsets disambiguates which of the three alternative groups
// fired for one match. Preference order follows the alternation:
// a non-empty whitespace-prefixed group, then a non-empty
// whitespace-suffixed group, then the alone group.
func (p *Pattern) tokenOffsets(m []int) (start, end int, ok bool) {
	if s, e := m[2*p.prefixIdx], m[2*p.prefixIdx+1]; s >= 0 && e > s {
		return s, e, true
	}
	if s, e := m[2*p.suffixIdx], m[2*p.suffixIdx+1]; s >= 0 && e > s {
		return s, e, true
	}
	if s, e := m[2*p.aloneIdx], m[2*p.aloneIdx+1]; s >= 0 {
		return s, e, true
	}
	return 0, 0, false
}
