package annotate

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// normHeaderKey: нижний регистр, NBSP и служебные символы в пробел, пробелы схлопнуты.
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ", "ё", "е").Replace(s)
	s = nonWord.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// selectColumns returns the headers matching filter, in table order.
// Альтернативы через "|": сначала точное совпадение, потом нормализованное,
// потом вхождение ("price" найдёт "Unit price, USD").
func selectColumns(headers []string, filter string) []string {
	if strings.TrimSpace(filter) == "" {
		return headers
	}
	picked := map[string]bool{}
	for _, alt := range strings.Split(filter, "|") {
		if k := resolveKey(headers, alt); k != "" {
			picked[k] = true
		}
	}
	var out []string
	for _, h := range headers {
		if picked[h] {
			out = append(out, h)
		}
	}
	return out
}

func resolveKey(headers []string, want string) string {
	want = strings.TrimSpace(want)
	if want == "" {
		return ""
	}
	for _, h := range headers {
		if h == want {
			return h
		}
	}
	nWant := normHeaderKey(want)
	if nWant == "" {
		return ""
	}
	best, bestLen := "", 0
	for _, h := range headers {
		nh := normHeaderKey(h)
		if nh == nWant {
			return h
		}
		// самое короткое из содержащих: самое точное
		if strings.Contains(nh, nWant) && (best == "" || len(nh) < bestLen) {
			best, bestLen = h, len(nh)
		}
	}
	return best
}
