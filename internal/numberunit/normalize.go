package numberunit

import "golang.org/x/text/width"

// Preprocess folds full-width characters to their narrow forms ("３０ｋｍ" ->
// "30km", ideographic space -> " "). Every rune maps to exactly one rune, so
// offsets found on the result are valid on the input.
func Preprocess(s string) string {
	changed := false
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if n := narrow(r); n != r {
			r = n
			changed = true
		}
		out = append(out, r)
	}
	if !changed {
		return s
	}
	return string(out)
}

func narrow(r rune) rune {
	if r == '\u3000' {
		return ' '
	}
	p := width.LookupRune(r)
	if p.Kind() != width.EastAsianFullwidth {
		return r
	}
	if n := p.Narrow(); n != 0 {
		return n
	}
	return r
}
