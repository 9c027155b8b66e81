package utils

import (
	"strconv"
	"strings"
)

// ParseFloatLocale парсит число с заданными разделителями групп и дробной части:
// "1,234.50" (group ",", decimal "."), "1.234,5" (group ".", decimal ","),
// "1 234,50" с NBSP/NNBSP. Дроби вида "3/4" тоже поддерживаются.
func ParseFloatLocale(s, group, decimal string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	repl := strings.NewReplacer("\u00A0", "", "\u202F", "", "\u2009", "", " ", "")
	s = repl.Replace(s)
	if group != "" && group != decimal {
		s = strings.ReplaceAll(s, group, "")
	}
	if decimal != "" && decimal != "." {
		s = strings.ReplaceAll(s, decimal, ".")
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		a, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, false
		}
		b, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil || b == 0 {
			return 0, false
		}
		return a / b, true
	}
	if s == "" || s == "-" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// FormatFloat prints the shortest decimal form without exponent: 3.5, 1234, 0.02.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
