package suggest

import "strings"

// Suffix-rule pluralization, not a dictionary. Good enough for the
// resource/operation vocabulary these services deal with ("message",
// "channel", "file", "query", ...).

// Pluralize returns the plural form of word by suffix rules.
func Pluralize(word string) string {
	switch {
	case word == "":
		return word
	case strings.HasSuffix(word, "y") && !hasVowelBeforeSuffix(word, "y"):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(word, "s"), strings.HasSuffix(word, "x"),
		strings.HasSuffix(word, "z"), strings.HasSuffix(word, "ch"),
		strings.HasSuffix(word, "sh"):
		return word + "es"
	default:
		return word + "s"
	}
}

// Singularize returns the singular form of word by suffix rules. Words that
// do not look plural are returned unchanged.
func Singularize(word string) string {
	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 3:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "xes"), strings.HasSuffix(word, "zes"),
		strings.HasSuffix(word, "ches"), strings.HasSuffix(word, "shes"),
		strings.HasSuffix(word, "sses"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") && len(word) > 1:
		return word[:len(word)-1]
	default:
		return word
	}
}

func hasVowelBeforeSuffix(word, suffix string) bool {
	idx := len(word) - len(suffix) - 1
	if idx < 0 {
		return false
	}

	return strings.ContainsRune("aeiou", rune(word[idx]))
}
