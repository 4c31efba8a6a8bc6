// Package numwords spells non-negative integers as words.
// Used for the legal amount-in-words line on official documents, so the
// output must be deterministic: same number, same language, same string.
//
// Supported languages: French ("fr", the default document locale) and
// English ("en"). Unknown languages fall back to French.
package numwords

import (
	"fmt"
	"strings"
)

// Spell returns n spelled out in the given language, lower-case.
// n must be in [0, 999_999_999_999].
func Spell(lang string, n int64) (string, error) {
	if n < 0 || n > 999_999_999_999 {
		return "", fmt.Errorf("numwords: %d out of supported range", n)
	}
	switch lang {
	case "en":
		return spellEnglish(n), nil
	default:
		return spellFrench(n), nil
	}
}

// --- French ---

var frUnits = []string{
	"zéro", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit", "neuf",
	"dix", "onze", "douze", "treize", "quatorze", "quinze", "seize",
	"dix-sept", "dix-huit", "dix-neuf",
}

var frTens = map[int64]string{
	20: "vingt", 30: "trente", 40: "quarante", 50: "cinquante", 60: "soixante",
}

// spellFrenchBelow100 handles the irregular French tens:
// 21 "vingt et un", 71 "soixante et onze", 80 "quatre-vingts", 95 "quatre-vingt-quinze".
func spellFrenchBelow100(n int64) string {
	switch {
	case n < 20:
		return frUnits[n]
	case n < 70:
		tens, unit := (n/10)*10, n%10
		if unit == 0 {
			return frTens[tens]
		}
		if unit == 1 {
			return frTens[tens] + " et un"
		}
		return frTens[tens] + "-" + frUnits[unit]
	case n < 80:
		// 70..79 count from sixty: soixante-dix, soixante et onze, soixante-douze...
		if n == 71 {
			return "soixante et onze"
		}
		return "soixante-" + frUnits[n-60]
	default:
		// 80..99 count from four twenties.
		if n == 80 {
			return "quatre-vingts"
		}
		return "quatre-vingt-" + frUnits[n-80]
	}
}

func spellFrenchBelow1000(n int64) string {
	if n < 100 {
		return spellFrenchBelow100(n)
	}
	hundreds, rest := n/100, n%100
	var head string
	if hundreds == 1 {
		head = "cent"
	} else if rest == 0 {
		// "cents" takes the plural s only when nothing follows.
		head = frUnits[hundreds] + " cents"
	} else {
		head = frUnits[hundreds] + " cent"
	}
	if rest == 0 {
		return head
	}
	return head + " " + spellFrenchBelow100(rest)
}

func spellFrench(n int64) string {
	if n == 0 {
		return "zéro"
	}

	type scale struct {
		value    int64
		singular string
		plural   string
	}
	// "mille" is invariant, "million"/"milliard" take a plural s.
	scales := []scale{
		{1_000_000_000, "milliard", "milliards"},
		{1_000_000, "million", "millions"},
		{1_000, "mille", "mille"},
	}

	var parts []string
	rest := n
	for _, s := range scales {
		count := rest / s.value
		rest %= s.value
		if count == 0 {
			continue
		}
		name := s.singular
		if count > 1 {
			name = s.plural
		}
		switch {
		case s.value == 1_000 && count == 1:
			// "mille", never "un mille"
			parts = append(parts, name)
		case s.value == 1_000:
			// Before "mille" the multiplier stays adjectival, so "vingt"
			// and "cent" drop their plural s: "quatre-vingt mille",
			// "deux cent mille". Before million/milliard (nouns) it stays.
			parts = append(parts, dropAdjectivalPlural(spellFrenchBelow1000(count))+" "+name)
		default:
			parts = append(parts, spellFrenchBelow1000(count)+" "+name)
		}
	}
	if rest > 0 {
		parts = append(parts, spellFrenchBelow1000(rest))
	}
	return strings.Join(parts, " ")
}

func dropAdjectivalPlural(s string) string {
	if strings.HasSuffix(s, "vingts") || strings.HasSuffix(s, "cents") {
		return strings.TrimSuffix(s, "s")
	}
	return s
}

// --- English ---

var enUnits = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var enTens = map[int64]string{
	20: "twenty", 30: "thirty", 40: "forty", 50: "fifty",
	60: "sixty", 70: "seventy", 80: "eighty", 90: "ninety",
}

func spellEnglishBelow100(n int64) string {
	if n < 20 {
		return enUnits[n]
	}
	tens, unit := (n/10)*10, n%10
	if unit == 0 {
		return enTens[tens]
	}
	return enTens[tens] + "-" + enUnits[unit]
}

func spellEnglishBelow1000(n int64) string {
	if n < 100 {
		return spellEnglishBelow100(n)
	}
	hundreds, rest := n/100, n%100
	head := enUnits[hundreds] + " hundred"
	if rest == 0 {
		return head
	}
	return head + " " + spellEnglishBelow100(rest)
}

func spellEnglish(n int64) string {
	if n == 0 {
		return "zero"
	}

	type scale struct {
		value int64
		name  string
	}
	scales := []scale{
		{1_000_000_000, "billion"},
		{1_000_000, "million"},
		{1_000, "thousand"},
	}

	var parts []string
	rest := n
	for _, s := range scales {
		count := rest / s.value
		rest %= s.value
		if count == 0 {
			continue
		}
		parts = append(parts, spellEnglishBelow1000(count)+" "+s.name)
	}
	if rest > 0 {
		parts = append(parts, spellEnglishBelow1000(rest))
	}
	return strings.Join(parts, " ")
}
