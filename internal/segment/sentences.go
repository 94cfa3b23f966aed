package segment

import (
	"regexp"
	"strings"
	"unicode"
)

var abbreviations = map[string]struct{}{
	"Mr": {}, "Mrs": {}, "Ms": {}, "Dr": {}, "Sr": {}, "Jr": {}, "St": {},
	"Ave": {}, "Rd": {}, "Blvd": {}, "Capt": {}, "Cmdr": {}, "Gen": {}, "Gov": {},
	"Hon": {}, "Lt": {}, "Messrs": {}, "Prof": {}, "Rep": {}, "Rev": {}, "Sen": {},
	"Vol": {}, "No": {}, "Fig": {}, "vs": {}, "etc": {}, "i.e": {}, "e.g": {},
}

var naiveBreak = regexp.MustCompile(`[.?!]\s+`)

// Sentences splits on '.', '!' or '?' followed by whitespace and then an
// uppercase letter, a digit, a quote or the end of the text. A period that
// closes a known abbreviation or a dotted initialism (U.S, J.R.R) does not split.
//
// Whitespace is collapsed first, so sentences never contain line breaks.
func Sentences(text string) []string {
	cleaned := strings.Join(strings.Fields(text), " ")
	if cleaned == "" {
		return nil
	}
	out := splitSentences([]rune(cleaned))
	if len(out) == 0 {
		out = naiveSentences(cleaned)
	}
	return out
}

func splitSentences(runes []rune) []string {
	var out []string
	start := 0
	for i, r := range runes {
		if r != '.' && r != '?' && r != '!' {
			continue
		}
		if i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		next := i + 1
		for next < len(runes) && unicode.IsSpace(runes[next]) {
			next++
		}
		if next < len(runes) && !opensSentence(runes[next]) {
			continue
		}
		if r == '.' && suppressed(runes[start:i]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			out = append(out, s)
		}
		start = next
	}
	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func opensSentence(r rune) bool {
	switch r {
	case '"', '\'', '“', '‘':
		return true
	}
	return unicode.IsUpper(r) || unicode.IsDigit(r)
}

// suppressed reports whether the token just before a period is an
// abbreviation or an initialism like "U.S".
func suppressed(prefix []rune) bool {
	s := string(prefix)
	if idx := strings.LastIndexFunc(s, unicode.IsSpace); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimLeft(s, "\"'“‘([{")
	if s == "" {
		return false
	}
	if _, ok := abbreviations[s]; ok {
		return true
	}
	return isInitialism(s)
}

// isInitialism matches letter(.letter)+, e.g. "U.S" or "J.R.R".
func isInitialism(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts {
		rs := []rune(p)
		if len(rs) != 1 || !unicode.IsLetter(rs[0]) {
			return false
		}
	}
	return true
}

func naiveSentences(text string) []string {
	var out []string
	prev := 0
	for _, loc := range naiveBreak.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[prev : loc[0]+1]); s != "" {
			out = append(out, s)
		}
		prev = loc[1]
	}
	if s := strings.TrimSpace(text[prev:]); s != "" {
		out = append(out, s)
	}
	return out
}
