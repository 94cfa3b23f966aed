// Package textstat has the counting helpers shared by the heuristics.
package textstat

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Frequency counts occurrences of each item.
func Frequency(items []string) map[string]int {
	freq := make(map[string]int, len(items))
	for _, it := range items {
		freq[it]++
	}
	return freq
}

// Count is one entry of a frequency table.
type Count struct {
	Item  string
	Count int
}

// TopN returns the n most frequent items accepted by keep, most frequent
// first. Ties are broken alphabetically so the result is stable.
func TopN(freq map[string]int, n int, keep func(string) bool) []Count {
	out := make([]Count, 0, len(freq))
	for item, c := range freq {
		if keep != nil && !keep(item) {
			continue
		}
		out = append(out, Count{Item: item, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Item < out[j].Item
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// NGrams joins every run of n consecutive words with a single space.
func NGrams(words []string, n int) []string {
	if n <= 0 || len(words) < n {
		return nil
	}
	out := make([]string, 0, len(words)-n+1)
	for i := 0; i+n <= len(words); i++ {
		out = append(out, strings.Join(words[i:i+n], " "))
	}
	return out
}

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev is the sample standard deviation (divisor n-1). It returns 0 for fewer than two values.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

var (
	vowelGroup   = regexp.MustCompile(`[aeiouy]+`)
	silentE      = regexp.MustCompile(`[aeiouy][^aeiouy]e$`)
	anyVowel     = regexp.MustCompile(`[aeiouy]`)
	simpleSuffix = regexp.MustCompile(`(es|ed|ing)$`)
)

// Syllables approximates the syllable count of word by counting vowel
// groups. Words of three letters or fewer count as one syllable. The
// result is never below one.
func Syllables(word string) int {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return 0
	}
	if len([]rune(w)) <= 3 {
		return 1
	}
	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && silentE.MatchString(w) {
		if stem := w[:len(w)-1]; anyVowel.MatchString(stem) {
			w = stem
		}
	}
	n := len(vowelGroup.FindAllString(w, -1))
	if n < 1 {
		n = 1
	}
	return n
}

// IsComplex reports whether word counts toward the Gunning Fog complex-word
// total: three or more syllables, where an -es/-ed/-ing ending only counts
// if the stem alone still has three syllables or the word has more than three.
func IsComplex(word string) bool {
	syl := Syllables(word)
	if syl < 3 {
		return false
	}
	w := strings.ToLower(word)
	if !simpleSuffix.MatchString(w) || syl > 3 {
		return true
	}
	return Syllables(simpleSuffix.ReplaceAllString(w, "")) >= 3
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || places < 0 {
		return v
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
