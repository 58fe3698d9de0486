package player

import (
	"math/rand"
	"sort"
	"strings"
)

// openingWord picks the first guess: among words of the most common length,
// prefer those containing all of the n most frequent letters (n being that
// length). Falls back to any word of that length. ws must be non-empty.
func openingWord(ws []string, rng *rand.Rand) string {
	length := commonLength(ws)

	sameLen := make([]string, 0, len(ws))
	for _, w := range ws {
		if len([]rune(w)) == length {
			sameLen = append(sameLen, w)
		}
	}

	letters := topLetters(sameLen, length)
	var best []string
	for _, w := range sameLen {
		if containsAll(w, letters) {
			best = append(best, w)
		}
	}
	if len(best) > 0 {
		return best[rng.Intn(len(best))]
	}
	return sameLen[rng.Intn(len(sameLen))]
}

// commonLength returns the most frequent word length; ties go to the shorter.
func commonLength(ws []string) int {
	counts := make(map[int]int)
	for _, w := range ws {
		counts[len([]rune(w))]++
	}
	best, bestCount := 0, 0
	for l, c := range counts {
		if c > bestCount || (c == bestCount && l < best) {
			best, bestCount = l, c
		}
	}
	return best
}

// topLetters returns the n most frequent letters across ws, most frequent
// first; ties are broken alphabetically.
func topLetters(ws []string, n int) []rune {
	counts := make(map[rune]int)
	for _, w := range ws {
		for _, r := range w {
			counts[r]++
		}
	}
	letters := make([]rune, 0, len(counts))
	for r := range counts {
		letters = append(letters, r)
	}
	sort.Slice(letters, func(i, j int) bool {
		if counts[letters[i]] != counts[letters[j]] {
			return counts[letters[i]] > counts[letters[j]]
		}
		return letters[i] < letters[j]
	})
	if len(letters) > n {
		letters = letters[:n]
	}
	return letters
}

func containsAll(w string, letters []rune) bool {
	for _, r := range letters {
		if !strings.ContainsRune(w, r) {
			return false
		}
	}
	return true
}
