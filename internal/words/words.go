// internal/words/words.go
//
// Provides dictionary management for the game engine and the guessing agent.
//
// Responsibilities:
//   - Load the dictionary from an environment-provided file or fall back to the
//     embedded default in the assets package.
//   - Maintain a set for quick lookups and a sorted slice for deterministic
//     iteration (the agent copies it as its working dictionary).
//   - Supply utility functions like RandomWord, IsAllowed, All, and Stats.
//
// Initialization behavior (Init):
//   1. If a path is given, the file is memory-mapped and parsed one word per line.
//   2. Otherwise the embedded assets/dictionary.txt is used.
//
// Constraints:
//   • Words are lowercase a–z, any length ≥ 1; other lines are skipped.
//   • Duplicates are dropped.
//   • Initialization is run once (sync.Once); accessors initialize lazily
//     with the embedded dictionary if Init was never called.

package words

import (
	"bufio"
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/edsrzf/mmap-go"

	"github.com/robalobadob/distle/assets"
)

// ErrEmpty is returned when a dictionary contains no usable words.
var ErrEmpty = errors.New("words: dictionary is empty")

var (
	initOnce   sync.Once
	dict       *List
	initialErr error
)

// List is an immutable, sorted, de-duplicated dictionary.
type List struct {
	words []string
	set   map[string]struct{}
}

// NewList normalizes ws into a List.
func NewList(ws []string) *List {
	l := &List{set: make(map[string]struct{}, len(ws))}
	for _, w := range ws {
		w = normalize(w)
		if w == "" {
			continue
		}
		if _, dup := l.set[w]; dup {
			continue
		}
		l.set[w] = struct{}{}
		l.words = append(l.words, w)
	}
	sort.Strings(l.words)
	return l
}

// Words returns a copy of the sorted word slice.
func (l *List) Words() []string {
	return append([]string(nil), l.words...)
}

// Contains reports whether w (case-insensitive) is in the list.
func (l *List) Contains(w string) bool {
	_, ok := l.set[strings.ToLower(w)]
	return ok
}

// Len returns the number of words.
func (l *List) Len() int { return len(l.words) }

// Random returns a cryptographically random word, or "" for an empty list.
func (l *List) Random() string {
	if len(l.words) == 0 {
		return ""
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(l.words))))
	return l.words[nBig.Int64()]
}

// At returns the i-th word in sorted order.
func (l *List) At(i int) string { return l.words[i] }

// Init loads the package dictionary exactly once.
// Returns an error if the dictionary ends up empty.
func Init(path string) error {
	initOnce.Do(func() {
		var ws []string
		var err error
		if path != "" {
			ws, err = ReadFile(path)
		} else {
			ws, err = assets.DictionaryList()
		}
		if err != nil {
			initialErr = err
			dict = NewList(nil)
			return
		}
		dict = NewList(ws)
		if dict.Len() == 0 {
			initialErr = ErrEmpty
		}
	})
	return initialErr
}

// Default returns the package dictionary, loading the embedded one if needed.
func Default() *List {
	_ = Init("")
	return dict
}

// ReadFile memory-maps path and parses one word per line.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	// mmap rejects zero-length mappings.
	if st.Size() == 0 {
		return nil, nil
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	defer m.Unmap()
	return Parse(bytes.NewReader(m))
}

// Parse reads one word per line, skipping blanks and # comments.
// Returned strings do not alias the reader's memory.
func Parse(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if w := normalize(line); w != "" {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// normalize lowercases and trims w; returns "" unless it is all a–z.
func normalize(w string) string {
	w = strings.TrimSpace(strings.ToLower(w))
	if w == "" || !isAlpha(w) {
		return ""
	}
	return w
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// IsAlpha is exported for request validation elsewhere.
func IsAlpha(s string) bool { return s != "" && isAlpha(s) }

// All returns a sorted copy of the package dictionary.
func All() []string { return Default().Words() }

// RandomWord returns a random dictionary word.
// Falls back to "distle" if the dictionary is empty.
func RandomWord() string {
	if w := Default().Random(); w != "" {
		return w
	}
	return "distle"
}

// IsAllowed reports whether w is a dictionary word.
func IsAllowed(w string) bool { return Default().Contains(w) }

// Stats returns the number of loaded words.
func Stats() int { return Default().Len() }
