package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	in := "# comment\nCat\n\n  cot \nca5t\nc-a\nhack\n"
	got, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "cot", "hack"}, got)
}

func TestNewListDedupesAndSorts(t *testing.T) {
	l := NewList([]string{"cot", "cat", "CAT", "cast", "", "x1"})
	assert.Equal(t, []string{"cast", "cat", "cot"}, l.Words())
	assert.Equal(t, 3, l.Len())
	assert.True(t, l.Contains("Cast"))
	assert.False(t, l.Contains("x1"))
	assert.Equal(t, "cat", l.At(1))

	// Words returns a copy.
	ws := l.Words()
	ws[0] = "zzz"
	assert.Equal(t, "cast", l.At(0))
}

func TestRandomStaysInList(t *testing.T) {
	l := NewList([]string{"cat", "cot"})
	for i := 0; i < 20; i++ {
		assert.True(t, l.Contains(l.Random()))
	}
	assert.Equal(t, "", NewList(nil).Random())
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "dict.txt")
	require.NoError(t, os.WriteFile(p, []byte("alpha\nBeta\n#x\ngamma\n"), 0o644))

	got, err := ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, got)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	got, err = ReadFile(empty)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ReadFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestDefaultDictionary(t *testing.T) {
	require.NoError(t, Init(""))
	assert.Greater(t, Stats(), 100)
	assert.True(t, IsAllowed("cat"))
	assert.True(t, IsAllowed("COT"))
	assert.False(t, IsAllowed("qqqqq"))
	assert.True(t, IsAllowed(RandomWord()))

	all := All()
	assert.IsIncreasing(t, all)
}
