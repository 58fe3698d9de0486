package editdist

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTableBorders(t *testing.T) {
	tbl := BuildTable([]rune("abc"), []rune("wxyz"))
	require.Len(t, tbl, 4)
	for i := range tbl {
		require.Len(t, tbl[i], 5)
		assert.Equal(t, i, tbl[i][0])
	}
	for j := 0; j <= 4; j++ {
		assert.Equal(t, j, tbl[0][j])
	}
	assert.Equal(t, 3, tbl.Rows())
	assert.Equal(t, 4, tbl.Cols())
}

func TestBuildTableEmpty(t *testing.T) {
	tbl := BuildTable(nil, nil)
	require.Equal(t, Table{{0}}, tbl)
	assert.Equal(t, 0, tbl.Distance())
}

func TestDistanceAndTransforms(t *testing.T) {
	var cases = []struct {
		s0, s1 string
		dist   int
		ops    string
	}{
		{"hack", "fkc", 3, "TRD"},
		{"fkc", "hack", 3, "TRI"},
		{"kitten", "sitting", 3, "IRR"},
		{"abcd", "acbd", 1, "T"},
		{"ca", "abc", 3, "RRI"},
		{"rules", "ralse", 2, "TR"},
		{"california", "California", 1, "R"},
		{"ab", "ba", 1, "T"},
		{"abc", "axc", 1, "R"},
		{"abc", "ab", 1, "D"},
		{"ab", "abc", 1, "I"},
		{"abcdef", "badcfe", 3, "TTT"},
		{"cat", "tac", 2, "RR"},
		{"word", "wrod", 1, "T"},
		{"héllo", "hlélo", 1, "T"},
		{"", "abc", 3, "III"},
		{"abc", "", 3, "DDD"},
		{"", "", 0, ""},
	}

	for _, c := range cases {
		assert.Equal(t, c.dist, Distance(c.s0, c.s1), "Distance(%q, %q)", c.s0, c.s1)
		got := Transforms(c.s0, c.s1)
		assert.Equal(t, c.ops, got.String(), "Transforms(%q, %q)", c.s0, c.s1)

		d, ops := Compare(c.s0, c.s1)
		assert.Equal(t, c.dist, d)
		assert.True(t, ops.Equal(got), "Compare(%q, %q) = %v, want %v", c.s0, c.s1, ops, got)
	}
}

func TestWorkedExampleIsNotMirrored(t *testing.T) {
	assert.Equal(t, Ops{OpTranspose, OpReplace, OpDelete}, Transforms("hack", "fkc"))
	assert.Equal(t, Ops{OpTranspose, OpReplace, OpInsert}, Transforms("fkc", "hack"))
}

func TestTransposePreferredWhenCheapest(t *testing.T) {
	// Two replaces also reach "ba" but cost 2.
	assert.Equal(t, 1, Distance("ab", "ba"))
	assert.Equal(t, Ops{OpTranspose}, Transforms("ab", "ba"))
}

func TestReplaceBeatsInsertDeleteOnTie(t *testing.T) {
	// At (2,1) the free diagonal match is taken first, leaving the forced
	// delete of "x".
	assert.Equal(t, Ops{OpDelete}, Transforms("xa", "a"))
	// "a" -> "b": Replace (1) vs Insert+Delete (2).
	assert.Equal(t, Ops{OpReplace}, Transforms("a", "b"))
}

func TestFreeMatchEmitsNothing(t *testing.T) {
	assert.Equal(t, Ops{OpReplace}, Transforms("abc", "axc"))
	assert.Empty(t, Transforms("abc", "abc"))
	assert.Equal(t, 0, Distance("abc", "abc"))
}

func TestEmptyStrings(t *testing.T) {
	for _, s := range []string{"a", "ab", "distle", "ünï"} {
		n := len([]rune(s))
		assert.Equal(t, n, Distance("", s))
		assert.Equal(t, n, Distance(s, ""))
		assert.Equal(t, repeat(OpInsert, n), Transforms("", s))
		assert.Equal(t, repeat(OpDelete, n), Transforms(s, ""))
	}
}

func TestTransformsWithTable(t *testing.T) {
	s0, s1 := "kitten", "sitting"
	tbl := BuildTable([]rune(s0), []rune(s1))
	require.Equal(t, 3, tbl.Distance())
	assert.Equal(t, Transforms(s0, s1), TransformsWithTable(s0, s1, tbl))
	// Table is read-only: a second trace over it gives the same answer.
	assert.Equal(t, Transforms(s0, s1), TransformsWithTable(s0, s1, tbl))
}

func TestTransformsWithTableWrongShapePanics(t *testing.T) {
	tbl := BuildTable([]rune("abc"), []rune("ab"))
	assert.Panics(t, func() { TransformsWithTable("ab", "abc", tbl) })
	assert.Panics(t, func() { TransformsWithTable("ab", "abc", nil) })
}

func TestProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 2000; n++ {
		s0, s1 := randWord(rng), randWord(rng)

		d01 := Distance(s0, s1)
		ops := Transforms(s0, s1)
		require.Len(t, ops, d01, "len(Transforms(%q, %q))", s0, s1)
		require.Equal(t, d01, Distance(s1, s0), "symmetry %q %q", s0, s1)

		require.Equal(t, 0, Distance(s0, s0))
		require.Empty(t, Transforms(s0, s0))
		require.Equal(t, ops, Transforms(s0, s1), "determinism %q %q", s0, s1)
	}
}

// Adjacent transposition distance is not a metric: a transposed pair cannot
// be edited again, so going through "ac" is cheaper than the direct route.
func TestNoTriangleInequality(t *testing.T) {
	assert.Equal(t, 3, Distance("ca", "abc"))
	assert.Equal(t, 1, Distance("ca", "ac"))
	assert.Equal(t, 1, Distance("ac", "abc"))
	assert.Greater(t, Distance("ca", "abc"), Distance("ca", "ac")+Distance("ac", "abc"))
	assert.Len(t, Transforms("ca", "abc"), 3)
}

func TestParseOps(t *testing.T) {
	ops, ok := ParseOps("TRID")
	require.True(t, ok)
	assert.Equal(t, Ops{OpTranspose, OpReplace, OpInsert, OpDelete}, ops)

	_, ok = ParseOps("RX")
	assert.False(t, ok)

	ops, ok = ParseOps("")
	require.True(t, ok)
	assert.Empty(t, ops)
}

func TestOpsEqual(t *testing.T) {
	assert.True(t, Ops{}.Equal(nil))
	assert.True(t, Ops{OpReplace}.Equal(Ops{OpReplace}))
	assert.False(t, Ops{OpReplace}.Equal(Ops{OpInsert}))
	assert.False(t, Ops{OpReplace}.Equal(Ops{OpReplace, OpReplace}))
}

func repeat(op Op, n int) Ops {
	out := Ops{}
	for i := 0; i < n; i++ {
		out = append(out, op)
	}
	return out
}

// randWord draws short words over a tiny alphabet so ties are common.
func randWord(rng *rand.Rand) string {
	var sb strings.Builder
	for n := rng.Intn(7); n > 0; n-- {
		sb.WriteByte("abc"[rng.Intn(3)])
	}
	return sb.String()
}

var result int

func BenchmarkDistance(b *testing.B) {
	var r int
	for n := 0; n < b.N; n++ {
		r = Distance("asdfadsf", "lkjlkjhjhlkjl")
	}
	result = r
}

func BenchmarkTransforms(b *testing.B) {
	var r int
	for n := 0; n < b.N; n++ {
		r = len(Transforms("asdfadsf", "lkjlkjhjhlkjl"))
	}
	result = r
}
