// internal/editdist/editdist.go
//
// Edit distance engine for Distle feedback.
// Responsibilities:
//   - Build the memo table over Insert, Delete, Replace and adjacent Transpose,
//     each with unit cost (optimal string alignment recurrence).
//   - Report the minimal distance between two strings.
//   - Trace one canonical transform sequence back through the table, breaking
//     ties by Replace > Transpose > Insert > Delete.
//
// Notes:
//   - Strings are compared rune by rune; no normalization is applied.
//   - Every call owns its table, so all functions are safe for concurrent use.
//   - Sequences are reported top-down: the first op is the one found at the
//     (len(s0), len(s1)) corner.

package editdist

import "fmt"

// BuildTable returns the fully populated memo table for row vs col.
// Either sequence may be empty.
func BuildTable(row, col []rune) Table {
	rows, cols := len(row), len(col)
	t := make(Table, rows+1)
	for i := range t {
		t[i] = make([]int, cols+1)
		t[i][0] = i
	}
	for j := 0; j <= cols; j++ {
		t[0][j] = j
	}

	for i := 1; i <= rows; i++ {
		for j := 1; j <= cols; j++ {
			best := t[i-1][j] + 1 // delete
			if ins := t[i][j-1] + 1; ins < best {
				best = ins
			}
			rep := t[i-1][j-1]
			if row[i-1] != col[j-1] {
				rep++
			}
			if rep < best {
				best = rep
			}
			if transposable(row, col, i, j) {
				if tr := t[i-2][j-2] + 1; tr < best {
					best = tr
				}
			}
			t[i][j] = best
		}
	}
	return t
}

// transposable reports whether the last two row symbols of the (i, j)
// subproblem are the last two column symbols swapped.
func transposable(row, col []rune, i, j int) bool {
	return i > 1 && j > 1 && row[i-1] == col[j-2] && row[i-2] == col[j-1]
}

// Distance returns the minimal number of unit edits turning s0 into s1.
func Distance(s0, s1 string) int {
	if s0 == s1 {
		return 0
	}
	return BuildTable([]rune(s0), []rune(s1)).Distance()
}

// Transforms returns the canonical transform sequence turning s0 into s1.
func Transforms(s0, s1 string) Ops {
	r0, r1 := []rune(s0), []rune(s1)
	return backtrace(r0, r1, BuildTable(r0, r1))
}

// TransformsWithTable is Transforms over a table already built by
// BuildTable([]rune(s0), []rune(s1)). It panics if t has the wrong shape;
// a table built for a different pair of the same lengths gives meaningless
// results.
func TransformsWithTable(s0, s1 string, t Table) Ops {
	r0, r1 := []rune(s0), []rune(s1)
	if len(t) != len(r0)+1 || t.Cols() != len(r1) {
		panic(fmt.Sprintf("editdist: table is %dx%d, want %dx%d",
			len(t), t.Cols()+1, len(r0)+1, len(r1)+1))
	}
	return backtrace(r0, r1, t)
}

// Compare builds the table once and returns both the distance and the
// canonical transform sequence for s0 -> s1.
func Compare(s0, s1 string) (int, Ops) {
	if s0 == s1 {
		return 0, Ops{}
	}
	r0, r1 := []rune(s0), []rune(s1)
	t := BuildTable(r0, r1)
	return t.Distance(), backtrace(r0, r1, t)
}

// backtrace walks from the bottom-right corner to (0, 0), taking the first
// candidate in priority order whose predecessor lies on a minimal path.
func backtrace(s0, s1 []rune, t Table) Ops {
	i, j := len(s0), len(s1)
	out := make(Ops, 0, t[i][j])

	// Empty side: the remaining path is forced.
	if j == 0 {
		for ; i > 0; i-- {
			out = append(out, OpDelete)
		}
		return out
	}
	if i == 0 {
		for ; j > 0; j-- {
			out = append(out, OpInsert)
		}
		return out
	}

	for i > 0 || j > 0 {
		v := t[i][j]

		if i > 0 && j > 0 {
			mismatch := s0[i-1] != s1[j-1]
			rep := t[i-1][j-1]
			if mismatch {
				rep++
			}
			if rep <= v {
				if mismatch {
					out = append(out, OpReplace)
				}
				i, j = i-1, j-1
				continue
			}
		}
		if transposable(s0, s1, i, j) && t[i-2][j-2]+1 <= v {
			out = append(out, OpTranspose)
			i, j = i-2, j-2
			continue
		}
		if j > 0 && t[i][j-1]+1 <= v {
			out = append(out, OpInsert)
			j--
			continue
		}
		if i > 0 && t[i-1][j]+1 <= v {
			out = append(out, OpDelete)
			i--
			continue
		}
		panic(fmt.Sprintf("editdist: no minimal predecessor at (%d, %d)", i, j))
	}
	return out
}
