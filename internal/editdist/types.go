// internal/editdist/types.go
//
// Core type definitions for the edit distance engine.
// Defines:
//   - Op:    a single unit-cost edit (replace/transpose/insert/delete).
//   - Ops:   an ordered transform sequence.
//   - Table: the dynamic-programming memo table for a string pair.

package editdist

import "strings"

// Op is one primitive string manipulation. Values are the single-letter tags
// reported to players ("R", "T", "I", "D").
type Op string

const (
	OpReplace   Op = "R"
	OpTranspose Op = "T"
	OpInsert    Op = "I"
	OpDelete    Op = "D"
)

// Valid reports whether op is one of the four known tags.
func (op Op) Valid() bool {
	switch op {
	case OpReplace, OpTranspose, OpInsert, OpDelete:
		return true
	}
	return false
}

// Ops is an ordered transform sequence, top-down from the (R, C) corner.
type Ops []Op

// Equal reports whether a and b have the same ops in the same order.
func (a Ops) Equal(b Ops) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders the sequence as its concatenated tags, e.g. "TRD".
func (a Ops) String() string {
	var sb strings.Builder
	sb.Grow(len(a))
	for _, op := range a {
		sb.WriteString(string(op))
	}
	return sb.String()
}

// ParseOps converts a tag string such as "TRD" back into a sequence.
// ok is false if any character is not a known tag.
func ParseOps(s string) (ops Ops, ok bool) {
	ops = make(Ops, 0, len(s))
	for _, r := range s {
		op := Op(string(r))
		if !op.Valid() {
			return nil, false
		}
		ops = append(ops, op)
	}
	return ops, true
}

// Table is the (R+1)x(C+1) memo table. Cell [i][j] holds the edit distance
// between the first i row symbols and the first j column symbols.
// It is never mutated after BuildTable returns.
type Table [][]int

// Rows returns R, the length of the row sequence.
func (t Table) Rows() int { return len(t) - 1 }

// Cols returns C, the length of the column sequence.
func (t Table) Cols() int {
	if len(t) == 0 {
		return -1
	}
	return len(t[0]) - 1
}

// Distance returns the bottom-right cell.
func (t Table) Distance() int { return t[t.Rows()][t.Cols()] }
