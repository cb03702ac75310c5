package repository

import "strings"

// setBuilder accumulates "col = ?" fragments for a partial UPDATE. Only the
// fields present in a patch end up in the statement, so columns the caller
// did not touch keep their stored value.
type setBuilder struct {
	cols []string
	args []any
}

// add unconditionally appends a column assignment.
func (b *setBuilder) add(col string, v any) {
	b.cols = append(b.cols, col+" = ?")
	b.args = append(b.args, v)
}

// empty reports whether no assignment was collected; callers skip the UPDATE
// entirely in that case instead of issuing a no-op round trip.
func (b *setBuilder) empty() bool { return len(b.cols) == 0 }

// clause joins the collected assignments for use after SET.
func (b *setBuilder) clause() string { return strings.Join(b.cols, ", ") }

// addIf appends the assignment only when the patch field is present.
func addIf[T any](b *setBuilder, col string, p *T) {
	if p != nil {
		b.add(col, *p)
	}
}
