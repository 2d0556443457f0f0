// Package query provides the pure filter/sort/paginate helpers UI
// collaborators compose over record slices, in that order. Nothing here
// touches storage; everything operates on values already read.
package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sakanapp/sakan/internal/models"
)

// SearchFilter returns a predicate matching records where the lowercased
// term is a substring of the lowercased string form of any named field. An
// empty term matches everything. Fields the record does not have are
// skipped.
func SearchFilter(term string, fields ...string) func(models.Record) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return func(models.Record) bool { return true }
	}

	return func(rec models.Record) bool {
		for _, f := range fields {
			v, ok := rec.Field(f)
			if !ok {
				continue
			}
			if strings.Contains(strings.ToLower(stringify(v)), term) {
				return true
			}
		}
		return false
	}
}

// Filter returns the records matching pred, preserving order.
func Filter[T models.Record](recs []T, pred func(models.Record) bool) []T {
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Direction of a sort.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sorter returns a comparator over the named field, suitable for
// slices.SortStableFunc. Two numeric values compare numerically, anything
// else compares lexicographically on its string form; a record missing the
// field sorts first in ascending order. Ties break on record id so the
// ordering is total regardless of input order.
func Sorter(field string, dir Direction) func(a, b models.Record) int {
	return func(a, b models.Record) int {
		va, oka := a.Field(field)
		vb, okb := b.Field(field)

		var c int
		switch {
		case !oka && !okb:
			c = 0
		case !oka:
			c = -1
		case !okb:
			c = 1
		default:
			c = compareValues(va, vb)
		}
		if dir == Desc {
			c = -c
		}
		if c == 0 {
			c = strings.Compare(a.RecordID(), b.RecordID())
		}
		return c
	}
}

func compareValues(a, b any) int {
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}

	na, aNum := asNumber(a)
	nb, bNum := asNumber(b)
	if aNum && bNum {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	}

	return strings.Compare(stringify(a), stringify(b))
}

func asNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	}
	return 0, false
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
