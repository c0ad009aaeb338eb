package record

import (
	"sort"
	"strconv"
	"strings"

	"github.com/coursedesk/coursedesk/core"
)

// Sort directions
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListOptions carries the list endpoint's query params.
type ListOptions struct {
	Search string
	Sort   string
	Order  string
}

// Search keeps records where any of the schema's searchable fields contains
// `term` as a case-insensitive substring. An empty term is a no-op and
// preserves store order.
func Search(schema Schema, records []Record, term string) []Record {
	term = core.CleanString(term, true /* lower */)
	if term == "" {
		return records
	}

	flds := schema.SearchFields()
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		for _, fld := range flds {
			if strings.Contains(strings.ToLower(rec.String(fld)), term) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// Sort orders records by `field` (validated against the schema's allow-list,
// falling back to the default field) in `order` direction (falling back to
// ascending). The sort is stable: equal records keep their input order.
func Sort(schema Schema, records []Record, field, order string) []Record {
	field = schema.resolveSort(core.CleanString(field, true))

	order = core.CleanString(order, true)
	if order != OrderAsc && order != OrderDesc {
		order = OrderAsc
		if field == schema.DefaultSort && schema.DefaultDesc {
			order = OrderDesc
		}
	}

	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		cmp := compareValues(out[i].String(field), out[j].String(field))
		if order == OrderDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

// compareValues compares numerically when both values parse as numbers,
// case-insensitive lexicographically otherwise.
func compareValues(a, b string) int {
	if na, errA := strconv.ParseFloat(a, 64); errA == nil {
		if nb, errB := strconv.ParseFloat(b, 64); errB == nil {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
