package listing

import (
	"fmt"
	"strings"
)

// Builder accumulates SQL boolean clauses alongside their bound values,
// tracking the next positional placeholder. Untrusted input is only ever
// bound through Bind, never written into clause text.
type Builder struct {
	clauses []string
	args    []any
}

// Bind appends a value to the argument list and returns its placeholder.
func (b *Builder) Bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// Add appends a finished boolean clause.
func (b *Builder) Add(clause string) {
	b.clauses = append(b.clauses, clause)
}

// Where joins the accumulated clauses with AND.
func (b *Builder) Where() string {
	return strings.Join(b.clauses, " AND ")
}

// Args returns the bound values in placeholder order.
func (b *Builder) Args() []any {
	return b.args
}

// Query is a compiled search, ready for the storage layer to wrap into a
// count statement and a row statement sharing the same predicates.
type Query struct {
	Where    string
	Args     []any
	Distance string // SQL distance-km expression, empty unless a radius is active
	OrderBy  string
}

// CompileSearch turns a Filter into predicates for the general listing search.
func CompileSearch(f Filter) Query {
	b := &Builder{}
	compileFilter(b, f)
	return Query{
		Where:   b.Where(),
		Args:    b.Args(),
		OrderBy: orderBy(f.Sort, false),
	}
}

// compileFilter emits the shared predicate set. Soft-deleted rows are always
// excluded, and the active-status restriction applies unless the caller
// filtered on status explicitly.
func compileFilter(b *Builder, f Filter) {
	b.Add("deleted_at IS NULL")

	if f.Status != "" {
		b.Add(fmt.Sprintf("status = %s", b.Bind(f.Status)))
	} else {
		b.Add(fmt.Sprintf("status = %s", b.Bind(StatusActive)))
	}

	if f.Country != "" {
		b.Add(fmt.Sprintf("country_code = %s", b.Bind(f.Country)))
	}
	if f.City != "" {
		b.Add(fmt.Sprintf("city ILIKE %s", b.Bind("%"+f.City+"%")))
	}
	if f.Area != "" {
		b.Add(fmt.Sprintf("area ILIKE %s", b.Bind("%"+f.Area+"%")))
	}
	if f.VehicleType != "" {
		b.Add(fmt.Sprintf("vehicle_type = %s", b.Bind(f.VehicleType)))
	}
	if f.Transmission != "" {
		b.Add(fmt.Sprintf("transmission = %s", b.Bind(f.Transmission)))
	}
	if f.Fuel != "" {
		b.Add(fmt.Sprintf("fuel_type = %s", b.Bind(f.Fuel)))
	}

	if f.Seats != nil {
		b.Add(fmt.Sprintf("seats >= %s", b.Bind(*f.Seats)))
	}

	yearMin, yearMax := orderedRange(f.YearMin, f.YearMax)
	if yearMin != nil {
		b.Add(fmt.Sprintf("year >= %s", b.Bind(*yearMin)))
	}
	if yearMax != nil {
		b.Add(fmt.Sprintf("year <= %s", b.Bind(*yearMax)))
	}

	minPrice, maxPrice := orderedRange(f.MinPrice, f.MaxPrice)
	if minPrice != nil {
		b.Add(fmt.Sprintf("price_per_day >= %s", b.Bind(*minPrice)))
	}
	if maxPrice != nil {
		b.Add(fmt.Sprintf("price_per_day <= %s", b.Bind(*maxPrice)))
	}

	if f.HasImage != nil {
		if *f.HasImage {
			b.Add("(has_image = TRUE AND image_public = TRUE)")
		} else {
			b.Add("has_image = FALSE")
		}
	}

	if f.Term != "" {
		// One placeholder shared across all five comparisons.
		p := b.Bind("%" + f.Term + "%")
		b.Add(fmt.Sprintf(
			"(title ILIKE %[1]s OR make ILIKE %[1]s OR model ILIKE %[1]s OR city ILIKE %[1]s OR area ILIKE %[1]s)", p))
	}
}

// orderedRange swaps an inverted min/max pair instead of letting it compile
// into an empty result set.
func orderedRange(lo, hi *int) (*int, *int) {
	if lo != nil && hi != nil && *lo > *hi {
		return hi, lo
	}
	return lo, hi
}
