package facet

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Context is the filter state of the page: the checked values of the three
// facets plus the text query. It is rebuilt on every change and never stored.
type Context struct {
	Active  PairSet
	Types   map[string]bool // lower-cased
	Vendors map[string]bool // lower-cased
	Query   string
}

// NewContext assembles a Context from the three groups.
func NewContext(machines, types, vendors Group, query string) Context {
	active := PairSet{}
	for _, v := range machines.Values() {
		if v.Checked {
			active.Add(v.Pair)
		}
	}
	return Context{
		Active:  active,
		Types:   types.CheckedKeys(),
		Vendors: vendors.CheckedKeys(),
		Query:   query,
	}
}

// Matches applies the facet predicates to one row: vendor and type checked,
// and compatible with the active pairs. The text query is not considered.
func (c Context) Matches(r Row) bool {
	return c.Vendors[strings.ToLower(r.Vendor)] &&
		c.Types[strings.ToLower(r.Type)] &&
		Compatible(r.Compatibility, c.Active)
}

// VisibleRows returns the rows that pass every facet and the text query, in
// their original order.
func VisibleRows(rows []Row, ctx Context) []Row {
	matched := queryMatches(rows, ctx.Query)
	var out []Row
	for i, r := range rows {
		if !ctx.Matches(r) {
			continue
		}
		if matched != nil && !matched[i] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// VisibleIDs returns the IDs of the visible rows.
func VisibleIDs(rows []Row, ctx Context) map[string]bool {
	out := map[string]bool{}
	for _, r := range VisibleRows(rows, ctx) {
		out[r.ID()] = true
	}
	return out
}

// rowSource implements fuzzy.Source over row short names.
type rowSource []Row

func (s rowSource) String(i int) string {
	return strings.ToLower(s[i].ShortName)
}

func (s rowSource) Len() int {
	return len(s)
}

// queryMatches returns the indices of rows matching query, or nil when the
// query is blank and everything matches.
func queryMatches(rows []Row, query string) map[int]bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	out := map[int]bool{}
	for _, m := range fuzzy.FindFrom(strings.ToLower(query), rowSource(rows)) {
		out[m.Index] = true
	}
	return out
}
