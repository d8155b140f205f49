package profile

import "strings"

// pairSeparator joins a machine model and a nozzle diameter inside one
// bracketed compatibility group, e.g. "[X1C++0.4]".
const pairSeparator = "++"

// Pair is one (machine model, nozzle diameter) combination.
type Pair struct {
	Model  string
	Nozzle string
}

// Key returns the "model++nozzle" form used for pair equality.
func (p Pair) Key() string {
	return p.Model + pairSeparator + p.Nozzle
}

// String returns the bracketed encoding of the pair.
func (p Pair) String() string {
	return "[" + p.Key() + "]"
}

// Compatibility is the parsed form of a filament's "models" string.
//
// A filament that declares nothing is universally compatible. A filament that
// declares something but whose groups all failed to parse is compatible with
// nothing: malformed groups never widen the match.
type Compatibility struct {
	pairs    []Pair
	declared bool
}

// ParseCompatibility parses the "[model++nozzle][model++nozzle]" encoding.
// Groups that are unterminated, empty, or missing either side of "++" are
// dropped. Text outside brackets is ignored. Duplicate pairs are collapsed,
// keeping first-seen order.
func ParseCompatibility(raw string) Compatibility {
	c := Compatibility{declared: strings.TrimSpace(raw) != ""}
	seen := make(map[string]bool)

	rest := raw
	for {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			break
		}
		rest = rest[open+1:]

		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		// A second "[" before the closing bracket restarts the group there.
		if reopen := strings.IndexByte(rest[:end], '['); reopen >= 0 {
			rest = rest[reopen:]
			continue
		}

		group := rest[:end]
		rest = rest[end+1:]

		pair, ok := parsePair(group)
		if !ok || seen[pair.Key()] {
			continue
		}
		seen[pair.Key()] = true
		c.pairs = append(c.pairs, pair)
	}
	return c
}

func parsePair(group string) (Pair, bool) {
	i := strings.Index(group, pairSeparator)
	if i <= 0 {
		return Pair{}, false
	}
	p := Pair{Model: group[:i], Nozzle: group[i+len(pairSeparator):]}
	if p.Nozzle == "" {
		return Pair{}, false
	}
	return p, true
}

// Universal reports whether the filament declared no compatibility at all.
func (c Compatibility) Universal() bool {
	return !c.declared
}

// Pairs returns a copy of the parsed pairs in declaration order.
func (c Compatibility) Pairs() []Pair {
	out := make([]Pair, len(c.pairs))
	copy(out, c.pairs)
	return out
}

// Union merges two compatibility sets. The result is declared if either side
// was; pairs keep first-seen order.
func (c Compatibility) Union(o Compatibility) Compatibility {
	out := Compatibility{declared: c.declared || o.declared}
	seen := make(map[string]bool, len(c.pairs)+len(o.pairs))
	for _, p := range append(c.Pairs(), o.pairs...) {
		if seen[p.Key()] {
			continue
		}
		seen[p.Key()] = true
		out.pairs = append(out.pairs, p)
	}
	return out
}

// String re-encodes the parsed pairs in bracket form.
func (c Compatibility) String() string {
	var b strings.Builder
	for _, p := range c.pairs {
		b.WriteString(p.String())
	}
	return b.String()
}
