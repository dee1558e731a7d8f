package normalize

// Mapping relates rune offsets of normalized text to the text it was
// normalized from. Output rune i came from input runes
// [Starts[i], Ends[i]). Len is the rune length of the input.
type Mapping struct {
	Starts []int
	Ends   []int
	Len    int

	ident bool
}

func identity(n int) Mapping {
	return Mapping{Len: n, ident: true}
}

func (m *Mapping) add(lo, hi int) {
	m.Starts = append(m.Starts, lo)
	m.Ends = append(m.Ends, hi)
}

// Offset maps an output offset to the input offset it starts at. The
// end of the output maps to the end of the input.
func (m Mapping) Offset(i int) int {
	if i < 0 {
		return 0
	}
	if m.ident {
		return min(i, m.Len)
	}
	if i >= len(m.Starts) {
		return m.Len
	}
	return m.Starts[i]
}

// End maps an exclusive output end offset to an exclusive input end.
func (m Mapping) End(i int) int {
	if i <= 0 {
		return 0
	}
	if m.ident {
		return min(i, m.Len)
	}
	if i > len(m.Ends) {
		return m.Len
	}
	return m.Ends[i-1]
}

// then composes m, which maps a middle text to the input, with next,
// which maps an output to the middle text.
func (m Mapping) then(next Mapping) Mapping {
	if m.ident {
		next.Len = m.Len
		return next
	}
	if next.ident {
		return m
	}
	out := Mapping{Len: m.Len}
	for i := range next.Starts {
		out.add(m.Offset(next.Starts[i]), m.End(next.Ends[i]))
	}
	return out
}
