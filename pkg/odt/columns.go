package odt

// ExpandColumns translates a compact column specification into the ordered
// list of single-letter column identifiers it denotes.
//
// A bare letter denotes itself. A hyphen marks a pending range: when the
// next letter arrives, the two most recently accumulated letters are taken
// as the inclusive start and end of a range, any letters accumulated before
// them are emitted literally first, and the accumulation group is cleared.
// Letters still accumulated when input ends are emitted literally.
//
// "A-C" expands to A B C; "A-BB-E" expands to A B B C D E (the duplicate B
// follows from the literal-emit-then-range-emit rule and is preserved). A
// range whose start sorts after its end emits nothing.
func ExpandColumns(spec string) []string {
	out := make([]string, 0, len(spec))
	var group []byte
	pending := false

	for i := 0; i < len(spec); i++ {
		c := spec[i]
		switch {
		case c == '-':
			pending = true
			continue
		case c < 'A' || c > 'Z':
			continue
		}

		group = append(group, c)
		if pending && len(group) >= 2 {
			end := group[len(group)-1]
			start := group[len(group)-2]
			for _, lit := range group[:len(group)-2] {
				out = append(out, string(lit))
			}
			for c := start; c <= end; c++ {
				out = append(out, string(c))
			}
			group = group[:0]
		}
		pending = false
	}

	for _, lit := range group {
		out = append(out, string(lit))
	}
	return out
}
