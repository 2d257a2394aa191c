package markup

// Matcher pairs opening and closing tags of one element name into Nodes.
//
// The pairing is positional, not nesting-aware: the k-th open (or
// self-closing) tag whose name matches and whose attributes satisfy the
// filter is paired with the k-th closing tag of the same name, in encounter
// order, stopping when either stream runs out. Closing tags are matched by
// name only; the filter never applies to them. This holds correctly only
// when elements of the same name do not nest inside each other, which is
// true for the element kinds odtmerge operates on (paragraphs, spans, table
// rows, cells, columns). Self-nesting input produces spans that cross
// nesting levels; that is the accepted failure mode.
type Matcher struct {
	scanner *Scanner
	name    string
	filter  Attributes

	opens  []Token
	closes []Token
}

// NewMatcher returns a Matcher over content from offset zero.
func NewMatcher(content, name string, filter Attributes) *Matcher {
	return NewMatcherFrom(content, 0, name, filter)
}

// NewMatcherFrom returns a Matcher scanning from the given byte offset.
func NewMatcherFrom(content string, from int, name string, filter Attributes) *Matcher {
	return &Matcher{
		scanner: NewScanner(content, from),
		name:    name,
		filter:  filter,
	}
}

// Next returns the next paired node in document order of the opening tags.
// The second return value is false once either the open or the close stream
// is exhausted; running out of matches is a normal outcome, not an error.
func (m *Matcher) Next() (Node, bool) {
	for len(m.opens) == 0 || len(m.closes) == 0 {
		tok, ok := m.scanner.Next()
		if !ok {
			return Node{}, false
		}
		if tok.Name != m.name {
			continue
		}
		// A self-closing tag enters both streams and completes a pairing
		// immediately.
		if (!tok.Close || tok.SelfClosing) && tok.Attrs.Match(m.filter) {
			m.opens = append(m.opens, tok)
		}
		if tok.Close {
			m.closes = append(m.closes, tok)
		}
	}

	open := m.opens[0]
	m.opens = m.opens[1:]
	closing := m.closes[0]
	m.closes = m.closes[1:]

	return Node{
		Name:  open.Name,
		Attrs: open.Attrs,
		Start: open.Start,
		End:   closing.End,
	}, true
}

// FindNodes scans content to exhaustion and returns every paired node.
func FindNodes(content, name string, filter Attributes) []Node {
	var nodes []Node
	m := NewMatcher(content, name, filter)
	for {
		node, ok := m.Next()
		if !ok {
			return nodes
		}
		nodes = append(nodes, node)
	}
}

// FirstNode returns the first paired node, or ok=false when there is none.
func FirstNode(content, name string, filter Attributes) (Node, bool) {
	return NewMatcher(content, name, filter).Next()
}

// FirstNodeFrom returns the first paired node scanning from offset from.
func FirstNodeFrom(content string, from int, name string, filter Attributes) (Node, bool) {
	return NewMatcherFrom(content, from, name, filter).Next()
}

// LastNodeFrom scans to exhaustion starting at offset from and returns the
// last paired node, or ok=false when no node starts at or after the offset.
func LastNodeFrom(content string, from int, name string, filter Attributes) (Node, bool) {
	m := NewMatcherFrom(content, from, name, filter)
	var last Node
	found := false
	for {
		node, ok := m.Next()
		if !ok {
			return last, found
		}
		last = node
		found = true
	}
}
