// Package markup provides linear scanning, matching, and construction of
// ODF content-stream markup. It deliberately avoids building a parse tree:
// tags are recognized by a single left-to-right scan and paired positionally,
// which is sufficient for the element kinds odtmerge operates on.
package markup

// Attributes maps attribute names to their values for one tag occurrence.
type Attributes map[string]string

// Match reports whether every key in filter is present with an equal value.
// A nil or empty filter matches any tag. A key missing from the attributes
// never matches, regardless of the filter value.
func (a Attributes) Match(filter Attributes) bool {
	for key, want := range filter {
		got, ok := a[key]
		if !ok || got != want {
			return false
		}
	}
	return true
}

// Token represents one lexical tag occurrence in the content buffer:
// an opening tag, an explicit closing tag, or a self-closing tag.
type Token struct {
	// Close is true for explicit closing tags and for self-closing tags.
	Close bool

	// SelfClosing is true only for the <name .../> form. A self-closing
	// tag acts as an open that immediately completes its own pairing.
	SelfClosing bool

	// Name is the literal namespaced element name (prefix:local-name).
	// No namespace resolution is performed.
	Name string

	// Attrs holds the recognized key="value" assignments of this tag.
	Attrs Attributes

	// Start is the byte index of the leading '<' (inclusive).
	Start int

	// End is the byte index just past the trailing '>' (exclusive).
	End int
}

// Text returns the raw source text of this token from the given content.
func (t Token) Text(content string) string {
	if t.Start < 0 || t.End > len(content) || t.Start > t.End {
		return ""
	}
	return content[t.Start:t.End]
}

// Node represents a matched open-tag...close-tag span over the content
// buffer it was scanned from. Start and End delimit the full source span,
// including both tags. The offsets are only valid against the buffer
// version they were computed from: any mutation makes them stale.
type Node struct {
	// Name is the namespaced element name of the opening tag.
	Name string

	// Attrs are the attributes of the opening tag.
	Attrs Attributes

	// Start is the byte index of the opening tag's '<' (inclusive).
	Start int

	// End is the byte index just past the closing tag's '>' (exclusive).
	End int
}

// Text returns the full source span of this node, both tags included.
func (n Node) Text(content string) string {
	if n.Start < 0 || n.End > len(content) || n.Start > n.End {
		return ""
	}
	return content[n.Start:n.End]
}

// Len returns the length of the node's source span in bytes.
func (n Node) Len() int {
	return n.End - n.Start
}
