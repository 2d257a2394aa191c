package markup

import "strings"

// ElementKind is one of the recognized element names odtmerge constructs.
type ElementKind string

// Recognized element kinds of the target document format.
const (
	ElemParagraph   ElementKind = "text:p"
	ElemSpan        ElementKind = "text:span"
	ElemTable       ElementKind = "table:table"
	ElemRow         ElementKind = "table:table-row"
	ElemCell        ElementKind = "table:table-cell"
	ElemColumn      ElementKind = "table:table-column"
	ElemHeaderRows  ElementKind = "table:table-header-rows"
	ElemCoveredCell ElementKind = "table:covered-table-cell"
)

// Attr is one serialized attribute. Attrs keep their list order so output
// is deterministic.
type Attr struct {
	Name  string
	Value string
}

// Element is a reusable template for one serialized element. It is a value
// type: every With method returns a modified copy and never mutates the
// receiver, so a base template can be shared across invocations without
// overrides leaking between them.
type Element struct {
	Kind     ElementKind
	Attrs    []Attr
	Text     string
	Children []string
}

// NewElement returns an empty element of the given kind.
func NewElement(kind ElementKind) Element {
	return Element{Kind: kind}
}

// WithAttr returns a copy with the named attribute set. An existing
// attribute of the same name is overridden in place; a new one is appended.
func (e Element) WithAttr(name, value string) Element {
	out := e.clone()
	for i := range out.Attrs {
		if out.Attrs[i].Name == name {
			out.Attrs[i].Value = value
			return out
		}
	}
	out.Attrs = append(out.Attrs, Attr{Name: name, Value: value})
	return out
}

// WithOptionalAttr is WithAttr for values that may be absent: a nil value
// leaves the element unchanged, so the attribute is omitted from output
// entirely rather than serialized as an empty string.
func (e Element) WithOptionalAttr(name string, value *string) Element {
	if value == nil {
		return e.clone()
	}
	return e.WithAttr(name, *value)
}

// WithText returns a copy with the literal text content replaced. The text
// is escaped at serialization time.
func (e Element) WithText(text string) Element {
	out := e.clone()
	out.Text = text
	return out
}

// WithChildren returns a copy with the child markup list replaced. Children
// are pre-serialized markup strings and are emitted verbatim.
func (e Element) WithChildren(children ...string) Element {
	out := e.clone()
	out.Children = append([]string(nil), children...)
	return out
}

func (e Element) clone() Element {
	out := e
	out.Attrs = append([]Attr(nil), e.Attrs...)
	out.Children = append([]string(nil), e.Children...)
	return out
}

// Markup serializes the element. Attributes are emitted in list order,
// separated by single spaces. With no text and no children the self-closing
// form is used; otherwise the opening tag, the escaped text, the
// concatenated children, and the explicit closing tag, in that order.
func (e Element) Markup() string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(string(e.Kind))
	for _, a := range e.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(a.Value)
		sb.WriteByte('"')
	}

	if e.Text == "" && len(e.Children) == 0 {
		sb.WriteString("/>")
		return sb.String()
	}

	sb.WriteByte('>')
	sb.WriteString(EscapeText(e.Text))
	for _, child := range e.Children {
		sb.WriteString(child)
	}
	sb.WriteString("</")
	sb.WriteString(string(e.Kind))
	sb.WriteByte('>')
	return sb.String()
}
