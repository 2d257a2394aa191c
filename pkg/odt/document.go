package odt

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lpenaud/odtmerge/pkg/fsutil"
	"github.com/lpenaud/odtmerge/pkg/markup"
	"github.com/lpenaud/odtmerge/pkg/splice"
)

// Variable declaration elements recognized by SetVariable. Both forms carry
// the variable name in the text:name attribute.
var variableElements = []string{"text:variable-set", "text:variable-get"}

// Locator identifies an element to search for: its name plus an optional
// attribute filter.
type Locator struct {
	Name   string
	Filter markup.Attributes
}

func (l Locator) String() string {
	if len(l.Filter) == 0 {
		return l.Name
	}
	keys := make([]string, 0, len(l.Filter))
	for k := range l.Filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString(l.Name)
	for _, k := range keys {
		fmt.Fprintf(&sb, "[%s=%q]", k, l.Filter[k])
	}
	return sb.String()
}

// Document owns the single in-memory copy of the content stream for its
// whole lifetime, from unpacking through Save. Every mutation replaces the
// stored buffer, so node offsets computed before a mutation are stale and
// each operation re-scans.
type Document struct {
	pkg     *Package
	content string
	logger  *log.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithLogger routes the document's advisory diagnostics (not-found
// conditions) to the given logger.
func WithLogger(logger *log.Logger) Option {
	return func(d *Document) {
		d.logger = logger
	}
}

// Open unpacks the ODT file at path and wraps its content stream.
func Open(path string, opts ...Option) (*Document, error) {
	pkg, err := ReadPackage(path)
	if err != nil {
		return nil, err
	}
	return NewDocument(pkg, opts...)
}

// NewDocument wraps an already unpacked package.
func NewDocument(pkg *Package, opts ...Option) (*Document, error) {
	data, ok := pkg.Part(ContentPart)
	if !ok {
		return nil, fmt.Errorf("package has no %s part", ContentPart)
	}
	d := &Document{pkg: pkg, content: string(data), logger: log.Default()}
	for _, opt := range opts {
		opt(d)
	}
	d.logger.Debug("document unpacked",
		"parts", strings.Join(pkg.PartNames(), " "),
		"content_bytes", len(d.content))
	return d, nil
}

// Content returns the current content buffer.
func (d *Document) Content() string {
	return d.content
}

// Find returns the first node matching the locator. A miss is advisory:
// it is logged and reported through ok, never as an error.
func (d *Document) Find(loc Locator) (markup.Node, bool) {
	node, ok := markup.FirstNode(d.content, loc.Name, loc.Filter)
	if !ok {
		d.logger.Warn("no matching element", "locator", loc.String())
	}
	return node, ok
}

// FindAll returns every node matching the locator, in open-tag order.
func (d *Document) FindAll(loc Locator) []markup.Node {
	return markup.FindNodes(d.content, loc.Name, loc.Filter)
}

// FindLastFrom returns the last node matching the locator whose open tag
// starts at or after the given offset.
func (d *Document) FindLastFrom(from int, loc Locator) (markup.Node, bool) {
	return markup.LastNodeFrom(d.content, from, loc.Name, loc.Filter)
}

// ReplaceNode splices replacement markup over a node's full span. The node
// must come from a scan of the current buffer; offsets from before an
// earlier mutation fail validation.
func (d *Document) ReplaceNode(node markup.Node, replacement string) error {
	content, err := splice.Replace(d.content, node.Start, node.End, replacement)
	if err != nil {
		return fmt.Errorf("replace %s: %w", node.Name, err)
	}
	d.content = content
	return nil
}

// ReplaceBetween splices replacement markup over the span from the first
// located node's start through the last located node's end. The last
// locator is searched only at or after the first node's end; when it finds
// nothing, or when it is nil, the span degrades to the first node alone.
// A miss on the first locator is logged and reported as applied=false.
func (d *Document) ReplaceBetween(first Locator, last *Locator, replacement string) (bool, error) {
	firstNode, ok := markup.FirstNode(d.content, first.Name, first.Filter)
	if !ok {
		d.logger.Warn("no matching element", "locator", first.String())
		return false, nil
	}

	end := firstNode.End
	if last != nil {
		lastNode, ok := markup.LastNodeFrom(d.content, firstNode.End, last.Name, last.Filter)
		if ok {
			end = lastNode.End
		} else {
			d.logger.Warn("no matching end element, replacing first span only",
				"locator", last.String())
		}
	}

	content, err := splice.Replace(d.content, firstNode.Start, end, replacement)
	if err != nil {
		return false, fmt.Errorf("replace range %s: %w", first.String(), err)
	}
	d.content = content
	return true, nil
}

// SetVariable rewrites every variable-set and variable-get declaration of
// the named variable to carry the escaped value, and returns how many
// elements were rewritten. All edits are computed over a single scan of the
// current buffer and applied in one pass. Zero matches is advisory.
func (d *Document) SetVariable(name, value string) (int, error) {
	var edits []splice.Edit
	filter := markup.Attributes{"text:name": name}

	for _, elem := range variableElements {
		for _, node := range markup.FindNodes(d.content, elem, filter) {
			edits = append(edits, splice.Edit{
				Start: node.Start,
				End:   node.End,
				Text:  rewriteValueNode(node.Text(d.content), elem, value),
			})
		}
	}

	if len(edits) == 0 {
		d.logger.Warn("no matching element",
			"locator", Locator{Name: "text:variable-*", Filter: filter}.String())
		return 0, nil
	}

	prepared, err := splice.Prepare(edits, len(d.content))
	if err != nil {
		return 0, fmt.Errorf("set variable %q: %w", name, err)
	}
	d.content = splice.Apply(d.content, prepared)
	return len(prepared), nil
}

// SetVariables applies SetVariable for every entry, in sorted name order so
// results are deterministic. It returns the total number of rewritten
// elements.
func (d *Document) SetVariables(vars map[string]string) (int, error) {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	total := 0
	for _, name := range names {
		n, err := d.SetVariable(name, vars[name])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// rewriteValueNode keeps the node's opening tag byte-for-byte (attribute
// order survives) and replaces everything after it with the escaped value
// and an explicit closing tag. A self-closing declaration is expanded to
// the open/close form.
func rewriteValueNode(nodeText, name, value string) string {
	gt := strings.IndexByte(nodeText, '>')
	if gt < 0 {
		return nodeText
	}

	open := nodeText[:gt+1]
	if strings.HasSuffix(open, "/>") {
		open = strings.TrimRight(strings.TrimSuffix(open, "/>"), " ") + ">"
	}
	return open + markup.EscapeText(value) + "</" + name + ">"
}

// Save repacks the container with the current buffer and writes it
// atomically to path. Container and I/O failures are hard errors.
func (d *Document) Save(ctx context.Context, path string) error {
	d.pkg.SetPart(ContentPart, []byte(d.content))
	data, err := d.pkg.Bytes()
	if err != nil {
		return fmt.Errorf("repack document: %w", err)
	}
	if err := fsutil.WriteAtomic(ctx, path, data, 0); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}
