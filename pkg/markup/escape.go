package markup

import (
	"regexp"
	"strings"
)

// entityTable maps reserved characters and whitespace runs to their
// markup-safe forms. LibreOffice renders a tab stop for <text:tab/>, and a
// run of two consecutive spaces is treated the same way. The combined
// pattern below is built from this table once at process start.
var entityTable = []struct {
	literal     string
	replacement string
}{
	{"&", "&amp;"},
	{"<", "&lt;"},
	{">", "&gt;"},
	{`"`, "&quot;"},
	{"'", "&apos;"},
	{"\t", "<text:tab/>"},
	{"  ", "<text:tab/>"},
}

var (
	escapePattern      = regexp.MustCompile(buildEscapeExpr())
	escapeReplacements = buildEscapeReplacements()
)

func buildEscapeExpr() string {
	alts := make([]string, len(entityTable))
	for i, e := range entityTable {
		alts[i] = regexp.QuoteMeta(e.literal)
	}
	return strings.Join(alts, "|")
}

func buildEscapeReplacements() map[string]string {
	repl := make(map[string]string, len(entityTable))
	for _, e := range entityTable {
		repl[e.literal] = e.replacement
	}
	return repl
}

// EscapeText rewrites text so it is safe to embed as element content.
// Candidates are consumed greedily left to right without overlap: in a run
// of three spaces the first two become a tab element and the third is kept.
func EscapeText(text string) string {
	return escapePattern.ReplaceAllStringFunc(text, func(match string) string {
		return escapeReplacements[match]
	})
}
