package markup

import "regexp"

// Tag shape: '<', optional '/', a namespaced element name, an attribute
// region that never crosses '<' or '>', optional trailing '/', '>'.
// Text between tags is invisible to the scanner.
const tagNameExpr = `[A-Za-z][\w.-]*:[A-Za-z][\w.-]*`

// tagPattern is compiled once at process start. The scanner itself keeps an
// explicit cursor instead of relying on stateful iteration, so independent
// scans over the same buffer never interfere.
var tagPattern = regexp.MustCompile(`<(/?)(` + tagNameExpr + `)([^<>]*?)(/?)>`)

// Scanner produces Tokens left to right over a content buffer, restartable
// from any byte offset. It holds no reference to anything but the buffer
// snapshot it was created with; re-scanning an unmutated buffer from the
// same offset yields an identical token sequence.
type Scanner struct {
	content string
	pos     int
}

// NewScanner returns a Scanner over content starting at offset from.
// A negative offset is treated as zero.
func NewScanner(content string, from int) *Scanner {
	if from < 0 {
		from = 0
	}
	return &Scanner{content: content, pos: from}
}

// Pos returns the current cursor offset: the position scanning resumes from.
func (s *Scanner) Pos() int {
	return s.pos
}

// Next returns the next tag occurrence at or after the cursor, advancing the
// cursor past it. The second return value is false once the buffer holds no
// further tags.
func (s *Scanner) Next() (Token, bool) {
	if s.pos >= len(s.content) {
		return Token{}, false
	}

	loc := tagPattern.FindStringSubmatchIndex(s.content[s.pos:])
	if loc == nil {
		s.pos = len(s.content)
		return Token{}, false
	}

	// Submatches: 1 leading slash, 2 name, 3 attribute region, 4 trailing slash.
	closing := loc[3] > loc[2]
	selfClosing := loc[9] > loc[8]

	tok := Token{
		Close:       closing || selfClosing,
		SelfClosing: selfClosing,
		Name:        s.content[s.pos+loc[4] : s.pos+loc[5]],
		Attrs:       ParseAttributes(s.content[s.pos+loc[6] : s.pos+loc[7]]),
		Start:       s.pos + loc[0],
		End:         s.pos + loc[1],
	}

	s.pos = tok.End
	return tok, true
}

// Tokens scans content from offset from to exhaustion and returns every tag
// occurrence in order. Convenience over the cursor API.
func Tokens(content string, from int) []Token {
	var tokens []Token
	sc := NewScanner(content, from)
	for {
		tok, ok := sc.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}
