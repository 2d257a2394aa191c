package markup

import "regexp"

// Attribute names and values accept a deliberately conservative character
// class: printable ASCII with no whitespace and no '<', '>', or '"'. An
// assignment whose value falls outside the class is silently not recognized
// as an attribute rather than reported as an error.
var attrPattern = regexp.MustCompile(`([\w.-]+(?::[\w.-]+)?)="([!#-;=?-~]*)"`)

// ParseAttributes extracts the key="value" assignments from the raw text of
// one tag occurrence. A key repeated later in the same tag overwrites the
// earlier value.
func ParseAttributes(tag string) Attributes {
	matches := attrPattern.FindAllStringSubmatch(tag, -1)
	if len(matches) == 0 {
		return Attributes{}
	}

	attrs := make(Attributes, len(matches))
	for _, m := range matches {
		attrs[m[1]] = m[2]
	}
	return attrs
}
