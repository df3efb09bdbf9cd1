package compiler

import "strings"

// asciiWhitespace is the cutset the output oracle trims: space, tab,
// carriage return, line feed.
const asciiWhitespace = " \t\r\n"

// Trim removes leading and trailing ASCII whitespace from *s in place.
func Trim(s *string) {
	*s = strings.Trim(*s, asciiWhitespace)
}

// TrimCopy returns s with leading and trailing ASCII whitespace removed.
func TrimCopy(s string) string {
	return strings.Trim(s, asciiWhitespace)
}
