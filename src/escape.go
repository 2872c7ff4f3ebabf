package tinytcl

import (
	"strings"
	"unicode/utf8"
)

// Unescape processes the backslash escapes of quoted-word text: \\, \" and
// \n. Text without a backslash is returned as is.
func Unescape(escaped string) (string, error) {
	first := strings.IndexByte(escaped, '\\')
	if first < 0 {
		return escaped, nil
	}

	var result strings.Builder
	result.Grow(len(escaped))
	result.WriteString(escaped[:first])

	for i := first; i < len(escaped); i++ {
		c := escaped[i]
		if c != '\\' {
			result.WriteByte(c)
			continue
		}
		if i+1 >= len(escaped) {
			return "", &InvalidEscapeError{Sequence: `\`}
		}
		switch escaped[i+1] {
		case '\\':
			result.WriteByte('\\')
		case '"':
			result.WriteByte('"')
		case 'n':
			result.WriteByte('\n')
		default:
			_, size := utf8.DecodeRuneInString(escaped[i+1:])
			return "", &InvalidEscapeError{Sequence: escaped[i : i+1+size]}
		}
		i++
	}
	return result.String(), nil
}
