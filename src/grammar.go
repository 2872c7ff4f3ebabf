package tinytcl

// Character classes of the script grammar.

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// isEnd reports command terminators
func isEnd(c byte) bool {
	return c == '\n' || c == ';'
}

// isWordChar reports characters allowed in a bare word at command level
func isWordChar(c byte) bool {
	return isGroupedWordChar(c) && !isEnd(c)
}

// isGroupedWordChar reports characters allowed in a bare word inside { } or
// [ ], where ';' loses its separating power. Newline stays a word separator.
func isGroupedWordChar(c byte) bool {
	switch c {
	case '{', '}', '[', ']', '"', '$', '\n':
		return false
	}
	return !isSpace(c)
}

func isInlineVariableChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func isBracedVariableChar(c byte) bool {
	return c != '{' && c != '}'
}

// isQuotedTextChar reports characters taken verbatim inside "..."
func isQuotedTextChar(c byte) bool {
	return c != '\\' && c != '"' && c != '$'
}
