package tinytcl

import (
	"strings"
)

// Unparse renders commands back into script text that parses to the same
// commands. Variables are always written in the ${name} form.
func Unparse(commands []Command) string {
	var sb strings.Builder
	for i := range commands {
		if i > 0 {
			sb.WriteByte('\n')
		}
		writeCommand(&sb, &commands[i], topLevel)
	}
	return sb.String()
}

// String returns the script text of a single command
func (c Command) String() string {
	var sb strings.Builder
	writeCommand(&sb, &c, topLevel)
	return sb.String()
}

func writeCommand(sb *strings.Builder, cmd *Command, mode parseMode) {
	for i := range cmd.Words {
		if i > 0 {
			sb.WriteByte(' ')
		}
		writeWord(sb, &cmd.Words[i], mode)
	}
}

func writeWord(sb *strings.Builder, w *Word, mode parseMode) {
	switch w.Kind {
	case SubstWord:
		sb.WriteByte('[')
		if w.Command != nil {
			writeCommand(sb, w.Command, nested)
		}
		sb.WriteByte(']')
	case QuotedWord:
		sb.WriteByte('"')
		writeFragments(sb, w.Fragments)
		sb.WriteByte('"')
	default:
		// ';' in a bare word only survives re-parsing inside a group
		if mode == topLevel && hasLiteralByte(w.Fragments, ';') {
			sb.WriteByte('{')
			writeFragments(sb, w.Fragments)
			sb.WriteByte('}')
			return
		}
		writeFragments(sb, w.Fragments)
	}
}

func writeFragments(sb *strings.Builder, fragments []Fragment) {
	for _, frag := range fragments {
		if frag.Kind == VariableFragment {
			sb.WriteString("${")
			sb.WriteString(frag.Text)
			sb.WriteByte('}')
			continue
		}
		sb.WriteString(frag.Text)
	}
}

func hasLiteralByte(fragments []Fragment, c byte) bool {
	for _, frag := range fragments {
		if frag.Kind == LiteralFragment && strings.IndexByte(frag.Text, c) >= 0 {
			return true
		}
	}
	return false
}
