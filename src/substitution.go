package tinytcl

import (
	"strings"
)

// resolveWords turns each word of cmd into its final string. It returns the
// words resolved so far together with any error so the caller can name the
// failing command.
func (in *Interpreter) resolveWords(cmd *Command) ([]string, error) {
	values := make([]string, 0, len(cmd.Words))
	for i := range cmd.Words {
		value, err := in.resolveWord(&cmd.Words[i])
		if err != nil {
			return values, err
		}
		values = append(values, value)
	}
	return values, nil
}

// resolveWord substitutes variables, decodes escapes of quoted words and
// evaluates command substitutions
func (in *Interpreter) resolveWord(w *Word) (string, error) {
	if w.Kind == SubstWord {
		if w.Command == nil {
			return "", nil
		}
		if in.logger.Enabled() {
			in.logger.TraceCat(CatSubst, "substituting [%s]", w.Command)
		}
		return in.evalCommand(w.Command)
	}

	// A lone literal or variable is returned without copying
	if len(w.Fragments) == 1 {
		frag := w.Fragments[0]
		if frag.Kind == LiteralFragment {
			return in.literal(w.Kind, frag.Text)
		}
		return in.variable(frag.Text), nil
	}

	var sb strings.Builder
	for _, frag := range w.Fragments {
		switch frag.Kind {
		case LiteralFragment:
			text, err := in.literal(w.Kind, frag.Text)
			if err != nil {
				return "", err
			}
			sb.WriteString(text)
		case VariableFragment:
			sb.WriteString(in.variable(frag.Text))
		}
	}
	return sb.String(), nil
}

// variable returns the bound value of name, or "" when unbound
func (in *Interpreter) variable(name string) string {
	value, ok := in.state.vars[name]
	if !ok {
		in.logger.TraceCat(CatSubst, "variable %s is unbound", name)
	}
	return value
}

func (in *Interpreter) literal(kind WordKind, text string) (string, error) {
	if kind == QuotedWord {
		return Unescape(text)
	}
	return text, nil
}
