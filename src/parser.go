package tinytcl

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// SourceMap maps byte offsets in a script to line and column positions
type SourceMap struct {
	Filename   string
	lineStarts []int
}

// NewSourceMap creates a new source map
func NewSourceMap(source, filename string) *SourceMap {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &SourceMap{
		Filename:   filename,
		lineStarts: starts,
	}
}

// Position converts a byte offset into a SourcePosition. Columns count runes.
func (sm *SourceMap) Position(source string, offset, length int) SourcePosition {
	if offset < 0 {
		offset = 0
	}
	if offset > len(source) {
		offset = len(source)
	}
	line := sort.Search(len(sm.lineStarts), func(i int) bool {
		return sm.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	start := sm.lineStarts[line]
	return SourcePosition{
		Offset:   offset,
		Line:     line + 1,
		Column:   utf8.RuneCountInString(source[start:offset]) + 1,
		Length:   length,
		Filename: sm.Filename,
	}
}

// parseMode selects which separators are active
type parseMode uint8

const (
	// topLevel: '\n' and ';' end commands
	topLevel parseMode = iota
	// nested: inside { } or [ ], '\n' separates words and ';' is literal
	nested
)

func (m parseMode) isWord(c byte) bool {
	if m == nested {
		return isGroupedWordChar(c)
	}
	return isWordChar(c)
}

func (m parseMode) isSpace(c byte) bool {
	if m == nested {
		return isSpace(c) || c == '\n'
	}
	return isSpace(c)
}

// Parser handles parsing with position tracking
type Parser struct {
	src        string
	pos        int
	depth      int
	maxNesting int
	sourceMap  *SourceMap
}

// NewParser creates a new parser
func NewParser(source, filename string) *Parser {
	return &Parser{
		src:        source,
		maxNesting: DefaultConfig().MaxNesting,
		sourceMap:  NewSourceMap(source, filename),
	}
}

// SetMaxNesting limits how deeply command substitutions may nest
func (p *Parser) SetMaxNesting(n int) {
	if n > 0 {
		p.maxNesting = n
	}
}

// Parse parses a script into its command sequence. Empty or blank scripts
// yield no commands and no error.
func Parse(script string) ([]Command, error) {
	return NewParser(script, "").Parse()
}

// Parse consumes the whole source and returns its commands
func (p *Parser) Parse() ([]Command, error) {
	var commands []Command
	for {
		p.skipSeparators()
		if p.eof() {
			return commands, nil
		}
		cmd, err := p.parseCommand(topLevel)
		if err != nil {
			return nil, err
		}
		if !p.eof() && !isEnd(p.peek()) {
			return nil, p.errorf(p.pos, false, "unexpected %q", p.peek())
		}
		commands = append(commands, cmd)
	}
}

func (p *Parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *Parser) peek() byte {
	return p.src[p.pos]
}

func (p *Parser) skipSeparators() {
	for !p.eof() {
		c := p.peek()
		if !isSpace(c) && !isEnd(c) {
			return
		}
		p.pos++
	}
}

func (p *Parser) skipSpace(mode parseMode) {
	for !p.eof() && mode.isSpace(p.peek()) {
		p.pos++
	}
}

func (p *Parser) errorf(offset int, incomplete bool, format string, args ...interface{}) *ParseError {
	if offset > len(p.src) {
		offset = len(p.src)
	}
	return &ParseError{
		Position:   p.sourceMap.Position(p.src, offset, 1),
		Reason:     fmt.Sprintf(format, args...),
		Remaining:  p.src[offset:],
		Incomplete: incomplete,
	}
}

// parseCommand reads tokens until a character that cannot start one. Groups
// are flattened into the command's word list.
func (p *Parser) parseCommand(mode parseMode) (Command, error) {
	p.skipSpace(mode)
	start := p.pos
	var words []Word
loop:
	for {
		p.skipSpace(mode)
		if p.eof() {
			break
		}
		c := p.peek()
		switch {
		case c == '{':
			group, err := p.parseGroup()
			if err != nil {
				return Command{}, err
			}
			words = append(words, group...)
		case c == '[':
			word, err := p.parseSubst()
			if err != nil {
				return Command{}, err
			}
			words = append(words, word)
		case c == '"':
			word, err := p.parseQuoted()
			if err != nil {
				return Command{}, err
			}
			words = append(words, word)
		case c == '$' || mode.isWord(c):
			word, err := p.parseBare(mode)
			if err != nil {
				return Command{}, err
			}
			words = append(words, word)
		default:
			break loop
		}
	}
	if len(words) == 0 {
		if !p.eof() && !isEnd(p.peek()) {
			return Command{}, p.errorf(p.pos, false, "unexpected %q", p.peek())
		}
		return Command{}, p.errorf(start, false, "empty command")
	}
	return Command{
		Words:    words,
		Position: p.sourceMap.Position(p.src, start, p.pos-start),
	}, nil
}

// parseGroup reads { ... } and returns the interior words
func (p *Parser) parseGroup() ([]Word, error) {
	open := p.pos
	p.pos++
	words := []Word{}
	for {
		p.skipSpace(nested)
		if p.eof() {
			return nil, p.errorf(open, true, "missing close-brace")
		}
		c := p.peek()
		switch {
		case c == '}':
			p.pos++
			return words, nil
		case c == '"':
			word, err := p.parseQuoted()
			if err != nil {
				return nil, err
			}
			words = append(words, word)
		case c == '$' || isGroupedWordChar(c):
			word, err := p.parseBare(nested)
			if err != nil {
				return nil, err
			}
			words = append(words, word)
		default:
			return nil, p.errorf(p.pos, false, "unexpected %q in group", c)
		}
	}
}

// parseSubst reads [ ... ] holding exactly one nested command
func (p *Parser) parseSubst() (Word, error) {
	open := p.pos
	if p.depth >= p.maxNesting {
		return Word{}, p.errorf(open, false, "command substitution nested deeper than %d", p.maxNesting)
	}
	p.depth++
	defer func() { p.depth-- }()
	p.pos++

	p.skipSpace(nested)
	if p.eof() {
		return Word{}, p.errorf(open, true, "missing close-bracket")
	}
	if p.peek() == ']' {
		return Word{}, p.errorf(open, false, "empty command substitution")
	}
	cmd, err := p.parseCommand(nested)
	if err != nil {
		if pe, ok := err.(*ParseError); ok && p.eof() && !pe.Incomplete {
			return Word{}, p.errorf(open, true, "missing close-bracket")
		}
		return Word{}, err
	}
	p.skipSpace(nested)
	if p.eof() {
		return Word{}, p.errorf(open, true, "missing close-bracket")
	}
	if p.peek() != ']' {
		return Word{}, p.errorf(p.pos, false, "unexpected %q in command substitution", p.peek())
	}
	p.pos++
	return Subst(cmd), nil
}

// parseQuoted reads "..." keeping escapes raw for later unescaping
func (p *Parser) parseQuoted() (Word, error) {
	open := p.pos
	p.pos++
	var fragments []Fragment
	for {
		if p.eof() {
			return Word{}, p.errorf(open, true, "missing closing quote")
		}
		switch p.peek() {
		case '"':
			p.pos++
			return Quoted(fragments...), nil
		case '$':
			ref, err := p.parseVariable()
			if err != nil {
				return Word{}, err
			}
			fragments = append(fragments, ref)
		default:
			start := p.pos
			for !p.eof() {
				c := p.peek()
				if c == '\\' {
					if p.pos+1 >= len(p.src) {
						return Word{}, p.errorf(open, true, "missing closing quote")
					}
					p.pos += 2
					continue
				}
				if !isQuotedTextChar(c) {
					break
				}
				p.pos++
			}
			fragments = append(fragments, Literal(p.src[start:p.pos]))
		}
	}
}

// parseBare reads a maximal run of word characters and variable references
func (p *Parser) parseBare(mode parseMode) (Word, error) {
	var fragments []Fragment
	for !p.eof() {
		c := p.peek()
		if c == '$' {
			ref, err := p.parseVariable()
			if err != nil {
				return Word{}, err
			}
			fragments = append(fragments, ref)
			continue
		}
		if !mode.isWord(c) {
			break
		}
		start := p.pos
		for !p.eof() && mode.isWord(p.peek()) {
			p.pos++
		}
		fragments = append(fragments, Literal(p.src[start:p.pos]))
	}
	return Bare(fragments...), nil
}

// parseVariable reads $name or ${name}
func (p *Parser) parseVariable() (Fragment, error) {
	dollar := p.pos
	p.pos++
	if !p.eof() && p.peek() == '{' {
		p.pos++
		start := p.pos
		for !p.eof() && isBracedVariableChar(p.peek()) {
			p.pos++
		}
		if p.eof() {
			return Fragment{}, p.errorf(dollar, true, "missing close-brace for variable name")
		}
		if p.peek() == '{' {
			return Fragment{}, p.errorf(p.pos, false, "invalid character '{' in variable name")
		}
		name := p.src[start:p.pos]
		if name == "" {
			return Fragment{}, p.errorf(dollar, false, "empty variable name")
		}
		p.pos++
		return VariableRef(name), nil
	}
	start := p.pos
	for !p.eof() && isInlineVariableChar(p.peek()) {
		p.pos++
	}
	if p.pos == start {
		return Fragment{}, p.errorf(dollar, false, "'$' not followed by a variable name")
	}
	return VariableRef(p.src[start:p.pos]), nil
}
