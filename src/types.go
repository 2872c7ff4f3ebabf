package tinytcl

import (
	"io"
	"os"
)

// SourcePosition tracks the position of code in source files
type SourcePosition struct {
	Offset   int // byte offset into the script
	Line     int
	Column   int
	Length   int
	Filename string
}

// FragmentKind distinguishes literal text from variable references
type FragmentKind uint8

const (
	LiteralFragment FragmentKind = iota
	VariableFragment
)

// Fragment is the smallest parsed unit inside a word. Text is a substring of
// the parsed script: the raw literal text, or the variable name.
type Fragment struct {
	Kind FragmentKind
	Text string
}

// Literal returns a literal fragment
func Literal(text string) Fragment {
	return Fragment{Kind: LiteralFragment, Text: text}
}

// VariableRef returns a variable reference fragment
func VariableRef(name string) Fragment {
	return Fragment{Kind: VariableFragment, Text: name}
}

// WordKind identifies the syntactic form of a word
type WordKind uint8

const (
	BareWord WordKind = iota
	QuotedWord
	SubstWord
)

func (k WordKind) String() string {
	switch k {
	case BareWord:
		return "bare"
	case QuotedWord:
		return "quoted"
	case SubstWord:
		return "subst"
	}
	return "unknown"
}

// Word is a parsed building block of a command, before substitution.
// Bare and quoted words carry Fragments; substitution words carry Command.
type Word struct {
	Kind      WordKind
	Fragments []Fragment
	Command   *Command
}

// Bare builds a bare word from fragments
func Bare(fragments ...Fragment) Word {
	return Word{Kind: BareWord, Fragments: fragments}
}

// Quoted builds a double-quoted word from fragments
func Quoted(fragments ...Fragment) Word {
	return Word{Kind: QuotedWord, Fragments: fragments}
}

// Subst builds a nested command substitution word
func Subst(cmd Command) Word {
	return Word{Kind: SubstWord, Command: &cmd}
}

// Command is one executable unit: a non-empty word sequence whose first word
// names the command.
type Command struct {
	Words    []Word
	Position SourcePosition
}

// Variables is the flat variable namespace of one interpreter
type Variables map[string]string

// OptimizationLevel controls optimization passes
type OptimizationLevel int

const (
	OptimizeNone  OptimizationLevel = iota // parse every script
	OptimizeBasic                          // cache parsed scripts by text
)

// Config holds configuration for the interpreter
type Config struct {
	Debug            bool
	ShowErrorContext bool
	ContextLines     int
	MaxNesting       int
	OptLevel         OptimizationLevel
	Filename         string
	Stdout           io.Writer
	Stderr           io.Writer
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Debug:            false,
		ShowErrorContext: true,
		ContextLines:     2,
		MaxNesting:       256,
		OptLevel:         OptimizeBasic,
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
	}
}

// fillDefaults replaces zero values with their defaults
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.ContextLines <= 0 {
		c.ContextLines = def.ContextLines
	}
	if c.MaxNesting <= 0 {
		c.MaxNesting = def.MaxNesting
	}
	if c.Stdout == nil {
		c.Stdout = def.Stdout
	}
	if c.Stderr == nil {
		c.Stderr = def.Stderr
	}
}
