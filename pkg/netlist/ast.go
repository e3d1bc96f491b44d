package netlist

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// File is the syntax tree of a .net file. Blocks may appear in any
// order and more than once; their contents accumulate.
type File struct {
	Sections []*Section `EOL* ( @@ EOL* )*`
}

type Section struct {
	Circuit *CircuitBlock `  @@`
	Terms   *TermsBlock   `| @@`
	Output  *OutputBlock  `| @@`
}

// CircuitBlock holds one component per line
// Example: n1=1 n2=2 R=8.55
type CircuitBlock struct {
	Components []*Component `"<CIRCUIT>" EOL+ ( @@ EOL+ )* "</CIRCUIT>"`
}

type Component struct {
	Pos   lexer.Position
	Node1 string `"n1" "=" @Number`
	Node2 string `"n2" "=" @Number`
	Kind  string `@Ident "="`
	Value string `@Number`
}

// TermsBlock holds KEY=value pairs, any number per line
// Example: VT=5 RS=50
type TermsBlock struct {
	Terms []*Term `"<TERMS>" EOL+ ( @@+ EOL+ )* "</TERMS>"`
}

type Term struct {
	Pos   lexer.Position
	Key   string `@Ident "="`
	Value string `@Number`
}

// OutputBlock lists the requested variables with an optional unit tag
// Example: Vout dBmV
type OutputBlock struct {
	Lines []*OutputLine `"<OUTPUT>" EOL+ ( @@ EOL+ )* "</OUTPUT>"`
}

type OutputLine struct {
	Pos      lexer.Position
	Variable string `@Ident`
	Unit     string `@Ident?`
}
