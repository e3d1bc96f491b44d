package netlist

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// NetLexer tokenizes .net files. Line ends are significant: one component,
// output request or group of terms per line.
var NetLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments (# to end of line)
	{Name: "Comment", Pattern: `#[^\n]*`},

	// Runs of line ends, including blank and indented lines
	{Name: "EOL", Pattern: `(\r?\n[ \t]*)+`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},

	// Block tags: <CIRCUIT> </CIRCUIT> <TERMS> ...
	{Name: "Tag", Pattern: `</?\w+>`},

	// Numbers with an optional SI suffix (10, 3.3u, 1e-9, 2.2meg)
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?(meg|[TGKkmunpf])?`},

	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Assign", Pattern: `=`},
})
