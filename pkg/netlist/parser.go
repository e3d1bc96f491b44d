package netlist

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

type Parser struct {
	parser *participle.Parser[File]
}

func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(NetLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// Parse reads and validates a netlist. name is used in error positions.
func (p *Parser) Parse(name string, r io.Reader) (*Netlist, error) {
	file, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return lower(file)
}

func (p *Parser) ParseString(input string) (*Netlist, error) {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return lower(file)
}

func (p *Parser) ParseFile(filename string) (*Netlist, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(filename, file)
}

// ParseFile parses filename with a freshly built parser.
func ParseFile(filename string) (*Netlist, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	return p.ParseFile(filename)
}

func ParseString(input string) (*Netlist, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	return p.ParseString(input)
}
