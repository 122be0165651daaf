package manifest

import (
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/jwire-dev/jwire/internal/errors"
)

// Parser parses .jwire binding manifests
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser creates a manifest parser
func NewParser() *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//[^\n]*`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Punct", Pattern: `[{}()<>,.@]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[File](
		participle.Lexer(lex),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
	)

	return &Parser{parser: parser}
}

// Parse parses manifest source, using filename for error locations
func (p *Parser) Parse(filename, source string) (*File, error) {
	file, err := p.parser.ParseString(filename, source)
	if err != nil {
		wrapped := errors.Wrap(errors.SyntaxErrorCode, "failed to parse manifest", err).
			WithSuggestion("check the manifest against the jwire declaration grammar")
		if perr, ok := err.(participle.Error); ok {
			pos := perr.Position()
			wrapped = wrapped.WithLocation(errors.SourceLocation{
				File:   filename,
				Line:   pos.Line,
				Column: pos.Column,
			})
		}
		return nil, wrapped
	}
	return file, nil
}

// ParseFile reads and parses a manifest file
func (p *Parser) ParseFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.FileSystemErrorCode, err, "failed to read manifest %s", path)
	}
	return p.Parse(path, string(content))
}
