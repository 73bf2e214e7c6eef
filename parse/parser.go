// Package parse loads bot graphs from JSON or YAML and validates them before
// generation.
package parse

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/mxkacsa/botgen/ast"
)

// Parser parses graph files
type Parser struct {
	// Validators to run after parsing
	validators []Validator
}

// NewParser creates a parser with the default validators.
func NewParser() *Parser {
	return &Parser{
		validators: []Validator{
			&VersionValidator{},
			&RequiredFieldsValidator{},
			&DuplicateIDValidator{},
			&ConnectionValidator{},
			&TargetValidator{},
			&ConditionValidator{},
		},
	}
}

// AddValidator adds a custom validator
func (p *Parser) AddValidator(v Validator) {
	p.validators = append(p.validators, v)
}

// ParseFile parses a graph file. .yaml and .yml files are read as YAML,
// everything else as JSON.
func (p *Parser) ParseFile(path string) (*ast.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read graph file")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return p.ParseYAML(data, path)
	}
	return p.Parse(data, path)
}

// Parse parses and validates a JSON graph.
func (p *Parser) Parse(data []byte, source string) (*ast.Graph, error) {
	g, err := Decode(data, source)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// ParseYAML parses and validates a YAML graph. The document is converted to
// JSON first, so both formats share one decoder.
func (p *Parser) ParseYAML(data []byte, source string) (*ast.Graph, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, NewParseError(source, "invalid YAML: "+err.Error(), err)
	}
	if doc == nil {
		return nil, NewParseError(source, "empty document", nil)
	}
	converted, err := json.Marshal(doc)
	if err != nil {
		return nil, NewParseError(source, "YAML document is not representable as JSON", err)
	}
	return p.Parse(converted, source)
}

// Validate runs all validators on the graph
func (p *Parser) Validate(g *ast.Graph) error {
	var errs []error
	for _, v := range p.validators {
		if err := v.Validate(g); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// Decode parses a JSON graph without validating it. Syntax errors carry the
// line and column of the offending byte.
func Decode(data []byte, source string) (*ast.Graph, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, NewParseError(source, "empty document", nil)
	}
	g, err := ast.Decode(data)
	if err == nil {
		return g, nil
	}

	perr := NewParseError(source, errors.UnwrapAll(err).Error(), err)
	var syntax *json.SyntaxError
	if errors.As(err, &syntax) {
		perr.Line, perr.Column = position(data, syntax.Offset)
	}
	if errors.Is(err, ast.ErrUnknownNodeType) {
		perr.Message = err.Error()
	}
	return nil, perr
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
