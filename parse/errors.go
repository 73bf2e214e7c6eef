package parse

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidGraph marks every validator failure.
	ErrInvalidGraph = errors.New("invalid graph")

	// ErrUnsupportedVersion is returned for a graph format version outside
	// SupportedVersions.
	ErrUnsupportedVersion = errors.New("unsupported graph version")
)

// ValidationErrors collects the failures of every validator that rejected
// a graph.
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}

	lines := make([]string, 0, len(e.Errors)+1)
	lines = append(lines, fmt.Sprintf("%d validation errors:", len(e.Errors)))
	for _, err := range e.Errors {
		lines = append(lines, "  - "+err.Error())
	}
	return strings.Join(lines, "\n")
}

// Unwrap exposes the first failure so errors.Is(err, ErrInvalidGraph) holds.
func (e *ValidationErrors) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0]
}

// HasErrors reports whether any validator failed.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// ParseError is a syntax error in a graph file. Line and Column are 1-based
// and zero when the position is unknown.
type ParseError struct {
	Source  string
	Line    int
	Column  int
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Source + ": " + e.Message
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Column, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// NewParseError creates a parse error without a position.
func NewParseError(source, message string, cause error) *ParseError {
	return &ParseError{Source: source, Message: message, Cause: cause}
}

// NodeError is a problem with one node or one of its fields.
type NodeError struct {
	NodeID  string
	Field   string
	Message string
}

// Error implements the error interface
func (e *NodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("node '%s'.%s: %s", e.NodeID, e.Field, e.Message)
	}
	return fmt.Sprintf("node '%s': %s", e.NodeID, e.Message)
}

// Warning is a finding that does not stop generation.
type Warning struct {
	NodeID  string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("node '%s': %s", w.NodeID, w.Message)
}

// failure joins the problems one validator found into a single error
// marked with ErrInvalidGraph.
func failure(title string, problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return errors.Mark(
		errors.Newf("%s failed:\n  - %s", title, strings.Join(problems, "\n  - ")),
		ErrInvalidGraph,
	)
}

// CombineErrors drops nil errors and returns nil, the single remaining
// error, or a ValidationErrors holding all of them.
func CombineErrors(errs ...error) error {
	var kept []error
	for _, err := range errs {
		if err != nil {
			kept = append(kept, err)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return &ValidationErrors{Errors: kept}
}
