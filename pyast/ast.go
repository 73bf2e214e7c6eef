// Package pyast is a small statement tree for emitting Python source.
//
// Statements are structured (function definitions, if chains, try blocks);
// expressions are plain strings built with the helpers in expr.go, which
// quote every piece of user text through Str. Nothing in this package
// concatenates raw user input into code.
package pyast

// Stmt is a Python statement that knows how to print itself.
type Stmt interface {
	emit(p *printer)
}

// Line is a single statement that is already valid Python, e.g. a call
// expression or an assignment built from expression helpers.
type Line string

// Linef is Line with fmt.Sprintf formatting. Arguments must already be
// expressions (quote user text with Str first).
func Linef(format string, args ...any) Line {
	return Line(sprintf(format, args...))
}

// Comment is a "#" comment. Embedded newlines produce several comment lines.
type Comment string

// Blank is an empty line.
type Blank struct{}

// Raw is a verbatim multi-line block of fixed code (runtime helpers). It is
// re-indented to the current level line by line and must never carry user
// text.
type Raw string

// Block groups statements without adding indentation.
type Block []Stmt

// Pass is the "pass" statement.
type Pass struct{}

// Return is "return" with an optional value expression.
type Return struct {
	Value string
}

// Assign is "target = value".
type Assign struct {
	Target string
	Value  string
}

// Def is a (possibly async) function definition.
type Def struct {
	Name       string
	Params     []string
	Async      bool
	Decorators []string
	Doc        string
	Body       []Stmt
}

// Branch is one condition/body pair of an If chain.
type Branch struct {
	Cond string
	Body []Stmt
}

// If is an if/elif/else chain. Branches must not be empty.
type If struct {
	Branches []Branch
	Else     []Stmt
}

// Except is one "except Type as name:" clause. An empty Type catches all
// exceptions ("except Exception").
type Except struct {
	Type string
	Name string
	Body []Stmt
}

// Try is a try/except block.
type Try struct {
	Body     []Stmt
	Handlers []Except
	Finally  []Stmt
}

// For is "for target in iter:".
type For struct {
	Target string
	Iter   string
	Body   []Stmt
}

// Class is a class definition with an optional base list.
type Class struct {
	Name  string
	Bases []string
	Doc   string
	Body  []Stmt
}
