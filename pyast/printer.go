package pyast

import (
	"strings"
)

const indentUnit = "    "

// printer writes statements with four-space indentation.
type printer struct {
	sb     strings.Builder
	indent int
}

// Print renders statements as Python source. The output always ends with a
// newline when it is not empty.
func Print(stmts ...Stmt) string {
	p := &printer{}
	p.block(stmts)
	return p.sb.String()
}

// writeLine writes one line at the current indentation.
func (p *printer) writeLine(s string) {
	if s == "" {
		p.sb.WriteByte('\n')
		return
	}
	for i := 0; i < p.indent; i++ {
		p.sb.WriteString(indentUnit)
	}
	p.sb.WriteString(s)
	p.sb.WriteByte('\n')
}

// block prints statements one level deeper than the header that owns them.
func (p *printer) block(stmts []Stmt) {
	for _, s := range stmts {
		if s != nil {
			s.emit(p)
		}
	}
}

// suite prints an indented body; an empty body becomes "pass".
func (p *printer) suite(stmts []Stmt) {
	p.indent++
	p.block(stmts)
	if isEmpty(stmts) {
		p.writeLine("pass")
	}
	p.indent--
}

// isEmpty reports whether a body has no executable statement. Comments and
// blank lines alone would leave a syntactically empty suite.
func isEmpty(stmts []Stmt) bool {
	for _, s := range stmts {
		switch v := s.(type) {
		case nil, Comment, Blank:
			continue
		case Block:
			if !isEmpty(v) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (l Line) emit(p *printer) {
	p.writeLine(string(l))
}

func (c Comment) emit(p *printer) {
	text := strings.ReplaceAll(string(c), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.Map(commentRune, strings.ToValidUTF8(text, "\uFFFD"))
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			p.writeLine("#")
			continue
		}
		p.writeLine("# " + line)
	}
}

// commentRune blanks out characters the Python tokenizer rejects or treats
// as line breaks inside a comment.
func commentRune(r rune) rune {
	switch {
	case r == '\n' || r == '\t':
		return r
	case r < 0x20 || r == 0x7f || r == 0x85:
		return ' '
	case r == 0x2028 || r == 0x2029 || r == 0xfeff:
		return ' '
	}
	return r
}

func (Blank) emit(p *printer) {
	p.writeLine("")
}

func (r Raw) emit(p *printer) {
	text := strings.TrimPrefix(string(r), "\n")
	text = strings.TrimRight(text, "\n")
	for _, line := range strings.Split(text, "\n") {
		p.writeLine(strings.TrimRight(line, " \t"))
	}
}

func (b Block) emit(p *printer) {
	p.block(b)
}

func (Pass) emit(p *printer) {
	p.writeLine("pass")
}

func (r Return) emit(p *printer) {
	if r.Value == "" {
		p.writeLine("return")
		return
	}
	p.writeLine("return " + r.Value)
}

func (a Assign) emit(p *printer) {
	p.writeLine(a.Target + " = " + a.Value)
}

func (d Def) emit(p *printer) {
	for _, dec := range d.Decorators {
		p.writeLine("@" + dec)
	}
	head := "def "
	if d.Async {
		head = "async def "
	}
	p.writeLine(head + d.Name + "(" + strings.Join(d.Params, ", ") + "):")
	body := d.Body
	if d.Doc != "" {
		body = append([]Stmt{Line(Str(d.Doc))}, body...)
	}
	p.suite(body)
}

func (i If) emit(p *printer) {
	if len(i.Branches) == 0 {
		// Nothing to test: only the else body runs.
		p.block(i.Else)
		return
	}
	for n, br := range i.Branches {
		kw := "elif "
		if n == 0 {
			kw = "if "
		}
		p.writeLine(kw + br.Cond + ":")
		p.suite(br.Body)
	}
	if i.Else != nil {
		p.writeLine("else:")
		p.suite(i.Else)
	}
}

func (t Try) emit(p *printer) {
	p.writeLine("try:")
	p.suite(t.Body)
	for _, h := range t.Handlers {
		typ := h.Type
		if typ == "" {
			typ = "Exception"
		}
		if h.Name != "" {
			p.writeLine("except " + typ + " as " + h.Name + ":")
		} else {
			p.writeLine("except " + typ + ":")
		}
		p.suite(h.Body)
	}
	if t.Finally != nil || len(t.Handlers) == 0 {
		p.writeLine("finally:")
		p.suite(t.Finally)
	}
}

func (f For) emit(p *printer) {
	p.writeLine("for " + f.Target + " in " + f.Iter + ":")
	p.suite(f.Body)
}

func (c Class) emit(p *printer) {
	head := "class " + c.Name
	if len(c.Bases) > 0 {
		head += "(" + strings.Join(c.Bases, ", ") + ")"
	}
	p.writeLine(head + ":")
	body := c.Body
	if c.Doc != "" {
		body = append([]Stmt{Line(Str(c.Doc))}, body...)
	}
	p.suite(body)
}
