package pyast

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// None is the Python None literal.
const None = "None"

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Str returns s as a double quoted Python string literal. Backslashes,
// quotes, line breaks and every other control character are escaped, so the
// result is always a single well formed token.
func Str(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == utf8.RuneError && size == 1:
			sb.WriteString(`�`)
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '"':
			sb.WriteString(`\"`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case r == 0x2028 || r == 0x2029 || r == 0xfeff:
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// Int returns an integer literal.
func Int(v int64) string {
	return strconv.FormatInt(v, 10)
}

// Float returns a float literal that Python parses back to the same value.
func Float(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}

// Bool returns True or False.
func Bool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// OptStr returns Str(s) or None for an empty string.
func OptStr(s string) string {
	if s == "" {
		return None
	}
	return Str(s)
}

// Call formats fn(args...).
func Call(fn string, args ...string) string {
	return fn + "(" + strings.Join(args, ", ") + ")"
}

// Await prefixes an expression with await.
func Await(expr string) string {
	return "await " + expr
}

// Kw formats a keyword argument.
func Kw(name, value string) string {
	return name + "=" + value
}

// List formats a list display from expressions.
func List(items ...string) string {
	return "[" + strings.Join(items, ", ") + "]"
}

// StrList formats a list of quoted strings.
func StrList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = Str(s)
	}
	return List(quoted...)
}

// Item is one key/value pair of a dict display.
type Item struct {
	Key   string
	Value string
}

// Dict formats a dict display keeping the item order.
func Dict(items ...Item) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = Str(it.Key) + ": " + it.Value
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// SortedDict formats a map as a dict display with keys in sorted order, so
// the output does not depend on map iteration.
func SortedDict(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	items := make([]Item, len(keys))
	for i, k := range keys {
		items[i] = Item{Key: k, Value: m[k]}
	}
	return Dict(items...)
}

// Join combines conditions with a boolean operator ("and"/"or"). Each
// operand is parenthesized when there is more than one.
func Join(op string, conds ...string) string {
	switch len(conds) {
	case 0:
		if op == "and" {
			return "True"
		}
		return "False"
	case 1:
		return conds[0]
	}
	parts := make([]string, len(conds))
	for i, c := range conds {
		parts[i] = "(" + c + ")"
	}
	return strings.Join(parts, " "+op+" ")
}

// Not negates a condition.
func Not(cond string) string {
	return "not (" + cond + ")"
}

// Tuple formats a tuple display. A single element keeps its trailing comma.
func Tuple(items ...string) string {
	if len(items) == 1 {
		return "(" + items[0] + ",)"
	}
	return "(" + strings.Join(items, ", ") + ")"
}
