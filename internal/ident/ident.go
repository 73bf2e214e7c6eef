// Package ident turns user supplied text (node ids, synonyms, button labels)
// into legal Python identifiers and keeps them unique within one document.
package ident

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// NodePlaceholder replaces an id that is empty or blank.
	NodePlaceholder = "node"
	// SynonymPlaceholder replaces a synonym that is empty or blank.
	SynonymPlaceholder = "synonym"
)

// pythonKeywords are reserved words that cannot be used as bare identifiers.
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
	// Soft keywords
	"match": true, "case": true, "type": true, "_": true,
}

// Sanitize maps raw to an identifier made of ASCII letters, digits and
// underscores. Every other character becomes '_'.
func Sanitize(raw string) string {
	return sanitize(raw, false, NodePlaceholder)
}

// SanitizeSynonym is like Sanitize but also keeps Cyrillic letters, so
// Russian synonyms stay readable in handler names.
func SanitizeSynonym(raw string) string {
	return sanitize(raw, true, SynonymPlaceholder)
}

func sanitize(raw string, cyrillic bool, placeholder string) string {
	if strings.TrimSpace(raw) == "" {
		return placeholder
	}

	var sb strings.Builder
	sb.Grow(len(raw))
	for _, r := range raw {
		if isASCIIIdent(r) || (cyrillic && isCyrillic(r)) {
			sb.WriteRune(r)
			continue
		}
		sb.WriteByte('_')
	}

	out := sb.String()
	if first, _ := utf8.DecodeRuneInString(out); first >= '0' && first <= '9' {
		out = "_" + out
	}
	if pythonKeywords[out] {
		out += "_"
	}
	return out
}

func isASCIIIdent(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func isCyrillic(r rune) bool {
	return (r >= 'А' && r <= 'я') || r == 'Ё' || r == 'ё'
}

// IsValid reports whether s is a legal bare Python identifier under the
// alphabet this package emits.
func IsValid(s string) bool {
	if s == "" || pythonKeywords[s] {
		return false
	}
	for i, r := range s {
		if i == 0 && r >= '0' && r <= '9' {
			return false
		}
		if !isASCIIIdent(r) && !isCyrillic(r) {
			return false
		}
	}
	return true
}

// Allocator hands out identifiers that are unique within one generated
// document. Distinct requests for the same base name get _2, _3, ... in
// request order, so the result only depends on the order of requests.
//
// An Allocator is not safe for concurrent use; each generation owns one.
type Allocator struct {
	used  map[string]bool
	next  map[string]int
	nodes map[string]string
}

// NewAllocator returns an empty allocator. Names in reserved are never handed
// out (runtime helpers, globals).
func NewAllocator(reserved ...string) *Allocator {
	a := &Allocator{
		used:  make(map[string]bool),
		next:  make(map[string]int),
		nodes: make(map[string]string),
	}
	for _, r := range reserved {
		a.used[r] = true
	}
	return a
}

// Unique returns base, or base with the smallest free numeric suffix.
func (a *Allocator) Unique(base string) string {
	if !a.used[base] {
		a.used[base] = true
		return base
	}
	n := a.next[base]
	if n < 2 {
		n = 2
	}
	for {
		candidate := fmt.Sprintf("%s_%d", base, n)
		n++
		if !a.used[candidate] {
			a.next[base] = n
			a.used[candidate] = true
			return candidate
		}
	}
}

// Node returns the identifier stem for a raw node id. The first call for an
// id allocates it, later calls return the same value.
func (a *Allocator) Node(rawID string) string {
	if name, ok := a.nodes[rawID]; ok {
		return name
	}
	name := a.Unique(Sanitize(rawID))
	a.nodes[rawID] = name
	return name
}

// Lookup returns the identifier stem previously allocated for rawID.
func (a *Allocator) Lookup(rawID string) (string, bool) {
	name, ok := a.nodes[rawID]
	return name, ok
}
