package gen

import (
	"strings"

	"github.com/mxkacsa/botgen/ast"
	"github.com/mxkacsa/botgen/internal/ident"
)

// synonymsFor resolves the synonym list of n. An absent list falls back to
// the kind defaults; an explicit empty list means no synonyms at all. Blank
// entries and case-insensitive repeats are dropped.
func synonymsFor(n *ast.Node) []string {
	raw, ok := ast.SynonymsOf(n)
	if !ok {
		return nil
	}
	var list []string
	if raw == nil {
		list = defaultSynonyms(n.Type)
	} else {
		list = *raw
	}

	out := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, syn := range list {
		syn = strings.TrimSpace(syn)
		key := strings.ToLower(syn)
		if syn == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, syn)
	}
	return out
}

// expandSynonyms adds one text handler per synonym of n. Each handler builds
// the shared ActionContext from the incoming message and delegates to the
// node routine, so typing a synonym behaves exactly like the canonical
// trigger.
func (s *synthesizer) expandSynonyms(n *ast.Node, sc scope) {
	stem := s.ctx.Stem(n.ID)
	for _, syn := range synonymsFor(n) {
		name := s.ctx.Func("handle_synonym_" + stem + "_" + ident.SanitizeSynonym(syn))
		s.add(n, FragmentSynonym, s.textTrigger(n, name, syn, sc))
	}
}
