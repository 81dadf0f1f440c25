// Package grammar provides a small combinator engine for recursive-descent
// parsers driven by a pull-based lexer.
//
// Rules are registered on a Builder under unique string ids. Non-terminals
// name their children by id, so rules may refer to each other in any order,
// including recursively. Build resolves every reference in a second pass and
// returns an immutable Grammar whose rules live in a single arena indexed by
// position.
//
// Matching has two failure modes. A rule that does not apply at the current
// token fails normally and consumes nothing, letting an enclosing
// Alternatives try the next option. A rule that applied partially and then
// met a token it cannot accept raises a syntax error naming the missing rule.
//
// Semantic actions are delivered through an ActionFunc keyed by rule id.
package grammar

import (
	"fmt"
	"slices"

	"qalc-hq/qalc/pkg/qalc/errors"
	"qalc-hq/qalc/pkg/qalc/lexer"
)

// ActionFunc is invoked when the rule id completes. tok is the token that was
// current when the rule started matching.
type ActionFunc func(id string, tok lexer.Token) error

// Predicate tests a single token.
type Predicate func(tok lexer.Token) bool

type ruleKind int

const (
	kindTerminal ruleKind = iota
	kindSequenceIf
	kindAlternatives
	kindRepeat
	kindRequire
	kindEmpty
)

func (k ruleKind) String() string {
	switch k {
	case kindTerminal:
		return "terminal"
	case kindSequenceIf:
		return "sequence-if"
	case kindAlternatives:
		return "alternatives"
	case kindRepeat:
		return "repeat"
	case kindRequire:
		return "require"
	case kindEmpty:
		return "empty"
	}
	return "unknown"
}

// rule is an arena entry. childIDs are resolved into children by Build.
type rule struct {
	id       string
	kind     ruleKind
	pred     Predicate
	childIDs []string
	children []int
}

// Builder collects rule definitions. The zero value is not usable; call
// NewBuilder.
type Builder struct {
	rules []*rule
	index map[string]int
	errs  []error
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[string]int)}
}

func (b *Builder) add(r *rule) *Builder {
	if _, dup := b.index[r.id]; dup {
		b.errs = append(b.errs, errors.Binding("Duplicate rule %q", r.id))
		return b
	}
	b.index[r.id] = len(b.rules)
	b.rules = append(b.rules, r)
	return b
}

// Terminal registers a rule matching any token accepted by pred.
func (b *Builder) Terminal(id string, pred Predicate) *Builder {
	return b.add(&rule{id: id, kind: kindTerminal, pred: pred})
}

// IdentifierIn registers a terminal matching identifiers in names.
func (b *Builder) IdentifierIn(id string, names ...string) *Builder {
	set := toSet(names)
	return b.Terminal(id, func(tok lexer.Token) bool {
		return tok.Type == lexer.TokenIdentifier && set[tok.Text]
	})
}

// IdentifierNotIn registers a terminal matching identifiers not in names.
func (b *Builder) IdentifierNotIn(id string, names ...string) *Builder {
	set := toSet(names)
	return b.Terminal(id, func(tok lexer.Token) bool {
		return tok.Type == lexer.TokenIdentifier && !set[tok.Text]
	})
}

// Operator registers a terminal matching the operator whose text is id.
func (b *Builder) Operator(id string) *Builder {
	return b.Terminal(id, func(tok lexer.Token) bool {
		return tok.Is(lexer.TokenOperator, id)
	})
}

// IntLiteral registers a terminal matching integer literals.
func (b *Builder) IntLiteral(id string) *Builder {
	return b.Terminal(id, func(tok lexer.Token) bool {
		return tok.Type == lexer.TokenInteger
	})
}

// RealLiteral registers a terminal matching real literals.
func (b *Builder) RealLiteral(id string) *Builder {
	return b.Terminal(id, func(tok lexer.Token) bool {
		return tok.Type == lexer.TokenReal
	})
}

// EndOfInput registers a terminal matching the EOF token.
func (b *Builder) EndOfInput(id string) *Builder {
	return b.Terminal(id, func(tok lexer.Token) bool {
		return tok.Type == lexer.TokenEOF
	})
}

// SequenceIf registers a rule that fails normally unless cond matches; once
// cond has matched, every rule in rest is mandatory.
func (b *Builder) SequenceIf(id, cond string, rest ...string) *Builder {
	return b.add(&rule{id: id, kind: kindSequenceIf, childIDs: append([]string{cond}, rest...)})
}

// Alternatives registers a rule matching the first option that matches.
func (b *Builder) Alternatives(id string, options ...string) *Builder {
	return b.add(&rule{id: id, kind: kindAlternatives, childIDs: options})
}

// Repeat registers a rule matching cond zero or more times. It always
// succeeds and never invokes an action.
func (b *Builder) Repeat(id, cond string) *Builder {
	return b.add(&rule{id: id, kind: kindRepeat, childIDs: []string{cond}})
}

// Require registers a rule whose children are all mandatory.
func (b *Builder) Require(id string, rules ...string) *Builder {
	return b.add(&rule{id: id, kind: kindRequire, childIDs: rules})
}

// Empty registers a rule that always matches without consuming input.
func (b *Builder) Empty(id string) *Builder {
	return b.add(&rule{id: id, kind: kindEmpty})
}

// Build resolves child references and returns a Grammar rooted at root.
// Duplicate ids, unknown references and an unknown root are binding errors.
func (b *Builder) Build(root string) (*Grammar, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	rules := make([]rule, len(b.rules))
	for i, r := range b.rules {
		rules[i] = *r
		rules[i].children = make([]int, len(r.childIDs))
		for j, childID := range r.childIDs {
			idx, ok := b.index[childID]
			if !ok {
				return nil, errors.Binding("Rule %q refers to undefined rule %q", r.id, childID)
			}
			rules[i].children[j] = idx
		}
		if (r.kind == kindSequenceIf || r.kind == kindRepeat) && len(r.childIDs) == 0 {
			return nil, errors.Binding("Rule %q has no condition", r.id)
		}
	}

	rootIdx, ok := b.index[root]
	if !ok {
		return nil, errors.Binding("Undefined root rule %q", root)
	}
	return &Grammar{rules: rules, index: b.index, root: rootIdx}, nil
}

// Grammar is an immutable set of bound rules. It is safe for concurrent use;
// each Parse call keeps its own state.
type Grammar struct {
	rules []rule
	index map[string]int
	root  int
}

// Root returns the id of the root rule.
func (g *Grammar) Root() string {
	return g.rules[g.root].id
}

// Rules returns the ids of every rule, sorted.
func (g *Grammar) Rules() []string {
	ids := make([]string, 0, len(g.rules))
	for _, r := range g.rules {
		ids = append(ids, r.id)
	}
	slices.Sort(ids)
	return ids
}

// Describe returns the rule kind and child ids of id, for debugging.
func (g *Grammar) Describe(id string) (string, bool) {
	idx, ok := g.index[id]
	if !ok {
		return "", false
	}
	r := g.rules[idx]
	if len(r.childIDs) == 0 {
		return r.kind.String(), true
	}
	return fmt.Sprintf("%s %v", r.kind, r.childIDs), true
}

// Parse opens lex and matches the root rule against it, invoking action for
// each completed rule. A root that does not match at all is a syntax error at
// the first token. A nil action is allowed.
func (g *Grammar) Parse(lex *lexer.Lexer, action ActionFunc) error {
	if action == nil {
		action = func(string, lexer.Token) error { return nil }
	}
	if err := lex.Open(); err != nil {
		return err
	}
	d := &driver{grammar: g, lex: lex, action: action}
	ok, err := d.match(g.root)
	if err != nil {
		return err
	}
	if !ok {
		tok := lex.Current()
		return errors.Syntax(tok.Location, "Missing %s", g.rules[g.root].id)
	}
	return nil
}

// driver holds the state of one Parse call.
type driver struct {
	grammar *Grammar
	lex     *lexer.Lexer
	action  ActionFunc
}

func (d *driver) match(idx int) (bool, error) {
	r := &d.grammar.rules[idx]
	start := d.lex.Current()

	switch r.kind {
	case kindTerminal:
		if !r.pred(start) {
			return false, nil
		}
		if err := d.action(r.id, start); err != nil {
			return false, err
		}
		return true, d.lex.Pop()

	case kindSequenceIf:
		ok, err := d.match(r.children[0])
		if err != nil || !ok {
			return false, err
		}
		if err := d.mandatory(r.children[1:]); err != nil {
			return false, err
		}
		return true, d.action(r.id, start)

	case kindAlternatives:
		for _, child := range r.children {
			ok, err := d.match(child)
			if err != nil {
				return false, err
			}
			if ok {
				return true, d.action(r.id, start)
			}
		}
		return false, nil

	case kindRepeat:
		for {
			before := d.lex.Consumed()
			ok, err := d.match(r.children[0])
			if err != nil {
				return false, err
			}
			// A match that consumed nothing would repeat forever.
			if !ok || d.lex.Consumed() == before {
				return true, nil
			}
		}

	case kindRequire:
		if err := d.mandatory(r.children); err != nil {
			return false, err
		}
		return true, d.action(r.id, start)

	case kindEmpty:
		return true, d.action(r.id, start)
	}
	return false, errors.Binding("Rule %q has unknown kind", r.id)
}

// mandatory matches every child in order; the first one that fails is
// reported as missing at the current token.
func (d *driver) mandatory(children []int) error {
	for _, child := range children {
		ok, err := d.match(child)
		if err != nil {
			return err
		}
		if !ok {
			tok := d.lex.Current()
			return errors.Syntax(tok.Location, "Missing %s", d.grammar.rules[child].id)
		}
	}
	return nil
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
