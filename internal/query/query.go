// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query builds percent-encoded boolean search expressions for the
// arXiv API. Leaf terms are constructed through field factories and composed
// with And, Or, AndNot, and Group; the resulting tree serializes to the
// search_query value the remote grammar expects.
package query

import (
	"net/url"
	"strings"

	"github.com/pdiddy/arxiv-query/pkg/types"
)

type exprKind int

const (
	kindZero exprKind = iota
	kindTerm
	kindAnd
	kindOr
	kindAndNot
	kindGroup
)

// Operator tokens as they appear on the wire. The surrounding + characters
// are encoded spaces.
const (
	tokenAnd    = "+AND+"
	tokenOr     = "+OR+"
	tokenAndNot = "+ANDNOT+"
	groupOpen   = "%28"
	groupClose  = "%29"
)

// Expr is an immutable boolean search expression: either a single field
// term or a combinator over one or more sub-expressions. The zero value
// renders as the empty string. Nesting order is preserved exactly as
// constructed; the remote API reads a flat token stream with no implicit
// precedence, so mixing And and Or needs an explicit Group.
type Expr struct {
	kind     exprKind
	rendered string
	children []Expr
}

// term builds a leaf with the payload already encoded, so callers never
// handle an un-encoded form.
func term(prefix, text string) Expr {
	return Expr{kind: kindTerm, rendered: prefix + `:"` + encode(text) + `"`}
}

// Title matches words in the title field.
func Title(text string) Expr { return term("ti", text) }

// Author matches author names.
func Author(text string) Expr { return term("au", text) }

// Abstract matches words in the abstract.
func Abstract(text string) Expr { return term("abs", text) }

// Comment matches the submitter's comment field.
func Comment(text string) Expr { return term("co", text) }

// JournalRef matches the journal reference field.
func JournalRef(text string) Expr { return term("jr", text) }

// SubjectCategory matches a subject classification code.
func SubjectCategory(cat types.Category) Expr { return term("cat", cat.String()) }

// ReportNumber matches the report number field.
func ReportNumber(text string) Expr { return term("rn", text) }

// ID matches an arXiv identifier.
func ID(text string) Expr { return term("id", text) }

// All matches across every searchable field.
func All(text string) Expr { return term("all", text) }

// And joins expressions with the AND operator. The signature requires at
// least one operand; the remote grammar has no empty-operand form.
func And(first Expr, rest ...Expr) Expr {
	return combine(kindAnd, first, rest)
}

// Or joins expressions with the OR operator.
func Or(first Expr, rest ...Expr) Expr {
	return combine(kindOr, first, rest)
}

// AndNot joins expressions with the ANDNOT operator.
func AndNot(first Expr, rest ...Expr) Expr {
	return combine(kindAndNot, first, rest)
}

// Group wraps the concatenated operands in encoded parentheses. Use it
// whenever a sub-expression mixing And and Or must bind tighter than its
// surrounding combinator.
func Group(first Expr, rest ...Expr) Expr {
	return combine(kindGroup, first, rest)
}

func combine(kind exprKind, first Expr, rest []Expr) Expr {
	children := make([]Expr, 0, 1+len(rest))
	children = append(children, first)
	children = append(children, rest...)
	return Expr{kind: kind, children: children}
}

// String serializes the expression. Serialization is pure and total: the
// same tree always renders the same token stream.
func (e Expr) String() string {
	switch e.kind {
	case kindTerm:
		return e.rendered
	case kindAnd:
		return e.join(tokenAnd)
	case kindOr:
		return e.join(tokenOr)
	case kindAndNot:
		return e.join(tokenAndNot)
	case kindGroup:
		return groupOpen + e.join("") + groupClose
	default:
		return ""
	}
}

// IsZero reports whether the expression was never constructed.
func (e Expr) IsZero() bool { return e.kind == kindZero }

func (e Expr) join(sep string) string {
	parts := make([]string, len(e.children))
	for i, c := range e.children {
		parts[i] = c.String()
	}
	return strings.Join(parts, sep)
}

// encode percent-encodes text for the query string, with literal spaces
// represented as +.
func encode(s string) string {
	return url.QueryEscape(s)
}
