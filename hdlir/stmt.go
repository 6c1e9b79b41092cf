// Copyright (c) 2025 The cheby authors
// SPDX-License-Identifier: MIT

package hdlir

// Stmt is any HDL statement node. It is a closed set, matched by a type
// switch in serialisers (out of scope here).
type Stmt interface{ isStmt() }

// StmtSink is anything a statement can be appended to: a StmtList, a Comb
// process body, or one arm of a Switch. The decoder synthesiser and mux
// drivers are written against this interface so they don't care which
// kind of container they're filling in.
type StmtSink interface {
	Append(...Stmt)
}

// StmtList is an ordered, appendable sequence of statements — the
// out-parameter threaded through the decoder synthesiser and mux
// drivers (spec §4.4/§4.5).
type StmtList struct {
	Stmts []Stmt
}

func (l *StmtList) Append(s ...Stmt) { l.Stmts = append(l.Stmts, s...) }

// Assign is a combinational (non-clocked) assignment.
type Assign struct {
	LHS, RHS Expr
}

func (*Assign) isStmt() {}

// Sync is a clocked (registered) assignment.
type Sync struct {
	LHS, RHS Expr
}

func (*Sync) isStmt() {}

// Comb is a combinational process: `always @(sensitivity) begin ... end`.
type Comb struct {
	Sensitivity []Expr
	Stmts       []Stmt
}

func (*Comb) isStmt() {}

func (c *Comb) Append(s ...Stmt) { c.Stmts = append(c.Stmts, s...) }

// IfElse is a conditional statement.
type IfElse struct {
	Cond       Expr
	Then, Else []Stmt
}

func (*IfElse) isStmt() {}

// Switch dispatches on Expr to one of Choices.
type Switch struct {
	Expr    Expr
	Choices []*Choice
}

func (*Switch) isStmt() {}

// Choice is one arm of a Switch: either ChoiceExpr (a matched constant) or
// ChoiceDefault (the catch-all arm).
type Choice struct {
	Value   Expr // nil for the default choice.
	Default bool
	Stmts   []Stmt
}

func NewChoiceExpr(value Expr) *Choice { return &Choice{Value: value} }
func NewChoiceDefault() *Choice        { return &Choice{Default: true} }

func (c *Choice) Append(s ...Stmt) { c.Stmts = append(c.Stmts, s...) }

// NewSwitch builds a Switch statement on the given expression.
func NewSwitch(e Expr) *Switch { return &Switch{Expr: e} }

func (s *Switch) AddChoice(c *Choice) { s.Choices = append(s.Choices, c) }

// Comment is a textual annotation carried through to the serialised
// output, used by the read/write mux drivers to label which leaf a
// branch belongs to.
type Comment struct{ Text string }

func (*Comment) isStmt() {}

func NewComment(text string) *Comment { return &Comment{Text: text} }
