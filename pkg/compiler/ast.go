package compiler

import (
	"fmt"
	"strings"
)

//  Expression nodes

// Expr is implemented by every node that produces a value.
// genExpr always leaves the result in %xmm0.
type Expr interface {
	exprNode()
	String() string
}

// NumberLit is a compile-time floating-point constant.
//
//	return 42 / 1244.2234234;
//	       ^^  NumberLit{Value: 42}
//
// A leading minus on a literal is folded in by the parser, so
// -234234.123123 is a single NumberLit with a negative Value.
type NumberLit struct {
	Value float64
}

func (*NumberLit) exprNode()        {}
func (n *NumberLit) String() string { return formatDouble(n.Value) }

// VarRef is a read of a named value: a local, a parameter, or a global
// constant.
//
//	return pi;
//	       ^^  VarRef{Name: "pi"}
type VarRef struct {
	Name string
}

func (*VarRef) exprNode()        {}
func (v *VarRef) String() string { return v.Name }

// BinaryExpr represents a binary operation: Left Op Right.
type BinaryExpr struct {
	Op    TokenType
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// UnaryExpr represents the prefix minus applied to any operand other than a
// bare number literal (which the parser folds into the literal). A
// parenthesised literal such as -(5) still yields a UnaryExpr.
type UnaryExpr struct {
	Op    TokenType // always MINUS
	Right Expr
}

func (*UnaryExpr) exprNode()        {}
func (u *UnaryExpr) String() string { return fmt.Sprintf("(%s %s)", u.Op, u.Right) }

// FunctionCall represents name(args).
type FunctionCall struct {
	Name string
	Args []Expr
}

func (*FunctionCall) exprNode() {}
func (c *FunctionCall) String() string {
	return fmt.Sprintf("FunctionCall(%s, args=%v)", c.Name, c.Args)
}

//  Statement nodes

// Stmt is implemented by every node that does not produce a value.
type Stmt interface {
	stmtNode()
	String() string
}

// ConstDecl represents a top-level  name = number;
type ConstDecl struct {
	Name  string
	Value float64
}

func (*ConstDecl) stmtNode() {}
func (c *ConstDecl) String() string {
	return fmt.Sprintf("ConstDecl(%s = %s)", c.Name, formatDouble(c.Value))
}

// AssignStmt represents  name = expr;  inside a function body.
type AssignStmt struct {
	Name  string
	Value Expr
}

func (*AssignStmt) stmtNode() {}
func (a *AssignStmt) String() string {
	return fmt.Sprintf("Assignment(%s = %s)", a.Name, a.Value)
}

// ReturnStmt represents  return expr;
type ReturnStmt struct {
	Expr Expr
}

func (*ReturnStmt) stmtNode() {}
func (r *ReturnStmt) String() string {
	return fmt.Sprintf("ReturnStmt(%s)", r.Expr)
}

// FunctionDecl represents  fun name(params) { body }
type FunctionDecl struct {
	Name   string
	Params []string
	Body   []Stmt
}

func (*FunctionDecl) stmtNode() {}
func (f *FunctionDecl) String() string {
	return fmt.Sprintf("FunctionDecl(%s(%s), body=%v)", f.Name, strings.Join(f.Params, ", "), f.Body)
}
