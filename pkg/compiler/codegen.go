package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// constPoolPrefix starts every synthesized literal-pool label. User
// constants must not begin with it.
const constPoolPrefix = "_c_const_"

// CodeGen walks an AST and emits an x86-64 System V assembly listing in
// AT&T syntax. Every value is a double; expression results travel in %xmm0
// and intermediates are parked on 16-byte stack slots.
type CodeGen struct {
	syms            *SymbolTable
	out             strings.Builder
	currentFunction string
	funcOrder       []string
	pools           map[string][]float64
	suppress        bool // drop instructions while still registering pool entries
}

func newCodeGen(syms *SymbolTable) *CodeGen {
	return &CodeGen{
		syms:  syms,
		pools: make(map[string][]float64),
	}
}

// line writes one raw output line.
func (cg *CodeGen) line(format string, args ...any) {
	if cg.suppress {
		return
	}
	fmt.Fprintf(&cg.out, format+"\n", args...)
}

// instr writes one instruction line: four spaces of indent, the mnemonic
// padded to eight columns, then the operands. Operand-less instructions get
// no trailing padding.
func (cg *CodeGen) instr(mnemonic, operands string, args ...any) {
	if operands == "" {
		cg.line("    %s", mnemonic)
		return
	}
	cg.line("    %-8s"+operands, append([]any{mnemonic}, args...)...)
}

// push spills %xmm0 to a fresh 16-byte stack slot.
func (cg *CodeGen) push() {
	cg.instr("sub", "$0x10,%%rsp")
	cg.instr("movsd", "%%xmm0,(%%rsp)")
}

// addPoolEntry appends v to the current function's literal pool and returns
// its zero-based index. Entries are never shared, even for equal values.
func (cg *CodeGen) addPoolEntry(v float64) int {
	pool := append(cg.pools[cg.currentFunction], v)
	cg.pools[cg.currentFunction] = pool
	return len(pool) - 1
}

func poolLabel(fn string, idx int) string {
	return fmt.Sprintf("%s%s_%d", constPoolPrefix, fn, idx)
}

// slotOperand returns the %rbp-relative operand for a 16-byte frame slot:
// slot k lives at -(0x8 + 0x10*k)(%rbp).
func slotOperand(slot int) string {
	return fmt.Sprintf("-%#x(%%rbp)", 8+16*slot)
}

// formatDouble renders v in the minimal decimal form that parses back to
// the same double.
func formatDouble(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func arithMnemonic(op TokenType) (string, error) {
	switch op {
	case PLUS:
		return "addsd", nil
	case MINUS:
		return "subsd", nil
	case STAR:
		return "mulsd", nil
	case SLASH:
		return "divsd", nil
	}
	return "", fmt.Errorf("codegen: unknown binary operator %s", op)
}

// genExpr emits the instructions that evaluate e and leave the value in %xmm0.
func (cg *CodeGen) genExpr(e Expr) error {
	switch n := e.(type) {

	case *NumberLit:
		idx := cg.addPoolEntry(n.Value)
		cg.instr("movsd", "%s(%%rip),%%xmm0", poolLabel(cg.currentFunction, idx))

	case *VarRef:
		sym, ok := cg.syms.Lookup(n.Name)
		if !ok {
			return fmt.Errorf("unknown variable '%s' in function '%s'", n.Name, cg.currentFunction)
		}
		if sym.Kind == SymbolConst {
			cg.instr("movsd", "%s(%%rip),%%xmm0", n.Name)
		} else {
			cg.instr("movsd", "%s,%%xmm0", slotOperand(sym.Slot))
		}

	case *BinaryExpr:
		if err := cg.genExpr(n.Left); err != nil {
			return err
		}
		cg.push()
		if err := cg.genExpr(n.Right); err != nil {
			return err
		}
		cg.instr("movaps", "%%xmm0,%%xmm1")
		cg.instr("movsd", "(%%rsp),%%xmm0")
		cg.instr("add", "$0x10,%%rsp")
		op, err := arithMnemonic(n.Op)
		if err != nil {
			return err
		}
		cg.instr(op, "%%xmm1,%%xmm0")

	case *UnaryExpr:
		if n.Op != MINUS {
			return fmt.Errorf("codegen: unknown unary operator %s", n.Op)
		}
		// Lowered as 0 - operand; the zero takes its own pool entry.
		return cg.genExpr(&BinaryExpr{Op: MINUS, Left: &NumberLit{}, Right: n.Right})

	case *FunctionCall:
		arity, ok := cg.syms.FuncArity(n.Name)
		if !ok {
			return fmt.Errorf("unknown function call '%s' in '%s'", n.Name, cg.currentFunction)
		}
		if arity != len(n.Args) {
			return fmt.Errorf("invalid arguments count for function call '%s': expected %d, but got %d (in function '%s')",
				n.Name, arity, len(n.Args), cg.currentFunction)
		}

		// Arguments are evaluated left to right, each parked on the stack,
		// then popped in reverse into their argument registers.
		for _, arg := range n.Args {
			if err := cg.genExpr(arg); err != nil {
				return err
			}
			cg.push()
		}
		for i := len(n.Args) - 1; i >= 0; i-- {
			cg.instr("movsd", "(%%rsp),%%xmm%d", i)
			cg.instr("add", "$0x10,%%rsp")
		}
		cg.instr("call", "%s", n.Name)

	default:
		return fmt.Errorf("codegen: unknown expression node %T", e)
	}
	return nil
}

// genStmt emits the instructions that carry out s.
func (cg *CodeGen) genStmt(s Stmt) error {
	switch n := s.(type) {

	case *AssignStmt:
		if cg.syms.HasConst(n.Name) {
			return fmt.Errorf("cant create local variable with name '%s': there is constant with that name", n.Name)
		}
		if cg.syms.HasFunc(n.Name) {
			return fmt.Errorf("cant create local variable with name '%s': there is function with that name", n.Name)
		}
		// The right-hand side is walked for its name checks and pool
		// entries only; no instructions and no store are emitted, so the
		// local's slot is never actually written.
		cg.suppress = true
		err := cg.genExpr(n.Value)
		cg.suppress = false
		if err != nil {
			return err
		}
		cg.syms.AllocateLocal(n.Name)

	case *ReturnStmt:
		return cg.genExpr(n.Expr)

	default:
		return fmt.Errorf("codegen: unknown statement node %T", s)
	}
	return nil
}

// genFunction lowers one function: parameter registration, prologue,
// body, epilogue. An empty body leaves %xmm0 untouched, so the return
// value is whatever the register held on entry.
func (cg *CodeGen) genFunction(fn *FunctionDecl) error {
	cg.currentFunction = fn.Name
	cg.syms.EnterFunction()

	for _, param := range fn.Params {
		if cg.syms.HasConst(param) {
			return fmt.Errorf("cant create argument for '%s' with name '%s': there is constant with that name", fn.Name, param)
		}
		if cg.syms.HasFunc(param) {
			return fmt.Errorf("cant create argument for '%s' with name '%s': there is function with that name", fn.Name, param)
		}
		if !cg.syms.DefineParam(param) {
			return fmt.Errorf("redefinition of argument '%s' in function '%s'", param, fn.Name)
		}
	}

	cg.line("%s:", fn.Name)
	cg.instr("push", "%%rbp")
	cg.instr("mov", "%%rsp,%%rbp")
	for i := range fn.Params {
		cg.instr("sub", "$0x10,%%rsp")
		cg.instr("movsd", "%%xmm%d,%s", i, slotOperand(i))
	}

	for _, stmt := range fn.Body {
		if err := cg.genStmt(stmt); err != nil {
			return err
		}
	}

	// main's signature is validated only after its body lowers, so a bad
	// body reports first.
	if fn.Name == "main" && len(fn.Params) > 0 {
		return fmt.Errorf("main function cant have any arguments")
	}

	cg.instr("leaveq", "")
	cg.instr("retq", "")

	cg.currentFunction = ""
	cg.syms.ExitFunction()
	return nil
}

// Generate lowers a parsed program to a complete assembly listing. The
// first diagnostic aborts compilation; the caller then gets an empty
// listing and the error.
func Generate(stmts []Stmt, syms *SymbolTable) (string, error) {
	cg := newCodeGen(syms)

	// Pass 1: the full global inventory, before any body lowers. A
	// function body may refer to functions declared after it.
	for _, s := range stmts {
		switch n := s.(type) {
		case *ConstDecl:
			if !syms.DefineConst(n.Name, n.Value) {
				return "", fmt.Errorf("constant '%s' is defined twice", n.Name)
			}
			if strings.HasPrefix(n.Name, constPoolPrefix) {
				return "", fmt.Errorf("cant define constant '%s' (do not define it manually)", n.Name)
			}
		case *FunctionDecl:
			if syms.HasFunc(n.Name) {
				return "", fmt.Errorf("function '%s' is defined twice", n.Name)
			}
			if syms.HasConst(n.Name) {
				return "", fmt.Errorf("cant define function '%s': there is constant with that name", n.Name)
			}
			syms.DefineFunc(n.Name, len(n.Params))
			cg.funcOrder = append(cg.funcOrder, n.Name)
		default:
			return "", fmt.Errorf("codegen: unknown top-level node %T", s)
		}
	}

	cg.line(".section .text")
	cg.line(".globl main")
	cg.line("")

	// Pass 2: lower function bodies in declaration order.
	for _, s := range stmts {
		fn, ok := s.(*FunctionDecl)
		if !ok {
			continue
		}
		if err := cg.genFunction(fn); err != nil {
			return "", err
		}
		cg.line("")
	}

	cg.line("")

	// Trailer: literal pools grouped by function in declaration order,
	// then user constants sorted by name.
	for _, name := range cg.funcOrder {
		for i, v := range cg.pools[name] {
			cg.line("%s: .double %s", poolLabel(name, i), formatDouble(v))
		}
	}
	for _, name := range syms.ConstNames() {
		cg.line("%s: .double %s", name, formatDouble(syms.ConstValue(name)))
	}

	return cg.out.String(), nil
}
