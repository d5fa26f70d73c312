package initsafety

import (
	"fmt"

	"github.com/dwscript-go/dws/internal/ast"
)

// Checker runs the initialization-safety analysis over one class template.
// A fresh Checker is created per class (spec.md §5: "the host may
// parallelize across classes as long as each class receives its own
// analyzer instance"); it owns the recursion guard and nothing else is
// shared across class analyses.
type Checker struct {
	reg *Registry

	// checking is the methChecking recursion guard (spec.md §4.6):
	// symbols currently being forced somewhere on the active call stack.
	checking map[*Symbol]bool

	// Debug, when set, receives trace lines the way the host's
	// init.println channel does (spec.md §6 Configuration). Nil by
	// default: no tracing.
	Debug func(string)
}

// NewChecker creates a Checker that resolves `new T(...)` targets and
// class-to-class subtyping through reg.
func NewChecker(reg *Registry) *Checker {
	return &Checker{reg: reg, checking: make(map[*Symbol]bool)}
}

func (c *Checker) debugf(format string, args ...any) {
	if c.Debug == nil {
		return
	}
	c.Debug(fmt.Sprintf(format, args...))
}

// CheckClass runs the full analysis for info and returns the accumulated
// top-level Res. @unchecked classes are skipped entirely (spec.md §4.1).
func (c *Checker) CheckClass(info *ClassInfo) Res {
	if info.Symbol.HasUnchecked {
		return Res{}
	}

	frame := BuildSeedEnv(info)
	indexClassMembers(frame, info)

	if info.Decl.Constructor == nil || info.Decl.Constructor.Body == nil {
		return Res{}
	}
	stmts := info.Decl.Constructor.Body.Statements
	indexLocalDefs(frame, stmts)
	return c.checkStats(frame, stmts)
}

// checkStats folds checkTree across stmts left to right, discarding each
// statement's ValueInfo but never dropping its effects (spec.md §4.3).
func (c *Checker) checkStats(env *Env, stmts []ast.Statement) Res {
	res := Res{}
	for _, s := range stmts {
		sub := c.checkTree(env, s)
		res.Effects = append(res.Effects, sub.Effects...)
	}
	return res
}

// checkBlock pushes a fresh frame, indexes the block's local definitions
// in it, walks the statements, then checks the tail expression (spec.md
// §4.3). dws blocks have no trailing expression syntax distinct from a
// statement, so the "tail expression" here is simply the last statement's
// value when it is an ExpressionStatement; every other shape yields a
// neutral ValueInfo, matching how dws constructor/method bodies are
// actually written (procedures with no implicit return value).
func (c *Checker) checkBlock(env *Env, block *ast.BlockStatement) Res {
	if block == nil {
		return Res{}
	}
	child := env.Push()
	indexLocalDefs(child, block.Statements)

	res := Res{}
	for i, s := range block.Statements {
		sub := c.checkTree(child, s)
		res.Effects = append(res.Effects, sub.Effects...)
		if i == len(block.Statements)-1 {
			res.Value = sub.Value
		}
	}
	return res
}

// checkBlockBody is the entry point a method/lazy-val/class latent uses to
// check its body under the frame the indexing pass prepared for it.
func (c *Checker) checkBlockBody(frame *Env, block *ast.BlockStatement) Res {
	if block == nil {
		return Res{}
	}
	indexLocalDefs(frame, block.Statements)
	res := Res{}
	for i, s := range block.Statements {
		sub := c.checkTree(frame, s)
		res.Effects = append(res.Effects, sub.Effects...)
		if i == len(block.Statements)-1 {
			res.Value = sub.Value
		}
	}
	return res
}

// checkTree is the syntax-directed dispatcher of spec.md §4.4.
func (c *Checker) checkTree(env *Env, tree ast.Node) Res {
	switch t := tree.(type) {
	case nil:
		return Res{}

	// --- literals: no effects, non-partial ---
	case *ast.IntegerLiteral, *ast.FloatLiteral, *ast.StringLiteral,
		*ast.BooleanLiteral, *ast.NilLiteral:
		return Res{}

	// --- ignored definitions encountered mid-walk: already indexed ---
	case *ast.FunctionDecl, *ast.ClassDecl:
		return Res{}

	case *ast.FieldDecl:
		// A lazy field declared inline is indexed, not walked; anything
		// else reaching here (a class-var, say) has no runtime effect of
		// its own.
		return Res{}

	case *ast.Identifier:
		return c.checkBareIdentifier(env, t)

	case *ast.LambdaExpression:
		return c.checkLambda(env, t)

	case *ast.MemberAccessExpression:
		return c.checkMemberAccess(env, t)

	case *ast.MethodCallExpression:
		return c.checkMethodCall(env, t)

	case *ast.CallExpression:
		return c.checkApply(env, t, t.Function, t.Arguments)

	case *ast.NewExpression:
		return c.checkNew(env, t)

	case *ast.IfStatement:
		return c.checkIf(env, t)

	case *ast.AssignmentStatement:
		return c.checkAssign(env, t)

	case *ast.VarDeclStatement:
		return c.checkValDef(env, t)

	case *ast.ExpressionStatement:
		return c.checkTree(env, t.Expression)

	case *ast.BlockStatement:
		return c.checkBlock(env, t)

	case *ast.ReturnStatement:
		return c.checkTree(env, t.ReturnValue)

	case *ast.GroupedExpression:
		return c.checkTree(env, t.Expression)

	case *ast.BinaryExpression:
		return c.checkTree(env, t.Left).Join(c.checkTree(env, t.Right))

	case *ast.UnaryExpression:
		return c.checkTree(env, t.Right)

	case *ast.RangeExpression:
		return c.checkTree(env, t.Start).Join(c.checkTree(env, t.End))

	// --- loops: body may run zero or more times, so join conservatively
	// with the zero-iterations case, the same way checkIf joins branches.
	// Not named explicitly in spec.md's dispatcher table, but constructor
	// bodies routinely contain loops and an intraprocedural checker that
	// silently skipped them would be unsound in practice.
	case *ast.WhileStatement:
		return c.checkLoop(env, t.Condition, t.Body)
	case *ast.RepeatStatement:
		return c.checkLoop(env, t.Condition, t.Body)
	case *ast.ForStatement:
		return c.checkLoopBounds(env, t.Start, t.End, t.Body)
	case *ast.ForInStatement:
		return c.checkLoop(env, t.Collection, t.Body)

	case *ast.TryStatement:
		return c.checkTry(env, t)

	default:
		return Res{}
	}
}

// checkLoop models a loop whose body runs an unknown number of times
// (including zero): clone env, check the condition/collection expression
// in the original, the body in the clone, then join the clone back.
func (c *Checker) checkLoop(env *Env, cond ast.Expression, body ast.Statement) Res {
	condRes := c.checkTree(env, cond)
	clone := env.DeepClone()
	bodyRes := c.checkTree(clone, body)
	env.Join(clone)
	return Res{Effects: append(append([]Effect{}, condRes.Effects...), bodyRes.Effects...)}
}

func (c *Checker) checkLoopBounds(env *Env, start, end ast.Expression, body ast.Statement) Res {
	boundsRes := c.checkTree(env, start).Join(c.checkTree(env, end))
	clone := env.DeepClone()
	bodyRes := c.checkTree(clone, body)
	env.Join(clone)
	return Res{Effects: append(append([]Effect{}, boundsRes.Effects...), bodyRes.Effects...)}
}

func (c *Checker) checkTry(env *Env, t *ast.TryStatement) Res {
	res := c.checkTree(env, t.TryBlock)
	if t.ExceptClause != nil {
		for _, h := range t.ExceptClause.Handlers {
			res.Effects = append(res.Effects, c.checkTree(env, h.Statement).Effects...)
		}
		if t.ExceptClause.ElseBlock != nil {
			res.Effects = append(res.Effects, c.checkTree(env, t.ExceptClause.ElseBlock).Effects...)
		}
	}
	if t.FinallyClause != nil && t.FinallyClause.Block != nil {
		res.Effects = append(res.Effects, c.checkTree(env, t.FinallyClause.Block).Effects...)
	}
	return res
}
