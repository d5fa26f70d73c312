package initsafety

import "github.com/dwscript-go/dws/internal/ast"

// Small struct-literal builders for the hand-built internal/ast fixtures
// this package's tests exercise, matching internal/ast/arrays_test.go's
// style of assembling nodes directly rather than driving a parser.

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Value: name}
}

func block(stmts ...ast.Statement) *ast.BlockStatement {
	return &ast.BlockStatement{Statements: stmts}
}

func exprStmt(e ast.Expression) ast.Statement {
	return &ast.ExpressionStatement{Expression: e}
}

func assign(target ast.Expression, value ast.Expression) *ast.AssignmentStatement {
	return &ast.AssignmentStatement{Target: target, Value: value}
}

func field(name string, opts ...func(*ast.FieldDecl)) *ast.FieldDecl {
	f := &ast.FieldDecl{Name: ident(name), Visibility: ast.VisibilityPublic}
	for _, o := range opts {
		o(f)
	}
	return f
}

func partialField(f *ast.FieldDecl) { f.IsPartial = true }

func param(name string, opts ...func(*ast.Parameter)) *ast.Parameter {
	p := &ast.Parameter{Name: ident(name)}
	for _, o := range opts {
		o(p)
	}
	return p
}

func partialParam(p *ast.Parameter) { p.IsPartial = true }

func method(name string, body *ast.BlockStatement, opts ...func(*ast.FunctionDecl)) *ast.FunctionDecl {
	m := &ast.FunctionDecl{Name: ident(name), Visibility: ast.VisibilityPublic, Body: body}
	for _, o := range opts {
		o(m)
	}
	return m
}

func withParams(params ...*ast.Parameter) func(*ast.FunctionDecl) {
	return func(m *ast.FunctionDecl) { m.Parameters = params }
}

func virtual(m *ast.FunctionDecl)    { m.IsVirtual = true }
func initMethod(m *ast.FunctionDecl) { m.IsInit = true }

func ctor(params []*ast.Parameter, body *ast.BlockStatement) *ast.FunctionDecl {
	return &ast.FunctionDecl{IsConstructor: true, Visibility: ast.VisibilityPublic, Parameters: params, Body: body}
}

func class(name string, c *ast.FunctionDecl, fields []*ast.FieldDecl, methods []*ast.FunctionDecl, opts ...func(*ast.ClassDecl)) *ast.ClassDecl {
	cd := &ast.ClassDecl{Name: ident(name), Constructor: c, Fields: fields, Methods: methods}
	for _, o := range opts {
		o(cd)
	}
	return cd
}

// withParent sets decl.Parent, the way a `class TChild(TParent)` header
// would, for exercising inheritance through Registry.Build.
func withParent(name string) func(*ast.ClassDecl) {
	return func(cd *ast.ClassDecl) { cd.Parent = ident(name) }
}

// checkOneClass builds a Registry containing exactly decl, then runs
// CheckClass against it — the shape every scenario test below needs.
func checkOneClass(decl *ast.ClassDecl) Res {
	reg := NewRegistry()
	info := reg.Build(decl)
	c := NewChecker(reg)
	return c.CheckClass(info)
}

func checkClasses(decls ...*ast.ClassDecl) (*Registry, map[string]*ClassInfo) {
	reg := NewRegistry()
	infos := make(map[string]*ClassInfo, len(decls))
	for _, d := range decls {
		infos[d.Name.Value] = reg.Build(d)
	}
	return reg, infos
}
