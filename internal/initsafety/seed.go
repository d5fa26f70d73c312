package initsafety

import "github.com/dwscript-go/dws/internal/ast"

// BuildSeedEnv implements spec.md §4.1: class-seed construction. It
// returns a fresh environment, topped by a TopEnv bound to info's class,
// with one frame owning every non-lazy field and every @partial member
// (this class's own accessors and lazy vals, plus proper-ancestors' @partial
// concrete term declarations), seeded as uninitialized / partial
// respectively.
func BuildSeedEnv(info *ClassInfo) *Env {
	top := NewTopEnv(info.Symbol)
	frame := top.Push()

	nonInit := map[*Symbol]bool{}
	partial := map[*Symbol]bool{}

	for _, m := range info.Members {
		switch m.Kind {
		case SymField:
			nonInit[m] = true
			if m.HasPartial {
				partial[m] = true
			}
		case SymLazyVal, SymParam:
			if m.HasPartial {
				partial[m] = true
			}
		}
	}

	for p := info.Parent; p != nil; p = p.Parent {
		for _, m := range p.Members {
			if (m.Kind == SymField || m.Kind == SymLazyVal) && !m.IsDeferred && m.HasPartial {
				partial[m] = true
			}
		}
	}

	for sym := range nonInit {
		frame.Own(sym)
	}
	for sym := range partial {
		if !frame.locals[sym] {
			frame.Own(sym)
		}
	}
	for sym := range nonInit {
		frame.SeedNonInit(sym)
	}
	for sym := range partial {
		frame.SeedPartial(sym)
	}

	return frame
}

// indexClassMembers implements the class-level half of spec.md §4.2's
// indexing pass: every method and lazy val directly declared on info
// becomes a local of frame, bound to a LatentInfo whose continuation
// re-enters the member's body under a fresh child frame of a snapshot
// taken once every sibling has been registered (so methods can reference
// each other and lazy vals can reference methods, regardless of
// declaration order).
func indexClassMembers(frame *Env, info *ClassInfo) {
	for _, m := range info.Members {
		switch m.Kind {
		case SymMethod, SymLazyVal:
			frame.Own(m)
		}
	}

	snapshot := frame.DeepClone()

	for _, m := range info.Members {
		switch m.Kind {
		case SymMethod:
			bindMethodLatent(frame, snapshot, m)
		case SymLazyVal:
			bindLazyLatent(frame, snapshot, m)
		}
	}
}

func bindMethodLatent(frame, snapshot *Env, sym *Symbol) {
	fd, _ := sym.Node.(*ast.FunctionDecl)
	frame.SetLatent(sym, &LatentInfo{
		Kind: LatentMethod,
		Sym:  sym,
		run: func(c *Checker, args ParamInfo) Res {
			child := snapshot.Push()
			for i, p := range sym.Params {
				child.Own(p)
				info := args(i)
				if info.Partial {
					child.SeedPartial(p)
				}
				if info.Latent != nil {
					child.SetLatent(p, info.Latent)
				}
			}
			if fd == nil {
				return Res{}
			}
			return c.checkBlockBody(child, fd.Body)
		},
	})
}

func bindLazyLatent(frame, snapshot *Env, sym *Symbol) {
	fd, _ := sym.Node.(*ast.FieldDecl)
	frame.SetLatent(sym, &LatentInfo{
		Kind: LatentLazy,
		Sym:  sym,
		run: func(c *Checker, args ParamInfo) Res {
			if fd == nil || fd.InitValue == nil {
				return Res{}
			}
			return c.checkTree(snapshot, fd.InitValue)
		},
	})
}

// indexLocalDefs implements the block-level half of spec.md §4.2: a
// sequence of statements may itself contain local function or nested
// class declarations (dws allows both inside a routine body). Each gets
// the same treatment as a class-level method/nested class, scoped to
// this block's frame instead of the class's top frame.
func indexLocalDefs(frame *Env, stmts []ast.Statement) {
	var locals []*Symbol
	nodeOf := map[*Symbol]ast.Statement{}

	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.FunctionDecl:
			sym := methodSymbol(n, frame.CurrentClass())
			frame.Own(sym)
			locals = append(locals, sym)
			nodeOf[sym] = n
		case *ast.ClassDecl:
			sym := &Symbol{Kind: SymClass, Name: n.Name.Value, Node: n, HasUnchecked: n.IsUnchecked, position: n.Pos()}
			frame.Own(sym)
			locals = append(locals, sym)
			nodeOf[sym] = n
		}
	}
	if len(locals) == 0 {
		return
	}

	snapshot := frame.DeepClone()
	for _, sym := range locals {
		switch n := nodeOf[sym].(type) {
		case *ast.FunctionDecl:
			bindMethodLatent(frame, snapshot, sym)
		case *ast.ClassDecl:
			bindLocalClassLatent(frame, snapshot, sym, n)
		}
	}
}

func bindLocalClassLatent(frame, snapshot *Env, sym *Symbol, decl *ast.ClassDecl) {
	frame.SetLatent(sym, &LatentInfo{
		Kind: LatentClass,
		Sym:  sym,
		run: func(c *Checker, args ParamInfo) Res {
			info := c.reg.Build(decl)
			sym.Class = info
			return c.CheckClass(info)
		},
	})
}
