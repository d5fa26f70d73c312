package initsafety

import (
	"strings"

	"github.com/dwscript-go/dws/internal/ast"
	"github.com/dwscript-go/dws/internal/lexer"
)

// isSelfName and isInheritedName recognize the two pseudo-identifiers
// dws's parser treats as plain *ast.Identifier names rather than dedicated
// This/Super node types (see internal/semantic/analyze_classes.go's
// Define("Self", ...) convention, which this package mirrors).
func isSelfName(name string) bool      { return strings.EqualFold(name, "self") }
func isInheritedName(name string) bool { return strings.EqualFold(name, "inherited") }

func isSelfExpr(e ast.Expression) bool {
	id, ok := e.(*ast.Identifier)
	return ok && isSelfName(id.Value)
}

func isInheritedExpr(e ast.Expression) bool {
	id, ok := e.(*ast.Identifier)
	return ok && isInheritedName(id.Value)
}

// thisPartial reports whether a bare Self/inherited reference is itself
// partial: the object under construction is "This" and is partial exactly
// until the environment as a whole reaches its Initialized() state.
func (c *Checker) thisPartial(env *Env) bool { return !env.Initialized() }

// resolveSymbol looks up name the way a dws method body would: first as a
// local (method param, enclosing local var/def, or the class's own member,
// all of which are owned somewhere in env's chain), then, failing that, as
// an inherited member the checker does not track per-instance (treated as
// already safely constructed by the time any subclass constructor runs).
// The second return reports whether the symbol is tracked in env (owned)
// as opposed to resolved only against an ancestor's member table.
func (c *Checker) resolveSymbol(env *Env, name string) (*Symbol, bool) {
	if sym := env.Resolve(name); sym != nil {
		return sym, true
	}
	cls := env.CurrentClass().Class
	if cls == nil {
		return nil, false
	}
	for p := cls.Parent; p != nil; p = p.Parent {
		if sym := p.Lookup(name); sym != nil {
			return sym, false
		}
	}
	return nil, false
}

// lookupQualifiedMember makes a best-effort attempt to find the Symbol a
// Select/MethodCall's member name denotes on some other object, using the
// qualifier's static TypeAnnotation (when the semantic layer resolved one)
// to find its ClassInfo. Returns nil when no registered class matches; the
// resulting MemberEffect simply carries a nil Sym in that case.
func (c *Checker) lookupQualifiedMember(obj ast.Expression, member string) *Symbol {
	te, ok := obj.(ast.TypedExpression)
	if !ok {
		return nil
	}
	t := te.GetType()
	if t == nil || t.Name == "" {
		return nil
	}
	for info := c.reg.Lookup(t.Name); info != nil; info = info.Parent {
		if sym := info.Lookup(member); sym != nil {
			return sym
		}
	}
	return nil
}

// checkLexicalRef implements spec.md §4.4's checkTermRef body for a
// reference resolved to a Symbol by resolveSymbol, lexical or not: owned
// reports whether sym is tracked locally in env (a class's own member or
// an ancestor's @partial field/lazy-val, both seeded by BuildSeedEnv) as
// opposed to resolved only against an ancestor's member table (an
// inherited, non-overridden method, or an inherited deferred/lazy member
// BuildSeedEnv never seeds). spec.md's OverrideRisk/UseAbstractDef rules
// carry no locality condition — an inherited overridable method reached
// during construction is exactly as risky as a local one — so both fire
// regardless of owned; only the env-tracked state (nonInit, forcing,
// latent invocation) requires owned, since indexClassMembers never binds
// a latent for a parent-only member.
func (c *Checker) checkLexicalRef(env *Env, sym *Symbol, owned bool, pos lexer.Position) Res {
	if owned && env.IsNotInit(sym) {
		return Res{Effects: []Effect{&UninitEffect{effectBase{pos}, sym}}}
	}

	if sym.IsLazySymbol() {
		if !owned {
			return Res{Value: ValueInfo{Partial: sym.HasPartial}}
		}
		return c.checkForce(env, sym, pos)
	}

	if sym.IsMethodSymbol() {
		var effects []Effect
		if !sym.HasInit && !sym.IsEffectivelyFinal() && !sym.IsDefaultGetter() {
			effects = append(effects, &OverrideRiskEffect{effectBase{pos}, sym})
		}
		if !owned {
			return Res{Effects: effects, Value: ValueInfo{Partial: sym.HasPartial}}
		}
		if len(sym.Params) == 0 {
			sub := c.forceLatent(env.LatentInfo(sym), neutralParamInfo)
			if len(sub.Effects) > 0 {
				effects = append(effects, &CallEffect{effectBase{pos}, sym, sub.Effects})
			}
			return Res{Effects: effects, Value: ValueInfo{Partial: sub.Value.Partial}}
		}
		return Res{Effects: effects, Value: ValueInfo{Partial: env.IsPartial(sym), Latent: env.LatentInfo(sym)}}
	}

	if sym.IsDeferred && !sym.HasInit {
		return Res{
			Effects: []Effect{&UseAbstractDefEffect{effectBase{pos}, sym}},
			Value:   ValueInfo{Partial: partialOf(env, sym, owned)},
		}
	}

	return Res{Value: ValueInfo{Partial: partialOf(env, sym, owned), Latent: env.LatentInfo(sym)}}
}

// partialOf reads sym's partial-ness the way checkLexicalRef needs it for
// either kind of resolution: an owned symbol's partial state lives (and
// can change) in its owning frame; a symbol resolved only against an
// ancestor's member table has no such tracked state, so its declared
// @partial annotation is the best available fact.
func partialOf(env *Env, sym *Symbol, owned bool) bool {
	if owned {
		return env.IsPartial(sym)
	}
	return sym.HasPartial
}

// forceLatent is checkLexicalRef/checkForce/checkApply/checkNew's shared
// entry point into a LatentInfo's recursion-guarded continuation.
func (c *Checker) forceLatent(l *LatentInfo, args ParamInfo) Res {
	return l.force(c, args)
}

// checkForce implements spec.md §4.4's checkForce: force a lazy val at
// most once per analysis path, memoizing the forced partial-ness/latent
// state onto the symbol itself so later reads in the same env observe it
// without re-running the initializer.
func (c *Checker) checkForce(env *Env, sym *Symbol, pos lexer.Position) Res {
	if env.IsForced(sym) {
		return Res{Value: ValueInfo{Partial: env.IsPartial(sym), Latent: env.LatentInfo(sym)}}
	}
	env.MarkForced(sym)

	sub := c.forceLatent(env.LatentInfo(sym), neutralParamInfo)
	if sub.Value.Partial {
		env.MarkPartial(sym)
	}
	if sub.Value.Latent != nil {
		env.UpdateLatent(sym, sub.Value.Latent)
	}

	value := ValueInfo{Partial: env.IsPartial(sym), Latent: env.LatentInfo(sym)}
	if len(sub.Effects) > 0 {
		return Res{Effects: []Effect{&ForceEffect{effectBase{pos}, sym, sub.Effects}}, Value: value}
	}
	return Res{Value: value}
}

// checkBareIdentifier implements checkTree's Ident(name) case: Self and
// inherited are pseudo-references to the object under construction itself,
// everything else resolves lexically (own frame chain) or against an
// ancestor's member table, both routed through checkLexicalRef.
func (c *Checker) checkBareIdentifier(env *Env, id *ast.Identifier) Res {
	if isSelfName(id.Value) || isInheritedName(id.Value) {
		return Res{Value: ValueInfo{Partial: c.thisPartial(env)}}
	}
	sym, owned := c.resolveSymbol(env, id.Value)
	if sym == nil {
		return Res{}
	}
	return c.checkLexicalRef(env, sym, owned, id.Pos())
}

// checkSelect implements spec.md §4.4's checkSelect together with §4.5's
// safe-virtual-access predicate: unlike checkTermRef, a Select on a
// partial qualifier is flagged regardless of same-class locality, but is
// still suppressed when isSafeSelection shows the specific member access
// safe (spec.md notes the checkSelect/checkTermRef asymmetry explicitly;
// the safety carve-outs themselves are a separate, orthogonal predicate
// that applies to both entry points).
func (c *Checker) checkSelect(env *Env, obj ast.Expression, member *ast.Identifier, pos lexer.Position) Res {
	qualRes := c.checkTree(env, obj)
	if !qualRes.Value.Partial {
		return Res{Effects: qualRes.Effects}
	}
	sym := c.lookupQualifiedMember(obj, member.Value)
	if c.isSafeSelection(env, sym) {
		return Res{Effects: qualRes.Effects}
	}
	return qualRes.withEffect(&MemberEffect{effectBase{pos}, sym, obj})
}

// isSafeSelection implements clauses (a)-(c) of spec.md §4.5's
// safe-virtual-access predicate: sym's owner must be a class that
// currentClass is a (possibly indirect) subclass of, and then any of:
// (a) sym is a plain term — not a method, lazy val, or deferred member —
// declared on an owner whose primary constructor takes no @partial
// parameters; (b) sym is annotated @init or @partial; (c) sym is a
// default-getter (Symbol.IsDefaultGetter is always false in this bridge,
// so this clause never fires here, same as everywhere else it's
// checked). Clause (d) — currentClass is Final and the environment is
// already Initialized() — is not implemented: dws's ClassDecl carries no
// sealed/final class concept to hang it off (see DESIGN.md's Open
// Questions), so a selection that would only be safe under clause (d) is
// still flagged Member here.
func (c *Checker) isSafeSelection(env *Env, sym *Symbol) bool {
	if sym == nil || sym.Owner == nil || sym.Owner.Class == nil {
		return false
	}
	owner := sym.Owner.Class
	current := env.CurrentClass().Class
	if current == nil || !current.IsSubClassOf(owner) {
		return false
	}
	if sym.HasInit || sym.HasPartial {
		return true
	}
	if sym.IsDefaultGetter() {
		return true
	}
	if sym.IsMethodSymbol() || sym.IsLazySymbol() || sym.IsDeferred {
		return false
	}
	ctor := owner.Decl.Constructor
	if ctor == nil {
		return true
	}
	for _, p := range ctor.Parameters {
		if p.IsPartial {
			return false
		}
	}
	return true
}

// checkMemberAccess implements checkTree's Select(qual, member) case: a
// Self/inherited-qualified access is a lexical reference (checkLexicalRef);
// any other qualifier goes through checkSelect.
func (c *Checker) checkMemberAccess(env *Env, ma *ast.MemberAccessExpression) Res {
	if isSelfExpr(ma.Object) || isInheritedExpr(ma.Object) {
		sym, owned := c.resolveSymbol(env, ma.Member.Value)
		if sym == nil {
			return Res{}
		}
		return c.checkLexicalRef(env, sym, owned, ma.Pos())
	}
	return c.checkSelect(env, ma.Object, ma.Member, ma.Pos())
}

// resolveCallee computes the "fun" Res for a method call's target,
// reusing checkLexicalRef for a Self/inherited-qualified call and
// checkSelect's unconditional Member check otherwise.
func (c *Checker) resolveCallee(env *Env, obj ast.Expression, method *ast.Identifier, pos lexer.Position) Res {
	if isSelfExpr(obj) || isInheritedExpr(obj) {
		sym, owned := c.resolveSymbol(env, method.Value)
		if sym == nil {
			return Res{}
		}
		return c.checkLexicalRef(env, sym, owned, pos)
	}
	return c.checkSelect(env, obj, method, pos)
}

// checkMethodCall implements checkTree's MethodCall case by resolving the
// callee (Self/inherited lexically, anything else via checkSelect) and
// handing off to checkApplyCore for the shared argument/latent-invocation
// logic checkApply also uses.
func (c *Checker) checkMethodCall(env *Env, mc *ast.MethodCallExpression) Res {
	funRes := c.resolveCallee(env, mc.Object, mc.Method, mc.Pos())
	return c.checkApplyCore(env, mc, funRes, mc.Arguments)
}

// checkApply implements checkTree's Apply(fun, args) case.
func (c *Checker) checkApply(env *Env, tree ast.Node, funExpr ast.Expression, args []ast.Expression) Res {
	funRes := c.checkTree(env, funExpr)
	return c.checkApplyCore(env, tree, funRes, args)
}

// checkApplyCore implements spec.md §4.4's checkApply: evaluate the
// arguments (force=true whenever the callee's declared parameters are
// known, so each argument is checked against its own @partial annotation
// directly, regardless of whether the callee also has a latent body to
// invoke — see SPEC_FULL.md's Open Questions entry resolving the
// apparent force=!latent wording against the spec's own worked S4/S2
// examples), then invoke any latent body with the caller's argument
// ValueInfos and wrap its sub-effects as Call (named method) or Latent
// (opaque/closure value).
func (c *Checker) checkApplyCore(env *Env, tree ast.Node, funRes Res, args []ast.Expression) Res {
	var calleeSym *Symbol
	var paramSyms []*Symbol
	if funRes.Value.Latent != nil {
		calleeSym = funRes.Value.Latent.Sym
		if calleeSym != nil {
			paramSyms = calleeSym.Params
		}
	}

	argEffects, argInfos := c.checkParams(env, calleeSym, paramSyms, args, funRes.Value.Latent != nil)

	effects := make([]Effect, 0, len(funRes.Effects)+len(argEffects))
	effects = append(effects, funRes.Effects...)
	effects = append(effects, argEffects...)

	value := ValueInfo{}
	if funRes.Value.Latent != nil {
		sub := c.forceLatent(funRes.Value.Latent, func(i int) ValueInfo {
			if i < len(argInfos) {
				return argInfos[i]
			}
			return ValueInfo{}
		})
		if len(sub.Effects) > 0 {
			if funRes.Value.Latent.Kind == LatentClosure {
				effects = append(effects, &LatentEffect{effectBase{tree.Pos()}, tree, sub.Effects})
			} else {
				effects = append(effects, &CallEffect{effectBase{tree.Pos()}, calleeSym, sub.Effects})
			}
		}
		value = sub.Value
	}

	return Res{Effects: effects, Value: value}
}

// checkParams implements spec.md §4.4's per-argument half of checkApply:
// each argument is checked for its own effects first; when force is set
// (the callee's parameter symbols are known), an argument that is partial,
// or itself latent with an unsafe body, is flagged against that specific
// parameter's @partial annotation — Argument/Latent is only suppressed
// when the matching parameter itself carries @partial. Returns the
// combined effects plus each argument's ValueInfo, for the caller to feed
// onward as the latent's ParamInfo.
func (c *Checker) checkParams(env *Env, callee *Symbol, paramSyms []*Symbol, args []ast.Expression, force bool) ([]Effect, []ValueInfo) {
	var effects []Effect
	infos := make([]ValueInfo, len(args))

	for i, a := range args {
		r := c.checkTree(env, a)
		effects = append(effects, r.Effects...)
		infos[i] = r.Value

		if !force {
			continue
		}
		var paramSym *Symbol
		if i < len(paramSyms) {
			paramSym = paramSyms[i]
		}
		accepts := paramSym != nil && paramSym.HasPartial

		if r.Value.Latent != nil {
			sub := c.forceLatent(r.Value.Latent, neutralParamInfo)
			if len(sub.Effects) > 0 && !accepts {
				effects = append(effects, &LatentEffect{effectBase{a.Pos()}, a, sub.Effects})
			}
		}
		if r.Value.Partial && !accepts {
			effects = append(effects, &ArgumentEffect{effectBase{a.Pos()}, callee, a})
		}
	}

	return effects, infos
}

// checkLambda implements checkTree's closure case: a lambda's body is not
// walked where the lambda appears; the expression's value carries a
// LatentClosure whose continuation checks the body under a snapshot of the
// env taken here, with the supplied argument facts seeded onto the lambda's
// own parameters. A consumer that calls the value goes through
// checkApplyCore; one that merely receives it as an argument gets the
// speculative probe in checkParams, whose unsafe-body findings render as
// Latent(tree, ...).
func (c *Checker) checkLambda(env *Env, le *ast.LambdaExpression) Res {
	sym := &Symbol{Kind: SymMethod, IsMethod: true, IsFinal: true, position: le.Pos()}
	for _, p := range le.Parameters {
		sym.Params = append(sym.Params, &Symbol{
			Kind:       SymParam,
			Name:       p.Name.Value,
			Owner:      sym,
			Node:       p,
			HasPartial: p.IsPartial,
			position:   p.Name.Pos(),
		})
	}
	snapshot := env.DeepClone()
	latent := &LatentInfo{
		Kind: LatentClosure,
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
			return c.checkBlockBody(child, le.Body)
		},
	}
	return Res{Value: ValueInfo{Latent: latent}}
}

// outerPartialUnsafe implements checkNew's prefix-partial test: `new T(...)`
// with no explicit outer qualifier constructs T against the object
// currently under construction ("This"), which is unsafe exactly while
// that object has not yet reached Initialized().
func (c *Checker) outerPartialUnsafe(env *Env) bool { return !env.Initialized() }

// checkNew implements spec.md §4.4's checkNew: a self-referential `new` is
// flagged RecCreate outright; otherwise, construction is safe unless the
// enclosing object is still partial, in which case an out-of-lexical-scope
// target is flagged PartialNew and an in-scope nested class is invoked as
// a latent, wrapped Instantiate if its body is unsafe.
func (c *Checker) checkNew(env *Env, ne *ast.NewExpression) Res {
	target := c.reg.Lookup(ne.ClassName.Value)

	var paramSyms []*Symbol
	var ctorSym *Symbol
	if target != nil {
		ctorSym = target.Symbol
	}
	if target != nil && target.Decl.Constructor != nil {
		for _, p := range target.Decl.Constructor.Parameters {
			paramSyms = append(paramSyms, &Symbol{
				Kind:       SymParam,
				Name:       p.Name.Value,
				HasPartial: p.IsPartial,
				position:   p.Name.Pos(),
			})
		}
	}
	argEffects, argInfos := c.checkParams(env, ctorSym, paramSyms, ne.Arguments, true)

	if target != nil && target.Symbol == env.CurrentClass() {
		return Res{Effects: append(argEffects, &RecCreateEffect{effectBase{ne.Pos()}, target.Symbol})}
	}

	if target == nil || !c.outerPartialUnsafe(env) {
		return Res{Effects: argEffects}
	}

	localSym := env.findClassSymbol(target.Decl)
	if localSym == nil {
		return Res{Effects: append(argEffects, &PartialNewEffect{effectBase{ne.Pos()}, nil, target.Symbol})}
	}

	sub := c.forceLatent(env.LatentInfo(localSym), func(i int) ValueInfo {
		if i < len(argInfos) {
			return argInfos[i]
		}
		return ValueInfo{}
	})
	effects := argEffects
	if len(sub.Effects) > 0 {
		effects = append(effects, &InstantiateEffect{effectBase{ne.Pos()}, target.Symbol, sub.Effects})
	}
	return Res{Effects: effects, Value: ValueInfo{Partial: true}}
}

// checkIf implements spec.md §4.4's checkIf: the condition is checked in
// the live env; the branches are checked independently (then in the
// original frame, else in a deep clone), then the clone's mutations are
// joined back so later statements see the union of what either branch
// might have done.
func (c *Checker) checkIf(env *Env, is *ast.IfStatement) Res {
	condRes := c.checkTree(env, is.Condition)

	clone := env.DeepClone()
	thenRes := c.checkTree(env, is.Consequence)
	elseRes := c.checkTree(clone, is.Alternative)
	env.Join(clone)

	joined := thenRes.Join(elseRes)
	effects := make([]Effect, 0, len(condRes.Effects)+len(joined.Effects))
	effects = append(effects, condRes.Effects...)
	effects = append(effects, joined.Effects...)
	return Res{Effects: effects, Value: joined.Value}
}

// checkValDef implements spec.md §4.4's checkValDef for a dws
// VarDeclStatement: each declared name becomes a fresh local, owned and
// seeded not-yet-initialized in env, then immediately resolved against the
// (shared) initializer expression the way a dws `var x, y := e;` statement
// assigns the same value to every name.
func (c *Checker) checkValDef(env *Env, vd *ast.VarDeclStatement) Res {
	rhsRes := c.checkTree(env, vd.Value)

	for _, name := range vd.Names {
		sym := &Symbol{Kind: SymField, Name: name.Value, IsLocal: true, position: name.Pos()}
		env.Own(sym)
		env.SeedNonInit(sym)

		if vd.Value == nil {
			continue
		}
		env.MarkInit(sym)
		if rhsRes.Value.Partial {
			if env.Initialized() {
				env.MarkInitialized()
			} else {
				env.MarkPartial(sym)
			}
		}
		if rhsRes.Value.Latent != nil {
			env.SetLatent(sym, rhsRes.Value.Latent)
		}
	}

	return Res{Effects: rhsRes.Effects}
}

// resolveAssignTarget reports the Symbol an assignment's lhs denotes when
// it is a lexical reference (a bare local/field name, or Self.field): the
// two shapes checkAssign tracks precisely via nonInit/partialSyms. Any
// other lhs shape (a non-Self qualifier, an index expression) is not
// lexically tracked; checkAssign falls back to checking its prefix
// expression instead.
func (c *Checker) resolveAssignTarget(env *Env, target ast.Expression) (*Symbol, bool) {
	switch t := target.(type) {
	case *ast.Identifier:
		if isSelfName(t.Value) || isInheritedName(t.Value) {
			return nil, false
		}
		sym, owned := c.resolveSymbol(env, t.Value)
		if sym != nil && owned {
			return sym, true
		}
		return nil, false
	case *ast.MemberAccessExpression:
		if !isSelfExpr(t.Object) {
			return nil, false
		}
		sym, owned := c.resolveSymbol(env, t.Member.Value)
		if sym != nil && owned {
			return sym, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// checkAssignPrefix evaluates the qualifier of a non-lexical assignment
// target, the "prefix" spec.md §4.4's checkAssign falls back to checking
// when the lhs is not a direct lexical reference.
func (c *Checker) checkAssignPrefix(env *Env, target ast.Expression) Res {
	if ma, ok := target.(*ast.MemberAccessExpression); ok {
		return c.checkTree(env, ma.Object)
	}
	return Res{}
}

// checkAssign implements spec.md §4.4's checkAssign: an assignment to a
// symbol this analysis tracks precisely updates nonInit/partialSyms
// in place (no warning) unless it would silently downgrade an
// already-safe, already-initialized lexical target by writing a partial
// value into it, which is flagged CrossAssign. An assignment through any
// other lhs shape is checked only by comparing the rhs's partial-ness
// against its prefix's.
func (c *Checker) checkAssign(env *Env, as *ast.AssignmentStatement) Res {
	rhsRes := c.checkTree(env, as.Value)

	if lhsSym, ok := c.resolveAssignTarget(env, as.Target); ok {
		wasUninit := env.IsNotInit(lhsSym)
		wasPartial := env.IsPartial(lhsSym)

		if !rhsRes.Value.Partial || wasPartial || wasUninit {
			if wasUninit {
				env.MarkInit(lhsSym)
			}
			if rhsRes.Value.Partial {
				env.MarkPartial(lhsSym)
			} else {
				env.ClearPartial(lhsSym)
			}
			if rhsRes.Value.Latent != nil {
				env.UpdateLatent(lhsSym, rhsRes.Value.Latent)
			}
			return Res{Effects: rhsRes.Effects}
		}

		return Res{Effects: append(rhsRes.Effects, &CrossAssignEffect{effectBase{as.Pos()}, as.Target, as.Value})}
	}

	prefixRes := c.checkAssignPrefix(env, as.Target)
	effects := make([]Effect, 0, len(rhsRes.Effects)+len(prefixRes.Effects)+1)
	effects = append(effects, rhsRes.Effects...)
	effects = append(effects, prefixRes.Effects...)
	if rhsRes.Value.Partial && !prefixRes.Value.Partial {
		effects = append(effects, &CrossAssignEffect{effectBase{as.Pos()}, as.Target, as.Value})
	}
	return Res{Effects: effects}
}
