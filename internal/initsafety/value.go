package initsafety

// LatentKind tags what kind of deferred analysis a LatentInfo defers:
// a method body, a lazy-val initializer, or a nested class body. Render
// and checkApply/checkNew use the tag to choose which Effect wrapper
// (Call, Force, Instantiate, Latent) a forced latent's sub-effects get
// folded into.
type LatentKind int

const (
	// LatentMethod defers a method body, forced by a direct call.
	LatentMethod LatentKind = iota
	// LatentLazy defers a lazy val's initializer, forced by checkForce.
	LatentLazy
	// LatentClass defers a nested class body, forced by checkNew.
	LatentClass
	// LatentClosure defers an opaque function value (an η-expanded method
	// reference used as data, e.g. passed as a callback) rather than a
	// direct named call; its sub-effects render as Latent(tree, ...)
	// instead of Call(sym, ...).
	LatentClosure
)

// ParamInfo supplies the caller-side knowledge of a latent's positional
// parameters: is this argument partial, and is it itself latent? When no
// caller knowledge is available (spec.md §3, "the caller passes a function
// producing absent/neutral values"), use neutralParamInfo.
type ParamInfo func(index int) ValueInfo

// neutralParamInfo reports every position as non-partial with no latent
// value, the safe default used when a latent is forced speculatively
// (guard re-entry, nested-class instantiation with unknown args).
func neutralParamInfo(int) ValueInfo { return ValueInfo{} }

// ValueInfo is the fact an expression check returns about the value it
// denotes: is it partial, and does it carry a deferred body the caller can
// choose to force.
type ValueInfo struct {
	Partial bool
	Latent  *LatentInfo
}

// LatentInfo is a stored, parameterized re-entry into a method body, a lazy
// val's initializer, or a class body (spec.md §3). The captured frame is a
// snapshot (deep clone) taken at indexing time, never a live reference, so
// forcing a latent never observes mutations the walk makes after indexing.
type LatentInfo struct {
	Kind LatentKind
	Sym  *Symbol

	run func(c *Checker, args ParamInfo) Res
}

// force invokes the latent's continuation under the checker's recursion
// guard. Returns a neutral Res without error if sym is already being
// checked on this path (spec.md §4.6).
func (l *LatentInfo) force(c *Checker, args ParamInfo) Res {
	if l == nil || l.run == nil {
		return Res{}
	}
	if l.Sym != nil {
		if c.checking[l.Sym] {
			c.debugf("initsafety: breaking recursive re-entry into %s", l.Sym.Name)
			return Res{}
		}
		c.checking[l.Sym] = true
		defer delete(c.checking, l.Sym)
	}
	return l.run(c, args)
}

// joinValueInfo implements Res.Join's elementwise disjunction of
// partial-ness and re-forcing join of latents (spec.md §3).
func joinValueInfo(a, b ValueInfo) ValueInfo {
	return ValueInfo{
		Partial: a.Partial || b.Partial,
		Latent:  joinLatent(a.Latent, b.Latent),
	}
}

// joinLatent combines two latents into one whose forcing re-forces both
// sides (with the same argument info) and joins their results. A nil side
// acts as the neutral element.
func joinLatent(a, b *LatentInfo) *LatentInfo {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &LatentInfo{
		Kind: LatentClosure,
		run: func(c *Checker, args ParamInfo) Res {
			return a.force(c, args).Join(b.force(c, args))
		},
	}
}
