package initsafety

import (
	"strings"

	"github.com/dwscript-go/dws/internal/ast"
)

// EnvViolation reports a contract violation on the Env sentinel: a mutator
// called on the top frame, two environments with different top sentinels
// joined together, or markInitialized called before initialized() holds.
// Per spec.md §7 these indicate implementer bugs, not user-facing
// diagnostics, so they are reported as a panic value rather than an Effect.
type EnvViolation struct {
	Op  string
	Why string
}

func (e *EnvViolation) Error() string {
	return "initsafety: env violation in " + e.Op + ": " + e.Why
}

func panicEnv(op, why string) {
	panic(&EnvViolation{Op: op, Why: why})
}

// Env is one frame of the nested environment stack spec.md §3 describes.
// A frame with outer == nil is the TopEnv sentinel; every other frame
// tracks exactly the symbols local to it.
type Env struct {
	outer *Env

	// currentClass is only meaningful on the top sentinel.
	currentClass *Symbol

	locals      map[*Symbol]bool
	nonInit     map[*Symbol]bool
	partialSyms map[*Symbol]bool
	lazyForced  map[*Symbol]bool
	latentSyms  map[*Symbol]*LatentInfo

	// byName indexes locals by lowercase name, for bare-identifier lexical
	// resolution (checks.go's resolveSymbol). Inner frames shadow outer
	// ones, matching normal block-scoping.
	byName map[string]*Symbol
}

// NewTopEnv creates the sentinel frame for checking currentClass.
func NewTopEnv(currentClass *Symbol) *Env {
	return &Env{currentClass: currentClass}
}

// isTop reports whether e is the TopEnv sentinel.
func (e *Env) isTop() bool { return e.outer == nil }

// Push creates a fresh child frame of e, owning no symbols yet.
func (e *Env) Push() *Env {
	return &Env{
		outer:       e,
		locals:      make(map[*Symbol]bool),
		nonInit:     make(map[*Symbol]bool),
		partialSyms: make(map[*Symbol]bool),
		lazyForced:  make(map[*Symbol]bool),
		latentSyms:  make(map[*Symbol]*LatentInfo),
		byName:      make(map[string]*Symbol),
	}
}

// top walks outward to find the shared TopEnv sentinel.
func (e *Env) top() *Env {
	cur := e
	for !cur.isTop() {
		cur = cur.outer
	}
	return cur
}

// CurrentClass returns the class the chain containing e is seeded for.
func (e *Env) CurrentClass() *Symbol { return e.top().currentClass }

// Own adds sym to e's locals (and, per the caller's choice, to nonInit or
// partialSyms). Used by class-seed construction and the indexing pass.
func (e *Env) Own(sym *Symbol) {
	if e.isTop() {
		panicEnv("Own", "cannot own a symbol on the top sentinel")
	}
	e.locals[sym] = true
	if sym.Name != "" {
		e.byName[strings.ToLower(sym.Name)] = sym
	}
}

// Resolve looks up name against e's chain of frames, innermost first,
// returning the shadowing-correct Symbol or nil if no local frame owns a
// matching name.
func (e *Env) Resolve(name string) *Symbol {
	key := strings.ToLower(name)
	cur := e
	for !cur.isTop() {
		if sym, ok := cur.byName[key]; ok {
			return sym
		}
		cur = cur.outer
	}
	return nil
}

// findClassSymbol reports whether decl was indexed as a local SymClass
// somewhere in e's chain (checkNew's lexical-scope test for `new T(...)`
// against a nested class), returning its Symbol if so.
func (e *Env) findClassSymbol(decl *ast.ClassDecl) *Symbol {
	cur := e
	for !cur.isTop() {
		for sym := range cur.locals {
			if sym.Kind == SymClass && sym.Node == ast.Node(decl) {
				return sym
			}
		}
		cur = cur.outer
	}
	return nil
}

// SeedNonInit marks sym (already owned by e) as not yet initialized.
func (e *Env) SeedNonInit(sym *Symbol) {
	if e.isTop() || !e.locals[sym] {
		panicEnv("SeedNonInit", "symbol not local to this frame")
	}
	e.nonInit[sym] = true
}

// SeedPartial marks sym (already owned by e) as partial.
func (e *Env) SeedPartial(sym *Symbol) {
	if e.isTop() || !e.locals[sym] {
		panicEnv("SeedPartial", "symbol not local to this frame")
	}
	e.partialSyms[sym] = true
}

// SetLatent binds sym's LatentInfo in e (the indexing pass registers
// method/lazy-val/class latents this way).
func (e *Env) SetLatent(sym *Symbol, l *LatentInfo) {
	if e.isTop() || !e.locals[sym] {
		panicEnv("SetLatent", "symbol not local to this frame")
	}
	e.latentSyms[sym] = l
}

// owningFrame walks outward from e until it finds the frame that owns
// sym, returning nil if no non-top frame owns it (it belongs to an
// enclosing, already-checked scope, or is not local to this analysis at
// all).
func (e *Env) owningFrame(sym *Symbol) *Env {
	cur := e
	for !cur.isTop() {
		if cur.locals[sym] {
			return cur
		}
		cur = cur.outer
	}
	return nil
}

// IsLocal reports whether sym is owned by some frame in e's chain.
func (e *Env) IsLocal(sym *Symbol) bool {
	return e.owningFrame(sym) != nil
}

// IsNotInit reports whether sym is a known-uninitialized local.
func (e *Env) IsNotInit(sym *Symbol) bool {
	f := e.owningFrame(sym)
	return f != nil && f.nonInit[sym]
}

// IsPartial reports whether sym is a known-partial local.
func (e *Env) IsPartial(sym *Symbol) bool {
	f := e.owningFrame(sym)
	return f != nil && f.partialSyms[sym]
}

// IsForced reports whether sym's lazy thunk has already been entered.
func (e *Env) IsForced(sym *Symbol) bool {
	f := e.owningFrame(sym)
	return f != nil && f.lazyForced[sym]
}

// IsLatent reports whether sym has a registered LatentInfo reachable from
// e's chain (searched like a lexical lookup, not restricted to the owning
// frame, since nested frames may reference an outer method's latent).
func (e *Env) IsLatent(sym *Symbol) bool {
	return e.LatentInfo(sym) != nil
}

// LatentInfo returns sym's registered LatentInfo, or nil.
func (e *Env) LatentInfo(sym *Symbol) *LatentInfo {
	cur := e
	for !cur.isTop() {
		if l, ok := cur.latentSyms[sym]; ok {
			return l
		}
		cur = cur.outer
	}
	return nil
}

// MarkInit removes sym from its owning frame's nonInit set.
func (e *Env) MarkInit(sym *Symbol) {
	f := e.owningFrame(sym)
	if f == nil {
		panicEnv("MarkInit", "symbol not local to any frame")
	}
	delete(f.nonInit, sym)
}

// MarkPartial adds sym to its owning frame's partialSyms set.
func (e *Env) MarkPartial(sym *Symbol) {
	f := e.owningFrame(sym)
	if f == nil {
		panicEnv("MarkPartial", "symbol not local to any frame")
	}
	f.partialSyms[sym] = true
}

// ClearPartial removes sym from its owning frame's partialSyms set.
func (e *Env) ClearPartial(sym *Symbol) {
	f := e.owningFrame(sym)
	if f == nil {
		panicEnv("ClearPartial", "symbol not local to any frame")
	}
	delete(f.partialSyms, sym)
}

// MarkForced adds sym to its owning frame's lazyForced set.
func (e *Env) MarkForced(sym *Symbol) {
	f := e.owningFrame(sym)
	if f == nil {
		panicEnv("MarkForced", "symbol not local to any frame")
	}
	f.lazyForced[sym] = true
}

// UpdateLatent rebinds sym's latent in its owning frame (checkForce
// propagates the forced thunk's own latent-ness onto the symbol itself).
func (e *Env) UpdateLatent(sym *Symbol, l *LatentInfo) {
	f := e.owningFrame(sym)
	if f == nil {
		panicEnv("UpdateLatent", "symbol not local to any frame")
	}
	f.latentSyms[sym] = l
}

// Initialized holds when every frame's nonInit is empty and partialSyms is
// either empty or the singleton {currentClass}.
func (e *Env) Initialized() bool {
	top := e.top()
	cur := e
	for !cur.isTop() {
		if len(cur.nonInit) > 0 {
			return false
		}
		for sym := range cur.partialSyms {
			if sym != top.currentClass {
				return false
			}
		}
		cur = cur.outer
	}
	return true
}

// MarkInitialized clears every frame's partialSyms. Callable only once
// Initialized() already holds.
func (e *Env) MarkInitialized() {
	if !e.Initialized() {
		panicEnv("MarkInitialized", "environment is not yet initialized")
	}
	cur := e
	for !cur.isTop() {
		cur.partialSyms = make(map[*Symbol]bool)
		cur = cur.outer
	}
}

// DeepClone produces an independent copy of every frame up through (but
// not including a copy of) the shared top sentinel.
func (e *Env) DeepClone() *Env {
	if e.isTop() {
		return e
	}
	clone := &Env{
		outer:       e.outer.DeepClone(),
		locals:      cloneSet(e.locals),
		nonInit:     cloneSet(e.nonInit),
		partialSyms: cloneSet(e.partialSyms),
		lazyForced:  cloneSet(e.lazyForced),
		latentSyms:  cloneLatentMap(e.latentSyms),
		byName:      cloneByName(e.byName),
	}
	return clone
}

// Join merges other's nonInit, lazyForced, and partialSyms into e via set
// union, recursively on outers. Both environments must share the same top
// sentinel.
func (e *Env) Join(other *Env) {
	if e.top() != other.top() {
		panicEnv("Join", "environments do not share a top sentinel")
	}
	cur, o := e, other
	for !cur.isTop() {
		unionInto(cur.nonInit, o.nonInit)
		unionInto(cur.lazyForced, o.lazyForced)
		unionInto(cur.partialSyms, o.partialSyms)
		cur, o = cur.outer, o.outer
	}
}

func cloneSet(m map[*Symbol]bool) map[*Symbol]bool {
	out := make(map[*Symbol]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneByName(m map[string]*Symbol) map[string]*Symbol {
	out := make(map[string]*Symbol, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneLatentMap(m map[*Symbol]*LatentInfo) map[*Symbol]*LatentInfo {
	out := make(map[*Symbol]*LatentInfo, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func unionInto(dst, src map[*Symbol]bool) {
	for k, v := range src {
		if v {
			dst[k] = true
		}
	}
}
