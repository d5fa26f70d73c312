package initsafety

import (
	"github.com/dwscript-go/dws/internal/ast"
	"github.com/dwscript-go/dws/internal/lexer"
)

// EffectKind names one of the diagnostic shapes spec.md §3 defines.
type EffectKind string

const (
	EffectUninit         EffectKind = "uninit"
	EffectOverrideRisk   EffectKind = "override-risk"
	EffectUseAbstractDef EffectKind = "use-abstract-def"
	EffectMember         EffectKind = "member"
	EffectCrossAssign    EffectKind = "cross-assign"
	EffectArgument       EffectKind = "argument"
	EffectPartialNew     EffectKind = "partial-new"
	EffectCall           EffectKind = "call"
	EffectForce          EffectKind = "force"
	EffectLatent         EffectKind = "latent"
	EffectInstantiate    EffectKind = "instantiate"
	EffectRecCreate      EffectKind = "rec-create"
)

// Effect is one node of the effect tree spec.md §3 describes: a tagged
// diagnostic carrying enough context to render a message, with the
// Call/Force/Latent/Instantiate variants additionally carrying the
// sub-effects their forced body produced.
type Effect interface {
	Kind() EffectKind
	Pos() lexer.Position
	// Sub returns nested effects, in discovery order, for the
	// sub-effect-carrying kinds; nil for leaf effects.
	Sub() []Effect
}

type effectBase struct {
	at lexer.Position
}

func (e effectBase) Pos() lexer.Position { return e.at }
func (e effectBase) Sub() []Effect       { return nil }

// UninitEffect: read of a not-yet-initialized field.
type UninitEffect struct {
	effectBase
	Sym *Symbol
}

func (e *UninitEffect) Kind() EffectKind { return EffectUninit }

// OverrideRiskEffect: call to an overridable non-@init method.
type OverrideRiskEffect struct {
	effectBase
	Sym *Symbol
}

func (e *OverrideRiskEffect) Kind() EffectKind { return EffectOverrideRisk }

// UseAbstractDefEffect: use of an abstract declaration not marked @init.
type UseAbstractDefEffect struct {
	effectBase
	Sym *Symbol
}

func (e *UseAbstractDefEffect) Kind() EffectKind { return EffectUseAbstractDef }

// MemberEffect: selection on a partial value not known safe.
type MemberEffect struct {
	effectBase
	Sym *Symbol
	Obj ast.Expression
}

func (e *MemberEffect) Kind() EffectKind { return EffectMember }

// CrossAssignEffect: assigning a partial rhs into a non-partial lhs.
type CrossAssignEffect struct {
	effectBase
	Lhs ast.Expression
	Rhs ast.Expression
}

func (e *CrossAssignEffect) Kind() EffectKind { return EffectCrossAssign }

// ArgumentEffect: passing a partial value where a non-partial is expected.
type ArgumentEffect struct {
	effectBase
	Fun *Symbol
	Arg ast.Expression
}

func (e *ArgumentEffect) Kind() EffectKind { return EffectArgument }

// PartialNewEffect: constructing an inner class whose outer is partial.
type PartialNewEffect struct {
	effectBase
	Prefix ast.Expression
	Cls    *Symbol
}

func (e *PartialNewEffect) Kind() EffectKind { return EffectPartialNew }

// CallEffect: a method call whose body produces effects.
type CallEffect struct {
	effectBase
	Sym        *Symbol
	SubEffects []Effect
}

func (e *CallEffect) Kind() EffectKind { return EffectCall }
func (e *CallEffect) Sub() []Effect    { return e.SubEffects }

// ForceEffect: forcing a lazy val whose thunk produces effects.
type ForceEffect struct {
	effectBase
	Sym        *Symbol
	SubEffects []Effect
}

func (e *ForceEffect) Kind() EffectKind { return EffectForce }
func (e *ForceEffect) Sub() []Effect    { return e.SubEffects }

// LatentEffect: a latent value (closure/method result) evaluated to an
// unsafe body.
type LatentEffect struct {
	effectBase
	Tree       ast.Node
	SubEffects []Effect
}

func (e *LatentEffect) Kind() EffectKind { return EffectLatent }
func (e *LatentEffect) Sub() []Effect    { return e.SubEffects }

// InstantiateEffect: constructing an in-scope inner class whose body is
// unsafe.
type InstantiateEffect struct {
	effectBase
	Cls        *Symbol
	SubEffects []Effect
}

func (e *InstantiateEffect) Kind() EffectKind { return EffectInstantiate }
func (e *InstantiateEffect) Sub() []Effect    { return e.SubEffects }

// RecCreateEffect: recursive construction of the currently-constructing
// class.
type RecCreateEffect struct {
	effectBase
	Cls *Symbol
}

func (e *RecCreateEffect) Kind() EffectKind { return EffectRecCreate }

// Res is the monoidally composable result of checking a subexpression: the
// effects it accumulated plus the ValueInfo describing the value itself
// (spec.md §3).
type Res struct {
	Effects []Effect
	Value   ValueInfo
}

// Join concatenates effects (in discovery order, this before other) and
// joins the two ValueInfos.
func (r Res) Join(other Res) Res {
	effects := make([]Effect, 0, len(r.Effects)+len(other.Effects))
	effects = append(effects, r.Effects...)
	effects = append(effects, other.Effects...)
	return Res{
		Effects: effects,
		Value:   joinValueInfo(r.Value, other.Value),
	}
}

// withEffect returns a copy of r with extra appended to its effects.
func (r Res) withEffect(extra Effect) Res {
	effects := make([]Effect, 0, len(r.Effects)+1)
	effects = append(effects, r.Effects...)
	effects = append(effects, extra)
	return Res{Effects: effects, Value: r.Value}
}
