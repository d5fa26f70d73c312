package initsafety

import (
	"github.com/dwscript-go/dws/internal/ast"
	"github.com/dwscript-go/dws/internal/lexer"
)

// SymbolKind classifies what kind of class member a Symbol stands for.
type SymbolKind int

const (
	// SymField is an ordinary instance field.
	SymField SymbolKind = iota
	// SymParam is a primary-constructor parameter (a param accessor).
	SymParam
	// SymMethod is a method (including property accessors represented as
	// plain FunctionDecls).
	SymMethod
	// SymLazyVal is a lazy field: its InitValue runs at most once.
	SymLazyVal
	// SymClass is a nested or top-level class template.
	SymClass
)

// Symbol is this package's view of a class member or constructor parameter.
// Symbols are built once per declaration by bridge.go and referenced by
// pointer identity thereafter, so they are safe to use as map keys the way
// spec's Env frames require ("all storing only symbols ... keyed by
// Symbol").
type Symbol struct {
	Kind SymbolKind
	Name string

	// Owner is the class this symbol is a direct member of (nil for a
	// top-level class symbol itself, unless it is a nested class, in which
	// case Owner is its enclosing class).
	Owner *Symbol

	// Node is the underlying declaration: *ast.FieldDecl, *ast.Parameter,
	// *ast.FunctionDecl, or *ast.ClassDecl.
	Node ast.Node

	// Params holds the final-parameter-list symbols of a method, in
	// declaration order. Only populated for SymMethod.
	Params []*Symbol

	// Class points back to the ClassInfo this symbol denotes, when
	// Kind == SymClass.
	Class *ClassInfo

	IsLazy          bool
	IsMethod        bool
	IsDeferred      bool // abstract: declared with no body
	IsParamAccessor bool
	IsAccessor      bool // synthetic property getter/setter
	IsFinal         bool
	IsPrivate       bool
	IsLocal         bool // declared directly in the class under check

	HasInit      bool // @init
	HasPartial   bool // @partial
	HasUnchecked bool // @unchecked (classes only)

	position lexer.Position
}

// Pos returns the symbol's declaration position for diagnostics.
func (s *Symbol) Pos() lexer.Position { return s.position }

// IsMethodSymbol reports whether s denotes a callable method.
func (s *Symbol) IsMethodSymbol() bool { return s.Kind == SymMethod }

// IsLazySymbol reports whether s denotes a lazy val.
func (s *Symbol) IsLazySymbol() bool { return s.Kind == SymLazyVal }

// IsClassSymbol reports whether s denotes a nested or top-level class.
func (s *Symbol) IsClassSymbol() bool { return s.Kind == SymClass }

// IsConstructorParam reports whether s is a primary-constructor parameter
// (a param accessor in spec terms).
func (s *Symbol) IsConstructorParam() bool { return s.Kind == SymParam }

// IsSetter reports whether s is a property setter. The dws host AST has no
// synthetic setter FunctionDecl distinct from an ordinary method, so this
// is always false; kept as a named predicate so call sites read the same
// as spec's "setter predicate" and so a future richer bridge has a single
// place to wire it up.
func (s *Symbol) IsSetter() bool { return false }

// IsEffectivelyFinal reports whether overriding s is impossible: private
// members, and members of a final (non-virtual, non-overridable) method
// set. dws marks overridability with IsVirtual/IsOverride rather than a
// top-level "final" class modifier, so a method is effectively final here
// when it is neither virtual nor an override of a virtual method.
func (s *Symbol) IsEffectivelyFinal() bool {
	return s.IsFinal || s.IsPrivate
}

// IsDefaultGetter reports whether s is a compiler-synthesized default
// getter. dws has no default-argument getters in the generation
// internal/initsafety is built against (see SPEC_FULL.md open questions),
// so this is always false.
func (s *Symbol) IsDefaultGetter() bool { return false }
