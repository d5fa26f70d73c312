package initsafety

import (
	"fmt"
	"strings"

	"github.com/dwscript-go/dws/internal/lexer"
)

// Warning is one rendered top-level diagnostic: an Effect plus the
// message text a host (cmd/dwscript's check-init subcommand, or an LSP
// integration) would show a user. Mirrors internal/semantic.SemanticError
// in shape, but stays inside this package since initialization-safety
// findings are warnings, not compile errors (spec.md §1: "a class failing
// the check is still a legal program").
type Warning struct {
	Effect  Effect
	Message string
	Pos     lexer.Position
}

// Report renders every effect CheckClass accumulated into a flat list of
// Warnings, one per top-level effect, child-before-parent exactly the way
// spec.md §3 and §9 describe a Call/Force/Latent/Instantiate node's own
// message following its sub-effects' messages.
func Report(res Res) []Warning {
	var out []Warning
	for _, e := range res.Effects {
		renderInto(&out, e)
	}
	return out
}

func renderInto(out *[]Warning, e Effect) {
	for _, sub := range e.Sub() {
		renderInto(out, sub)
	}
	*out = append(*out, Warning{Effect: e, Message: describe(e), Pos: e.Pos()})
}

// describe formats one effect's own message, independent of its children
// (already flattened into their own Warnings by renderInto).
func describe(e Effect) string {
	switch eff := e.(type) {
	case *UninitEffect:
		return fmt.Sprintf("%s is read before it is initialized", memberName(eff.Sym))
	case *OverrideRiskEffect:
		return fmt.Sprintf("call to %s may run before construction finishes; mark it @init or final to allow this", memberName(eff.Sym))
	case *UseAbstractDefEffect:
		return fmt.Sprintf("%s has no default implementation and is not marked @init", memberName(eff.Sym))
	case *MemberEffect:
		return fmt.Sprintf("%s is selected from a value that may still be under construction", memberDesc(eff.Sym))
	case *CrossAssignEffect:
		return "assigning a possibly-partial value into an already-safe location"
	case *ArgumentEffect:
		return fmt.Sprintf("argument to %s may still be under construction; mark the parameter @partial to allow this", calleeName(eff.Fun))
	case *PartialNewEffect:
		return fmt.Sprintf("constructing %s here escapes the partially-built enclosing object", memberName(eff.Cls))
	case *CallEffect:
		return fmt.Sprintf("call to %s", memberName(eff.Sym))
	case *ForceEffect:
		return fmt.Sprintf("forcing lazy value %s", memberName(eff.Sym))
	case *LatentEffect:
		return "invoking this value"
	case *InstantiateEffect:
		return fmt.Sprintf("constructing %s", memberName(eff.Cls))
	case *RecCreateEffect:
		return fmt.Sprintf("recursive construction of %s", memberName(eff.Cls))
	default:
		return string(e.Kind())
	}
}

func memberName(sym *Symbol) string {
	if sym == nil {
		return "<unknown>"
	}
	return sym.Name
}

func memberDesc(sym *Symbol) string {
	if sym == nil {
		return "a member"
	}
	return sym.Name
}

func calleeName(sym *Symbol) string {
	if sym == nil || sym.Name == "" {
		return "this call"
	}
	return sym.Name
}

// Reporter is the host's diagnostic sink: cmd/dwscript, an LSP
// integration, or a test can each supply their own without this package
// depending on any of them. Thread-safety of the sink is the host's
// concern.
type Reporter interface {
	Warn(pos lexer.Position, msg string)
}

// Emit renders res and delivers each warning to r in discovery order,
// child-before-parent for the nested effect kinds.
func Emit(res Res, r Reporter) {
	for _, w := range Report(res) {
		r.Warn(w.Pos, w.Message)
	}
}

// Format renders w the way internal/errors.CompilerError.Format does: a
// position header followed by the message, with the effect's nesting
// depth shown as indentation (spec.md §9's worked examples read the
// sub-effects of Call/Force/Latent/Instantiate as an indented trace).
func (w Warning) Format() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("warning at line %d:%d: %s", w.Pos.Line, w.Pos.Column, w.Message))
	return sb.String()
}

// FormatAll renders a full Report in declaration order, one line per
// Warning.
func FormatAll(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.Format()
	}
	return strings.Join(lines, "\n")
}
