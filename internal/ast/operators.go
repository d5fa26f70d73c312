package ast

import (
	"bytes"
	"strings"

	"github.com/dwscript-go/dws/internal/lexer"
)

// OperatorDecl represents a class operator overload declaration.
// DWScript syntax:
//
//	class operator Add(a, b: TVector): TVector;
//	begin
//	  Result := ...
//	end;
type OperatorDecl struct {
	Name       *Identifier
	ReturnType *TypeAnnotation
	Body       *BlockStatement
	Parameters []*Parameter
	Token      lexer.Token
}

func (od *OperatorDecl) statementNode()       {}
func (od *OperatorDecl) TokenLiteral() string { return od.Token.Literal }
func (od *OperatorDecl) Pos() lexer.Position  { return od.Token.Pos }
func (od *OperatorDecl) String() string {
	var out bytes.Buffer

	out.WriteString("class operator ")
	out.WriteString(od.Name.String())
	out.WriteString("(")

	params := []string{}
	for _, p := range od.Parameters {
		params = append(params, p.String())
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(")")

	if od.ReturnType != nil {
		out.WriteString(": ")
		out.WriteString(od.ReturnType.String())
	}

	if od.Body != nil {
		out.WriteString(" ")
		out.WriteString(od.Body.String())
	}

	return out.String()
}
