package passes

import (
	"github.com/dwscript-go/dws/pkg/ast"
)

// ContractPass implements Pass 4: Contract Validation
//
// **Purpose**: Validate Design-by-Contract constructs (requires, ensures, invariant)
// now that all types and expressions have been validated. This is a specialized pass
// for contract-based programming features.
//
// **Responsibilities**:
// - Validate 'require' (precondition) clauses in functions
//   - Check that expressions are boolean
//   - Validate that only parameters and constants are referenced
// - Validate 'ensure' (postcondition) clauses in functions
//   - Check that expressions are boolean
//   - Validate 'old(expr)' expressions (save value at function entry)
//   - Check that old() only wraps valid expressions (no side effects)
// - Validate 'invariant' clauses in classes
//   - Check that expressions are boolean
//   - Validate that invariants only reference fields and constants
//   - Check that invariants are maintained after constructors/destructors
// - Validate 'assert' statements
//   - Check that expressions are boolean
// - Check contract inheritance rules
//   - Derived methods can weaken preconditions (OR with parent)
//   - Derived methods can strengthen postconditions (AND with parent)
//   - Class invariants are inherited
//
// **What it does NOT do**:
// - Type-check general expressions (already done in Pass 3)
// - Validate non-contract statements
//
// **Dependencies**: Pass 3 (Semantic Validation)
//
// **Inputs**:
// - Fully type-checked AST with semantic annotations
// - Complete type system with inheritance
//
// **Outputs**:
// - Errors for invalid contract expressions
// - Warnings for contract violations (if detectable at compile-time)
//
// **Example**:
//   function Divide(x, y: Integer): Integer;
//   require
//     y <> 0  // Precondition: divisor must be non-zero
//   ensure
//     Result * y = x  // Postcondition: result * divisor = dividend
//   begin
//     Result := x div y;
//   end;
//
//   class TStack = class
//   private
//     FCount: Integer;
//   invariant
//     FCount >= 0  // Class invariant: count is never negative
//   public
//     procedure Push(Item: Integer);
//     function Pop: Integer;
//   end;
type ContractPass struct{}

// NewContractPass creates a new contract validation pass.
func NewContractPass() *ContractPass {
	return &ContractPass{}
}

// Name returns the name of this pass.
func (p *ContractPass) Name() string {
	return "Pass 4: Contract Validation"
}

// Run executes the contract validation pass.
func (p *ContractPass) Run(program *ast.Program, ctx *PassContext) error {
	// TODO: Implement in task 6.1.2.5
	// This will validate all contract clauses (requires, ensures, invariant)
	return nil
}
