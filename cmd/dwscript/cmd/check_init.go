package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dwscript-go/dws/internal/ast"
	"github.com/dwscript-go/dws/internal/errors"
	"github.com/dwscript-go/dws/internal/initsafety"
	"github.com/dwscript-go/dws/internal/lexer"
	"github.com/dwscript-go/dws/internal/parser"
	"github.com/spf13/cobra"
)

var (
	checkInitUnsafeOnly bool
	checkInitJSON       bool
)

var checkInitCmd = &cobra.Command{
	Use:   "check-init [file]",
	Short: "Report initialization-safety warnings for a DWScript file's classes",
	Long: `Analyze every class declared in a DWScript file for values that may
escape into the wild during construction: reads of not-yet-initialized
fields, calls to overridable methods before the object is fully built,
and similar constructor-safety issues.

This is a warning pass, not a type error: a class that fails the check is
still a legal program.

Examples:
  # Check a script file
  dwscript check-init script.dws

  # Only print warnings, suppressing the "N classes, 0 warnings" summary
  dwscript check-init --unsafe-only script.dws

  # Machine-readable output
  dwscript check-init --json script.dws`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckInit,
}

func init() {
	rootCmd.AddCommand(checkInitCmd)

	checkInitCmd.Flags().BoolVar(&checkInitUnsafeOnly, "unsafe-only", false, "print only classes with warnings")
	checkInitCmd.Flags().BoolVar(&checkInitJSON, "json", false, "emit warnings as JSON instead of text")
}

func runCheckInit(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input := string(content)

	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()

	if len(p.Errors()) > 0 {
		compilerErrors := errors.FromStringErrors(p.Errors(), input, filename)
		fmt.Fprint(os.Stderr, errors.FormatErrors(compilerErrors, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	reg := initsafety.NewRegistry()
	decls := collectClassDecls(program)
	for _, decl := range decls {
		reg.Build(decl)
	}

	results := make([]classResult, 0, len(decls))
	totalWarnings := 0
	for _, decl := range decls {
		info := reg.Build(decl)
		checker := initsafety.NewChecker(reg)
		res := checker.CheckClass(info)
		warnings := initsafety.Report(res)
		totalWarnings += len(warnings)
		if checkInitUnsafeOnly && len(warnings) == 0 {
			continue
		}
		results = append(results, classResult{Class: decl.Name.Value, Warnings: warnings})
	}

	if checkInitJSON {
		return printCheckInitJSON(results)
	}
	printCheckInitText(results, len(decls), totalWarnings)
	return nil
}

type classResult struct {
	Class    string
	Warnings []initsafety.Warning
}

// jsonClassResult and renderedWarning are the JSON-safe projection of a
// classResult: initsafety.Warning's Effect tree carries Symbol/ClassInfo
// back-pointers that would otherwise make encoding/json trip over a
// reference cycle.
type jsonClassResult struct {
	Class    string            `json:"class"`
	Warnings []renderedWarning `json:"warnings"`
}

type renderedWarning struct {
	Kind    string `json:"kind"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

func renderWarnings(warnings []initsafety.Warning) []renderedWarning {
	out := make([]renderedWarning, len(warnings))
	for i, w := range warnings {
		out[i] = renderedWarning{
			Kind:    string(w.Effect.Kind()),
			Line:    w.Pos.Line,
			Column:  w.Pos.Column,
			Message: w.Message,
		}
	}
	return out
}

func collectClassDecls(program *ast.Program) []*ast.ClassDecl {
	var decls []*ast.ClassDecl
	for _, stmt := range program.Statements {
		if cd, ok := stmt.(*ast.ClassDecl); ok {
			decls = append(decls, cd)
		}
	}
	return decls
}

func printCheckInitText(results []classResult, classCount, warningCount int) {
	for _, r := range results {
		if len(r.Warnings) == 0 {
			fmt.Printf("%s: no initialization-safety warnings\n", r.Class)
			continue
		}
		fmt.Printf("%s: %d warning(s)\n", r.Class, len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  %s\n", w.Format())
		}
	}
	if !checkInitUnsafeOnly {
		fmt.Printf("\n%d class(es) checked, %d warning(s)\n", classCount, warningCount)
	}
}

func printCheckInitJSON(results []classResult) error {
	out := make([]jsonClassResult, len(results))
	for i, r := range results {
		out[i] = jsonClassResult{Class: r.Class, Warnings: renderWarnings(r.Warnings)}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
