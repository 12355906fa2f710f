package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/cwbudde/funcity/internal/ast"
	"github.com/cwbudde/funcity/internal/diag"
	"github.com/cwbudde/funcity/internal/parser"
	"github.com/cwbudde/funcity/pkg/funcity"
	"github.com/cwbudde/funcity/pkg/funcity/examplehost"
	"github.com/spf13/cobra"
)

var (
	runEvalExpr string
	runCode     bool
	runDumpAST  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a FunCity source file or inline expression",
	Long: `Run parses and reduces a FunCity program, printing the rendered
text result.

Examples:
  # Run a template file
  funcity run page.fc

  # Evaluate inline code-mode source
  funcity run --code -e "set x 1; add x 2"

  # Run with a block-tree dump (for debugging)
  funcity run --dump-ast page.fc`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSource,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "run inline source instead of reading from file")
	runCmd.Flags().BoolVar(&runCode, "code", false, "treat the input as a single code region instead of template text")
	runCmd.Flags().BoolVar(&runDumpAST, "dump-ast", false, "dump the parsed block tree before running (for debugging)")
}

func runSource(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(runEvalExpr, args)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	mode := modeFromFlag(runCode)

	log := diag.NewLog()

	if runDumpAST {
		blocks := parser.Parse(input, mode, log)
		fmt.Println("AST:")
		fmt.Print(ast.Dump(blocks))
		fmt.Println()
	}

	start := time.Now()
	text, log, err := funcity.RunOnceToText(input, examplehost.Variables(), funcity.WithMode(mode), funcity.WithLog(log))
	if err != nil {
		return fmt.Errorf("run cancelled: %w", err)
	}
	elapsed := time.Since(start)

	w := diag.Writer{Warnings: os.Stdout, Errors: os.Stderr, Path: filename}
	w.Write(log)

	if verbose {
		fmt.Fprintf(os.Stderr, "mode=%v diagnostics=%d elapsed=%s\n", mode, len(log.Entries()), elapsed)
	}

	fmt.Println(text)
	return nil
}
