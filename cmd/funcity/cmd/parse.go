package cmd

import (
	"fmt"

	"github.com/cwbudde/funcity/internal/ast"
	"github.com/cwbudde/funcity/internal/diag"
	"github.com/cwbudde/funcity/internal/parser"
	"github.com/spf13/cobra"
)

var (
	parseEvalExpr string
	parseCode     bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a FunCity source file and dump its block tree",
	Args:  cobra.MaximumNArgs(1),
	RunE:  parseSource,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline source instead of reading from file")
	parseCmd.Flags().BoolVar(&parseCode, "code", false, "treat the input as a single code region instead of template text")
}

func parseSource(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(parseEvalExpr, args)
	if err != nil {
		return err
	}
	mode := modeFromFlag(parseCode)

	log := diag.NewLog()
	blocks := parser.Parse(input, mode, log)

	fmt.Print(ast.Dump(blocks))

	for _, entry := range log.Entries() {
		fmt.Println(diag.Format(entry, filename))
	}
	if log.HasError() {
		exitWithError("parse produced errors")
	}
	return nil
}
