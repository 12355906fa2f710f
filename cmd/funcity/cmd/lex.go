package cmd

import (
	"fmt"

	"github.com/cwbudde/funcity/internal/diag"
	"github.com/cwbudde/funcity/internal/lexer"
	"github.com/cwbudde/funcity/internal/token"
	"github.com/spf13/cobra"
)

var (
	lexEvalExpr string
	lexCode     bool
	lexShowPos  bool
	lexOnlyErr  bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a FunCity source file or expression",
	Long: `Lex tokenizes a FunCity program and prints the resulting tokens,
one per line. Useful for debugging the tokenizer.

Examples:
  funcity lex page.fc
  funcity lex --code -e "set x 1"`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexSource,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline source instead of reading from file")
	lexCmd.Flags().BoolVar(&lexCode, "code", false, "treat the input as a single code region instead of template text")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show each token's source range")
	lexCmd.Flags().BoolVar(&lexOnlyErr, "only-errors", false, "show only diagnostics, not tokens")
}

func lexSource(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(lexEvalExpr, args)
	if err != nil {
		return err
	}
	mode := modeFromFlag(lexCode)

	log := diag.NewLog()
	l := lexer.New(input, log, lexer.WithMode(mode))

	for {
		tok := l.NextToken()
		if !lexOnlyErr {
			if lexShowPos {
				fmt.Printf("%-10s %s\n", tok.Range, tok)
			} else {
				fmt.Println(tok)
			}
		}
		if tok.Kind == token.EOF {
			break
		}
	}

	for _, entry := range log.Entries() {
		fmt.Println(diag.Format(entry, filename))
	}
	return nil
}
