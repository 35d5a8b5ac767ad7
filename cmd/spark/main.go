// Command spark is the CLI entry point for the spark-lang toolchain.
//
// Usage:
//
//	spark tokens <file>            Print tokens
//	spark tokens <file> --json     Print tokens as JSON
//	spark parse  <file>            Print AST as JSON
//	spark run    <file>            Evaluate a source file line by line
//	spark repl                     Start interactive REPL
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	spark "spark-lang"
	"spark-lang/internal/ast"
	"spark-lang/internal/lexer"
	"spark-lang/internal/parser"
	"spark-lang/internal/runtime"
	"spark-lang/internal/span"
)

func main() {
	root := &cobra.Command{
		Use:           "spark",
		Short:         "spark-lang toolchain",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(tokensCmd(), parseCmd(), runCmd(), replCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func readFile(filename string) (string, error) {
	source, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("cannot read file %s: %w", filename, err)
	}
	return string(source), nil
}

// ---- tokens command ----

func tokensCmd() *cobra.Command {
	var jsonMode bool
	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Tokenize a source file and print its tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readFile(args[0])
			if err != nil {
				return err
			}

			l := lexer.New(source, args[0])
			tokens, d := l.Tokenize()
			if d != nil {
				printDiag(os.Stderr, d)
				os.Exit(1)
			}

			if jsonMode {
				printTokensJSON(tokens)
			} else {
				printTokensText(tokens)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonMode, "json", false, "print tokens as JSON")
	return cmd
}

// ---- parse command ----

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a source file and print its AST as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readFile(args[0])
			if err != nil {
				return err
			}
			src := span.Source{Name: args[0], Text: source}

			l := lexer.New(source, args[0])
			tokens, d := l.Tokenize()
			if d != nil {
				printDiag(os.Stderr, d)
				os.Exit(1)
			}

			p := parser.New(tokens, src)
			root, d := p.Parse()
			if d != nil {
				printDiag(os.Stderr, d)
				os.Exit(1)
			}

			printJSON(ast.NodeToMap(root))
			return nil
		},
	}
}

// ---- run command ----

// runCmd evaluates a file one expression per line through a single
// session, so VAR bindings on early lines are visible to later ones.
func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Evaluate a source file line by line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readFile(args[0])
			if err != nil {
				return err
			}

			session := spark.NewSession()
			for _, line := range strings.Split(source, "\n") {
				if strings.TrimSpace(line) == "" {
					continue
				}
				val, d := session.Run(args[0], line)
				if d != nil {
					printDiag(os.Stderr, d)
					os.Exit(1)
				}
				if _, isNull := val.(runtime.Null); !isNull {
					fmt.Println(val.String())
				}
			}
			return nil
		},
	}
}
