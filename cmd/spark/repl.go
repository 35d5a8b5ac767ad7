package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	spark "spark-lang"
	"spark-lang/internal/runtime"
)

// ---- repl command ----

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive REPL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl()
		},
	}
}

func runRepl() error {
	cfg := loadReplConfig()
	if !cfg.Color {
		color.NoColor = true
	}

	prompt := color.GreenString(cfg.Prompt)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       cfg.HistoryFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("readline init failed: %w", err)
	}
	defer rl.Close()

	// Welcome banner
	fmt.Fprintf(rl.Stdout(), "%s %s\n\n",
		color.New(color.Bold, color.FgCyan).Sprint("spark-lang REPL"),
		color.New(color.FgHiBlack).Sprint("(type 'exit' or Ctrl+D to quit, ':env' to list variables)"))

	// One session for the whole REPL: variables persist across inputs.
	session := spark.NewSession()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				fmt.Fprintf(rl.Stdout(), "\n%s\n", color.New(color.FgHiBlack).Sprint("(use 'exit' or Ctrl+D to quit)"))
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(rl.Stdout())
			}
			break
		}

		input := strings.TrimSpace(line)
		switch {
		case input == "":
			continue
		case input == "exit":
			return nil
		case input == ":env":
			printEnv(rl.Stdout(), session)
			continue
		}

		val, d := session.Run("<repl>", line)
		if d != nil {
			printDiag(rl.Stderr(), d)
			continue
		}
		if _, isNull := val.(runtime.Null); !isNull {
			fmt.Fprintln(rl.Stdout(), val.String())
		}
	}
	return nil
}

// printEnv lists the global environment's bindings, sorted by name.
func printEnv(w io.Writer, session *spark.Session) {
	env := session.Env()
	names := env.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "(no variables defined)")
		return
	}
	for _, name := range names {
		if val, ok := env.Get(name); ok {
			fmt.Fprintf(w, "%s = %s\n", name, val.String())
		}
	}
}
