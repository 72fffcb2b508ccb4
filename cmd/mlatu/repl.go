package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mayhemheroes/mlatu/parser"
	"github.com/mayhemheroes/mlatu/scanner"
)

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive fragment parsing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			rl, err := readline.New("mlatu> ")
			if err != nil {
				return err
			}
			defer rl.Close()
			pterm.Info.Println("Welcome to the mlatu REPL")
			tracer().Infof("Quit with <ctrl>D")
			repl(rl, opts)
			pterm.Println("Good bye!")
			return nil
		},
	}
}

func repl(rl *readline.Instance, opts parser.Options) {
	lineno := 1
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			return
		}
		startLine := lineno
		lineno += strings.Count(line, "\n") + 1
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if text, ok := strings.CutPrefix(line, ":name "); ok {
			name, err := parser.ParseName(startLine, "repl", text)
			if err != nil {
				pterm.Error.Println(err.Error())
				continue
			}
			pterm.Info.Println(name.String())
			continue
		}
		evalLine(startLine, line, opts)
	}
}

// evalLine parses one REPL line as a complete fragment and reports what it
// contained.
func evalLine(startLine int, line string, opts parser.Options) {
	tokens, err := scanner.Scan("repl", line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	tokens, err = scanner.Layout(tokens)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	frag, err := parser.ParseFragment(startLine, "repl", tokens, opts)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	pterm.Info.Println(frag.String())
}
