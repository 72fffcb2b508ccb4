package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mayhemheroes/mlatu/ast"
	"github.com/mayhemheroes/mlatu/parser"
	"github.com/mayhemheroes/mlatu/scanner"
)

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse mlatu source files and report fragment summaries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			for _, file := range args {
				frag, err := parseFile(file, opts)
				if err != nil {
					return err
				}
				printSummary(file, frag)
			}
			return nil
		},
	}
}

func parseFile(file string, opts parser.Options) (*ast.Fragment, error) {
	input, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	tokens, err := scanner.Scan(file, string(input))
	if err != nil {
		return nil, err
	}
	tokens, err = scanner.Layout(tokens)
	if err != nil {
		return nil, err
	}
	return parser.ParseFragment(1, file, tokens, opts)
}

func printSummary(file string, frag *ast.Fragment) {
	pterm.Info.Println(fmt.Sprintf("%s: %d declarations, %d definitions, %d types, %d synonyms, %d metadata",
		file, len(frag.Declarations), len(frag.Definitions), len(frag.Types),
		len(frag.Synonyms), len(frag.Metadata)))
	pterm.Info.Println("fingerprint " + frag.Fingerprint())
}
