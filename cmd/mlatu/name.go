package main

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mayhemheroes/mlatu/parser"
)

func nameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "name <text>",
		Short: "Parse a single (possibly qualified) name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := parser.ParseName(1, "arg", strings.Join(args, " "))
			if err != nil {
				return err
			}
			pterm.Info.Println(name.String())
			return nil
		},
	}
}
