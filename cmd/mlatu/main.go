package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mayhemheroes/mlatu/parser"
)

var (
	traceFlag  string
	configFlag string
)

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()

	root := &cobra.Command{
		Use:           "mlatu",
		Short:         "Front end for the mlatu language",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			tracer().SetTraceLevel(tracing.TraceLevelFromString(traceFlag))
		},
	}
	root.PersistentFlags().StringVar(&traceFlag, "trace", "Error",
		"Trace level [Debug|Info|Error]")
	root.PersistentFlags().StringVar(&configFlag, "config", "",
		"Project config file (default .mlatu.yaml if present)")
	root.AddCommand(parseCmd(), replCmd(), nameCmd())

	if err := root.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// loadOptions reads parser options from the config file. An explicitly named
// file must exist; the default one may be absent.
func loadOptions() (parser.Options, error) {
	var opts parser.Options
	path := configFlag
	if path == "" {
		path = ".mlatu.yaml"
		if _, err := os.Stat(path); err != nil {
			return opts, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("cannot decode config %s: %w", path, err)
	}
	tracer().Infof("loaded options from %s", path)
	return opts, nil
}
