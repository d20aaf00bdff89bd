// cellc - n-cube cell codec CLI tool
//
// Usage:
//
//	cellc encode [file]                  JSON cells -> canonical records (JSON lines)
//	cellc decode [file]                  JSON cells -> display text
//	cellc display --type T <literal>     Format one literal for display
//	cellc edit --type T <literal>        Format one literal for editing
//	cellc stream write [file]            JSON cells -> CR1 frames
//	cellc stream read [file]             CR1 frames -> canonical records
//	cellc template scan [file]           List cube names and scope keys
//	cellc template rewrite [file]        Expand short-cut references
//	cellc template assemble [file]       Rewrite and inject closures
//	cellc types                          List cell type names
//	cellc version                        Print version info
//
// JSON cells are n-cube cell objects, one per line:
//
//	{"type":"long","value":42}
//	{"type":"exp","url":"http://host/rule.groovy","cache":true}
//
// If no file is given, reads from stdin.
package main

import (
	"context"
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"go.alis.build/alog"
)

const libVersion = "0.1.0"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		alog.Errorf(context.Background(), "%v", err)
		os.Exit(1)
	}
}

// app carries the loaded configuration to every subcommand.
type app struct {
	configPath string
	logLevel   string
	location   string

	cfg Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "cellc",
		Short:         "Encode, decode and format n-cube cells",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warning, error)")
	root.PersistentFlags().StringVar(&a.location, "location", "", "time zone for dates without one (default UTC)")

	root.AddCommand(
		a.encodeCmd(),
		a.decodeCmd(),
		a.formatCmd("display", "Format one literal for display", true),
		a.formatCmd("edit", "Format one literal for editing", false),
		a.streamCmd(),
		a.templateCmd(),
		typesCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version info",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "cellc %s\n", libVersion)
			},
		},
	)
	return root
}

// load reads the config file and applies flag overrides.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("location") {
		cfg.Location = a.location
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	alog.SetLevel(level)
	a.cfg = cfg
	alog.Debugf(cmd.Context(), "config: %+v", cfg)
	return nil
}
