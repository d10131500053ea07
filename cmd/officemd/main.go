// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the officemd CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/officemd/internal/logging"
	"github.com/pdiddy/officemd/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg and logger are populated before any subcommand runs.
var (
	cfg    = types.DefaultConfig()
	logger = zap.NewNop()
)

// rootCmd is the base command for the officemd CLI.
var rootCmd = &cobra.Command{
	Use:   "officemd",
	Short: "Convert Word and PowerPoint files to Markdown",
	Long: `officemd converts office documents into Markdown.

The docx subcommand splits Word documents into one Markdown file per page,
flattening tables into GitHub-flavored Markdown. The pptx subcommand turns a
presentation into a single Markdown document with extracted images,
re-rendered charts, chart and table data, a charts summary and metadata.

Every outcome is recorded in a SQLite ledger; the history subcommand lists
and exports it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = c

		l, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	d := types.DefaultConfig()
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./officemd.yaml or ~/.config/officemd/officemd.yaml)")
	pf.String("log-level", d.Log.Level, "log level: debug, info, warn, error")
	pf.String("log-format", d.Log.Format, "log format: console or json")
	pf.String("ledger", d.Ledger.Path, "ledger database path (empty disables the ledger)")
	pf.Bool("incremental", d.Ledger.Incremental, "skip sources unchanged since their last successful conversion")

	bindFlags(pf, map[string]string{
		"log.level":          "log-level",
		"log.format":         "log-format",
		"ledger.path":        "ledger",
		"ledger.incremental": "incremental",
	})
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("officemd")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "officemd"))
		}
	}

	viper.SetEnvPrefix("OFFICEMD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	switch {
	case err == nil:
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	case cfgFile != "":
		fmt.Fprintf(os.Stderr, "warning: reading config file %s: %v\n", cfgFile, err)
	}
}

// loadConfig resolves the configuration from v over the built-in
// defaults.
func loadConfig(v *viper.Viper) (types.Config, error) {
	d := types.DefaultConfig()
	defaults := map[string]any{
		"docx.input_dir":     d.Docx.InputDir,
		"docx.output_dir":    d.Docx.OutputDir,
		"docx.frontmatter":   d.Docx.Frontmatter,
		"pptx.output_dir":    d.Pptx.OutputDir,
		"pptx.chart.width":   d.Pptx.Chart.Width,
		"pptx.chart.height":  d.Pptx.Chart.Height,
		"pptx.write_yaml":    d.Pptx.WriteYAML,
		"ledger.path":        d.Ledger.Path,
		"ledger.incremental": d.Ledger.Incremental,
		"log.level":          d.Log.Level,
		"log.format":         d.Log.Format,
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("reading configuration: %w", err)
	}
	return c, nil
}

// bindFlags binds each config key to the named flag of fs.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, fs.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
