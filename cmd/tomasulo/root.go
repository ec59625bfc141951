// Package main implements the tomasulo CLI: a cobra-based driver for the
// Tomasulo pipeline core, grounded on octochan's cmd/root.go shape
// (SPEC_FULL.md §2.3).
package main

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hashicorp/go-hclog"
)

var (
	cfgFile     string
	latencyFile string
	verbose     bool

	logger hclog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tomasulo",
	Short: "A cycle-accurate Tomasulo's-algorithm pipeline simulator",
	Long: `tomasulo simulates a single in-order-commit, out-of-order-execute
core implementing Tomasulo's algorithm with speculative execution and a
1-bit branch predictor, cycle by cycle.`,
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	pflag.StringVar(&cfgFile, "config", "", "config file (default: $TOMASULO_CONFIG or none)")
	pflag.StringVar(&latencyFile, "latency", "", "path to a latency JSON file, read when the command builds its core")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "raise the logger to Debug level")
	rootCmd.PersistentFlags().AddFlagSet(pflag.CommandLine)

	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(stepCmd)
	rootCmd.AddCommand(metricsCmd)
}

// initConfig layers CLI flags, a TOMASULO_ environment prefix, and an
// optional config file into one viper.Viper instance (SPEC_FULL.md §2.2).
func initConfig() {
	viper.SetEnvPrefix("TOMASULO")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("latency", pflag.Lookup("latency"))
	_ = viper.BindPFlag("verbose", pflag.Lookup("verbose"))

	if cfgFile == "" {
		cfgFile = viper.GetString("config")
	}
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "tomasulo: config file error: %v\n", err)
		}
		viper.WatchConfig()
		viper.OnConfigChange(func(e fsnotify.Event) {
			if logger != nil {
				logger.Info("config file changed, reloaded on next run", "file", e.Name, "op", e.Op.String())
			}
		})
	}

	if latencyFile == "" {
		latencyFile = viper.GetString("latency")
	}
	verbose = viper.GetBool("verbose")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tomasulo: %v\n", err)
		os.Exit(1)
	}
}
