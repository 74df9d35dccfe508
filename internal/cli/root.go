// internal/cli/root.go
// Package cli defines the proofbench command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/provelab/proofbench/internal/appconfig"
	"github.com/provelab/proofbench/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "proofbench",
	Short: "proofbench — benchmark proof generation and verification workloads",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load the config file (or defaults when none exists). An
		//    explicitly passed --config must exist; the default path may not.
		path := ""
		if cmd.Flags().Changed("config") {
			path = cfgFile
		}
		cfg, err := appconfig.Load(path)
		if err != nil {
			return err
		}

		// 2) Flags the user set override the file (flags > file > defaults).
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = viper.GetBool("verbose")
		}
		if cmd.Flags().Changed("iterations") {
			cfg.Iterations = viper.GetInt("iterations")
		}
		if cmd.Flags().Changed("warmupIterations") {
			cfg.WarmupIterations = viper.GetInt("warmupIterations")
		}
		if cmd.Flags().Changed("outputDir") {
			cfg.OutputDir = viper.GetString("outputDir")
		}
		if cmd.Flags().Changed("logFile") {
			cfg.LogFile = viper.GetString("logFile")
		}

		// 3) Materialize the merged configuration as a stable snapshot for
		//    the subcommands.
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.SetDebug(cfg.Verbose)

		return nil
	},
}

// GetConfig returns the materialized configuration snapshot for subcommands.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("verbose", false, "enable per-trial logging and debug output")
	rootCmd.PersistentFlags().Int("iterations", 10, "tracked trials per operation")
	rootCmd.PersistentFlags().Int("warmupIterations", 2, "untracked warmup trials per operation")
	rootCmd.PersistentFlags().String("outputDir", "", "directory for export and dashboard artifacts")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("iterations", rootCmd.PersistentFlags().Lookup("iterations"))
	_ = viper.BindPFlag("warmupIterations", rootCmd.PersistentFlags().Lookup("warmupIterations"))
	_ = viper.BindPFlag("outputDir", rootCmd.PersistentFlags().Lookup("outputDir"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
}
