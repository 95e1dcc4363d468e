// Package cmd provides the marquee command-line interface with configuration
// from multiple sources.
//
// Configuration precedence, highest first:
//  1. Command-line flags (--config, --port, ...)
//  2. MARQUEE_CONFIG_FILE environment variable (custom config file path)
//  3. Individual environment variables (MARQUEE_SERVER_PORT, ...)
//  4. Configuration file (.marquee.yml)
//
// Environment variables follow the MARQUEE_<SECTION>_<OPTION> pattern, e.g.
// MARQUEE_SECRETS_REVALIDATE and MARQUEE_CONTENT_TOKEN.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func validateLogLevel(val string) error {
	switch strings.ToLower(val) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("invalid log level %q (debug, info, warn, error)", val)
}

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Content composition and cache-invalidation pipeline for the marketing site",
	Long: `Marquee renders CMS-managed pages from polymorphic section records and keeps
the rendering cache consistent with the content store through tag-based
invalidation webhooks, with an uncached draft path for previewing
unpublished content.

Quick Start:
  marquee serve                   Serve pages and webhook endpoints
  marquee dev                     Serve from a local content directory
  marquee tags <documentType>     Show the tags invalidated for a type`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is .marquee.yml, can also use MARQUEE_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info",
		"log level (debug, info, warn, error)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	addFlagValidation(rootCmd, "log-level", validateLogLevel)
}

// initConfig initializes the configuration system.
func initConfig() {
	switch {
	case cfgFile != "":
		viper.SetConfigFile(cfgFile)
	case os.Getenv("MARQUEE_CONFIG_FILE") != "":
		viper.SetConfigFile(os.Getenv("MARQUEE_CONFIG_FILE"))
	default:
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".marquee")
	}

	viper.SetEnvPrefix("MARQUEE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Missing config files are fine; env and flags may be enough.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}
