// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-query CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-query/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout   = 30 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "arxiv-query/0.1"
)

// rootCmd is the base command for the arxiv-query CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-query",
	Short: "Query the arXiv search API from the command line",
	Long: `arxiv-query builds boolean search expressions for the arXiv API, fetches
the Atom feed, and turns each entry into a structured paper record.

Subcommands cover the workflow: search runs a query and prints or saves the
results, download fetches PDFs for saved results, and store keeps a local
SQLite archive of papers worth returning to.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-query.yaml or ~/.config/arxiv-query/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-query")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-query"))
		}
	}

	viper.SetEnvPrefix("ARXIV_QUERY")
	viper.AutomaticEnv()

	viper.SetDefault("client.timeout", defaultTimeout)
	viper.SetDefault("client.user_agent", defaultUserAgent)
	viper.SetDefault("client.max_retries", 5)
	viper.SetDefault("download.timeout", 60*time.Second)
	viper.SetDefault("download.user_agent", defaultUserAgent)
	viper.SetDefault("download.download_delay", defaultDelay)
	viper.SetDefault("download.papers_dir", "papers")
	viper.SetDefault("archive.archive_dir", "archive")
	viper.SetDefault("archive.max_results", 20)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func clientConfig() types.ClientConfig {
	return types.ClientConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("client.timeout"),
			UserAgent: viper.GetString("client.user_agent"),
		},
		BaseURL:    viper.GetString("client.base_url"),
		MaxRetries: viper.GetInt("client.max_retries"),
	}
}

func downloadConfig() types.DownloadConfig {
	return types.DownloadConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("download.timeout"),
			UserAgent: viper.GetString("download.user_agent"),
		},
		DownloadDelay: viper.GetDuration("download.download_delay"),
		PapersDir:     viper.GetString("download.papers_dir"),
	}
}

func archiveConfig() types.ArchiveConfig {
	return types.ArchiveConfig{
		ArchiveDir: viper.GetString("archive.archive_dir"),
		MaxResults: viper.GetInt("archive.max_results"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
