// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	outputFormat string
	colorMode    string
	configPath   string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "astatine",
	Short: "Inspect the syntax of Python source files",
	Long: `Astatine parses Python source files and reports on their structure:
source ranges of syntax nodes, leading comments, docstrings, constants,
type-checking guards, context managers, and call arguments.

Defaults for the global flags may be set in a configuration file in JSON with
comments (HuJSON) format, named by --config. Flags given on the command line
take precedence over the configuration file.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&outputFormat, "format", "text", "Output format: text, json, yaml")
	pf.StringVar(&colorMode, "color", "auto", "Colorize text output: auto, always, never")
	pf.StringVar(&configPath, "config", "", "Path of a configuration file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(rangesCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(constantsCmd)
	rootCmd.AddCommand(docstringsCmd)
	rootCmd.AddCommand(typecheckCmd)
	rootCmd.AddCommand(withCmd)
	rootCmd.AddCommand(callsCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup applies the configuration file, if any, and sets up logging before
// any command runs.
func setup(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		if err := cfg.apply(cmd); err != nil {
			return fmt.Errorf("applying config %s: %w", configPath, err)
		}
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	slog.Debug("starting", "command", cmd.Name(), "files", len(args), "format", outputFormat)

	switch outputFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format: %s", outputFormat)
	}
	switch colorMode {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("unknown color mode: %s", colorMode)
	}
	return nil
}
