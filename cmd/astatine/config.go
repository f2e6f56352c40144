// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tailscale/hujson"
)

// config holds default values for the global flags. A configuration file is
// a JSON object with these fields, and may contain comments and trailing
// commas:
//
//	{
//	  // Emit YAML unless --format is given.
//	  "format": "yaml",
//	  "color": "never",
//	}
type config struct {
	Format  string `json:"format,omitempty"`
	Color   string `json:"color,omitempty"`
	Verbose *bool  `json:"verbose,omitempty"`
}

// loadConfig reads and parses the configuration file at path.
func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*config, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	var cfg config
	dec := json.NewDecoder(bytes.NewReader(std))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// apply sets the flags of cmd that were not set on the command line to the
// values given in c.
func (c *config) apply(cmd *cobra.Command) error {
	set := func(name, value string) error {
		if value == "" || cmd.Flags().Changed(name) {
			return nil
		}
		slog.Debug("flag from config", "flag", name, "value", value)
		return cmd.Flags().Set(name, value)
	}
	if err := set("format", c.Format); err != nil {
		return err
	}
	if err := set("color", c.Color); err != nil {
		return err
	}
	if c.Verbose != nil {
		return set("verbose", strconv.FormatBool(*c.Verbose))
	}
	return nil
}
