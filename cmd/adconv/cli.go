package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/adconv"
	adslog "github.com/fwojciec/adconv/slog"
	"gopkg.in/yaml.v3"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config kong.ConfigFlag `help:"YAML file with flag values (keys use underscores, e.g. image_mode)"`

	Input     string               `default:"backend/website" env:"ADCONV_INPUT" help:"Directory of saved .html pages"`
	Output    string               `default:"backend/json" env:"ADCONV_OUTPUT" help:"Directory JSON records are written to"`
	Ledger    string               `default:"backend/parsed.log" env:"ADCONV_LEDGER" help:"Text file listing converted pages"`
	LedgerDB  string               `name:"ledger-db" env:"ADCONV_LEDGER_DB" help:"SQLite ledger path; replaces --ledger when set"`
	LogDir    string               `default:"backend/logs" env:"ADCONV_LOG_DIR" help:"Directory for log files"`
	LogLayout string               `default:"daily" env:"ADCONV_LOG_LAYOUT" help:"Log layout: daily or document"`
	ImageMode adconv.ImageMode     `default:"media-attribute" env:"ADCONV_IMAGE_MODE" help:"Image source: media-attribute or gallery-src-filter"`
	Policy    adconv.FailurePolicy `default:"continue" env:"ADCONV_POLICY" help:"After a page fails to parse: continue or fail-fast"`
}

// Validate is called by Kong after parsing.
func (c *CLI) Validate() error {
	if err := c.ImageMode.Validate(); err != nil {
		return err
	}
	if err := c.Policy.Validate(); err != nil {
		return err
	}
	if !slices.Contains(adslog.Layouts, c.LogLayout) {
		return adconv.Errorf(adconv.EINVALID, "unknown log layout %q", c.LogLayout)
	}
	return nil
}

// YAML is a Kong configuration loader for YAML files. Documents are
// converted to JSON and resolved the way kong.JSON resolves them.
func YAML(r io.Reader) (kong.Resolver, error) {
	var values map[string]any
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if values == nil {
		values = map[string]any{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to convert config: %w", err)
	}
	return kong.JSON(bytes.NewReader(data))
}
