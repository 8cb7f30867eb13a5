package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dex-ingest/core/dex"

	"github.com/spf13/cobra"
)

var parsePretty bool

// parseCmd parses a local audit file and prints the outcome as JSON.
var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a DEX audit file and print the result",
	Long: `Parse a vending machine audit transmission from a local file.

The full parse outcome (decoded records, consolidated selections, detected
layout, and any errors) is printed to stdout as JSON. The process exits
non-zero when the parse did not succeed, so the command can gate pipelines.

Examples:
  # Parse and pretty-print
  dex-ingest parse machine-7.dex

  # Compact output for piping into jq
  dex-ingest parse machine-7.dex --pretty=false`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parsePretty, "pretty", true, "Indent the JSON output")
	RootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	label := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	result := dex.New().Parse(string(content), label)

	var out []byte
	if parsePretty {
		out, err = json.MarshalIndent(result, "", "  ")
	} else {
		out, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	fmt.Println(string(out))

	if !result.Success {
		return fmt.Errorf("parse of %s did not succeed (%d error(s))", path, len(result.Errors))
	}
	return nil
}
