package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Eximchain/dappbot-types/internal/config"
)

var (
	cfgFile string
	jsonOut bool
	cfg     *config.Config
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   "dappbotctl",
	Short: "Check DappBot API bodies and build response envelopes",
	Long: `dappbotctl validates request and response bodies against the DappBot
wire shapes and renders {data, err} envelopes with their status codes.

Input files may be JSON or YAML; "-" or no file reads stdin.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml, ./config/config.yaml, /etc/dappbot/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print machine-readable JSON")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFile(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	opts := &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}
	var handler slog.Handler
	if cfg.Log.Format == "text" {
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	} else {
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	}
	logger = slog.New(handler)
	return nil
}

// readInput decodes a JSON or YAML document from path, or stdin for "-".
func readInput(cmd *cobra.Command, path string) (any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var value any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &value)
	default:
		err = json.Unmarshal(data, &value)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	logger.Debug("read input", slog.String("path", path), slog.Int("bytes", len(data)))
	return value, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
}
