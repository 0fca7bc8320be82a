// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program treeconv converts documents between the properties, XML, and JSON
// formats.
//
// Usage:
//
//	treeconv -i carriers.properties -o carriers.json -f JSON
//
// The source format is chosen by the extension of the input file (.properties,
// .xml, or .json). If the conversion fails, no output file is left behind and
// the program exits with status 1.
package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/creachadair/treeconv"
	"github.com/creachadair/treeconv/convert"
	"github.com/creachadair/treeconv/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	input, output string
	format        string
	configPath    string
	verbose       bool
	allowComments bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "treeconv -i <input> -o <output> -f <format>",
		Short: "Convert documents between properties, XML, and JSON",
		Long: `Convert a document between the properties, XML, and JSON formats.

The format of the input is chosen by its file extension. The output format
is one of XML, JSON, or PROPERTY. Defaults for the format and other settings
may be given in a TOML file (--config) or the environment variables
TREECONV_FORMAT, TREECONV_VERBOSE, and TREECONV_ALLOW_COMMENTS.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "input file path")
	f.StringVarP(&opts.output, "output", "o", "", "output file path")
	f.StringVarP(&opts.format, "format", "f", "", "output format: XML, JSON, or PROPERTY")
	f.StringVar(&opts.configPath, "config", "", "path of a TOML configuration file")
	f.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")
	f.BoolVar(&opts.allowComments, "allow-comments", false, "accept comments and trailing commas in JSON input")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")
	return cmd
}

func runConvert(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if flags.Changed("allow-comments") {
		cfg.AllowComments = opts.allowComments
	}

	if cfg.Format == "" {
		return errors.New("no output format specified (use --format)")
	}
	target, err := treeconv.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	c := convert.Converter{
		Log:           convert.NewSlogAdapter(logger),
		AllowComments: cfg.AllowComments,
	}
	return c.Convert(opts.input, opts.output, target)
}
