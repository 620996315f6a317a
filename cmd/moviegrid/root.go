package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sebastiantruijens/moviegrid/internal/config"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	overrides  config.Overrides
}

func newRootCmd() *cobra.Command {
	rf := &rootFlags{}
	tf := &tuiFlags{}

	root := &cobra.Command{
		Use:           "moviegrid",
		Short:         "Search movies and browse them as a grid of cards",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, rf, tf)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&rf.configPath, "config", "", "config file (.yaml, .yml or .toml)")
	pf.StringVar(&rf.overrides.SearchURL, "search-url", "", "base URL of the search API (default "+config.DefaultSearchURL+")")
	pf.StringVar(&rf.overrides.ProxyURL, "proxy-url", "", "origin serving /proxy-image (default "+config.DefaultProxyURL+")")
	pf.StringVar(&rf.overrides.LogLevel, "log-level", "", "debug, info, warn or error")

	bindTUIFlags(root, tf)
	root.AddCommand(newTUICmd(rf), newServeCmd(rf))
	return root
}

// load merges the config file, the environment and the flags.
func (rf *rootFlags) load() (config.Config, error) {
	return config.Load(rf.configPath, os.Getenv, rf.overrides)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
