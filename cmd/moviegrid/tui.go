package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sebastiantruijens/moviegrid/internal/poster"
	"github.com/sebastiantruijens/moviegrid/internal/search"
	"github.com/sebastiantruijens/moviegrid/internal/trailer"
	"github.com/sebastiantruijens/moviegrid/internal/tui"
)

// Poster size in terminal cells, matching a grid cell on an 80 column
// terminal.
const (
	posterWidth  = 20
	posterHeight = 10
)

type tuiFlags struct {
	logFile   string
	noPosters bool
}

func bindTUIFlags(cmd *cobra.Command, tf *tuiFlags) {
	cmd.Flags().StringVar(&tf.logFile, "log-file", "", "write logs to this file (default: discard)")
	cmd.Flags().BoolVar(&tf.noPosters, "no-posters", false, "do not render poster images")
}

func newTUICmd(rf *rootFlags) *cobra.Command {
	tf := &tuiFlags{}
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal front end (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, rf, tf)
		},
	}
	bindTUIFlags(cmd, tf)
	return cmd
}

func runTUI(cmd *cobra.Command, rf *rootFlags, tf *tuiFlags) error {
	rf.overrides.NoPosters = tf.noPosters
	cfg, err := rf.load()
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal; logs go to a file or nowhere.
	var w io.Writer = io.Discard
	if tf.logFile != "" {
		f, err := os.OpenFile(tf.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	log := newLogger(w, cfg.Level())

	opts := tui.Options{
		Searcher: search.NewClient(cfg.SearchURL, cfg.SearchTimeout),
		Player:   trailer.NewBrowserPlayer(),
		ProxyURL: cfg.ProxyURL,
		Log:      log,
	}
	if cfg.Posters {
		client := &http.Client{Timeout: cfg.ProxyTimeout}
		opts.Posters = poster.NewLoader(client, posterWidth, posterHeight, cfg.PosterConcurrency, log)
	}

	log.Info("starting", "search_url", cfg.SearchURL, "proxy_url", cfg.ProxyURL, "posters", cfg.Posters)
	p := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
