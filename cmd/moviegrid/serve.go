package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sebastiantruijens/moviegrid/internal/proxy"
	"github.com/sebastiantruijens/moviegrid/internal/search"
	"github.com/sebastiantruijens/moviegrid/internal/web"
)

func newServeCmd(rf *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web front end and the image proxy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rf.load()
			if err != nil {
				return err
			}
			log := newLogger(os.Stderr, cfg.Level())

			srv := web.NewServer(
				search.NewClient(cfg.SearchURL, cfg.SearchTimeout),
				proxy.New(cfg.ProxyTimeout, log),
				log,
			)
			log.Info("starting", "search_url", cfg.SearchURL, "addr", cfg.Addr)
			return web.Run(cmd.Context(), web.NewHTTPServer(cfg.Addr, srv), log)
		},
	}
	cmd.Flags().StringVar(&rf.overrides.Addr, "addr", "", `listen address (default ":3000", or ":$PORT")`)
	return cmd
}
