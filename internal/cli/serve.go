package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbauer/flowview/internal/config"
	"github.com/hbauer/flowview/internal/server"
	"github.com/hbauer/flowview/pkg/flowchart"
	"github.com/hbauer/flowview/pkg/session"
	"github.com/hbauer/flowview/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API server.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

The server exposes diagram storage and viewing sessions over a JSON API.
Backends are selected in the config file: sessions live in memory or
Redis, diagrams in memory or MongoDB. The server runs until interrupted
and shuts down gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.ConfigPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	sessions, err := c.newSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer sessions.Close()

	diagrams, err := c.newDiagramStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer diagrams.Close(context.Background())

	srv := server.New(server.Options{
		Sessions: sessions,
		Diagrams: diagrams,
		Cache:    newPreviewCache(false, cfg.Preview.CacheDir),
		Renderer: flowchart.Renderer{
			Directive: cfg.Render.Directive,
			Callback:  cfg.Render.Callback,
		},
		Logger:     c.Logger,
		PreviewTTL: cfg.Preview.CacheTTL.Duration,
	})

	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

func (c *CLI) newSessionStore(ctx context.Context, cfg config.Config) (session.Store, error) {
	switch cfg.Sessions.Backend {
	case "", "memory":
		return session.NewMemoryStore(), nil
	case "redis":
		r := cfg.Sessions.Redis
		c.Logger.Infof("Using redis session store at %s", r.Addr)
		return session.NewRedisStore(ctx, session.RedisConfig{
			Addr:     r.Addr,
			Password: r.Password,
			DB:       r.DB,
			TTL:      r.TTL.Duration,
		})
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Sessions.Backend)
	}
}

func (c *CLI) newDiagramStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Diagrams.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		m := cfg.Diagrams.Mongo
		c.Logger.Infof("Using mongo diagram store at %s", m.URI)
		return store.NewMongoStore(ctx, store.MongoConfig{URI: m.URI, Database: m.Database})
	default:
		return nil, fmt.Errorf("unknown diagram backend %q", cfg.Diagrams.Backend)
	}
}
