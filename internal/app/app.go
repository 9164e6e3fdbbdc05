package app

import (
	"context"
	"fmt"

	"github.com/opttab/opttab-go/internal/config"
	"github.com/opttab/opttab-go/internal/logger"
	"github.com/opttab/opttab-go/pkg/opttab"
	"github.com/opttab/opttab-go/pkg/publishers"
)

// App is the CLI runtime. It owns the API client, the optional publisher
// fanout, and the session tying them together.
type App struct {
	cfg     *config.Config
	client  *opttab.Client
	fanout  *publishers.Fanout
	session *Session
	log     logger.Logger
}

// New builds an App from config.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := opttab.New(cfg.APIKey,
		opttab.WithBaseURL(cfg.BaseURL),
		opttab.WithTimeout(cfg.RequestTimeout),
		opttab.WithRetry(cfg.RetryCount, cfg.RetryWait, cfg.RetryMaxWait),
		opttab.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}
	log.DebugObj("api client initialized", "client_config", map[string]any{
		"base_url":        client.BaseURL(),
		"timeout_seconds": int(cfg.RequestTimeout.Seconds()),
		"retry_count":     cfg.RetryCount,
	})

	fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		return nil, err
	}

	var events EventPublisher
	if fanout.Size() > 0 {
		events = fanout
	}

	return &App{
		cfg:     cfg,
		client:  client,
		fanout:  fanout,
		session: NewSession(client, events, log),
		log:     log,
	}, nil
}

// buildFanout loads the publishers file when one is configured.
func buildFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if path == "" {
		return publishers.NewFanout(nil), nil
	}

	publisherReg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabled := publisherReg.Enabled()
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubClients), nil
}

// Session returns the session bound to this App.
func (a *App) Session() *Session { return a.session }

// Close releases publisher clients, logging any errors encountered.
func (a *App) Close() {
	if a == nil || a.fanout == nil {
		return
	}
	if err := a.fanout.Close(); err != nil {
		a.log.ErrorObj("publishers close failed", "error", err)
	}
}
